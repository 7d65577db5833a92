package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

type SourceKind string

const (
	SourceDefault SourceKind = "default"
	SourceFile    SourceKind = "file"
)

// Source locates the value of a config key.
type Source struct {
	Kind   SourceKind
	File   string
	Line   int
	Column int
}

func (s Source) String() string {
	if s.Kind != SourceFile {
		return string(s.Kind)
	}
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
}

type LoadResult struct {
	Config  *Config
	Sources map[string]Source // key path ("window.width") -> file that set it last
	Files   []string          // loaded files, includes before the files including them
}

// Source reports where key got its effective value.
func (r *LoadResult) Source(key string) Source {
	if src, ok := r.Sources[key]; ok {
		return src
	}
	return Source{Kind: SourceDefault}
}

func DefaultConfigPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "fullframe", "config.yaml"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "fullframe", "config.yaml"), nil
}

// Load reads the configuration from the standard location.
func Load() (*Config, error) {
	res, err := LoadWithSources()
	if err != nil {
		return nil, err
	}
	return res.Config, nil
}

// LoadWithSources is Load plus the per-key origin of every value.
func LoadWithSources() (*LoadResult, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath loads path and its includes. A missing file yields defaults.
func LoadFromPath(path string) (*LoadResult, error) {
	l := &loader{seen: map[string]bool{}, sources: map[string]Source{}}

	var raw RawConfig
	if _, err := os.Stat(path); err == nil {
		if raw, err = l.load(path); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	res := &LoadResult{Config: FromRaw(raw), Sources: l.sources, Files: l.files}
	if err := res.Config.Validate(); err != nil {
		return nil, res.locate(err)
	}
	return res, nil
}

// locate fills in the file position of a validation failure. Errors on a
// key that no file set (a default) are left without a position; errors on
// a section fall back to the section's own position.
func (r *LoadResult) locate(err error) error {
	var verr *ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	for key := verr.Path; key != ""; key = parentKey(key) {
		if src, ok := r.Sources[key]; ok {
			verr.Source = src
			break
		}
	}
	return err
}

func parentKey(key string) string {
	if i := strings.LastIndexByte(key, '.'); i >= 0 {
		return key[:i]
	}
	return ""
}

// Explain returns the effective value of key and where it came from.
func Explain(res *LoadResult, key string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, errors.New("no config loaded")
	}
	data, err := yaml.Marshal(res.Config)
	if err != nil {
		return nil, Source{}, err
	}
	var cur any
	if err := yaml.Unmarshal(data, &cur); err != nil {
		return nil, Source{}, err
	}
	for _, part := range strings.Split(key, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, Source{}, fmt.Errorf("unknown config key %q", key)
		}
		if cur, ok = m[part]; !ok {
			return nil, Source{}, fmt.Errorf("unknown config key %q", key)
		}
	}
	return cur, res.Source(key), nil
}

// loader follows include chains. Each file is read at most once; a file
// that includes one of its own ancestors is an error.
type loader struct {
	chain   []string
	seen    map[string]bool
	files   []string
	sources map[string]Source
}

func (l *loader) load(path string) (RawConfig, error) {
	file, err := filepath.Abs(path)
	if err != nil {
		return RawConfig{}, fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	if slices.Contains(l.chain, file) {
		return RawConfig{}, fmt.Errorf("include cycle detected: %s -> %s", strings.Join(l.chain, " -> "), file)
	}
	if l.seen[file] {
		return RawConfig{}, nil
	}
	l.seen[file] = true

	data, err := os.ReadFile(file)
	if err != nil {
		return RawConfig{}, fmt.Errorf("%s: failed to read: %w", file, err)
	}
	raw, positions, err := parseFile(file, data)
	if err != nil {
		return RawConfig{}, err
	}

	l.chain = append(l.chain, file)
	var merged RawConfig
	for _, include := range raw.Include {
		if include == "" {
			return RawConfig{}, fmt.Errorf("%s: include path is empty", file)
		}
		if !filepath.IsAbs(include) {
			include = filepath.Join(filepath.Dir(file), include)
		}
		inc, err := l.load(include)
		if err != nil {
			return RawConfig{}, err
		}
		merged = merged.merge(inc)
	}
	l.chain = l.chain[:len(l.chain)-1]

	// The including file wins over everything it includes.
	for key, src := range positions {
		l.sources[key] = src
	}
	l.files = append(l.files, file)
	return merged.merge(raw), nil
}

// parseFile decodes one config file strictly and records where each
// top-level and window key was written.
func parseFile(file string, data []byte) (RawConfig, map[string]Source, error) {
	var raw RawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return RawConfig{}, nil, fmt.Errorf("%s: %w", file, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return RawConfig{}, nil, fmt.Errorf("%s: failed to parse yaml: %w", file, err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) == 1 {
		root = root.Content[0]
	}

	positions := map[string]Source{}
	at := func(n *yaml.Node) Source {
		return Source{Kind: SourceFile, File: file, Line: n.Line, Column: n.Column}
	}
	eachKey(root, func(key string, val *yaml.Node) {
		positions[key] = at(val)
		if key == "window" {
			eachKey(val, func(field string, v *yaml.Node) {
				positions["window."+field] = at(v)
			})
		}
	})
	return raw, positions, nil
}

func eachKey(n *yaml.Node, fn func(key string, val *yaml.Node)) {
	if n == nil || n.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		fn(n.Content[i].Value, n.Content[i+1])
	}
}
