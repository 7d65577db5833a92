package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/fullframe/internal/config"
)

var configCommands = map[string]func(fs *flag.FlagSet, path *string, args []string) int{
	"validate": runConfigValidate,
	"print":    runConfigPrint,
	"explain":  runConfigExplain,
}

func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  fullframe config validate [--path PATH]")
	fmt.Fprintln(w, "  fullframe config print [--path PATH] [--defaults]")
	fmt.Fprintln(w, "  fullframe config explain [--path PATH] <key>      e.g. window.width")
}

func runConfig(args []string) int {
	if len(args) == 0 || isHelpArg(args) {
		printConfigUsage(os.Stderr)
		return 2
	}
	run, ok := configCommands[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown config command: %s\n", args[0])
		return 2
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/fullframe/config.yaml)")
	return run(fs, path, args[1:])
}

func runConfigValidate(fs *flag.FlagSet, path *string, args []string) int {
	if err := fs.Parse(args); err != nil {
		return 2
	}
	res, err := loadConfigResult(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if len(res.Files) == 0 {
		fmt.Println("config: ok (no file, using defaults)")
		return 0
	}
	fmt.Printf("config: ok (%d file(s))\n", len(res.Files))
	return 0
}

func runConfigPrint(fs *flag.FlagSet, path *string, args []string) int {
	defaults := fs.Bool("defaults", false, "Print built-in defaults instead of the loaded config")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg := config.DefaultConfig()
	if !*defaults {
		res, err := loadConfigResult(*path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		for _, f := range res.Files {
			fmt.Printf("# loaded: %s\n", f)
		}
		cfg = res.Config
	}
	if err := yaml.NewEncoder(os.Stdout).Encode(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runConfigExplain(fs *flag.FlagSet, path *string, args []string) int {
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		printConfigUsage(os.Stderr)
		return 2
	}

	res, err := loadConfigResult(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	key := fs.Arg(0)
	val, src, err := config.Explain(res, key)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("%s: %v\nsource: %s\n", key, val, src)
	return 0
}

func loadConfigResult(path string) (*config.LoadResult, error) {
	if path == "" {
		return config.LoadWithSources()
	}
	return config.LoadFromPath(path)
}
