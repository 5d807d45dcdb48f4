package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	apppkg "github.com/kk-code-lab/skillsearch/internal/app"
	"github.com/kk-code-lab/skillsearch/internal/config"
)

func printHelp() {
	fmt.Print(`skillsearch - Search the skills marketplace from the terminal

USAGE:
    skillsearch [OPTIONS]

OPTIONS:
    -h, --help            Show this help message and exit
    -c, --config PATH     Read settings from PATH (YAML)

Without --config, $XDG_CONFIG_HOME/skillsearch/config.yaml is used when it
exists. SKILLSEARCH_* environment variables and a .env file in the working
directory override file settings.
`)
}

type options struct {
	help       bool
	configPath string
}

var errMissingConfigPath = errors.New("--config needs a path")

func parseArgs(args []string) (options, error) {
	var opts options
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-h" || arg == "--help":
			opts.help = true
		case arg == "-c" || arg == "--config":
			if i+1 >= len(args) || args[i+1] == "" {
				return opts, errMissingConfigPath
			}
			i++
			opts.configPath = args[i]
		case strings.HasPrefix(arg, "--config="):
			opts.configPath = strings.TrimPrefix(arg, "--config=")
			if opts.configPath == "" {
				return opts, errMissingConfigPath
			}
		default:
			return opts, fmt.Errorf("unknown argument %q", arg)
		}
	}
	return opts, nil
}

// defaultConfigPath returns the per-user config file when there is one.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(dir, "skillsearch", "config.yaml")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

func main() {
	// Set UTF-8 as fallback encoding so diacritics in titles and names
	// display correctly.
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		printHelp()
		os.Exit(2)
	}
	if opts.help {
		printHelp()
		os.Exit(0)
	}

	path := opts.configPath
	if path == "" {
		path = defaultConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	app, err := apppkg.NewApplication(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing application: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = app.Close()
	}()

	app.Run()
}
