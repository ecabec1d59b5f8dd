package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/microconf/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("microconf", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
microconf - Compile a micro service description and resolve its settings.

Usage:
  microconf [options] [MICRO_FILE]

Arguments:
  MICRO_FILE
    Root micro file. Imports are resolved against the working directory and
    the directories listed in MICRO_PATH.

Options:
`)
		flagSet.PrintDefaults()
	}

	var settingsPaths, envFiles stringList
	microFlag := flagSet.String("micro", "", "Path to the root micro file.")
	flagSet.Var(&settingsPaths, "settings", "Settings file or directory (.hcl, .yaml, .yml, key=value text). Repeatable.")
	flagSet.Var(&envFiles, "env-file", "Dotenv file consulted for env bindings after the process environment. Repeatable.")
	workDirFlag := flagSet.String("workdir", "", "Directory relative micro paths and imports are resolved against. Defaults to the current directory.")
	configOnlyFlag := flagSet.Bool("config-only", false, "Print the populated configuration keys and exit.")
	cFlag := flagSet.Bool("c", false, "Print the populated configuration keys and exit (shorthand).")
	noResolveFlag := flagSet.Bool("no-resolve", false, "Skip URL parsing and host resolution.")
	watchFlag := flagSet.Bool("watch", false, "Recompile whenever the micro file, its imports or settings change.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := *microFlag
	if path == "" && flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unexpected arguments: %s", strings.Join(flagSet.Args()[1:], " "))}
	}
	slog.Debug("Micro path determined.", "path", path)

	if path == "" {
		slog.Debug("No micro path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	config, err := app.NewConfig(app.Config{
		MicroPath:     path,
		WorkDir:       *workDirFlag,
		SettingsPaths: settingsPaths,
		EnvFiles:      envFiles,
		ConfigOnly:    *configOnlyFlag || *cFlag,
		NoResolve:     *noResolveFlag,
		Watch:         *watchFlag,
		LogFormat:     *logFormatFlag,
		LogLevel:      *logLevelFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
