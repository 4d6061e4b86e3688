// Command envcheck checks the process environment, optionally extended with
// .env files, against a YAML rules file.
//
// Exit codes: 0 when every variable is valid, 1 when at least one is invalid,
// 2 when the rules, env files or settings cannot be loaded, 7 when a rule
// misuses a validator (for example a pattern that does not compile).
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/dmitrymomot/hope/pkg/config"
	"github.com/dmitrymomot/hope/pkg/envcheck"
	"github.com/dmitrymomot/hope/pkg/logger"
	"github.com/dmitrymomot/hope/pkg/validate"
)

const (
	exitOK         = 0
	exitInvalid    = 1
	exitUnreadable = 2
	exitMisuse     = 7
)

type cli struct {
	Rules    string   `short:"r" help:"Rules file." default:"env.rules.yaml" type:"path"`
	EnvFiles []string `name:"env-file" short:"e" help:"Load variables from these .env files first; later files win."`
	Quiet    bool     `short:"q" help:"Only print failing variables."`
}

// settings tune the tool itself and are read from the environment after the
// .env files are loaded.
type settings struct {
	LogFormat string `env:"ENVCHECK_LOG_FORMAT" envDefault:"text"`
	LogLevel  string `env:"ENVCHECK_LOG_LEVEL" envDefault:"warn"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var c cli
	parser, err := kong.New(&c,
		kong.Name("envcheck"),
		kong.Description("Check environment variables against a rules file."),
		kong.Writers(stdout, stderr),
	)
	if err != nil {
		fmt.Fprintf(stderr, "envcheck: %v\n", err)
		return exitUnreadable
	}
	if _, err := parser.Parse(args); err != nil {
		fmt.Fprintf(stderr, "envcheck: %v\n", err)
		return exitUnreadable
	}

	if len(c.EnvFiles) > 0 {
		if err := config.LoadEnv(c.EnvFiles...); err != nil {
			fmt.Fprintf(stderr, "envcheck: %v\n", err)
			return exitUnreadable
		}
	}

	log, err := newLogger(stderr)
	if err != nil {
		fmt.Fprintf(stderr, "envcheck: %v\n", err)
		return exitUnreadable
	}

	logger.SetAsDefault(log)

	rules, err := envcheck.LoadRules(c.Rules)
	if err != nil {
		log.Error("cannot load rules", logger.Path(c.Rules), logger.Error(err))
		return exitUnreadable
	}

	report := envcheck.Check(rules, os.LookupEnv, envcheck.WithLogger(log))
	printReport(stdout, report, c.Quiet)

	failed := report.Failed()
	log.Info("environment checked",
		logger.Path(c.Rules),
		logger.Group("report",
			logger.Count(len(report.Results)),
			slog.Int("failed", len(failed)),
		),
	)

	switch {
	case report.Misconfigured():
		log.Error("rules file misuses a validator",
			logger.Path(c.Rules),
			logger.Errors(misuses(failed)...),
		)
		return exitMisuse
	case len(failed) > 0:
		return exitInvalid
	default:
		return exitOK
	}
}

// misuses returns the configuration errors among failed results.
func misuses(failed []envcheck.Result) []error {
	var errs []error
	for _, res := range failed {
		if validate.IsConfigurationError(res.Err) {
			errs = append(errs, res.Err)
		}
	}
	return errs
}

func newLogger(stderr io.Writer) (*slog.Logger, error) {
	var s settings
	if err := config.ForceReloadConfig(&s); err != nil {
		return nil, err
	}

	format, err := validate.Doubt(s.LogFormat).
		Named("ENVCHECK_LOG_FORMAT").
		MatchesAny(string(logger.FormatText), string(logger.FormatJSON)).
		Result()
	if err != nil {
		return nil, err
	}
	level, err := logger.ParseLevel(s.LogLevel)
	if err != nil {
		return nil, err
	}

	return logger.New(
		logger.WithCLI("envcheck"),
		logger.WithOutput(stderr),
		logger.WithFormat(logger.Format(format)),
		logger.WithLevel(level),
	), nil
}

func printReport(w io.Writer, report *envcheck.Report, quiet bool) {
	for _, res := range report.Results {
		switch {
		case !res.OK():
			fmt.Fprintf(w, "FAIL  %s: %v\n", res.Name, res.Err)
		case quiet:
		case !res.Set:
			fmt.Fprintf(w, "ok    %s (unset)\n", res.Name)
		default:
			fmt.Fprintf(w, "ok    %s=%s\n", res.Name, res.Value)
		}
	}
}
