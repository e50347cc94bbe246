package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rohankatakam/gitclock/internal/config"
	"github.com/rohankatakam/gitclock/internal/errors"
	"github.com/rohankatakam/gitclock/internal/logging"
)

var (
	// Version information (set by build flags)
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// exitCodeError is the process exit code for any failed run
const exitCodeError = 2

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code
func run(args []string, stdout, stderr io.Writer) int {
	c := &cli{now: time.Now}
	rootCmd := newRootCmd(c)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		c.logErrorDetails(err)
		return exitCodeError
	}
	return 0
}

// logErrorDetails dumps kind, cause, context and stack of a typed error when
// debug logging is enabled
func (c *cli) logErrorDetails(err error) {
	if c.logger == nil || !c.logger.IsLevelEnabled(logrus.DebugLevel) {
		return
	}

	kind, ok := errors.GetType(err)
	if !ok {
		return
	}
	var typed *errors.Error
	if !stderrors.As(err, &typed) {
		return
	}

	logging.Component(c.logger, "cli").
		WithField("kind", kind.String()).
		Debug(strings.TrimRight(typed.DetailedString(), "\n"))
}

// cli carries state shared by every subcommand of one invocation
type cli struct {
	cfgFile   string
	verbosity string
	logFormat string

	cfg    *config.Config
	logger *logrus.Logger

	// clock for symbolic time bounds; replaced in tests
	now func() time.Time
}

// NewRootCmd builds the gitclock command tree
func NewRootCmd() *cobra.Command {
	return newRootCmd(&cli{now: time.Now})
}

func newRootCmd(c *cli) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gitclock",
		Short: "Estimate the hours each author worked on a git repository",
		Long: `gitclock reads the commit history of a repository and estimates how long each
author worked on it. Consecutive commits closer than the maximum commit gap form one
session; every new session is credited a fixed amount of time for the work before
its first commit.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default: .gitclock/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&c.verbosity, "verbosity", "", "log level: error, warn, info, debug, trace (default: info)")
	rootCmd.PersistentFlags().StringVar(&c.logFormat, "log-format", "", "log format: simple or context (default: simple)")

	rootCmd.SetVersionTemplate(`gitclock {{.Version}}
Build time: ` + BuildTime + `
Git commit: ` + GitCommit + `
`)

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(newStatsCmd(c))
	rootCmd.AddCommand(newReportsCmd(c))
	rootCmd.AddCommand(newCompletionsCmd())
	rootCmd.AddCommand(newConfigCmd(c))

	return rootCmd
}

// setup loads configuration and builds the logger; flags win over config
func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(c.cfgFile)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("verbosity") {
		cfg.Log.Level = c.verbosity
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format = c.logFormat
	}

	logger, err := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeConfig, "invalid logging configuration")
	}

	c.cfg = cfg
	c.logger = logger
	logging.Component(logger, "cli").WithField("command", cmd.Name()).Debug("Configuration loaded")
	return nil
}
