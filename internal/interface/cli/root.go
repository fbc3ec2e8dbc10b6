// Package cli implements the studentbase command line: an interactive driver
// plus non-interactive save and load commands over the configured store.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/alem-hub/studentbase/config"
	"github.com/alem-hub/studentbase/internal/domain/shared"
	"github.com/alem-hub/studentbase/internal/domain/student"
	"github.com/alem-hub/studentbase/internal/infrastructure/persistence/storefactory"
	"github.com/alem-hub/studentbase/pkg/logger"
	"github.com/alem-hub/studentbase/pkg/timeutil"
)

// Streams are the standard streams a command reads from and writes to.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StdStreams returns the process standard streams.
func StdStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// errReported marks an error that was already printed to the user.
var errReported = errors.New("already reported")

type globalFlags struct {
	configPath string
	location   string
	backend    string
	debug      bool
}

// app carries state shared by the subcommands of one invocation.
type app struct {
	streams Streams
	now     func() time.Time
	flags   globalFlags

	cfg *config.Config
	log *logger.Logger
}

// Execute runs the command line with the process arguments and exits.
func Execute() {
	os.Exit(Run(context.Background(), os.Args[1:], StdStreams(), time.Now))
}

// Run executes the command line and returns the process exit code.
func Run(ctx context.Context, args []string, streams Streams, now func() time.Time) int {
	a := &app{streams: streams, now: now}

	// cobra falls back to os.Args when args is nil
	if args == nil {
		args = []string{}
	}

	cmd := a.newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(streams.In)
	cmd.SetOut(streams.Out)
	cmd.SetErr(streams.Err)

	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			reportError(streams.Err, err)
		}
		return 1
	}
	return 0
}

func (a *app) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "studentbase",
		Short:             "Save and load a student record",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error { return a.setup() },
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runDemo(cmd.Context())
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.flags.configPath, "config", "", "optional YAML configuration file")
	pf.StringVar(&a.flags.location, "location", "", "record location (default from config, "+student.DefaultLocation+")")
	pf.StringVar(&a.flags.backend, "backend", "", "store backend: file, postgres or redis")
	pf.BoolVar(&a.flags.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(a.demoCmd(), a.saveCmd(), a.loadCmd(), a.deleteCmd(), a.checkCmd())
	return cmd
}

// setup loads configuration, applies flag overrides and builds the logger.
func (a *app) setup() error {
	cfg, err := config.Load(a.flags.configPath)
	if err != nil {
		return err
	}

	if a.flags.location != "" {
		cfg.Store.Location = a.flags.location
	}
	if a.flags.backend != "" {
		cfg.Store.Backend = config.Backend(strings.ToLower(a.flags.backend))
	}
	if a.flags.debug {
		cfg.Observability.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	a.cfg = cfg
	a.log = logger.New(logger.Options{
		Output:    a.streams.Err,
		Level:     logger.ParseLevel(cfg.Observability.LogLevel),
		Format:    logger.ParseFormat(cfg.Observability.LogFormat),
		AddCaller: a.flags.debug,
	}).WithRequestID(uuid.NewString())

	a.log.Debug("configuration loaded",
		logger.Backend(string(cfg.Store.Backend)),
		logger.Location(cfg.Store.Location),
		logger.String("env", string(cfg.App.Environment)),
		logger.Bool("config_file", a.flags.configPath != ""),
	)
	return nil
}

// withStore opens the configured store, runs fn and releases the store.
func (a *app) withStore(ctx context.Context, fn func(ctx context.Context, store student.Store) error) error {
	ctx = logger.WithContext(ctx, a.log)

	store, closeStore, err := storefactory.New(ctx, a.cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	return fn(ctx, store)
}

// currentYear is the calendar year in the configured timezone.
func (a *app) currentYear() int {
	return timeutil.CurrentYear(a.now(), a.cfg.App.Location)
}

func reportError(w io.Writer, err error) {
	if kind := shared.KindOf(err); kind != "unknown" {
		fmt.Fprintf(w, "error (%s): %v\n", kind, err)
		return
	}
	fmt.Fprintf(w, "error: %v\n", err)
}
