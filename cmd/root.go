package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"findyourseat/config"
	"findyourseat/services"
	"findyourseat/utils"
)

// cli carries the state shared by every subcommand of one invocation.
type cli struct {
	cfg *config.Config
	app *App

	backendURL   string
	stateBackend string
	stateFile    string
	logLevel     string
}

func newRootCommand(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "findyourseat",
		Short:         "Browse movies, pick seats and book tickets",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.backendURL, "backend-url", "", "movie backend base URL (overrides BACKEND_URL)")
	flags.StringVar(&c.stateBackend, "state", "", "state backend: file, redis or memory (overrides STATE_BACKEND)")
	flags.StringVar(&c.stateFile, "state-file", "", "state file path (overrides STATE_FILE)")
	flags.StringVar(&c.logLevel, "log-level", "", "log level (overrides LOG_LEVEL)")

	root.AddCommand(
		c.signupCmd(),
		c.loginCmd(),
		c.adminLoginCmd(),
		c.logoutCmd(),
		c.whoamiCmd(),
		c.moviesCmd(),
		c.movieCmd(),
		c.seatsCmd(),
		c.bookCmd(),
		c.bookingCmd(),
		c.payCmd(),
		c.ticketCmd(),
		c.invoiceCmd(),
		c.serveCmd(),
	)
	return root
}

func (c *cli) init(cmd *cobra.Command) error {
	cfg := config.LoadConfig()
	if c.backendURL != "" {
		cfg.BackendURL = c.backendURL
	}
	if c.stateBackend != "" {
		cfg.StateBackend = c.stateBackend
	}
	if c.stateFile != "" {
		cfg.StateFile = c.stateFile
	}
	if c.logLevel != "" {
		cfg.LogLevel = c.logLevel
	}

	logger := utils.NewLoggerTo(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)

	app, err := newApp(cfg, logger)
	if err != nil {
		return err
	}
	c.cfg, c.app = cfg, app
	return nil
}

func (c *cli) close() {
	if c.app == nil {
		return
	}
	if err := c.app.Close(); err != nil {
		c.app.logger.Warn("close failed", "error", err)
	}
}

// run executes one command line against the given streams.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	c := &cli{}
	defer c.close()

	root := newRootCommand(c)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

// Execute runs the CLI against the process arguments. Errors are printed as
// the alert text a user would see.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	if err != nil {
		printError(os.Stderr, err)
	}
	return err
}

// printError shows the alert text a user would see, then the cause.
func printError(w io.Writer, err error) {
	color.New(color.FgRed, color.Bold).Fprintln(w, "Error:", services.UserMessage(err))
	color.New(color.Faint).Fprintln(w, " ", err)
}
