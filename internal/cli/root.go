// Package cli provides the csv2json command line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"csv2json/internal/config"
	"csv2json/internal/diagnostic"
	"csv2json/internal/logging"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// env is what every command shares after the root command loaded the
// configuration.
type env struct {
	cfgFile string
	cfg     *config.Config
	logger  *slog.Logger
	// diagnostics of the whole run, shared by parallel conversions
	ring *diagnostic.Ring
}

func (e *env) sink() diagnostic.Sink {
	return diagnostic.Tee(e.ring, diagnostic.LogSink{Logger: e.logger})
}

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	e := &env{}

	rootCmd := &cobra.Command{
		Use:   "csv2json",
		Short: "Convert CSV and Excel files into nested JSON",
		Long: `csv2json converts delimited text and Excel workbooks into JSON documents.

Columns are typed from a schema file, dotted column names become nested
objects and parallel lists become lists of objects. The automap command
proposes a mapping from schema fields to input columns.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(e.cfgFile, cmd.Flags())
			if err != nil {
				return err
			}

			logger, err := logging.New(logging.Options{
				Level:  cfg.LogLevel,
				Format: cfg.LogFormat,
				Output: cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}

			if cfg.File != "" {
				logger.Debug("using config file", slog.String("path", cfg.File))
			}

			e.cfg = cfg
			e.logger = logger
			e.ring = diagnostic.NewRing(diagnostic.DefaultRingSize)

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&e.cfgFile, "config", "", "config file (default: ./csv2json.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().String("log-format", "", "log format (text|json)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output (info logging)")
	rootCmd.PersistentFlags().Bool("debug", false, "debug logging, includes a dump of the loaded schema")
	rootCmd.PersistentFlags().StringSlice("schema-dirs", nil, "directories searched for schema files")

	_ = rootCmd.RegisterFlagCompletionFunc("log-format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConvertCmd(e))
	rootCmd.AddCommand(newAutomapCmd(e))
	rootCmd.AddCommand(newSchemasCmd(e))

	return rootCmd
}

// Execute runs the root command with args and returns the process exit
// code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

// summarize prints the warning count of the run.
func (e *env) summarize(w io.Writer) {
	if e.ring == nil {
		return
	}

	warnings := e.ring.Count(diagnostic.DiagnosticWarning)
	if warnings == 0 {
		return
	}

	_, _ = fmt.Fprintf(w, "%d warning(s)", warnings)
	if dropped := e.ring.Dropped(); dropped > 0 {
		_, _ = fmt.Fprintf(w, ", %d diagnostic(s) not kept", dropped)
	}

	_, _ = fmt.Fprintln(w)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "csv2json v%s\n", Version)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "commit %s, built %s\n", GitCommit, BuildDate)
		},
	}
}
