package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is set at build time with -ldflags "-X .../internal/cli.Version=...".
var Version = "dev"

// options holds the global flag values shared by all commands.
type options struct {
	verbose bool
	dir     string

	// logger is created by the root command before any subcommand runs.
	logger *zap.Logger
}

// NewRootCmd returns the `typed` command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	o := &options{}

	root := &cobra.Command{
		Use:   "typed",
		Short: "Parse, format and convert attribute type-strings",
		Long: `Typed works with type-strings like "(node:s, control:n[3][2])[]": compact
descriptions of the values a flow attribute can hold.

Commands that take a type read it from standard input when the argument is
omitted.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(o.verbose)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}

			o.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			// Syncing stderr fails on some platforms, nothing to do about it.
			_ = o.logger.Sync()
		},
	}

	root.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "log debug output in a human readable format")
	root.PersistentFlags().StringVar(&o.dir, "dir", "", "project directory holding typed.yaml (default: current directory)")

	root.AddCommand(newFmtCmd(o))
	root.AddCommand(newDefaultCmd(o))
	root.AddCommand(newSchemaCmd(o))
	root.AddCommand(newFromSchemaCmd(o))
	root.AddCommand(newSizeCmd(o))
	root.AddCommand(newCheckCmd(o))
	root.AddCommand(newGetCmd(o))
	root.AddCommand(newGenerateCmd(o))
	root.AddCommand(newVersionCmd())

	return root
}

// Execute runs the root command and exits with a non-zero status on error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "typed:", err)
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)

	return cfg.Build()
}

// readTypeArg returns the type-string of the first argument, or standard
// input when there are no arguments.
func readTypeArg(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read type from stdin: %w", err)
	}

	raw := strings.TrimSpace(string(data))
	if len(raw) == 0 {
		return "", fmt.Errorf("no type given")
	}

	return raw, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "typed", Version)
		},
	}
}
