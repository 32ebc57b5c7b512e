package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/popingalex/flowgram.ai-sub002/internal/ref"
	"github.com/popingalex/flowgram.ai-sub002/pkg/typed"
	"github.com/popingalex/flowgram.ai-sub002/pkg/typed/schema"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newSchemaCmd(o *options) *cobra.Command {
	var (
		asYaml      bool
		defaults    bool
		description string
	)

	cmd := &cobra.Command{
		Use:   "schema [type]",
		Short: "Print the JSON schema descriptor of a type",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readTypeArg(cmd, args)
			if err != nil {
				return err
			}

			opts := make([]schema.Option, 0)
			if defaults {
				opts = append(opts, schema.WithDefaults())
			}
			if len(description) > 0 {
				opts = append(opts, schema.WithDescription(description))
			}

			d := schema.ToSchema(typed.Parse(raw), opts...)

			var data []byte
			if asYaml {
				data, err = d.YAML()
			} else {
				data, err = d.JSON()
				data = append(data, '\n')
			}
			if err != nil {
				return fmt.Errorf("failed to marshal schema: %w", err)
			}

			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().BoolVar(&asYaml, "yaml", false, "print YAML instead of JSON")
	cmd.Flags().BoolVar(&defaults, "defaults", false, "include default values")
	cmd.Flags().StringVar(&description, "description", "", "description of the root schema")
	return cmd
}

func newFromSchemaCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "from-schema [file]",
		Short: "Print the type described by a JSON or YAML schema",
		Long: `From-schema reads a schema descriptor from a file, or from standard input
when no file is given, and prints the type it describes. Object attributes are
ordered by name.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)

			if len(args) > 0 {
				data, err = os.ReadFile(args[0])
			} else {
				data, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return fmt.Errorf("failed to read schema: %w", err)
			}

			d, err := schema.Decode(data)
			if err != nil {
				return err
			}

			o.logger.Debug("decoded schema", zap.String("type", string(d.Type)))
			fmt.Fprintln(cmd.OutOrStdout(), typed.Format(schema.FromSchema(d)))
			return nil
		},
	}
}

func newGetCmd(o *options) *cobra.Command {
	var goSelector bool

	cmd := &cobra.Command{
		Use:   "get <type> <path>",
		Short: "Print the type of an attribute",
		Long: `Get resolves a dotted attribute path against a type and prints the type it
points to. Arrays are stepped through.

Example:
  typed get "(nodes:(id:s, pos:n[2])[])" nodes.pos`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ref.Lookup(typed.Parse(args[0]), args[1])
			if err != nil {
				return err
			}

			if goSelector {
				fmt.Fprintln(cmd.OutOrStdout(), ref.ToGo(*p))
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), typed.Format(p.Type))
			return nil
		},
	}

	cmd.Flags().BoolVar(&goSelector, "go", false, "print the selector of the generated Go field instead")
	return cmd
}
