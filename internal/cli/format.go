package cli

import (
	"encoding/json"
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/popingalex/flowgram.ai-sub002/pkg/typed"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newFmtCmd(o *options) *cobra.Command {
	var diff bool

	cmd := &cobra.Command{
		Use:   "fmt [type]",
		Short: "Print a type in canonical form",
		Long: `Fmt parses a type and prints it back with one letter primitives and
", " between attributes.

Example:
  typed fmt "(x:number,y:bool)[2]"
  typed fmt --diff "(x:number, y:n)"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readTypeArg(cmd, args)
			if err != nil {
				return err
			}

			formatted := typed.Format(typed.Parse(raw))

			if !diff {
				fmt.Fprintln(cmd.OutOrStdout(), formatted)
				return nil
			}

			if raw == formatted {
				return nil
			}

			text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
				A:        difflib.SplitLines(raw + "\n"),
				B:        difflib.SplitLines(formatted + "\n"),
				FromFile: "input",
				ToFile:   "formatted",
				Context:  1,
			})
			if err != nil {
				return fmt.Errorf("failed to diff: %w", err)
			}

			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&diff, "diff", "d", false, "print a diff against the input instead of the formatted type")
	return cmd
}

func newDefaultCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "default [type]",
		Short: "Print the default value of a type as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readTypeArg(cmd, args)
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(typed.DefaultValue(typed.Parse(raw)), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal default value: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func newSizeCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "size [type]",
		Short: "Print the number of scalar slots of a type",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readTypeArg(cmd, args)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), typed.ElementCount(typed.Parse(raw)))
			return nil
		},
	}
}

func newCheckCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check [type]",
		Short: "Report problems the lenient parser skips over",
		Long: `Check parses a type in strict mode and prints every problem found, such
as unknown primitives or fields without a type. It fails if there are any.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readTypeArg(cmd, args)
			if err != nil {
				return err
			}

			t, err := typed.ParseStrict(raw)
			if err != nil {
				errs := typed.Errors(err)

				for _, e := range errs {
					fmt.Fprintln(cmd.OutOrStdout(), e)
				}

				return fmt.Errorf("found %d problems", len(errs))
			}

			o.logger.Debug("type is valid", zap.String("type", typed.Format(t)))
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}
