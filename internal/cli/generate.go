package cli

import (
	"fmt"
	"os"

	"github.com/popingalex/flowgram.ai-sub002/internal/cmd"
	"github.com/spf13/cobra"
)

func newGenerateCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Check the project types and generate Go code for them",
		Long: `Generate reads typed.yaml from the project directory, checks the declared
types against the tables of the migrations and writes a Go declaration for
every type.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			dir := o.dir
			if len(dir) == 0 {
				wd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("failed to determine working directory: %w", err)
				}

				dir = wd
			}

			return cmd.Run(cmd.Settings{
				WorkingDir: dir,
				Logger:     o.logger,
			})
		},
	}
}
