package commands

import (
	"fmt"
	"io"
	"os"

	"objvault/pkg/app"
	"objvault/pkg/shell"

	"github.com/spf13/cobra"
)

var shellCmd = &cobra.Command{
	Use:   "shell [script]",
	Short: "Run commands against a local in-memory store",
	Long: `Start a local store and execute one command per line, read from the given
script file or from stdin. The store lives only as long as the session.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := app.NewApp()
		if err != nil {
			return fmt.Errorf("failed to initialize objvault: %w", err)
		}

		var in io.Reader = cmd.InOrStdin()
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open script: %w", err)
			}
			defer f.Close()
			in = f
		}

		sh := shell.New(application.Store, cmd.OutOrStdout(), application.Logger)
		return sh.Run(cmd.Context(), in)
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}
