// Package commands implements the CLI commands for the maek build tool.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
)

// Application is the application logic the CLI commands call into.
type Application interface {
	Run(ctx context.Context, targetNames []string) error
	ResolvedJobs() (int, error)
}

// CLI represents the command line interface for maek.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// New creates a CLI instance wired to the given app. The root command's
// RunE is the default "maek [target...]" behavior (spec.md §10): with no
// subcommand, the named targets (or the configured default target) are
// built directly.
func New(a Application) *CLI {
	c := &CLI{app: a}

	rootCmd := &cobra.Command{
		Use:           "maek [targets...]",
		Short:         "A small, hackable, content-addressed parallel build engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Run(cmd.Context(), args)
		},
	}
	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c.rootCmd = rootCmd
	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used
// for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
