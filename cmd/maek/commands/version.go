package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"maek/internal/driver"
)

func (c *CLI) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the engine version and the resolved JOBS value",
		RunE: func(cmd *cobra.Command, _ []string) error {
			jobs, err := c.app.ResolvedJobs()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "maek %s, JOBS=%d\n", driver.Version, jobs)
			return nil
		},
	}
}
