package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newPluginsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plugins",
		Short: "List the plugin ids resolvable from a classpath",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			classpath, _ := cmd.Flags().GetStringSlice("classpath")

			ids, err := c.app.Plugins(cmd.Context(), classpath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, id := range ids {
				_, _ = fmt.Fprintln(out, id)
			}
			return nil
		},
	}
	cmd.Flags().StringSlice("classpath", nil, "Classpath entries providing plugin descriptors")
	return cmd
}
