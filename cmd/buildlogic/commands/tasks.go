package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newTasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List the tasks of a project after its plugins are applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			projectDir, _ := cmd.Flags().GetString("project-dir")

			tasks, err := c.app.Tasks(cmd.Context(), projectDir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, t := range tasks {
				line := t.Name.String()
				if t.Description != "" {
					line += " - " + t.Description
				}
				_, _ = fmt.Fprintln(out, line)
			}
			return nil
		},
	}
	cmd.Flags().StringP("project-dir", "p", ".", "Project directory")
	return cmd
}
