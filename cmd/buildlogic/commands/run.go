package commands

import (
	"runtime"

	"github.com/spf13/cobra"
	"go.trai.ch/buildlogic/internal/app"
	"go.trai.ch/buildlogic/internal/core/domain"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [tasks...]",
		Short: "Run the specified tasks and their dependencies",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}
			projectDir, _ := cmd.Flags().GetString("project-dir")
			home, _ := cmd.Flags().GetString("home")
			reportFile, _ := cmd.Flags().GetString("report-file")
			exclude, _ := cmd.Flags().GetStringArray("exclude-task")
			noCache, _ := cmd.Flags().GetBool("no-cache")
			parallel, _ := cmd.Flags().GetInt("parallel")

			return c.app.Run(cmd.Context(), args, app.RunOptions{
				ProjectDir:  projectDir,
				Home:        home,
				Exclude:     exclude,
				NoCache:     noCache,
				ReportFile:  reportFile,
				Parallelism: parallel,
				Stdout:      cmd.OutOrStdout(),
			})
		},
	}
	cmd.Flags().StringP("project-dir", "p", ".", "Directory containing "+domain.SettingsFileName)
	cmd.Flags().String("home", domain.DefaultHome(), "Directory for state shared between builds (env "+domain.HomeEnvVar+")")
	cmd.Flags().String("report-file", "", "Write a YAML build report to this file")
	cmd.Flags().StringArrayP("exclude-task", "x", nil, "Skip the given task (repeatable)")
	cmd.Flags().BoolP("no-cache", "n", false, "Ignore up-to-date checks and the build cache")
	cmd.Flags().Int("parallel", runtime.NumCPU(), "Maximum number of tasks to run at once")
	return cmd
}
