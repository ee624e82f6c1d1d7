package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.trai.ch/buildlogic/internal/core/domain"
	"go.trai.ch/buildlogic/internal/manifest"
)

func newManifestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Write the plugin classpath manifest for functional tests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			outDir, _ := cmd.Flags().GetString("out")
			mainEntries, _ := cmd.Flags().GetStringSlice("main")
			testEntries, _ := cmd.Flags().GetStringSlice("test")

			path := filepath.Join(outDir, domain.ClasspathManifestName)
			if err := manifest.Publish(path, mainEntries, testEntries); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().String("out", manifest.DefaultResourceDir, "Directory receiving "+domain.ClasspathManifestName)
	cmd.Flags().StringSlice("main", nil, "Main classpath entries")
	cmd.Flags().StringSlice("test", nil, "Test-only classpath entries")
	return cmd
}
