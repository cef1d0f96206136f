package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dtrack-tools/dtrack-report/pkg/logger"
	"github.com/dtrack-tools/dtrack-report/pkg/output"
)

// projectsCmd represents the projects subcommand
var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List all projects on the server",
	Long:  "List every project known to the Dependency-Track server as a (name, version, UUID) table.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		projects, err := client.Projects(cmd.Context())
		if err != nil {
			return err
		}
		if len(projects) == 0 {
			logger.Infof("No projects found.")
			return nil
		}
		output.WriteProjectList(os.Stdout, projects)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(projectsCmd)
}
