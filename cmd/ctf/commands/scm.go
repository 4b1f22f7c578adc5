package commands

import (
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewScmCommand creates the scm command group.
func NewScmCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scm",
		Short: "Inspect source repositories",
	}

	cmd.AddCommand(newScmListCommand())
	cmd.AddCommand(newScmGetCommand())

	return cmd
}

func newScmListCommand() *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's repositories",
		RunE: func(cmd *cobra.Command, args []string) error {
			if projectID == "" {
				return ErrProjectRequired
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			repositories, err := client.Scm().ListForProject(cmd.Context(), projectID)
			if err != nil {
				return err
			}

			if done, err := renderStructured(repositories.Items()); done {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Title", "ID", "Description")

			for _, repository := range repositories.Items() {
				_ = table.Append(repository.Title, repository.ID, orNA(repository.Description))
			}

			_ = table.Render()

			return nil
		},
	}

	cmd.Flags().StringVarP(&projectID, "project", "P", "", "project id")

	return cmd
}

func newScmGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get REPOSITORY_ID",
		Short: "Show a repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			repository, err := client.Scm().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if done, err := renderStructured(repository); done {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Property", "Value")
			_ = table.Append("Title", repository.Title)
			_ = table.Append("ID", repository.ID)
			_ = table.Append("Project", orNA(repository.ProjectID))
			_ = table.Append("System", orNA(repository.SystemID))
			_ = table.Append("Adapter", orNA(repository.AdapterName))
			_ = table.Append("Viewer URL", orNA(repository.ViewerURL))
			_ = table.Append("ID Required On Commit", strconv.FormatBool(bool(repository.IDRequiredOnCommit)))
			_ = table.Append("Managed Server", strconv.FormatBool(bool(repository.OnManagedServer)))
			_ = table.Render()

			return nil
		},
	}
}
