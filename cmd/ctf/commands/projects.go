package commands

import (
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/teamforge-io/ctf/pkg/ctf"
)

// NewProjectsCommand creates the projects command group.
func NewProjectsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project"},
		Short:   "Manage projects",
	}

	cmd.AddCommand(newProjectsListCommand())
	cmd.AddCommand(newProjectsGetCommand())
	cmd.AddCommand(newProjectsCreateCommand())

	return cmd
}

func newProjectsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			projects, err := client.Projects().List(cmd.Context(), &ctf.QueryParams{Count: ctf.FetchAll})
			if err != nil {
				return err
			}

			if done, err := renderStructured(projects.Items()); done {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Title", "ID", "Status", "Category")

			for _, project := range projects.Items() {
				_ = table.Append(project.Title, project.ID,
					orNA(project.Status), orNA(project.Category))
			}

			_ = table.Render()

			return nil
		},
	}
}

func newProjectsGetCommand() *cobra.Command {
	var byTitle bool

	cmd := &cobra.Command{
		Use:   "get PROJECT_ID",
		Short: "Show a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			var project *ctf.Project
			if byTitle {
				project, err = client.Projects().GetByTitle(cmd.Context(), args[0])
			} else {
				project, err = client.Projects().Get(cmd.Context(), args[0])
			}

			if err != nil {
				return err
			}

			if done, err := renderStructured(project); done {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Property", "Value")
			_ = table.Append("Title", project.Title)
			_ = table.Append("ID", project.ID)
			_ = table.Append("Status", orNA(project.Status))
			_ = table.Append("Category", orNA(project.Category))
			_ = table.Append("Description", orNA(project.Description))
			_ = table.Render()

			return nil
		},
	}

	cmd.Flags().BoolVar(&byTitle, "by-title", false, "look the project up by title instead of id")

	return cmd
}

func newProjectsCreateCommand() *cobra.Command {
	var (
		description string
		category    string
	)

	cmd := &cobra.Command{
		Use:   "create TITLE",
		Short: "Create a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			project, err := client.Projects().Create(cmd.Context(), &ctf.ProjectCreateRequest{
				Title:       args[0],
				Description: description,
				Category:    category,
			})
			if err != nil {
				return err
			}

			cmd.Printf("Created project '%s' (%s)\n", project.Title, project.ID)

			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "project description")
	cmd.Flags().StringVar(&category, "category", "", "project category")

	return cmd
}
