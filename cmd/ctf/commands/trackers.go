package commands

import (
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/teamforge-io/ctf/pkg/ctf"
)

// NewTrackersCommand creates the trackers command group.
func NewTrackersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "trackers",
		Aliases: []string{"tracker"},
		Short:   "Manage issue trackers",
	}

	cmd.AddCommand(newTrackersListCommand())
	cmd.AddCommand(newTrackersGetCommand())
	cmd.AddCommand(newTrackersCreateCommand())

	return cmd
}

func newTrackersListCommand() *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's trackers",
		RunE: func(cmd *cobra.Command, args []string) error {
			if projectID == "" {
				return ErrProjectRequired
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			trackers, err := client.Trackers().ListForProject(cmd.Context(), projectID)
			if err != nil {
				return err
			}

			if done, err := renderStructured(trackers.Items()); done {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Title", "ID", "Unit", "Description")

			for _, tracker := range trackers.Items() {
				_ = table.Append(tracker.Title, tracker.ID,
					orNA(tracker.Unit), orNA(tracker.Description))
			}

			_ = table.Render()

			return nil
		},
	}

	cmd.Flags().StringVarP(&projectID, "project", "P", "", "project id")

	return cmd
}

func newTrackersGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get TRACKER_ID",
		Short: "Show a tracker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			tracker, err := client.Trackers().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if done, err := renderStructured(tracker); done {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Property", "Value")
			_ = table.Append("Title", tracker.Title)
			_ = table.Append("ID", tracker.ID)
			_ = table.Append("Project", orNA(tracker.ProjectID))
			_ = table.Append("Unit", orNA(tracker.Unit))
			_ = table.Append("Description", orNA(tracker.Description))
			_ = table.Render()

			return nil
		},
	}
}

func newTrackersCreateCommand() *cobra.Command {
	var (
		projectID   string
		description string
		unit        string
		icon        string
	)

	cmd := &cobra.Command{
		Use:   "create TITLE",
		Short: "Create a tracker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if projectID == "" {
				return ErrProjectRequired
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			tracker, err := client.Trackers().Create(cmd.Context(), projectID, &ctf.TrackerCreateRequest{
				Title:       args[0],
				Description: description,
				Unit:        unit,
				IconName:    icon,
			})
			if err != nil {
				return err
			}

			cmd.Printf("Created tracker '%s' (%s)\n", tracker.Title, tracker.ID)

			return nil
		},
	}

	cmd.Flags().StringVarP(&projectID, "project", "P", "", "project id")
	cmd.Flags().StringVarP(&description, "description", "d", "", "tracker description")
	cmd.Flags().StringVar(&unit, "unit", "", "effort unit")
	cmd.Flags().StringVar(&icon, "icon", "", "tracker icon name")

	return cmd
}
