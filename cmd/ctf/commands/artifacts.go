package commands

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/teamforge-io/ctf/pkg/ctf"
)

// NewArtifactsCommand creates the artifacts command group.
func NewArtifactsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "artifacts",
		Aliases: []string{"artifact"},
		Short:   "Manage tracker artifacts",
	}

	cmd.AddCommand(newArtifactsListCommand())
	cmd.AddCommand(newArtifactsGetCommand())
	cmd.AddCommand(newArtifactsFindCommand())
	cmd.AddCommand(newArtifactsCreateCommand())
	cmd.AddCommand(newArtifactsUpdateCommand())

	return cmd
}

func artifactListTable(artifacts *ctf.TitledCollection[ctf.Artifact]) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Title", "Status", "Priority", "Assigned To")

	for _, artifact := range artifacts.Items() {
		_ = table.Append(artifact.ID, artifact.Title, orNA(artifact.Status),
			strconv.Itoa(int(artifact.Priority)), orNA(artifact.AssignedTo))
	}

	_ = table.Render()
}

func newArtifactsListCommand() *cobra.Command {
	var trackerID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a tracker's artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if trackerID == "" {
				return ErrTrackerRequired
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			artifacts, err := client.Artifacts().List(cmd.Context(), trackerID,
				&ctf.QueryParams{Count: ctf.FetchAll})
			if err != nil {
				return err
			}

			if done, err := renderStructured(artifacts.Items()); done {
				return err
			}

			artifactListTable(artifacts)

			return nil
		},
	}

	cmd.Flags().StringVarP(&trackerID, "tracker", "T", "", "tracker id")

	return cmd
}

func newArtifactsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ARTIFACT_ID",
		Short: "Show an artifact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			artifact, err := client.Artifacts().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if done, err := renderStructured(artifact); done {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Property", "Value")
			_ = table.Append("Title", artifact.Title)
			_ = table.Append("ID", artifact.ID)
			_ = table.Append("Tracker", orNA(artifact.TrackerID))
			_ = table.Append("Status", orNA(artifact.Status))
			_ = table.Append("Status Class", orNA(artifact.StatusClass))
			_ = table.Append("Priority", strconv.Itoa(int(artifact.Priority)))
			_ = table.Append("Assigned To", orNA(artifact.AssignedTo))
			_ = table.Append("Estimated Effort", strconv.Itoa(int(artifact.EstimatedEffort)))
			_ = table.Append("Remaining Effort", strconv.Itoa(int(artifact.RemainingEffort)))
			_ = table.Append("Actual Effort", strconv.Itoa(int(artifact.ActualEffort)))
			_ = table.Append("Description", orNA(artifact.Description))
			_ = table.Render()

			return nil
		},
	}
}

func newArtifactsFindCommand() *cobra.Command {
	var trackerID string

	cmd := &cobra.Command{
		Use:   "find TITLE",
		Short: "Find artifacts by exact title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if trackerID == "" {
				return ErrTrackerRequired
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			artifacts, err := client.Artifacts().FindByTitle(cmd.Context(), trackerID, args[0])
			if err != nil {
				return err
			}

			if done, err := renderStructured(artifacts.Items()); done {
				return err
			}

			artifactListTable(artifacts)

			return nil
		},
	}

	cmd.Flags().StringVarP(&trackerID, "tracker", "T", "", "tracker id")

	return cmd
}

func newArtifactsCreateCommand() *cobra.Command {
	var (
		trackerID   string
		description string
		status      string
		assignedTo  string
		priority    int
		effort      int
		attachment  string
	)

	cmd := &cobra.Command{
		Use:   "create TITLE",
		Short: "Create an artifact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if trackerID == "" {
				return ErrTrackerRequired
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			request := &ctf.ArtifactCreateRequest{
				Title:           args[0],
				Description:     description,
				Status:          status,
				Priority:        priority,
				AssignedTo:      assignedTo,
				EstimatedEffort: effort,
			}

			if attachment != "" {
				stored, err := client.Files().UploadPath(cmd.Context(), attachment)
				if err != nil {
					return err
				}

				request.FileID = stored.GUID
				request.FileName = filepath.Base(attachment)
			}

			artifact, err := client.Artifacts().Create(cmd.Context(), trackerID, request)
			if err != nil {
				return err
			}

			cmd.Printf("Created artifact '%s' (%s)\n", artifact.Title, artifact.ID)

			return nil
		},
	}

	cmd.Flags().StringVarP(&trackerID, "tracker", "T", "", "tracker id")
	cmd.Flags().StringVarP(&description, "description", "d", "", "artifact description")
	cmd.Flags().StringVar(&status, "status", "", "initial status")
	cmd.Flags().StringVar(&assignedTo, "assigned-to", "", "assignee username")
	cmd.Flags().IntVar(&priority, "priority", 0, "priority (1-5)")
	cmd.Flags().IntVar(&effort, "estimated-effort", 0, "estimated effort")
	cmd.Flags().StringVar(&attachment, "attach", "", "local file to attach")

	return cmd
}

func newArtifactsUpdateCommand() *cobra.Command {
	var (
		title      string
		status     string
		assignedTo string
		priority   int
		remaining  int
		actual     int
		comment    string
	)

	cmd := &cobra.Command{
		Use:   "update ARTIFACT_ID",
		Short: "Update an artifact",
		Long: `Update fields of an existing artifact.

The artifact is fetched in full first, so the update patches the latest
server state instead of a stale summary.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			request := &ctf.ArtifactUpdateRequest{
				Title:           title,
				Status:          status,
				AssignedTo:      assignedTo,
				Priority:        priority,
				RemainingEffort: remaining,
				ActualEffort:    actual,
				Comment:         comment,
			}

			if *request == (ctf.ArtifactUpdateRequest{}) {
				return ErrNothingToUpdate
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			artifact, err := client.Artifacts().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			updated, err := client.Artifacts().Update(cmd.Context(), artifact, request)
			if err != nil {
				return err
			}

			cmd.Printf("Updated artifact '%s' (%s)\n", updated.Title, updated.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&status, "status", "", "new status")
	cmd.Flags().StringVar(&assignedTo, "assigned-to", "", "new assignee username")
	cmd.Flags().IntVar(&priority, "priority", 0, "new priority")
	cmd.Flags().IntVar(&remaining, "remaining-effort", 0, "remaining effort")
	cmd.Flags().IntVar(&actual, "actual-effort", 0, "actual effort")
	cmd.Flags().StringVar(&comment, "comment", "", "comment to add with the update")

	return cmd
}
