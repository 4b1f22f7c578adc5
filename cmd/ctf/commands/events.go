package commands

import (
	"github.com/spf13/cobra"

	"github.com/teamforge-io/ctf/pkg/events"
)

// NewEventsCommand creates the events command group.
func NewEventsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Publish build notifications",
	}

	cmd.AddCommand(newEventsPublishCommand())

	return cmd
}

func newEventsPublishCommand() *cobra.Command {
	var (
		natsURL     string
		subject     string
		projectID   string
		buildNumber int
		status      string
		buildURL    string
		artifacts   []string
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish a build notification to NATS",
		RunE: func(cmd *cobra.Command, args []string) error {
			if projectID == "" {
				return ErrProjectRequired
			}
			if status == "" {
				return ErrStatusRequired
			}
			if subject == "" {
				return ErrSubjectRequired
			}

			conn, err := events.Connect(natsURL)
			if err != nil {
				return err
			}
			defer conn.Close()

			publisher, err := events.NewPublisher(conn, subject)
			if err != nil {
				return err
			}

			err = publisher.Publish(&events.Event{
				Project:     projectID,
				BuildNumber: buildNumber,
				Status:      status,
				URL:         buildURL,
				Artifacts:   artifacts,
			})
			if err != nil {
				return err
			}

			cmd.Printf("Published build %d for project '%s' to %s\n", buildNumber, projectID, subject)

			return nil
		},
	}

	cmd.Flags().StringVar(&natsURL, "nats-url", "nats://127.0.0.1:4222", "NATS server URL")
	cmd.Flags().StringVar(&subject, "subject", "teamforge.builds", "NATS subject to publish on")
	cmd.Flags().StringVarP(&projectID, "project", "P", "", "project id")
	cmd.Flags().IntVar(&buildNumber, "build", 0, "build number")
	cmd.Flags().StringVar(&status, "status", "", "build status")
	cmd.Flags().StringVar(&buildURL, "url", "", "build URL")
	cmd.Flags().StringSliceVar(&artifacts, "artifact", nil, "artifact id (repeatable)")

	return cmd
}
