package commands

import (
	"mime"
	"os"
	"path/filepath"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/teamforge-io/ctf/pkg/ctf"
)

// NewDocumentsCommand creates the documents command group.
func NewDocumentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "documents",
		Aliases: []string{"docs"},
		Short:   "Manage document folders and documents",
	}

	cmd.AddCommand(newDocumentsFoldersCommand())
	cmd.AddCommand(newDocumentsListCommand())
	cmd.AddCommand(newDocumentsUploadCommand())

	return cmd
}

func newDocumentsFoldersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folders",
		Short: "Manage document folders",
	}

	cmd.AddCommand(newFoldersResolveCommand())
	cmd.AddCommand(newFoldersVerifyCommand())

	return cmd
}

func newFoldersResolveCommand() *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "resolve PATH",
		Short: "Resolve a folder path, creating missing segments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if projectID == "" {
				return ErrProjectRequired
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			folder, err := client.Documents().GetOrCreatePath(cmd.Context(), projectID, args[0])
			if err != nil {
				return err
			}

			cmd.Printf("Folder '%s' (%s)\n", folder.Title, folder.ID)

			return nil
		},
	}

	cmd.Flags().StringVarP(&projectID, "project", "P", "", "project id")

	return cmd
}

func newFoldersVerifyCommand() *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "verify PATH",
		Short: "Verify a folder path exists without creating anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if projectID == "" {
				return ErrProjectRequired
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			folder, err := client.Documents().VerifyPath(cmd.Context(), projectID, args[0])
			if err != nil {
				return err
			}

			cmd.Printf("Folder '%s' (%s)\n", folder.Title, folder.ID)

			return nil
		},
	}

	cmd.Flags().StringVarP(&projectID, "project", "P", "", "project id")

	return cmd
}

func newDocumentsListCommand() *cobra.Command {
	var (
		projectID  string
		folderID   string
		folderPath string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List documents in a folder",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			if folderID == "" {
				if folderPath == "" || projectID == "" {
					return ErrFolderRequired
				}

				folder, err := client.Documents().VerifyPath(cmd.Context(), projectID, folderPath)
				if err != nil {
					return err
				}

				folderID = folder.ID
			}

			documents, err := client.Documents().ListDocuments(cmd.Context(), folderID)
			if err != nil {
				return err
			}

			if done, err := renderStructured(documents.Items()); done {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Title", "ID", "File Name", "Version", "Size")

			for _, document := range documents.Items() {
				_ = table.Append(document.Title, document.ID, orNA(document.FileName),
					strconv.Itoa(int(document.CurrentVersion)), strconv.Itoa(int(document.Size)))
			}

			_ = table.Render()

			return nil
		},
	}

	cmd.Flags().StringVarP(&projectID, "project", "P", "", "project id (with --path)")
	cmd.Flags().StringVar(&folderID, "folder", "", "folder id")
	cmd.Flags().StringVar(&folderPath, "path", "", "slash-separated folder path from the project root")

	return cmd
}

func newDocumentsUploadCommand() *cobra.Command {
	var (
		projectID   string
		folderPath  string
		title       string
		description string
	)

	cmd := &cobra.Command{
		Use:   "upload LOCAL_FILE",
		Short: "Upload a local file as a document",
		Long: `Upload a local file into a document folder.

The folder path is resolved from the project root; missing folders are
created on the way. When a document with the same title already exists
in the folder, the upload becomes its next version.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if projectID == "" {
				return ErrProjectRequired
			}
			if folderPath == "" {
				return ErrFolderRequired
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			folder, err := client.Documents().GetOrCreatePath(cmd.Context(), projectID, folderPath)
			if err != nil {
				return err
			}

			stored, err := client.Files().UploadPath(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fileName := filepath.Base(args[0])
			mimeType := mime.TypeByExtension(filepath.Ext(fileName))

			if title == "" {
				title = fileName
			}

			existing, err := client.Documents().ListDocuments(cmd.Context(), folder.ID)
			if err != nil {
				return err
			}

			if current := existing.ByTitle(title); current != nil {
				updated, err := client.Documents().UpdateDocument(cmd.Context(), current.ID,
					&ctf.DocumentUpdateRequest{
						Description: description,
						FileID:      stored.GUID,
						FileName:    fileName,
						MimeType:    mimeType,
					})
				if err != nil {
					return err
				}

				cmd.Printf("Updated document '%s' (%s) to version %d\n",
					updated.Title, updated.ID, int(updated.CurrentVersion))

				return nil
			}

			document, err := client.Documents().CreateDocument(cmd.Context(), folder.ID,
				&ctf.DocumentCreateRequest{
					Title:       title,
					Description: description,
					FileID:      stored.GUID,
					FileName:    fileName,
					MimeType:    mimeType,
				})
			if err != nil {
				return err
			}

			cmd.Printf("Created document '%s' (%s)\n", document.Title, document.ID)

			return nil
		},
	}

	cmd.Flags().StringVarP(&projectID, "project", "P", "", "project id")
	cmd.Flags().StringVar(&folderPath, "path", "", "slash-separated folder path from the project root")
	cmd.Flags().StringVar(&title, "title", "", "document title (default is the file name)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "document description")

	return cmd
}
