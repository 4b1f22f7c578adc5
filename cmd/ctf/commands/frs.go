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

// NewFRSCommand creates the frs command group for packages, releases, and
// release files.
func NewFRSCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "frs",
		Short: "Manage file releases",
	}

	cmd.AddCommand(newPackagesCommand())
	cmd.AddCommand(newReleasesCommand())

	return cmd
}

func newPackagesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "packages",
		Aliases: []string{"package"},
		Short:   "Manage FRS packages",
	}

	cmd.AddCommand(newPackagesListCommand())
	cmd.AddCommand(newPackagesCreateCommand())
	cmd.AddCommand(newPackagesDeleteCommand())

	return cmd
}

func newPackagesListCommand() *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's packages",
		RunE: func(cmd *cobra.Command, args []string) error {
			if projectID == "" {
				return ErrProjectRequired
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			packages, err := client.Packages().ListForProject(cmd.Context(), projectID)
			if err != nil {
				return err
			}

			if done, err := renderStructured(packages.Items()); done {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Title", "ID", "Description")

			for _, pkg := range packages.Items() {
				_ = table.Append(pkg.Title, pkg.ID, orNA(pkg.Description))
			}

			_ = table.Render()

			return nil
		},
	}

	cmd.Flags().StringVarP(&projectID, "project", "P", "", "project id")

	return cmd
}

func newPackagesCreateCommand() *cobra.Command {
	var (
		projectID   string
		description string
	)

	cmd := &cobra.Command{
		Use:   "create TITLE",
		Short: "Create a package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if projectID == "" {
				return ErrProjectRequired
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			pkg, err := client.Packages().Create(cmd.Context(), projectID, &ctf.PackageCreateRequest{
				Title:       args[0],
				Description: description,
			})
			if err != nil {
				return err
			}

			cmd.Printf("Created package '%s' (%s)\n", pkg.Title, pkg.ID)

			return nil
		},
	}

	cmd.Flags().StringVarP(&projectID, "project", "P", "", "project id")
	cmd.Flags().StringVarP(&description, "description", "d", "", "package description")

	return cmd
}

func newPackagesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete PACKAGE_ID",
		Short: "Delete a package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			if err := client.Packages().Delete(cmd.Context(), args[0]); err != nil {
				return err
			}

			cmd.Printf("Deleted package %s\n", args[0])

			return nil
		},
	}
}

func newReleasesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "releases",
		Aliases: []string{"release"},
		Short:   "Manage FRS releases and their files",
	}

	cmd.AddCommand(newReleasesListCommand())
	cmd.AddCommand(newReleasesCreateCommand())
	cmd.AddCommand(newReleasesDeleteCommand())
	cmd.AddCommand(newReleasesFilesCommand())
	cmd.AddCommand(newReleasesUploadCommand())

	return cmd
}

func newReleasesListCommand() *cobra.Command {
	var packageID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a package's releases",
		RunE: func(cmd *cobra.Command, args []string) error {
			if packageID == "" {
				return ErrPackageRequired
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			releases, err := client.Releases().ListForPackage(cmd.Context(), packageID)
			if err != nil {
				return err
			}

			if done, err := renderStructured(releases.Items()); done {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Title", "ID", "Status", "Maturity")

			for _, release := range releases.Items() {
				_ = table.Append(release.Title, release.ID,
					orNA(release.Status), orNA(release.Maturity))
			}

			_ = table.Render()

			return nil
		},
	}

	cmd.Flags().StringVar(&packageID, "package", "", "package id")

	return cmd
}

func newReleasesCreateCommand() *cobra.Command {
	var (
		packageID   string
		description string
		status      string
		maturity    string
	)

	cmd := &cobra.Command{
		Use:   "create TITLE",
		Short: "Create a release",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if packageID == "" {
				return ErrPackageRequired
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			release, err := client.Releases().Create(cmd.Context(), packageID, &ctf.ReleaseCreateRequest{
				Title:       args[0],
				Description: description,
				Status:      status,
				Maturity:    maturity,
			})
			if err != nil {
				return err
			}

			cmd.Printf("Created release '%s' (%s)\n", release.Title, release.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&packageID, "package", "", "package id")
	cmd.Flags().StringVarP(&description, "description", "d", "", "release description")
	cmd.Flags().StringVar(&status, "status", "", "release status")
	cmd.Flags().StringVar(&maturity, "maturity", "", "release maturity")

	return cmd
}

func newReleasesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete RELEASE_ID",
		Short: "Delete a release",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			if err := client.Releases().Delete(cmd.Context(), args[0]); err != nil {
				return err
			}

			cmd.Printf("Deleted release %s\n", args[0])

			return nil
		},
	}
}

func newReleasesFilesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "files RELEASE_ID",
		Short: "List a release's files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			files, err := client.Releases().Files(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if done, err := renderStructured(files.Items()); done {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("File Name", "ID", "Size", "MIME Type")

			for _, file := range files.Items() {
				_ = table.Append(file.FileName, file.ID,
					strconv.Itoa(int(file.Size)), orNA(file.MimeType))
			}

			_ = table.Render()

			return nil
		},
	}
}

func newReleasesUploadCommand() *cobra.Command {
	var releaseID string

	cmd := &cobra.Command{
		Use:   "upload LOCAL_FILE",
		Short: "Upload a local file and attach it to a release",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if releaseID == "" {
				return ErrReleaseRequired
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			stored, err := client.Files().UploadPath(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fileName := filepath.Base(args[0])

			file, err := client.Releases().AttachFile(cmd.Context(), releaseID, &ctf.ReleaseFileRequest{
				FileID:   stored.GUID,
				FileName: fileName,
				MimeType: mime.TypeByExtension(filepath.Ext(fileName)),
			})
			if err != nil {
				return err
			}

			cmd.Printf("Attached '%s' (%s) to release %s\n", file.FileName, file.ID, releaseID)

			return nil
		},
	}

	cmd.Flags().StringVar(&releaseID, "release", "", "release id")

	return cmd
}
