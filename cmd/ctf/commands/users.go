package commands

import (
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/teamforge-io/ctf/pkg/ctf"
)

// NewUsersCommand creates the users command group, including group and role
// administration.
func NewUsersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "Manage users, groups, and roles",
	}

	cmd.AddCommand(newUsersListCommand())
	cmd.AddCommand(newUsersGetCommand())
	cmd.AddCommand(newUsersCreateCommand())
	cmd.AddCommand(newGroupsCommand())
	cmd.AddCommand(newRolesCommand())

	return cmd
}

func userListTable(users *ctf.TitledCollection[ctf.User]) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Username", "Full Name", "Email", "Status", "Super User")

	for _, user := range users.Items() {
		_ = table.Append(user.Username, orNA(user.FullName), orNA(user.Email),
			orNA(user.Status), strconv.FormatBool(bool(user.SuperUser)))
	}

	_ = table.Render()
}

func newUsersListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			users, err := client.Users().List(cmd.Context(), &ctf.QueryParams{Count: ctf.FetchAll})
			if err != nil {
				return err
			}

			if done, err := renderStructured(users.Items()); done {
				return err
			}

			userListTable(users)

			return nil
		},
	}
}

func newUsersGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get USERNAME",
		Short: "Show a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			user, err := client.Users().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if done, err := renderStructured(user); done {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Property", "Value")
			_ = table.Append("Username", user.Username)
			_ = table.Append("ID", user.ID)
			_ = table.Append("Full Name", orNA(user.FullName))
			_ = table.Append("Email", orNA(user.Email))
			_ = table.Append("Status", orNA(user.Status))
			_ = table.Append("Super User", strconv.FormatBool(bool(user.SuperUser)))
			_ = table.Append("Restricted", strconv.FormatBool(bool(user.Restricted)))
			_ = table.Render()

			return nil
		},
	}
}

func newUsersCreateCommand() *cobra.Command {
	var (
		email      string
		fullName   string
		password   string
		superUser  bool
		restricted bool
	)

	cmd := &cobra.Command{
		Use:   "create USERNAME",
		Short: "Create a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			user, err := client.Users().Create(cmd.Context(), &ctf.UserCreateRequest{
				Username:   args[0],
				Email:      email,
				FullName:   fullName,
				Password:   password,
				SuperUser:  superUser,
				Restricted: restricted,
			})
			if err != nil {
				return err
			}

			cmd.Printf("Created user '%s' (%s)\n", user.Username, user.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&fullName, "full-name", "", "full name")
	cmd.Flags().StringVar(&password, "password", "", "initial password")
	cmd.Flags().BoolVar(&superUser, "super-user", false, "grant site administrator rights")
	cmd.Flags().BoolVar(&restricted, "restricted", false, "create as a restricted user")

	return cmd
}

func newGroupsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "Manage site-wide groups",
	}

	cmd.AddCommand(newGroupsListCommand())
	cmd.AddCommand(newGroupsCreateCommand())
	cmd.AddCommand(newGroupsMembersCommand())
	cmd.AddCommand(newGroupsAddMemberCommand())
	cmd.AddCommand(newGroupsRemoveMemberCommand())

	return cmd
}

func newGroupsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			groups, err := client.Groups().List(cmd.Context(), &ctf.QueryParams{Count: ctf.FetchAll})
			if err != nil {
				return err
			}

			if done, err := renderStructured(groups.Items()); done {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Title", "ID", "Description")

			for _, group := range groups.Items() {
				_ = table.Append(group.Title, group.ID, orNA(group.Description))
			}

			_ = table.Render()

			return nil
		},
	}
}

func newGroupsCreateCommand() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "create TITLE",
		Short: "Create a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			group, err := client.Groups().Create(cmd.Context(), &ctf.GroupCreateRequest{
				Title:       args[0],
				Description: description,
			})
			if err != nil {
				return err
			}

			cmd.Printf("Created group '%s' (%s)\n", group.Title, group.ID)

			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "group description")

	return cmd
}

func newGroupsMembersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "members GROUP_ID",
		Short: "List a group's members",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			members, err := client.Groups().Members(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if done, err := renderStructured(members.Items()); done {
				return err
			}

			userListTable(members)

			return nil
		},
	}
}

func newGroupsAddMemberCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add-member GROUP_ID USERNAME",
		Short: "Add a user to a group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			if err := client.Groups().AddMember(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}

			cmd.Printf("Added '%s' to group %s\n", args[1], args[0])

			return nil
		},
	}
}

func newGroupsRemoveMemberCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-member GROUP_ID USERNAME",
		Short: "Remove a user from a group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			if err := client.Groups().RemoveMember(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}

			cmd.Printf("Removed '%s' from group %s\n", args[1], args[0])

			return nil
		},
	}
}

func newRolesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roles",
		Short: "Manage project roles",
	}

	cmd.AddCommand(newRolesListCommand())
	cmd.AddCommand(newRolesCreateCommand())
	cmd.AddCommand(newRolesMembersCommand())
	cmd.AddCommand(newRolesGrantCommand())

	return cmd
}

func newRolesListCommand() *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's roles",
		RunE: func(cmd *cobra.Command, args []string) error {
			if projectID == "" {
				return ErrProjectRequired
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			roles, err := client.Roles().ListForProject(cmd.Context(), projectID)
			if err != nil {
				return err
			}

			if done, err := renderStructured(roles.Items()); done {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Title", "ID", "Description")

			for _, role := range roles.Items() {
				_ = table.Append(role.Title, role.ID, orNA(role.Description))
			}

			_ = table.Render()

			return nil
		},
	}

	cmd.Flags().StringVarP(&projectID, "project", "P", "", "project id")

	return cmd
}

func newRolesCreateCommand() *cobra.Command {
	var (
		projectID   string
		description string
	)

	cmd := &cobra.Command{
		Use:   "create TITLE",
		Short: "Create a project role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if projectID == "" {
				return ErrProjectRequired
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			role, err := client.Roles().Create(cmd.Context(), projectID, &ctf.RoleCreateRequest{
				Title:       args[0],
				Description: description,
			})
			if err != nil {
				return err
			}

			cmd.Printf("Created role '%s' (%s)\n", role.Title, role.ID)

			return nil
		},
	}

	cmd.Flags().StringVarP(&projectID, "project", "P", "", "project id")
	cmd.Flags().StringVarP(&description, "description", "d", "", "role description")

	return cmd
}

func newRolesMembersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "members ROLE_ID",
		Short: "List the users holding a role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			members, err := client.Roles().Members(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if done, err := renderStructured(members.Items()); done {
				return err
			}

			userListTable(members)

			return nil
		},
	}
}

func newRolesGrantCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "grant ROLE_ID USERNAME",
		Short: "Grant a role to a user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			if err := client.Roles().Grant(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}

			cmd.Printf("Granted role %s to '%s'\n", args[0], args[1])

			return nil
		},
	}
}
