package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/otdash/internal/api"
	"github.com/xolan/otdash/internal/cli/handlers"
)

// employeesCmd groups the employee directory commands
var employeesCmd = &cobra.Command{
	Use:     "employees",
	Aliases: []string{"emp"},
	Short:   "Manage the employee directory",
	Long: `Manage the employee directory used to fill in names on overtime entries.

Employees are referred to by id or employee number.

Examples:
  otdash employees list
  otdash employees add --number E001 --name "Nimal Perera" --phone 0771234567
  otdash employees edit E001 --phone 0777654321
  otdash employees delete E001`,
}

var employeesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List employees",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		d, ok := ready()
		if !ok {
			return
		}
		handlers.ListEmployees(cmd.Context(), d)
	},
}

var employeesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an employee",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		d, ok := ready()
		if !ok {
			return
		}
		number, _ := cmd.Flags().GetString("number")
		name, _ := cmd.Flags().GetString("name")
		phone, _ := cmd.Flags().GetString("phone")
		handlers.AddEmployee(cmd.Context(), d, api.Employee{EmployeeNumber: number, Name: name, Phone: phone})
	},
}

var employeesEditCmd = &cobra.Command{
	Use:   "edit <id|number>",
	Short: "Change an employee",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		d, ok := ready()
		if !ok {
			return
		}
		handlers.EditEmployee(cmd.Context(), d, args[0], handlers.EmployeeChanges{
			Number: stringFlag(cmd, "number"),
			Name:   stringFlag(cmd, "name"),
			Phone:  stringFlag(cmd, "phone"),
		})
	},
}

var employeesDeleteCmd = &cobra.Command{
	Use:   "delete <id|number>",
	Short: "Delete an employee (with confirmation)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		d, ok := ready()
		if !ok {
			return
		}
		yes, _ := cmd.Flags().GetBool("yes")
		handlers.DeleteEmployee(cmd.Context(), d, args[0], yes)
	},
}

// usersCmd groups the dashboard account commands
var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage dashboard accounts",
	Long: `Manage the accounts that can log in to the dashboard.

Admins manage employees, users and settings; approvers approve and reject
overtime. Users are referred to by id or username.

Examples:
  otdash users list
  otdash users add --username clerk --email clerk@example.com --approver
  otdash users edit clerk --admin=false
  otdash users delete clerk`,
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List dashboard accounts",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		d, ok := ready()
		if !ok {
			return
		}
		handlers.ListUsers(cmd.Context(), d)
	},
}

var usersAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a dashboard account",
	Long:  `Register a dashboard account. The password is prompted for when --password is omitted.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		d, ok := ready()
		if !ok {
			return
		}
		var r api.Registration
		r.Username, _ = cmd.Flags().GetString("username")
		r.Email, _ = cmd.Flags().GetString("email")
		r.Password, _ = cmd.Flags().GetString("password")
		r.IsAdmin, _ = cmd.Flags().GetBool("admin")
		r.CanApprove, _ = cmd.Flags().GetBool("approver")
		handlers.AddUser(cmd.Context(), d, r)
	},
}

var usersEditCmd = &cobra.Command{
	Use:   "edit <id|username>",
	Short: "Change a dashboard account",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		d, ok := ready()
		if !ok {
			return
		}
		handlers.EditUser(cmd.Context(), d, args[0], handlers.UserChanges{
			Username:   stringFlag(cmd, "username"),
			Email:      stringFlag(cmd, "email"),
			Password:   stringFlag(cmd, "password"),
			IsAdmin:    boolFlag(cmd, "admin"),
			CanApprove: boolFlag(cmd, "approver"),
		})
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <id|username>",
	Short: "Delete a dashboard account (with confirmation)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		d, ok := ready()
		if !ok {
			return
		}
		yes, _ := cmd.Flags().GetBool("yes")
		handlers.DeleteUser(cmd.Context(), d, args[0], yes)
	},
}

func init() {
	rootCmd.AddCommand(employeesCmd)
	employeesCmd.AddCommand(employeesListCmd, employeesAddCmd, employeesEditCmd, employeesDeleteCmd)
	for _, c := range []*cobra.Command{employeesAddCmd, employeesEditCmd} {
		c.Flags().StringP("number", "n", "", "Employee number")
		c.Flags().String("name", "", "Employee name")
		c.Flags().String("phone", "", "Phone number")
	}
	employeesDeleteCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")

	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersListCmd, usersAddCmd, usersEditCmd, usersDeleteCmd)
	for _, c := range []*cobra.Command{usersAddCmd, usersEditCmd} {
		c.Flags().StringP("username", "u", "", "Username")
		c.Flags().String("email", "", "Email address")
		c.Flags().StringP("password", "p", "", "Password")
		c.Flags().Bool("admin", false, "Can manage employees, users and settings")
		c.Flags().Bool("approver", false, "Can approve and reject overtime")
	}
	usersDeleteCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
