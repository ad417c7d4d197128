package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/xolan/otdash/internal/api"
	"github.com/xolan/otdash/internal/cli"
)

// EmployeeChanges holds the fields "employees edit" was asked to change.
type EmployeeChanges struct {
	Number *string
	Name   *string
	Phone  *string
}

// UserChanges holds the fields "users edit" was asked to change.
type UserChanges struct {
	Username   *string
	Email      *string
	Password   *string
	IsAdmin    *bool
	CanApprove *bool
}

// ListEmployees prints the employee directory.
func ListEmployees(ctx context.Context, deps *cli.Deps) {
	employees, err := deps.Services.Directory.Employees(ctx)
	if err != nil {
		cli.Fail(deps, "Failed to load employees", err, "")
		return
	}
	if len(employees) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No employees found")
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "%-24s  %-10s  %-24s  %s\n", "ID", "Emp#", "Name", "Phone")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 78))
	for _, e := range employees {
		_, _ = fmt.Fprintf(deps.Stdout, "%-24s  %-10s  %-24s  %s\n", e.ID, e.EmployeeNumber, e.Name, e.Phone)
	}
	_, _ = fmt.Fprintf(deps.Stdout, "%d %s\n", len(employees), cli.Pluralize("employee", len(employees)))
}

// AddEmployee creates an employee.
func AddEmployee(ctx context.Context, deps *cli.Deps, e api.Employee) {
	created, err := deps.Services.Directory.AddEmployee(ctx, e)
	if err != nil {
		cli.Fail(deps, "Failed to add employee", err, "")
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Added employee %s %s (%s)\n", created.EmployeeNumber, created.Name, created.ID)
}

// findEmployee resolves ref as an id or an employee number.
func findEmployee(ctx context.Context, deps *cli.Deps, ref string) (*api.Employee, error) {
	employees, err := deps.Services.Directory.Employees(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range employees {
		if e.ID == ref || strings.EqualFold(e.EmployeeNumber, ref) {
			return &e, nil
		}
	}
	return nil, fmt.Errorf("%w: employee %s", api.ErrNotFound, ref)
}

// EditEmployee updates the employee identified by ref.
func EditEmployee(ctx context.Context, deps *cli.Deps, ref string, changes EmployeeChanges) {
	if changes.Number == nil && changes.Name == nil && changes.Phone == nil {
		cli.Fail(deps, "Nothing to change", nil, "Pass at least one of --number, --name, --phone")
		return
	}
	e, err := findEmployee(ctx, deps, ref)
	if err != nil {
		cli.Fail(deps, "Failed to find employee", err, "")
		return
	}
	if changes.Number != nil {
		e.EmployeeNumber = *changes.Number
	}
	if changes.Name != nil {
		e.Name = *changes.Name
	}
	if changes.Phone != nil {
		e.Phone = *changes.Phone
	}

	updated, err := deps.Services.Directory.UpdateEmployee(ctx, e.ID, *e)
	if err != nil {
		cli.Fail(deps, "Failed to update employee", err, "")
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Updated employee %s %s\n", updated.EmployeeNumber, updated.Name)
}

// DeleteEmployee removes the employee identified by ref after confirmation.
func DeleteEmployee(ctx context.Context, deps *cli.Deps, ref string, yes bool) {
	e, err := findEmployee(ctx, deps, ref)
	if err != nil {
		cli.Fail(deps, "Failed to find employee", err, "")
		return
	}
	if !yes && !cli.Confirm(deps, fmt.Sprintf("Delete employee %s %s?", e.EmployeeNumber, e.Name)) {
		_, _ = fmt.Fprintln(deps.Stdout, "Deletion cancelled")
		return
	}
	if err := deps.Services.Directory.DeleteEmployee(ctx, e.ID); err != nil {
		cli.Fail(deps, "Failed to delete employee", err, "")
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Deleted employee %s\n", e.EmployeeNumber)
}

// ListUsers prints the dashboard accounts.
func ListUsers(ctx context.Context, deps *cli.Deps) {
	users, err := deps.Services.Directory.Users(ctx)
	if err != nil {
		cli.Fail(deps, "Failed to load users", err, "")
		return
	}
	if len(users) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No users found")
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "%-24s  %-16s  %-28s  %-5s  %s\n", "ID", "Username", "Email", "Admin", "Approver")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 90))
	for _, u := range users {
		_, _ = fmt.Fprintf(deps.Stdout, "%-24s  %-16s  %-28s  %-5s  %s\n", u.ID, u.Username, u.Email, yesNo(u.IsAdmin), yesNo(u.CanApprove))
	}
}

// AddUser registers a dashboard account.
func AddUser(ctx context.Context, deps *cli.Deps, r api.Registration) {
	if r.Password == "" {
		r.Password, _ = cli.PromptSecret(deps, "Password: ")
	}
	if err := deps.Services.Auth.Register(ctx, r); err != nil {
		cli.Fail(deps, "Failed to register user", err, "")
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Registered user %s\n", r.Username)
}

func findUser(ctx context.Context, deps *cli.Deps, ref string) (*api.User, error) {
	users, err := deps.Services.Directory.Users(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.ID == ref || strings.EqualFold(u.Username, ref) {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("%w: user %s", api.ErrNotFound, ref)
}

// EditUser updates the account identified by ref (id or username).
func EditUser(ctx context.Context, deps *cli.Deps, ref string, changes UserChanges) {
	u, err := findUser(ctx, deps, ref)
	if err != nil {
		cli.Fail(deps, "Failed to find user", err, "")
		return
	}

	update := api.UserUpdate{Username: u.Username, Email: u.Email, IsAdmin: u.IsAdmin, CanApprove: u.CanApprove}
	changed := false
	if changes.Username != nil {
		update.Username, changed = *changes.Username, true
	}
	if changes.Email != nil {
		update.Email, changed = *changes.Email, true
	}
	if changes.Password != nil {
		update.Password, changed = *changes.Password, true
	}
	if changes.IsAdmin != nil {
		update.IsAdmin, changed = *changes.IsAdmin, true
	}
	if changes.CanApprove != nil {
		update.CanApprove, changed = *changes.CanApprove, true
	}
	if !changed {
		cli.Fail(deps, "Nothing to change", nil, "Pass at least one of --username, --email, --password, --admin, --approver")
		return
	}

	updated, err := deps.Services.Directory.UpdateUser(ctx, u.ID, update)
	if err != nil {
		cli.Fail(deps, "Failed to update user", err, "")
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Updated user %s (admin %s, approver %s)\n", updated.Username, yesNo(updated.IsAdmin), yesNo(updated.CanApprove))
}

// DeleteUser removes the account identified by ref after confirmation.
func DeleteUser(ctx context.Context, deps *cli.Deps, ref string, yes bool) {
	u, err := findUser(ctx, deps, ref)
	if err != nil {
		cli.Fail(deps, "Failed to find user", err, "")
		return
	}
	if !yes && !cli.Confirm(deps, fmt.Sprintf("Delete user %s?", u.Username)) {
		_, _ = fmt.Fprintln(deps.Stdout, "Deletion cancelled")
		return
	}
	if err := deps.Services.Directory.DeleteUser(ctx, u.ID); err != nil {
		cli.Fail(deps, "Failed to delete user", err, "")
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Deleted user %s\n", u.Username)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
