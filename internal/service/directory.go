package service

import (
	"context"
	"strings"

	"github.com/xolan/otdash/internal/api"
)

// DirectoryService manages employees and dashboard users
type DirectoryService struct {
	client *api.Client
}

// NewDirectoryService creates a new DirectoryService
func NewDirectoryService(client *api.Client) *DirectoryService {
	return &DirectoryService{client: client}
}

func (s *DirectoryService) Employees(ctx context.Context) ([]api.Employee, error) {
	return s.client.ListEmployees(ctx)
}

// FindEmployee returns the employee with the given number, or nil.
func (s *DirectoryService) FindEmployee(ctx context.Context, number string) (*api.Employee, error) {
	employees, err := s.client.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range employees {
		if strings.EqualFold(e.EmployeeNumber, number) {
			return &e, nil
		}
	}
	return nil, nil
}

func (s *DirectoryService) AddEmployee(ctx context.Context, e api.Employee) (*api.Employee, error) {
	e = trimEmployee(e)
	if err := validateEmployee(e); err != nil {
		return nil, err
	}
	return s.client.CreateEmployee(ctx, e)
}

func (s *DirectoryService) UpdateEmployee(ctx context.Context, id string, e api.Employee) (*api.Employee, error) {
	e = trimEmployee(e)
	if err := validateEmployee(e); err != nil {
		return nil, err
	}
	return s.client.UpdateEmployee(ctx, id, e)
}

func (s *DirectoryService) DeleteEmployee(ctx context.Context, id string) error {
	return s.client.DeleteEmployee(ctx, id)
}

func (s *DirectoryService) Users(ctx context.Context) ([]api.User, error) {
	return s.client.ListUsers(ctx)
}

func (s *DirectoryService) UpdateUser(ctx context.Context, id string, u api.UserUpdate) (*api.User, error) {
	var missing []string
	if strings.TrimSpace(u.Username) == "" {
		missing = append(missing, "username")
	}
	if strings.TrimSpace(u.Email) == "" {
		missing = append(missing, "email")
	}
	if len(missing) > 0 {
		return nil, &MissingFieldsError{Fields: missing}
	}
	return s.client.UpdateUser(ctx, id, u)
}

func (s *DirectoryService) DeleteUser(ctx context.Context, id string) error {
	return s.client.DeleteUser(ctx, id)
}

func trimEmployee(e api.Employee) api.Employee {
	e.EmployeeNumber = strings.TrimSpace(e.EmployeeNumber)
	e.Name = strings.TrimSpace(e.Name)
	e.Phone = strings.TrimSpace(e.Phone)
	return e
}

func validateEmployee(e api.Employee) error {
	var missing []string
	if e.EmployeeNumber == "" {
		missing = append(missing, "employeeNumber")
	}
	if e.Name == "" {
		missing = append(missing, "name")
	}
	if len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}
	return nil
}
