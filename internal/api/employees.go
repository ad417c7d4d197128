package api

import (
	"context"
	"net/http"
	"net/url"
)

// Employee is a staff record that overtime entries refer to.
type Employee struct {
	ID             string `json:"_id,omitempty"`
	EmployeeNumber string `json:"employeeNumber"`
	Name           string `json:"name"`
	Phone          string `json:"phone,omitempty"`
}

// User is a dashboard account.
type User struct {
	ID         string `json:"_id,omitempty"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	IsAdmin    bool   `json:"isAdmin"`
	CanApprove bool   `json:"canApprove"`
}

// UserUpdate changes a dashboard account. An empty password is left unchanged.
type UserUpdate struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password,omitempty"`
	IsAdmin    bool   `json:"isAdmin"`
	CanApprove bool   `json:"canApprove"`
}

func (c *Client) ListEmployees(ctx context.Context) ([]Employee, error) {
	var out []Employee
	err := c.do(ctx, http.MethodGet, "/employees", nil, nil, &out)
	return out, err
}

func (c *Client) GetEmployee(ctx context.Context, id string) (*Employee, error) {
	var out Employee
	if err := c.do(ctx, http.MethodGet, "/employees/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateEmployee(ctx context.Context, e Employee) (*Employee, error) {
	var out Employee
	if err := c.do(ctx, http.MethodPost, "/employees", nil, e, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateEmployee(ctx context.Context, id string, e Employee) (*Employee, error) {
	var out Employee
	if err := c.do(ctx, http.MethodPut, "/employees/"+url.PathEscape(id), nil, e, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteEmployee(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/employees/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var out []User
	err := c.do(ctx, http.MethodGet, "/users/", nil, nil, &out)
	return out, err
}

func (c *Client) GetUser(ctx context.Context, id string) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateUser(ctx context.Context, id string, u UserUpdate) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodPut, "/users/"+url.PathEscape(id), nil, u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil, nil)
}
