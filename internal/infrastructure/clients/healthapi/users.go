package healthapi

import (
	"context"
	"net/http"

	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/internal/domain/entities"
)

// Register creates an account. No bearer token is sent.
func (c *Client) Register(ctx context.Context, req entities.RegisterRequest) (*entities.User, error) {
	out := &entities.User{}
	err := c.do(ctx, call{
		method:    http.MethodPost,
		route:     "/users/register",
		endpoint:  c.resource(usersResource, "register"),
		anonymous: true,
		body:      req,
		out:       out,
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Login exchanges credentials for a bearer token. No bearer token is sent.
func (c *Client) Login(ctx context.Context, req entities.LoginRequest) (*entities.LoginResponse, error) {
	out := &entities.LoginResponse{}
	err := c.do(ctx, call{
		method:    http.MethodPost,
		route:     "/users/login",
		endpoint:  c.resource(usersResource, "login"),
		anonymous: true,
		body:      req,
		out:       out,
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetUserByEmail fetches a user by email address
func (c *Client) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	out := &entities.User{}
	err := c.do(ctx, call{
		method:   http.MethodGet,
		route:    "/users/email/{email}",
		endpoint: c.resource(usersResource, "email", email),
		out:      out,
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetUserByID fetches a user by id
func (c *Client) GetUserByID(ctx context.Context, id entities.ID) (*entities.User, error) {
	out := &entities.User{}
	err := c.do(ctx, call{
		method:   http.MethodGet,
		route:    "/users/{id}",
		endpoint: c.resource(usersResource, id.String()),
		out:      out,
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateUser edits a user's profile
func (c *Client) UpdateUser(ctx context.Context, req entities.UserUpdateRequest) (*entities.User, error) {
	out := &entities.User{}
	err := c.do(ctx, call{
		method:   http.MethodPut,
		route:    "/users",
		endpoint: c.resource(usersResource),
		body:     req,
		out:      out,
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ChangePassword sets a new password for the account with the given email
func (c *Client) ChangePassword(ctx context.Context, req entities.ChangePasswordRequest) (*entities.User, error) {
	out := &entities.User{}
	err := c.do(ctx, call{
		method:   http.MethodPut,
		route:    "/users/change-password",
		endpoint: c.resource(usersResource, "change-password"),
		body:     req,
		out:      out,
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteUser removes a user
func (c *Client) DeleteUser(ctx context.Context, id entities.ID) error {
	return c.do(ctx, call{
		method:   http.MethodDelete,
		route:    "/users/{id}",
		endpoint: c.resource(usersResource, id.String()),
	})
}
