package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/FACorreiaa/go-petportal/internal/app/models"
)

// Login exchanges credentials for a token and user record.
func (c *Client) Login(ctx context.Context, form models.LoginForm) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.do(ctx, "users.login", http.MethodPost, "/users/login", "", form, &out); err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, fmt.Errorf("users.login: %w: missing token", models.ErrInvalidResponse)
	}
	return &out, nil
}

// Register creates an account. The response body is not needed: a new
// account must sign in before it has a session.
func (c *Client) Register(ctx context.Context, form models.RegisterForm) error {
	return c.do(ctx, "users.register", http.MethodPost, "/users/register", "", form, nil)
}

func (c *Client) ListPets(ctx context.Context, token string) ([]models.Pet, error) {
	pets := []models.Pet{}
	if err := c.do(ctx, "pets.list", http.MethodGet, "/pets", token, nil, &pets); err != nil {
		return nil, err
	}
	if pets == nil {
		pets = []models.Pet{}
	}
	return pets, nil
}

func (c *Client) CreatePet(ctx context.Context, token string, input models.PetInput) error {
	return c.do(ctx, "pets.create", http.MethodPost, "/pets", token, input, nil)
}

func (c *Client) UpdatePet(ctx context.Context, token, id string, input models.PetInput) error {
	return c.do(ctx, "pets.update", http.MethodPut, petPath(id), token, input, nil)
}

func (c *Client) DeletePet(ctx context.Context, token, id string) error {
	return c.do(ctx, "pets.delete", http.MethodDelete, petPath(id), token, nil, nil)
}

// ListUsers returns every account. The upstream only allows this for admins.
func (c *Client) ListUsers(ctx context.Context, token string) ([]models.User, error) {
	users := []models.User{}
	if err := c.do(ctx, "users.list", http.MethodGet, "/users", token, nil, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

func petPath(id string) string {
	return "/pets/" + url.PathEscape(id)
}
