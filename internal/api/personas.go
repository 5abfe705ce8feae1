package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// ListPersonas returns the authenticated user's personas.
func (c *Client) ListPersonas(ctx context.Context) ([]Persona, error) {
	var out []Persona
	if err := c.doJSON(ctx, "list personas", http.MethodGet, "/user/persona", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPersona returns one persona by id.
func (c *Client) GetPersona(ctx context.Context, id string) (*Persona, error) {
	path := fmt.Sprintf("/user/persona/%s", url.PathEscape(id))
	var out Persona
	if err := c.doJSON(ctx, "get persona", http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePersona creates a persona for the authenticated user.
func (c *Client) CreatePersona(ctx context.Context, in PersonaCreate) (*Persona, error) {
	var out Persona
	if err := c.doJSON(ctx, "create persona", http.MethodPost, "/user/persona", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdatePersona applies a partial update to a persona. There is no
// delete endpoint; retiring a persona means updating it.
func (c *Client) UpdatePersona(ctx context.Context, id string, in PersonaUpdate) (*Persona, error) {
	path := fmt.Sprintf("/user/persona/%s", url.PathEscape(id))
	var out Persona
	if err := c.doJSON(ctx, "update persona", http.MethodPut, path, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
