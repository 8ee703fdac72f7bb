package apiclient

import (
	"context"
	"fmt"

	"github.com/glucolab/labconsole/internal/domain/model"
)

const personsPath = "/api/persons/"

// ListPersons fetches the full person collection.
func (c *Client) ListPersons(ctx context.Context) ([]model.Person, error) {
	var out []model.Person
	if err := c.getJSON(ctx, personsPath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreatePerson creates a person and returns the server's representation.
func (c *Client) CreatePerson(ctx context.Context, req model.CreatePersonRequest) (model.Person, error) {
	var out model.Person
	if err := c.postJSON(ctx, personsPath, req, &out); err != nil {
		return model.Person{}, err
	}
	return out, nil
}

// UpdatePerson applies a partial update and returns the mutated record.
func (c *Client) UpdatePerson(ctx context.Context, id int, req model.UpdatePersonRequest) (model.Person, error) {
	var out model.Person
	if err := c.putJSON(ctx, fmt.Sprintf("/api/persons/%d", id), req, &out); err != nil {
		return model.Person{}, err
	}
	return out, nil
}

// DeletePerson removes a person.
func (c *Client) DeletePerson(ctx context.Context, id int) error {
	return c.deletePath(ctx, fmt.Sprintf("/api/persons/%d", id))
}
