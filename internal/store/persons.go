package store

import (
	"context"
	"slices"

	"github.com/glucolab/labconsole/internal/domain/model"
)

// Persons returns a copy of the cached person collection.
func (d *DataStore) Persons() []model.Person {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.persons)
}

// PersonByID looks up one cached person.
func (d *DataStore) PersonByID(id int) (model.Person, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, p := range d.persons {
		if p.PersonID == id {
			return p, true
		}
	}
	return model.Person{}, false
}

// RefreshPersons replaces the cached persons with the server's list.
func (d *DataStore) RefreshPersons(ctx context.Context) error {
	d.clearError()
	return d.refreshPersons(ctx)
}

func (d *DataStore) refreshPersons(ctx context.Context) error {
	persons, err := d.api.ListPersons(ctx)
	if err != nil {
		return d.fail("refresh persons", err)
	}
	d.mu.Lock()
	d.persons = persons
	d.mu.Unlock()
	return nil
}

// AddPerson creates a person and appends the server's record to the cache.
func (d *DataStore) AddPerson(ctx context.Context, req model.CreatePersonRequest) (model.Person, error) {
	d.clearError()
	person, err := d.api.CreatePerson(ctx, req)
	if err != nil {
		return model.Person{}, d.fail("add person", err)
	}
	d.mu.Lock()
	d.persons = append(d.persons, person)
	d.mu.Unlock()
	return person, nil
}

// UpdatePerson updates a person and swaps the cached record in place.
func (d *DataStore) UpdatePerson(ctx context.Context, id int, req model.UpdatePersonRequest) (model.Person, error) {
	d.clearError()
	person, err := d.api.UpdatePerson(ctx, id, req)
	if err != nil {
		return model.Person{}, d.fail("update person", err)
	}
	d.mu.Lock()
	replaceWhere(d.persons, func(p model.Person) bool { return p.PersonID == id }, person)
	d.mu.Unlock()
	return person, nil
}

// DeletePerson deletes a person and drops it from the cache.
func (d *DataStore) DeletePerson(ctx context.Context, id int) error {
	d.clearError()
	if err := d.api.DeletePerson(ctx, id); err != nil {
		return d.fail("delete person", err)
	}
	d.mu.Lock()
	d.persons = deleteWhere(d.persons, func(p model.Person) bool { return p.PersonID == id })
	d.mu.Unlock()
	return nil
}
