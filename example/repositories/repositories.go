// Package repositories provides the data access of the demo application.
package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrymomot/simplefw/example/models"
	"github.com/dmitrymomot/simplefw/pkg/cache"
	"github.com/dmitrymomot/simplefw/pkg/entity"
	"github.com/dmitrymomot/simplefw/pkg/repository"
	"github.com/dmitrymomot/simplefw/pkg/sqlbuilder"
)

// Categories is the category store used by controllers.
type Categories = repository.CRUD[models.Category]

// NewCategories returns the category repository. A non-nil cache puts a
// read-through layer in front of it.
func NewCategories(db sqlbuilder.Runner, d sqlbuilder.Dialect, c cache.Cache[[]*models.Category], ttl time.Duration) Categories {
	base := repository.New[models.Category](db, d)
	if c == nil {
		return base
	}
	return repository.NewCached(base, c, ttl)
}

// Contacts is the contact repository with its joined queries.
type Contacts struct {
	*repository.Repository[models.Contact]
}

// NewContacts returns the contact repository.
func NewContacts(db sqlbuilder.Runner, d sqlbuilder.Dialect) *Contacts {
	return &Contacts{Repository: repository.New[models.Contact](db, d)}
}

// AllWithCategory returns every contact with its category, ordered by name.
func (r *Contacts) AllWithCategory(ctx context.Context) ([]*models.Contact, error) {
	return r.fetchWithCategory(ctx, r.withCategory())
}

// OneWithCategory returns one contact with its category.
func (r *Contacts) OneWithCategory(ctx context.Context, id int64) (*models.Contact, error) {
	q := r.withCategory().
		Where(r.Table()+".contact_id = :contact_id").
		SetParam("contact_id", id)

	items, err := r.fetchWithCategory(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, repository.ErrNotFound
	}
	return items[0], nil
}

// CountByCategory returns the number of contacts per category id.
func (r *Contacts) CountByCategory(ctx context.Context) (map[int64]int, error) {
	q := sqlbuilder.New(r.Dialect()).
		Select("category_id", "COUNT(*) AS total").
		From(r.Table(), "").
		GroupBy("category_id")

	rows, err := q.Rows(ctx, r.DB())
	if err != nil {
		return nil, fmt.Errorf("repositories: count contacts: %w", err)
	}
	defer rows.Close()

	counts := make(map[int64]int)
	for rows.Next() {
		var (
			id    int64
			total int
		)
		if err := rows.Scan(&id, &total); err != nil {
			return nil, err
		}
		counts[id] = total
	}
	return counts, rows.Err()
}

func (r *Contacts) withCategory() *sqlbuilder.Query {
	return r.Query().
		InnerJoin("categories", "", "category_id", "category_id").
		OrderBy("contact_name")
}

func (r *Contacts) fetchWithCategory(ctx context.Context, q *sqlbuilder.Query) ([]*models.Contact, error) {
	rows, err := q.Rows(ctx, r.DB())
	if err != nil {
		return nil, fmt.Errorf("repositories: contacts with category: %w", err)
	}
	maps, err := entity.ScanMaps(rows)
	if err != nil {
		return nil, err
	}

	contacts := make([]*models.Contact, 0, len(maps))
	for _, m := range maps {
		contact := new(models.Contact)
		if err := entity.Hydrate(contact, m, false); err != nil {
			return nil, err
		}
		category := new(models.Category)
		if err := entity.Hydrate(category, m, false); err != nil {
			return nil, err
		}
		contact.Category = category
		contacts = append(contacts, contact)
	}
	return contacts, nil
}
