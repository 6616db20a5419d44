// Package models holds the entities of the demo application.
package models

// Category groups contacts. It maps to the categories table.
type Category struct {
	CategoryID   *int64 `db:"category_id" json:"categoryId,omitempty"`
	CategoryName string `db:"category_name" json:"categoryName"`
}

// ID returns the primary key, or 0 for a category not stored yet.
func (c *Category) ID() int64 {
	if c == nil || c.CategoryID == nil {
		return 0
	}
	return *c.CategoryID
}
