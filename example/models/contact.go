package models

// Contact is a person filed under a category. It maps to the contacts table.
type Contact struct {
	ContactID    *int64 `db:"contact_id" json:"contactId,omitempty"`
	ContactName  string `db:"contact_name" json:"contactName"`
	ContactEmail string `db:"contact_email" json:"contactEmail"`
	CategoryID   int64  `db:"category_id" json:"categoryId"`

	// Category is loaded by joined queries only.
	Category *Category `json:"-"`
}

// ID returns the primary key, or 0 for a contact not stored yet.
func (c *Contact) ID() int64 {
	if c == nil || c.ContactID == nil {
		return 0
	}
	return *c.ContactID
}

// CategoryName returns the name of the joined category, if loaded.
func (c *Contact) CategoryName() string {
	if c == nil || c.Category == nil {
		return ""
	}
	return c.Category.CategoryName
}

// ContactDTO is the API representation of a contact.
type ContactDTO struct {
	ContactID    *int64 `db:"contact_id" json:"contactId"`
	ContactName  string `db:"contact_name" json:"contactName"`
	ContactEmail string `db:"contact_email" json:"contactEmail"`
	CategoryID   int64  `db:"category_id" json:"categoryId"`
	CategoryName string `db:"category_name" json:"categoryName"`
}
