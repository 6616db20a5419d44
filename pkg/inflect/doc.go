// Package inflect implements the naming conventions the framework relies on
// to map URL segments to controllers, entities to tables and attributes to
// columns.
//
// The rules are intentionally naive English inflections:
//
//	inflect.Pluralize("category")     // "categories"
//	inflect.Pascalize("contact_email") // "ContactEmail"
//	inflect.SnakeCase("CategoryID")    // "category_id"
//	inflect.TableName("Contact")       // "contacts"
package inflect
