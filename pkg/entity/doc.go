// Package entity maps database rows onto Go structs and back.
//
// Struct fields are matched to columns by their `db` tag or, without a tag,
// by name ignoring case and separators, so a CategoryID field receives the
// category_id column. Fields tagged `db:"-"` are never mapped.
package entity
