// Package sqlbuilder provides a small fluent SQL builder for the dialects the
// framework supports: MySQL, PostgreSQL and SQLite.
//
// Queries are written with named parameters (":name") and bound to the
// dialect's positional placeholders at build time:
//
//	q := sqlbuilder.New(sqlbuilder.Postgres).
//		Select("contact_id", "contact_name").
//		From("contacts", "c").
//		InnerJoin("categories", "", "category_id", "category_id").
//		Where("c.category_id = :id").
//		SetParam("id", 3).
//		OrderBy("contact_name")
//
//	query, args, err := q.Build()
//	// SELECT contact_id, contact_name FROM contacts AS c
//	//   INNER JOIN categories USING(category_id)
//	//   WHERE c.category_id = $1 ORDER BY c.contact_name
//
// Writes (Insert, Update, Delete) are queued on the builder and executed with
// Commit. Schema builds CREATE TABLE statements.
package sqlbuilder
