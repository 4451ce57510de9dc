// Package models provides small data types shared between the catalog,
// the configuration layer and the project generator.
//
// # Authors
//
// [Author] is written verbatim into the generated package.json; empty
// email and url are omitted:
//
//	a := models.Author{Name: "Nazmul Hassan", Email: "nazmulnhb@gmail.com"}
//
// # Engines
//
// [Engine] names the database server behind a database choice and appears
// in the generated project description, e.g. "(PostgreSQL)".
package models
