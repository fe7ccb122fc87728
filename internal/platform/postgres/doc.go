// Package postgres provides the relational implementations of the storage
// interfaces defined in internal/store. Queries are written once in a
// subset of SQL that PostgreSQL (through pgx) and SQLite (through
// go-sqlite3) both accept: $N placeholders numbered in order of first
// appearance, RETURNING on inserts, and LOWER(...) LIKE for searches.
package postgres
