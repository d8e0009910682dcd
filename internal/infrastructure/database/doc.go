// Package database manages the SQLite connection and embedded schema
// migrations for LED Hub. It normalizes legacy sqlite:// connection
// strings, enforces a single-writer connection pool, and applies
// versioned migrations at startup.
package database
