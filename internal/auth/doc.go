// Package auth implements user accounts, password hashing, and
// server-side sessions for LED Hub.
//
// Passwords are hashed with Argon2id and stored in PHC string format.
// Sessions are rows in the sessions table; the browser carries only a
// signed token referencing the session id, so revocation is a simple
// row delete.
package auth
