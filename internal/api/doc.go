// Package api exposes the LED Hub HTTP surface: the session-protected
// web pages and the unauthenticated plain-text device endpoints the
// microcontroller polls.
package api
