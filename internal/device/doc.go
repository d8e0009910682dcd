// Package device tracks the LED command and reported state and records
// status changes in a capped, deduplicated history log.
//
// Two values are tracked independently: the commanded state set through
// the web UI, and the reported state last confirmed by the
// microcontroller. Only confirmed changes enter the history.
package device
