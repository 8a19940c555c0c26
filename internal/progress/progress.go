// Package progress tracks $/progress tokens for long-running operations
// (workspace indexing) per spec.md §6's protocol surface. Tokens are
// generated with google/uuid, matching the rest of the module's reliance
// on generated rather than hand-rolled identifiers.
package progress

import "github.com/google/uuid"

// NewToken returns a fresh progress token suitable for
// window/workDoneProgress/create and every $/progress notification that
// follows it.
func NewToken() string {
	return uuid.NewString()
}

// Report is one $/progress notification payload's `value` field.
type Report struct {
	Kind       string `json:"kind"` // "begin", "report", or "end"
	Title      string `json:"title,omitempty"`
	Message    string `json:"message,omitempty"`
	Percentage uint32 `json:"percentage,omitempty"`
}

// Begin starts a new work-done progress report.
func Begin(title, message string) Report {
	return Report{Kind: "begin", Title: title, Message: message}
}

// Update reports incremental progress.
func Update(message string, percentage uint32) Report {
	return Report{Kind: "report", Message: message, Percentage: percentage}
}

// End finishes a work-done progress report.
func End(message string) Report {
	return Report{Kind: "end", Message: message}
}
