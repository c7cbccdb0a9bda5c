package models

import "time"

// EventKind names a credential lifecycle transition.
type EventKind string

const (
	EventRegistered       EventKind = "registered"
	EventPasswordChanged  EventKind = "password_changed"
	EventTemplateEnrolled EventKind = "template_enrolled"
)

// CredentialEvent is one row of the per-user audit trail.
type CredentialEvent struct {
	UserID    string
	Kind      EventKind
	CreatedAt time.Time
}
