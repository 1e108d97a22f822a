package workflow

import (
	"context"
	"database/sql"

	"nova-hris/internal/session"
)

// Summary describes the activity appended for a submission or decision.
// Data is passed to the i18n template; Status is filled in by the engine for
// decisions.
type Summary struct {
	ActivityType string
	MessageID    string
	Data         map[string]any
}

// Kind plugs one request type into the engine.
type Kind[E any, P Record[E]] struct {
	Name string

	// Prepare may load context the form needs (runs before Validate, outside
	// the transaction).
	Prepare func(ctx context.Context, actor session.Actor, p P) error

	// Validate checks kind fields and may normalise them (trim, sanitise,
	// derive counts). It must not touch the store.
	Validate func(p P) error

	Submitted func(p P) Summary
	Decided   func(p P) Summary

	// OnApprove runs inside the decision transaction when approving.
	OnApprove func(ctx context.Context, tx *sql.Tx, p P) error
}
