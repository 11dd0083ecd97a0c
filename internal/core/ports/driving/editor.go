package driving

import (
	"context"

	"github.com/custodia-labs/listing-studio/internal/core/domain"
)

// EditorSession is the single editing session over one property.
// Intents are applied one at a time in the order they are accepted.
type EditorSession interface {
	// Apply applies one intent. Editing intents fail with
	// domain.ErrAdminRequired outside admin mode.
	Apply(ctx context.Context, intent Intent) (Outcome, error)

	// Property returns the current committed document.
	Property() domain.Property

	// Selected returns the element in edit focus, if any.
	Selected() (domain.ElementRef, bool)

	// Admin reports whether editing affordances are enabled.
	Admin() bool

	// SetAdmin toggles admin mode. Turning it off clears the selection.
	SetAdmin(on bool)

	// Subscribe registers fn to receive every committed document.
	// Observers run synchronously and must not call back into the session.
	Subscribe(fn func(domain.Property)) (cancel func())

	// SubscribeErrors registers fn to receive failures that no intent
	// returns, such as a failed background save.
	SubscribeErrors(fn func(error)) (cancel func())

	// Flush commits buffered values and waits until the latest committed
	// document has been saved.
	Flush(ctx context.Context) error

	// Close flushes and shuts the session down.
	Close(ctx context.Context) error
}

// Workspace hands out editor sessions, one per property.
type Workspace interface {
	// Open returns the session for a property, loading it on first use.
	Open(ctx context.Context, propertyID string) (EditorSession, error)

	// Close flushes and closes every open session.
	Close(ctx context.Context) error
}
