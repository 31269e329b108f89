// Package notify tells the operator about new leads. Delivery is strictly
// best effort: the intake response is already on the wire before a
// notification is attempted, and failures are only logged.
package notify

import (
	"context"

	reserbox "github.com/reserbox/reserbox"
)

// Notifier delivers a new-lead alert to the operator.
type Notifier interface {
	Notify(ctx context.Context, lead reserbox.Lead) error
}

// Nop is the notifier used when no provider is configured.
type Nop struct{}

func (Nop) Notify(context.Context, reserbox.Lead) error { return nil }
