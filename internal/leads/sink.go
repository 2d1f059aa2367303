package leads

import "context"

// Sink is a durable destination for leads. Deliver reports whether the
// sink accepted the lead; (false, nil) means the sink declined, for
// example because it is not configured.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, lead Lead) (bool, error)
}

// Notifier is told about every lead after a sink has stored it.
type Notifier interface {
	NotifyLead(ctx context.Context, lead Lead) error
}
