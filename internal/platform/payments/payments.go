package payments

import "context"

// Provider creates charge intents with the external payment processor.
type Provider interface {
	CreateIntent(ctx context.Context, amountCents int64, currency string) (clientSecret string, err error)
}
