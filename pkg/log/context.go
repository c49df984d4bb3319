package log

import "context"

const (
	ModeProduction = "production"
	EncodingJSON   = "json"
)

type deliveryIDKey struct{}

// WithDeliveryID tags ctx so every log line written with it carries the webhook delivery id.
func WithDeliveryID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, deliveryIDKey{}, id)
}

// DeliveryID returns the delivery id stored by WithDeliveryID, if any.
func DeliveryID(ctx context.Context) string {
	id, _ := ctx.Value(deliveryIDKey{}).(string)
	return id
}
