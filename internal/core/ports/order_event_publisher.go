package ports

import (
	"context"

	"mealdrop/internal/core/domain/model/order"
)

// OrderEventPublisher notifies interested parties about order lifecycle
// changes. Publishing happens after the owning transaction commits; a failed
// publish is logged by the caller and never rolls business state back.
type OrderEventPublisher interface {
	// PublishStatusChanged announces that the order reached a new status.
	PublishStatusChanged(ctx context.Context, aggregate *order.Order) error
}
