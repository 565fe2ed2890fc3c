package queries

import (
	"context"

	"mealdrop/internal/core/domain/model/kernel"
	"mealdrop/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListMyOrdersQueryHandler lists orders for the requesting actor, newest
// first. Shippers only see their in-flight deliveries; everyone else sees
// their full history.
type ListMyOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListMyOrdersQueryHandler creates a handler for order listings.
func NewListMyOrdersQueryHandler(db *gorm.DB) ListMyOrdersQueryHandler {
	return ListMyOrdersQueryHandler{db: db}
}

// Handle executes the listing.
func (h ListMyOrdersQueryHandler) Handle(ctx context.Context, query ListMyOrdersQuery) ([]OrderSummaryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	where, args := h.scope(query.Role(), query.ActorID())

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			payment_status,
			total_amount,
			delivery_address,
			created_at
		FROM orders
		`+where+`
		ORDER BY created_at DESC`,
		args...,
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]OrderSummaryResponse, 0)

	for rows.Next() {
		var (
			summary OrderSummaryResponse
			id      uuid.UUID
		)

		err = rows.Scan(
			&id,
			&summary.Status,
			&summary.PaymentStatus,
			&summary.TotalAmount,
			&summary.DeliveryAddress,
			&summary.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if summary.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}

// scope restricts the listing to what the role is entitled to see. A shipper
// browsing "my orders" means the deliveries currently on their bike, not the
// whole delivery history.
func (h ListMyOrdersQueryHandler) scope(role order.Role, actorID kernel.UUID) (string, []any) {
	switch role {
	case order.RoleCustomer:
		return "WHERE customer_id = ?", []any{actorID.Bytes()}
	case order.RoleMerchant:
		return "WHERE merchant_id = ?", []any{actorID.Bytes()}
	case order.RoleShipper:
		return "WHERE shipper_id = ? AND status IN (?, ?)",
			[]any{actorID.Bytes(), order.PickedUp.String(), order.Delivering.String()}
	default:
		return "", nil
	}
}
