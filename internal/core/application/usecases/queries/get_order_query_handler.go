package queries

import (
	"context"
	"database/sql"
	"errors"

	"mealdrop/internal/core/domain/model/kernel"
	"mealdrop/internal/core/domain/model/order"
	"mealdrop/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order straight from the database. The
// actor's scope is part of the WHERE clause, so an order belonging to someone
// else and an order that does not exist are indistinguishable to the caller.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for scoped order lookups.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the lookup.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	where, args := scopeCondition(query.Role(), query.ActorID())
	args = append([]any{query.OrderID().Bytes()}, args...)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.customer_id,
			o.merchant_id,
			COALESCE(m.name, ''),
			COALESCE(m.address, ''),
			o.shipper_id,
			o.status,
			o.payment_status,
			o.total_amount,
			o.delivery_address,
			o.note,
			o.created_at
		FROM orders o
		LEFT JOIN merchants m ON m.id = o.merchant_id
		WHERE o.id = ?`+where,
		args...,
	).Row()

	var (
		response  GetOrderQueryResponse
		id        uuid.UUID
		custID    uuid.UUID
		merchID   uuid.UUID
		shipperID uuid.NullUUID
	)

	err := row.Scan(
		&id,
		&custID,
		&merchID,
		&response.MerchantName,
		&response.MerchantAddress,
		&shipperID,
		&response.Status,
		&response.PaymentStatus,
		&response.TotalAmount,
		&response.DeliveryAddress,
		&response.Note,
		&response.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if response.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if response.CustomerID, err = kernel.UUIDFromBytes(custID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if response.MerchantID, err = kernel.UUIDFromBytes(merchID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if shipperID.Valid {
		sid, sidErr := kernel.UUIDFromBytes(shipperID.UUID[:])
		if sidErr != nil {
			return GetOrderQueryResponse{}, sidErr
		}
		response.ShipperID = &sid
	}

	if response.Lines, err = h.loadLines(ctx, query.OrderID()); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return response, nil
}

func (h GetOrderQueryHandler) loadLines(ctx context.Context, orderID kernel.UUID) ([]OrderLineResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name_snapshot,
			price_snapshot,
			quantity,
			line_total
		FROM order_lines
		WHERE order_id = ?
		ORDER BY id`,
		orderID.Bytes(),
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]OrderLineResponse, 0)

	for rows.Next() {
		var (
			line  OrderLineResponse
			id    uuid.UUID
			price decimal.Decimal
			total decimal.Decimal
		)

		if err = rows.Scan(&id, &line.Name, &price, &line.Quantity, &total); err != nil {
			return nil, err
		}

		if line.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		line.Price = price
		line.LineTotal = total
		lines = append(lines, line)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

// scopeCondition narrows a query to the orders the actor is a party to.
func scopeCondition(role order.Role, actorID kernel.UUID) (string, []any) {
	switch role {
	case order.RoleCustomer:
		return " AND customer_id = ?", []any{actorID.Bytes()}
	case order.RoleMerchant:
		return " AND merchant_id = ?", []any{actorID.Bytes()}
	case order.RoleShipper:
		return " AND shipper_id = ?", []any{actorID.Bytes()}
	default:
		return "", nil
	}
}
