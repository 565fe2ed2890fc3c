package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"mealdrop/internal/core/domain/model/kernel"
	"mealdrop/internal/core/domain/model/order"
	"mealdrop/internal/core/domain/model/shipper"
	"mealdrop/internal/core/domain/services"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ListAvailableOrdersQueryHandler builds the dispatch feed. The database
// provides the unclaimed orders and merchant locations; ranking and fee
// quoting are delegated to the domain ranker.
type ListAvailableOrdersQueryHandler struct {
	db          *gorm.DB
	ranker      services.OrderRanker
	locationTTL time.Duration
}

// NewListAvailableOrdersQueryHandler creates a handler for the dispatch feed.
// locationTTL bounds how old a stored shipper position may be before it is
// ignored.
func NewListAvailableOrdersQueryHandler(
	db *gorm.DB,
	ranker services.OrderRanker,
	locationTTL time.Duration,
) ListAvailableOrdersQueryHandler {
	return ListAvailableOrdersQueryHandler{
		db:          db,
		ranker:      ranker,
		locationTTL: locationTTL,
	}
}

type availableOrderRow struct {
	merchantName    string
	merchantAddress string
}

// Handle executes the feed query.
func (h ListAvailableOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListAvailableOrdersQuery,
) ([]AvailableOrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	position, err := h.resolvePosition(ctx, query)
	if err != nil {
		return nil, err
	}

	rowsByID, candidates, err := h.loadUnclaimed(ctx)
	if err != nil {
		return nil, err
	}

	ranker := h.ranker
	if query.RadiusKm() != nil {
		ranker = ranker.WithRadius(*query.RadiusKm())
	}

	ranked, err := ranker.Rank(candidates, position)
	if err != nil {
		return nil, err
	}

	feed := make([]AvailableOrderResponse, 0, len(ranked))
	for _, entry := range ranked {
		row := rowsByID[entry.Order.ID()]
		feed = append(feed, AvailableOrderResponse{
			ID:              entry.Order.ID(),
			MerchantName:    row.merchantName,
			MerchantAddress: row.merchantAddress,
			DeliveryAddress: entry.Order.DeliveryAddress(),
			TotalAmount:     entry.Order.TotalAmount(),
			DeliveryFee:     entry.DeliveryFee,
			DistanceKm:      entry.DistanceKm,
			CreatedAt:       entry.Order.CreatedAt(),
		})
	}

	return feed, nil
}

// resolvePosition picks the shipper position for ranking: coordinates
// attached to the query win, otherwise the last stored report counts while
// fresh. No position at all is not an error.
func (h ListAvailableOrdersQueryHandler) resolvePosition(
	ctx context.Context,
	query ListAvailableOrdersQuery,
) (*kernel.GeoPoint, error) {
	if query.Position() != nil {
		return query.Position(), nil
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT lat, lng, updated_at
		FROM shipper_locations
		WHERE shipper_id = ?`,
		query.ShipperID().Bytes(),
	).Row()

	var (
		lat, lng  float64
		updatedAt time.Time
	)

	err := row.Scan(&lat, &lng, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	point, err := kernel.NewGeoPoint(lat, lng)
	if err != nil {
		return nil, err
	}

	stored, err := shipper.NewLocation(query.ShipperID(), point, updatedAt)
	if err != nil {
		return nil, err
	}

	if !stored.IsFresh(h.locationTTL, time.Now().UTC()) {
		return nil, nil
	}

	return &point, nil
}

func (h ListAvailableOrdersQueryHandler) loadUnclaimed(
	ctx context.Context,
) (map[kernel.UUID]availableOrderRow, []services.Candidate, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.customer_id,
			o.merchant_id,
			o.status,
			o.payment_status,
			o.total_amount,
			o.delivery_address,
			o.note,
			o.stock_released,
			o.created_at,
			m.name,
			m.address,
			m.location_lat,
			m.location_lng
		FROM orders o
		JOIN merchants m ON m.id = o.merchant_id
		WHERE o.shipper_id IS NULL AND o.status IN (?, ?)
		ORDER BY o.created_at`,
		order.Pending.String(), order.ReadyForPickup.String(),
	).Rows()
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	byID := make(map[kernel.UUID]availableOrderRow)
	candidates := make([]services.Candidate, 0)

	for rows.Next() {
		var (
			id, custID, merchID    uuid.UUID
			status, payment        string
			total                  decimal.Decimal
			deliveryAddress, note  string
			stockReleased          bool
			createdAt              time.Time
			merchName, merchAddr   string
			locationLat, locationLng sql.NullFloat64
		)

		err = rows.Scan(
			&id, &custID, &merchID, &status, &payment, &total,
			&deliveryAddress, &note, &stockReleased, &createdAt,
			&merchName, &merchAddr, &locationLat, &locationLng,
		)
		if err != nil {
			return nil, nil, err
		}

		aggregate, restoreErr := restoreFeedOrder(
			id, custID, merchID, status, payment, total,
			deliveryAddress, note, stockReleased, createdAt)
		if restoreErr != nil {
			return nil, nil, restoreErr
		}

		var merchantLocation *kernel.GeoPoint
		if locationLat.Valid && locationLng.Valid {
			point, pointErr := kernel.NewGeoPoint(locationLat.Float64, locationLng.Float64)
			if pointErr != nil {
				return nil, nil, pointErr
			}
			merchantLocation = &point
		}

		byID[aggregate.ID()] = availableOrderRow{
			merchantName:    merchName,
			merchantAddress: merchAddr,
		}
		candidates = append(candidates, services.Candidate{
			Order:            aggregate,
			MerchantLocation: merchantLocation,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	return byID, candidates, nil
}

func restoreFeedOrder(
	id, custID, merchID uuid.UUID,
	status, payment string,
	total decimal.Decimal,
	deliveryAddress, note string,
	stockReleased bool,
	createdAt time.Time,
) (*order.Order, error) {
	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(custID[:])
	if err != nil {
		return nil, err
	}

	merchantID, err := kernel.UUIDFromBytes(merchID[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		orderID, customerID, merchantID, nil,
		order.Status(status), order.PaymentStatus(payment),
		nil, total, deliveryAddress, note, stockReleased, createdAt)
}
