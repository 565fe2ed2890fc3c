package orderrepo

import (
	"context"
	"errors"

	"mealdrop/internal/core/domain/model/kernel"
	"mealdrop/internal/core/domain/model/order"
	"mealdrop/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking modified aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order and its lines.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves changes to an existing order. Lines are immutable after
// checkout and are not rewritten.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"shipper_id":     dto.ShipperID,
			"status":         dto.Status,
			"payment_status": dto.PaymentStatus,
			"stock_released": dto.StockReleased,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID, lines included.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, r.db, id)
}

// GetForUpdate retrieves an order by ID holding a row lock until the
// surrounding transaction ends.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

// Claim assigns the order to the shipper with one conditional UPDATE. The
// row moves to DELIVERING only if it is still unassigned and claimable, so
// concurrent claims cannot both succeed.
func (r *GormOrderRepository) Claim(ctx context.Context, orderID, shipperID kernel.UUID) (*order.Order, error) {
	if err := errors.Join(orderID.Validate(), shipperID.Validate()); err != nil {
		return nil, err
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND shipper_id IS NULL AND status IN ?",
			orderID.Bytes(),
			[]string{order.Pending.String(), order.ReadyForPickup.String()}).
		Updates(map[string]any{
			"shipper_id": shipperID.Bytes(),
			"status":     order.Delivering.String(),
		})
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, r.classifyClaimFailure(ctx, orderID, shipperID)
	}

	aggregate, err := r.get(ctx, r.db, orderID)
	if err != nil {
		return nil, err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return aggregate, nil
}

// GetAllCanceledUnreleased retrieves canceled orders whose stock was never
// credited back, oldest first.
func (r *GormOrderRepository) GetAllCanceledUnreleased(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).Preload("Lines").
		Where("status = ? AND stock_released = ?", order.Canceled.String(), false).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, toErr := toDomain(dto)
		if toErr != nil {
			return nil, toErr
		}
		orders = append(orders, aggregate)
	}

	return orders, nil
}

func (r *GormOrderRepository) get(ctx context.Context, db *gorm.DB, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := db.WithContext(ctx).Preload("Lines").First(&dto, "orders.id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// classifyClaimFailure tells a lost race apart from an order that was never
// claimable. Both answer RowsAffected == 0; replaying the claim against the
// re-read aggregate names the rule that blocked it.
func (r *GormOrderRepository) classifyClaimFailure(ctx context.Context, orderID, shipperID kernel.UUID) error {
	current, err := r.get(ctx, r.db, orderID)
	if err != nil {
		return err
	}

	if err = current.Claim(order.RoleShipper, shipperID); err != nil {
		return err
	}

	return errs.NewConflictError(orderID.String())
}
