package inventoryrepo

import (
	"context"
	"errors"

	"mealdrop/internal/core/domain/model/catalog"
	"mealdrop/internal/core/domain/model/kernel"
	"mealdrop/internal/core/ports"
	"mealdrop/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormInventoryRepository implements ports.InventoryRepository using GORM.
type GormInventoryRepository struct {
	db *gorm.DB
}

// NewGormInventoryRepository creates a new GORM inventory repository.
func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// Get retrieves a menu item by ID.
func (r *GormInventoryRepository) Get(ctx context.Context, id kernel.UUID) (catalog.MenuItem, error) {
	if err := id.Validate(); err != nil {
		return catalog.MenuItem{}, err
	}

	var dto MenuItemDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return catalog.MenuItem{}, errs.NewObjectNotFoundError("menu item", id)
		}
		return catalog.MenuItem{}, err
	}

	return toDomain(dto)
}

// Reserve decrements stock per line with one conditional UPDATE each. The
// availability flag flips off in the same statement when the decrement
// empties the stock, so there is no window where an emptied item still shows
// as available. The first line that cannot be covered aborts with
// errs.InsufficientStockError and the caller rolls the transaction back.
func (r *GormInventoryRepository) Reserve(ctx context.Context, lines []ports.ReserveLine) ([]catalog.MenuItem, error) {
	items := make([]catalog.MenuItem, 0, len(lines))

	for _, line := range lines {
		result := r.db.WithContext(ctx).Model(&MenuItemDTO{}).
			Where("id = ? AND is_available = ? AND stock >= ?",
				line.MenuItemID.Bytes(), true, line.Quantity).
			Updates(map[string]any{
				"stock":        gorm.Expr("stock - ?", line.Quantity),
				"is_available": gorm.Expr("stock - ? > 0", line.Quantity),
			})
		if result.Error != nil {
			return nil, result.Error
		}

		if result.RowsAffected == 0 {
			return nil, r.classifyReserveFailure(ctx, line)
		}

		item, err := r.Get(ctx, line.MenuItemID)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

// Release credits previously reserved stock back. Items deleted from the
// catalog since the reservation are skipped.
func (r *GormInventoryRepository) Release(ctx context.Context, lines []ports.ReserveLine) error {
	for _, line := range lines {
		err := r.db.WithContext(ctx).Model(&MenuItemDTO{}).
			Where("id = ?", line.MenuItemID.Bytes()).
			Updates(map[string]any{
				"stock":        gorm.Expr("stock + ?", line.Quantity),
				"is_available": true,
			}).Error
		if err != nil {
			return err
		}
	}

	return nil
}

// classifyReserveFailure reports why the conditional decrement matched no
// row: the item is gone, or the remaining stock cannot cover the request.
// When the re-read shows the item could cover it after all, the decrement
// lost a race with a concurrent release and the caller may simply retry.
func (r *GormInventoryRepository) classifyReserveFailure(ctx context.Context, line ports.ReserveLine) error {
	item, err := r.Get(ctx, line.MenuItemID)
	if err != nil {
		return err
	}

	if item.CanFulfill(line.Quantity) {
		return errs.NewConflictError(item.ID().String())
	}

	available := item.Stock()
	if !item.IsAvailable() {
		available = 0
	}

	return errs.NewInsufficientStockError(
		item.ID().String(), item.Name(), line.Quantity, available)
}
