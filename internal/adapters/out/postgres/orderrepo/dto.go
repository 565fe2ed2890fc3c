// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, including the compare-and-swap claim used by dispatch.
package orderrepo

import (
	"time"

	"mealdrop/internal/core/domain/model/kernel"
	"mealdrop/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Indexed by the three parties that query their side of the order book and by
// the status/shipper pair the dispatch feed filters on.
type OrderDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID      uuid.UUID  `gorm:"type:uuid;index"`
	MerchantID      uuid.UUID  `gorm:"type:uuid;index"`
	ShipperID       *uuid.UUID `gorm:"type:uuid;index"`
	Status          string     `gorm:"type:varchar(32);index"`
	PaymentStatus   string     `gorm:"type:varchar(16)"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric(14,2)"`
	DeliveryAddress string
	Note            string
	StockReleased   bool
	CreatedAt       time.Time `gorm:"index"`

	Lines []OrderLineDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderLineDTO represents one persisted order line. MenuItemID is a weak
// reference: it is kept nullable and never constrained so catalog deletions
// cannot break order history.
type OrderLineDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID  `gorm:"type:uuid;index"`
	MenuItemID    *uuid.UUID `gorm:"type:uuid"`
	NameSnapshot  string
	PriceSnapshot decimal.Decimal `gorm:"type:numeric(14,2)"`
	Quantity      int
	LineTotal     decimal.Decimal `gorm:"type:numeric(14,2)"`
}

// TableName overrides GORM's default naming to use "order_lines".
func (OrderLineDTO) TableName() string {
	return "order_lines"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var shipperID *uuid.UUID
	if id := aggregate.ShipperID(); id != nil {
		raw := id.Bytes()
		shipperID = &raw
	}

	lines := make([]OrderLineDTO, 0, len(aggregate.Lines()))
	for _, line := range aggregate.Lines() {
		var menuItemID *uuid.UUID
		if id := line.MenuItemID(); id != nil {
			raw := id.Bytes()
			menuItemID = &raw
		}

		lines = append(lines, OrderLineDTO{
			ID:            line.ID().Bytes(),
			OrderID:       aggregate.ID().Bytes(),
			MenuItemID:    menuItemID,
			NameSnapshot:  line.Name(),
			PriceSnapshot: line.Price(),
			Quantity:      line.Quantity(),
			LineTotal:     line.Total(),
		})
	}

	return OrderDTO{
		ID:              aggregate.ID().Bytes(),
		CustomerID:      aggregate.CustomerID().Bytes(),
		MerchantID:      aggregate.MerchantID().Bytes(),
		ShipperID:       shipperID,
		Status:          aggregate.Status().String(),
		PaymentStatus:   aggregate.PaymentStatus().String(),
		TotalAmount:     aggregate.TotalAmount(),
		DeliveryAddress: aggregate.DeliveryAddress(),
		Note:            aggregate.Note(),
		StockReleased:   aggregate.StockReleased(),
		CreatedAt:       aggregate.CreatedAt(),
		Lines:           lines,
	}
}

// toDomain reconstructs the aggregate, lines included, via RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	merchantID, err := kernel.UUIDFromBytes(dto.MerchantID[:])
	if err != nil {
		return nil, err
	}

	var shipperID *kernel.UUID
	if dto.ShipperID != nil {
		sID, shipperErr := kernel.UUIDFromBytes((*dto.ShipperID)[:])
		if shipperErr != nil {
			return nil, shipperErr
		}
		shipperID = &sID
	}

	lines := make([]order.Line, 0, len(dto.Lines))
	for _, lineDTO := range dto.Lines {
		line, lineErr := lineToDomain(lineDTO)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return order.RestoreOrder(
		id, customerID, merchantID, shipperID,
		order.Status(dto.Status), order.PaymentStatus(dto.PaymentStatus),
		lines, dto.TotalAmount, dto.DeliveryAddress, dto.Note,
		dto.StockReleased, dto.CreatedAt)
}

func lineToDomain(dto OrderLineDTO) (order.Line, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.Line{}, err
	}

	var menuItemID *kernel.UUID
	if dto.MenuItemID != nil {
		mID, itemErr := kernel.UUIDFromBytes((*dto.MenuItemID)[:])
		if itemErr != nil {
			return order.Line{}, itemErr
		}
		menuItemID = &mID
	}

	return order.RestoreLine(
		id, menuItemID, dto.NameSnapshot, dto.PriceSnapshot,
		dto.Quantity, dto.LineTotal)
}
