package http

// Request bodies are validated structurally with validator tags before they
// reach the command constructors; semantic validation stays in the core.

// CheckoutLineRequest is one item of a checkout request.
type CheckoutLineRequest struct {
	MenuItemID string `json:"menu_item_id" validate:"required,uuid"`
	Quantity   int    `json:"quantity" validate:"required,gt=0"`
}

// CheckoutRequest places a new order.
type CheckoutRequest struct {
	MerchantID      string                `json:"merchant_id" validate:"required,uuid"`
	DeliveryAddress string                `json:"delivery_address" validate:"required"`
	Note            string                `json:"note" validate:"max=500"`
	Lines           []CheckoutLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// SetStatusRequest requests an order status transition.
type SetStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateLocationRequest reports the shipper's current position.
type UpdateLocationRequest struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" validate:"gte=-180,lte=180"`
}
