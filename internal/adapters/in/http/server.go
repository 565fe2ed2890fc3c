// Package http exposes the order lifecycle over echo. Handlers translate
// between transport and the application layer: bind and validate the body,
// build a command or query, map domain errors to statuses.
package http

import (
	"net/http"
	"strconv"

	"mealdrop/internal/core/application/usecases/commands"
	"mealdrop/internal/core/application/usecases/queries"
	"mealdrop/internal/core/domain/model/kernel"
	"mealdrop/internal/core/domain/model/order"
	"mealdrop/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	checkoutHandler       *commands.CheckoutOrderCommandHandler
	setStatusHandler      *commands.SetOrderStatusCommandHandler
	cancelHandler         *commands.CancelOrderCommandHandler
	claimHandler          *commands.ClaimOrderCommandHandler
	completeHandler       *commands.CompleteDeliveryCommandHandler
	refundHandler         *commands.RefundOrderCommandHandler
	updateLocationHandler *commands.UpdateShipperLocationCommandHandler

	getOrderHandler      queries.GetOrderQueryHandler
	listMyOrdersHandler  queries.ListMyOrdersQueryHandler
	listAvailableHandler queries.ListAvailableOrdersQueryHandler

	validate *validator.Validate
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(
	checkoutHandler *commands.CheckoutOrderCommandHandler,
	setStatusHandler *commands.SetOrderStatusCommandHandler,
	cancelHandler *commands.CancelOrderCommandHandler,
	claimHandler *commands.ClaimOrderCommandHandler,
	completeHandler *commands.CompleteDeliveryCommandHandler,
	refundHandler *commands.RefundOrderCommandHandler,
	updateLocationHandler *commands.UpdateShipperLocationCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	listMyOrdersHandler queries.ListMyOrdersQueryHandler,
	listAvailableHandler queries.ListAvailableOrdersQueryHandler,
) *Server {
	return &Server{
		checkoutHandler:       checkoutHandler,
		setStatusHandler:      setStatusHandler,
		cancelHandler:         cancelHandler,
		claimHandler:          claimHandler,
		completeHandler:       completeHandler,
		refundHandler:         refundHandler,
		updateLocationHandler: updateLocationHandler,
		getOrderHandler:       getOrderHandler,
		listMyOrdersHandler:   listMyOrdersHandler,
		listAvailableHandler:  listAvailableHandler,
		validate:              validator.New(),
	}
}

// RegisterRoutes mounts all order lifecycle routes under /api/v1, protected
// by the given auth middleware.
func (s *Server) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	api := e.Group("/api/v1", auth)

	api.POST("/orders", s.Checkout)
	api.GET("/orders", s.ListMyOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/status", s.SetStatus)
	api.POST("/orders/:id/cancel", s.Cancel)
	api.POST("/orders/:id/claim", s.Claim)
	api.POST("/orders/:id/complete", s.Complete)
	api.POST("/orders/:id/refund", s.Refund)

	api.PUT("/shippers/me/location", s.UpdateLocation)
	api.GET("/dispatch/orders", s.ListAvailableOrders)
}

// Checkout handles POST /api/v1/orders - places a new order.
func (s *Server) Checkout(ctx echo.Context) error {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return unauthorized(ctx, "missing actor")
	}

	var request CheckoutRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	if err := s.validate.Struct(request); err != nil {
		return badRequest(ctx, err.Error())
	}

	merchantID, err := kernel.UUIDFromString(request.MerchantID)
	if err != nil {
		return badRequest(ctx, "invalid merchant id")
	}

	lines := make([]commands.CheckoutLine, 0, len(request.Lines))
	for _, line := range request.Lines {
		menuItemID, lineErr := kernel.UUIDFromString(line.MenuItemID)
		if lineErr != nil {
			return badRequest(ctx, "invalid menu item id")
		}
		lines = append(lines, commands.CheckoutLine{
			MenuItemID: menuItemID,
			Quantity:   line.Quantity,
		})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCheckoutOrderCommand(
		orderID, actor.UserID, merchantID,
		request.DeliveryAddress, request.Note, lines)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.checkoutHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": orderID.String()})
}

// GetOrder handles GET /api/v1/orders/:id - retrieves one order scoped to
// the actor.
func (s *Server) GetOrder(ctx echo.Context) error {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return unauthorized(ctx, "missing actor")
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID, actor.UserID, actor.Role)
	if err != nil {
		return writeError(ctx, err)
	}

	response, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// ListMyOrders handles GET /api/v1/orders - lists the actor's side of the
// order book.
func (s *Server) ListMyOrders(ctx echo.Context) error {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return unauthorized(ctx, "missing actor")
	}

	query, err := queries.NewListMyOrdersQuery(actor.UserID, actor.Role)
	if err != nil {
		return writeError(ctx, err)
	}

	summaries, err := s.listMyOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, summaries)
}

// SetStatus handles POST /api/v1/orders/:id/status - requests a status
// transition.
func (s *Server) SetStatus(ctx echo.Context) error {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return unauthorized(ctx, "missing actor")
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var request SetStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	if err = s.validate.Struct(request); err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewSetOrderStatusCommand(
		orderID, actor.UserID, actor.Role, order.Status(request.Status))
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.setStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// Cancel handles POST /api/v1/orders/:id/cancel.
func (s *Server) Cancel(ctx echo.Context) error {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return unauthorized(ctx, "missing actor")
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, actor.UserID, actor.Role)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.cancelHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// Claim handles POST /api/v1/orders/:id/claim - a shipper takes an unclaimed
// order.
func (s *Server) Claim(ctx echo.Context) error {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return unauthorized(ctx, "missing actor")
	}
	if actor.Role != order.RoleShipper {
		return writeError(ctx, errs.NewForbiddenError(string(actor.Role), "claim order"))
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewClaimOrderCommand(orderID, actor.UserID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.claimHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// Complete handles POST /api/v1/orders/:id/complete - the assigned shipper
// finishes the delivery.
func (s *Server) Complete(ctx echo.Context) error {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return unauthorized(ctx, "missing actor")
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewCompleteDeliveryCommand(orderID, actor.UserID, actor.Role)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.completeHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// Refund handles POST /api/v1/orders/:id/refund.
func (s *Server) Refund(ctx echo.Context) error {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return unauthorized(ctx, "missing actor")
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewRefundOrderCommand(orderID, actor.UserID, actor.Role)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.refundHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateLocation handles PUT /api/v1/shippers/me/location.
func (s *Server) UpdateLocation(ctx echo.Context) error {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return unauthorized(ctx, "missing actor")
	}
	if actor.Role != order.RoleShipper {
		return writeError(ctx, errs.NewForbiddenError(string(actor.Role), "report location"))
	}

	var request UpdateLocationRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	if err := s.validate.Struct(request); err != nil {
		return badRequest(ctx, err.Error())
	}

	position, err := kernel.NewGeoPoint(request.Lat, request.Lng)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateShipperLocationCommand(actor.UserID, position)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.updateLocationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ListAvailableOrders handles GET /api/v1/dispatch/orders - the ranked feed
// of unclaimed orders. Optional lat/lng query parameters override the
// shipper's stored position; an optional radius parameter (km) overrides the
// configured search radius.
func (s *Server) ListAvailableOrders(ctx echo.Context) error {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return unauthorized(ctx, "missing actor")
	}
	if actor.Role != order.RoleShipper {
		return writeError(ctx, errs.NewForbiddenError(string(actor.Role), "list available orders"))
	}

	position, err := positionFromParams(ctx.QueryParam("lat"), ctx.QueryParam("lng"))
	if err != nil {
		return badRequest(ctx, "invalid coordinates")
	}

	radius, err := radiusFromParam(ctx.QueryParam("radius"))
	if err != nil {
		return badRequest(ctx, "invalid radius")
	}

	query, err := queries.NewListAvailableOrdersQuery(actor.UserID, position, radius)
	if err != nil {
		return writeError(ctx, err)
	}

	feed, err := s.listAvailableHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, feed)
}

func positionFromParams(latParam, lngParam string) (*kernel.GeoPoint, error) {
	if latParam == "" && lngParam == "" {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(latParam, 64)
	if err != nil {
		return nil, err
	}
	lng, err := strconv.ParseFloat(lngParam, 64)
	if err != nil {
		return nil, err
	}

	point, err := kernel.NewGeoPoint(lat, lng)
	if err != nil {
		return nil, err
	}
	return &point, nil
}

func radiusFromParam(radiusParam string) (*float64, error) {
	if radiusParam == "" {
		return nil, nil
	}

	radius, err := strconv.ParseFloat(radiusParam, 64)
	if err != nil {
		return nil, err
	}
	return &radius, nil
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
