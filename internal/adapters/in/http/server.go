// Package http exposes the workflow operations over an echo server.
//
// The actor context comes from the X-User-Id and X-User-Role headers,
// placed there by the gateway in front of this service. Validator
// rejections map to the structured JSON shape
// {valid: false, code, message, missingFields?, insufficientItems?}.
package http

import (
	"errors"
	"net/http"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/actor"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	headerUserID   = "X-User-Id"
	headerUserRole = "X-User-Role"
)

// Server wires the HTTP surface to the command and query handlers.
type Server struct {
	createOrderHandler        commands.CreateOrderCommandHandler
	updateStatusHandler       commands.UpdateStatusCommandHandler
	assignRiderHandler        commands.AssignRiderCommandHandler
	markOutForDeliveryHandler commands.MarkOutForDeliveryCommandHandler
	handoverToCourierHandler  commands.HandoverToCourierCommandHandler
	markDeliveredHandler      commands.MarkDeliveredCommandHandler
	markReturnedHandler       commands.MarkReturnedCommandHandler
	cancelOrderHandler        commands.CancelOrderCommandHandler
	bulkUpdateStatusHandler   commands.BulkUpdateStatusCommandHandler

	getActiveOrdersHandler   queries.GetActiveOrdersQueryHandler
	getStockMovementsHandler queries.GetStockMovementsQueryHandler
}

// NewServer creates the HTTP server with all required handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateStatusHandler commands.UpdateStatusCommandHandler,
	assignRiderHandler commands.AssignRiderCommandHandler,
	markOutForDeliveryHandler commands.MarkOutForDeliveryCommandHandler,
	handoverToCourierHandler commands.HandoverToCourierCommandHandler,
	markDeliveredHandler commands.MarkDeliveredCommandHandler,
	markReturnedHandler commands.MarkReturnedCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	bulkUpdateStatusHandler commands.BulkUpdateStatusCommandHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
	getStockMovementsHandler queries.GetStockMovementsQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:        createOrderHandler,
		updateStatusHandler:       updateStatusHandler,
		assignRiderHandler:        assignRiderHandler,
		markOutForDeliveryHandler: markOutForDeliveryHandler,
		handoverToCourierHandler:  handoverToCourierHandler,
		markDeliveredHandler:      markDeliveredHandler,
		markReturnedHandler:       markReturnedHandler,
		cancelOrderHandler:        cancelOrderHandler,
		bulkUpdateStatusHandler:   bulkUpdateStatusHandler,
		getActiveOrdersHandler:    getActiveOrdersHandler,
		getStockMovementsHandler:  getStockMovementsHandler,
	}
}

// RegisterRoutes mounts all workflow routes under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/active", s.GetActiveOrders)
	api.POST("/orders/bulk-status", s.BulkUpdateStatus)

	api.POST("/orders/:id/status", s.UpdateStatus)
	api.POST("/orders/:id/assign", s.AssignRider)
	api.POST("/orders/:id/out-for-delivery", s.MarkOutForDelivery)
	api.POST("/orders/:id/handover", s.HandoverToCourier)
	api.POST("/orders/:id/delivered", s.MarkDelivered)
	api.POST("/orders/:id/returned", s.MarkReturned)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.GET("/orders/:id/movements", s.GetStockMovements)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	a, err := actorFromHeaders(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req createOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	channel, err := order.FulfillmentTypeFromString(req.Channel)
	if err != nil {
		return badRequest(ctx, err)
	}

	lines := make([]order.Line, 0, len(req.Lines))
	for _, l := range req.Lines {
		variantID, lineErr := kernel.UUIDFromString(l.VariantID)
		if lineErr != nil {
			return badRequest(ctx, lineErr)
		}
		unitPrice, lineErr := kernel.NewMoney(l.UnitPrice)
		if lineErr != nil {
			return badRequest(ctx, lineErr)
		}
		unitCost, lineErr := kernel.NewMoney(l.UnitCost)
		if lineErr != nil {
			return badRequest(ctx, lineErr)
		}
		line, lineErr := order.NewLine(variantID, l.Quantity, unitPrice, unitCost)
		if lineErr != nil {
			return badRequest(ctx, lineErr)
		}
		lines = append(lines, line)
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), channel, lines, a)
	if err != nil {
		return badRequest(ctx, err)
	}

	result, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toOrderResponse(result))
}

// UpdateStatus handles POST /api/v1/orders/:id/status.
func (s *Server) UpdateStatus(ctx echo.Context) error {
	orderID, a, err := orderAndActor(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req updateStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	target, err := order.StatusFromString(req.Target)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewUpdateStatusCommand(orderID, target, a, req.Reason)
	if err != nil {
		return badRequest(ctx, err)
	}

	result, err := s.updateStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(result))
}

// AssignRider handles POST /api/v1/orders/:id/assign.
func (s *Server) AssignRider(ctx echo.Context) error {
	orderID, a, err := orderAndActor(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req assignRiderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	riderID, err := kernel.UUIDFromString(req.RiderID)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewAssignRiderCommand(orderID, riderID, a)
	if err != nil {
		return badRequest(ctx, err)
	}

	result, err := s.assignRiderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(result))
}

// MarkOutForDelivery handles POST /api/v1/orders/:id/out-for-delivery.
func (s *Server) MarkOutForDelivery(ctx echo.Context) error {
	orderID, a, err := orderAndActor(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewMarkOutForDeliveryCommand(orderID, a)
	if err != nil {
		return badRequest(ctx, err)
	}

	result, err := s.markOutForDeliveryHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(result))
}

// HandoverToCourier handles POST /api/v1/orders/:id/handover.
func (s *Server) HandoverToCourier(ctx echo.Context) error {
	orderID, a, err := orderAndActor(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req handoverRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	cmd, err := commands.NewHandoverToCourierCommand(
		orderID,
		req.CourierPartner,
		req.TrackingCode,
		req.DestinationBranch,
		parseDeliveryVariant(req.DeliveryVariant),
		a,
	)
	if err != nil {
		return badRequest(ctx, err)
	}

	result, err := s.handoverToCourierHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(result))
}

// MarkDelivered handles POST /api/v1/orders/:id/delivered.
func (s *Server) MarkDelivered(ctx echo.Context) error {
	orderID, a, err := orderAndActor(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewMarkDeliveredCommand(orderID, a)
	if err != nil {
		return badRequest(ctx, err)
	}

	result, err := s.markDeliveredHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(result))
}

// MarkReturned handles POST /api/v1/orders/:id/returned.
func (s *Server) MarkReturned(ctx echo.Context) error {
	orderID, a, err := orderAndActor(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req reasonRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	cmd, err := commands.NewMarkReturnedCommand(orderID, req.Reason, a)
	if err != nil {
		return badRequest(ctx, err)
	}

	result, err := s.markReturnedHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(result))
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, a, err := orderAndActor(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req reasonRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, req.Reason, a)
	if err != nil {
		return badRequest(ctx, err)
	}

	result, err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(result))
}

// BulkUpdateStatus handles POST /api/v1/orders/bulk-status.
func (s *Server) BulkUpdateStatus(ctx echo.Context) error {
	a, err := actorFromHeaders(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req bulkUpdateRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	target, err := order.StatusFromString(req.Target)
	if err != nil {
		return badRequest(ctx, err)
	}

	orderIDs := make([]kernel.UUID, 0, len(req.OrderIDs))
	for _, raw := range req.OrderIDs {
		id, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return badRequest(ctx, idErr)
		}
		orderIDs = append(orderIDs, id)
	}

	cmd, err := commands.NewBulkUpdateStatusCommand(orderIDs, target, a, req.Reason)
	if err != nil {
		return badRequest(ctx, err)
	}

	result, err := s.bulkUpdateStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	resp := bulkUpdateResponse{
		Succeeded: make([]string, 0, len(result.Succeeded)),
		Failed:    make([]bulkFailureItem, 0, len(result.Failed)),
	}
	for _, id := range result.Succeeded {
		resp.Succeeded = append(resp.Succeeded, id.String())
	}
	for _, f := range result.Failed {
		resp.Failed = append(resp.Failed, bulkFailureItem{ID: f.OrderID.String(), Reason: f.Reason})
	}

	return ctx.JSON(http.StatusOK, resp)
}

// GetActiveOrders handles GET /api/v1/orders/active.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	query := queries.NewGetActiveOrdersQuery()

	rows, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toActiveOrderItems(rows))
}

// GetStockMovements handles GET /api/v1/orders/:id/movements.
func (s *Server) GetStockMovements(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetStockMovementsQuery(orderID)
	if err != nil {
		return badRequest(ctx, err)
	}

	rows, err := s.getStockMovementsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toMovementItems(rows))
}

// writeError maps application errors to HTTP responses. Validator
// rejections get the structured rejection shape; everything else maps to
// a plain error body.
func (s *Server) writeError(ctx echo.Context, err error) error {
	var invalidTransition *services.InvalidTransitionError
	if errors.As(err, &invalidTransition) {
		return ctx.JSON(http.StatusConflict, rejectionResponse{
			Code:    string(invalidTransition.Code()),
			Message: invalidTransition.Error(),
		})
	}

	var roleMismatch *services.RoleMismatchError
	if errors.As(err, &roleMismatch) {
		return ctx.JSON(http.StatusForbidden, rejectionResponse{
			Code:    string(roleMismatch.Code()),
			Message: roleMismatch.Error(),
		})
	}

	var wrongRider *services.WrongAssignedRiderError
	if errors.As(err, &wrongRider) {
		return ctx.JSON(http.StatusForbidden, rejectionResponse{
			Code:    string(wrongRider.Code()),
			Message: wrongRider.Error(),
		})
	}

	var missingFields *services.MissingFieldsError
	if errors.As(err, &missingFields) {
		return ctx.JSON(http.StatusUnprocessableEntity, rejectionResponse{
			Code:          string(missingFields.Code()),
			Message:       missingFields.Error(),
			MissingFields: missingFields.Fields,
			Hint:          missingFields.Hint,
		})
	}

	var insufficientStock *services.InsufficientStockError
	if errors.As(err, &insufficientStock) {
		items := make([]insufficientItem, len(insufficientStock.Shortfalls))
		for i, shortfall := range insufficientStock.Shortfalls {
			items[i] = insufficientItem{
				VariantID: shortfall.VariantID.String(),
				Requested: shortfall.Requested,
				Available: shortfall.Available,
				Shortfall: shortfall.Shortfall,
			}
		}
		return ctx.JSON(http.StatusConflict, rejectionResponse{
			Code:              string(insufficientStock.Code()),
			Message:           insufficientStock.Error(),
			InsufficientItems: items,
		})
	}

	if errors.Is(err, errs.ErrObjectNotFound) {
		return ctx.JSON(http.StatusNotFound, errorResponse{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	}

	return ctx.JSON(http.StatusInternalServerError, errorResponse{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	})
}

func badRequest(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{
		Code:    http.StatusBadRequest,
		Message: err.Error(),
	})
}

func orderAndActor(ctx echo.Context) (kernel.UUID, actor.Context, error) {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return kernel.UUID{}, actor.Context{}, err
	}

	a, err := actorFromHeaders(ctx)
	if err != nil {
		return kernel.UUID{}, actor.Context{}, err
	}

	return orderID, a, nil
}

func actorFromHeaders(ctx echo.Context) (actor.Context, error) {
	userID, err := kernel.UUIDFromString(ctx.Request().Header.Get(headerUserID))
	if err != nil {
		return actor.Context{}, errors.New("missing or invalid " + headerUserID + " header")
	}

	role, err := actor.RoleFromString(ctx.Request().Header.Get(headerUserRole))
	if err != nil {
		return actor.Context{}, errors.New("missing or invalid " + headerUserRole + " header")
	}

	return actor.NewContext(userID, role)
}
