// Package http exposes the order execution workflow over a REST API.
// Handlers translate requests into commands and queries; all business rules
// live below this layer.
package http

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"fieldservice/internal/core/application/usecases/commands"
	"fieldservice/internal/core/application/usecases/queries"
	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/order"
	"fieldservice/internal/core/ports"
	"fieldservice/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	startOrderHandler        commands.StartOrderCommandHandler
	completeOrderHandler     commands.CompleteOrderCommandHandler
	addPhotoHandler          commands.AddPhotoCommandHandler
	captureSignatureHandler  commands.CaptureSignatureCommandHandler
	stageSignatureHandler    commands.StageSignatureCommandHandler
	discardSignatureHandler  commands.DiscardSignatureCommandHandler
	stageServiceNotesHandler commands.StageServiceNotesCommandHandler
	addLineItemHandler       commands.AddLineItemCommandHandler
	changeLineItemHandler    commands.ChangeLineItemCommandHandler
	removeLineItemHandler    commands.RemoveLineItemCommandHandler

	// Query handlers
	getOrderHandler             queries.GetOrderQueryHandler
	getUncompletedOrdersHandler queries.GetUncompletedOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	startOrderHandler commands.StartOrderCommandHandler,
	completeOrderHandler commands.CompleteOrderCommandHandler,
	addPhotoHandler commands.AddPhotoCommandHandler,
	captureSignatureHandler commands.CaptureSignatureCommandHandler,
	stageSignatureHandler commands.StageSignatureCommandHandler,
	discardSignatureHandler commands.DiscardSignatureCommandHandler,
	stageServiceNotesHandler commands.StageServiceNotesCommandHandler,
	addLineItemHandler commands.AddLineItemCommandHandler,
	changeLineItemHandler commands.ChangeLineItemCommandHandler,
	removeLineItemHandler commands.RemoveLineItemCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getUncompletedOrdersHandler queries.GetUncompletedOrdersQueryHandler,
) *Server {
	return &Server{
		startOrderHandler:           startOrderHandler,
		completeOrderHandler:        completeOrderHandler,
		addPhotoHandler:             addPhotoHandler,
		captureSignatureHandler:     captureSignatureHandler,
		stageSignatureHandler:       stageSignatureHandler,
		discardSignatureHandler:     discardSignatureHandler,
		stageServiceNotesHandler:    stageServiceNotesHandler,
		addLineItemHandler:          addLineItemHandler,
		changeLineItemHandler:       changeLineItemHandler,
		removeLineItemHandler:       removeLineItemHandler,
		getOrderHandler:             getOrderHandler,
		getUncompletedOrdersHandler: getUncompletedOrdersHandler,
	}
}

// RegisterRoutes wires the workflow endpoints onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.GET("/orders/active", s.GetActiveOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/start", s.StartOrder)
	api.POST("/orders/:id/complete", s.CompleteOrder)
	api.POST("/orders/:id/photos", s.AddPhoto)
	api.POST("/orders/:id/signature", s.CaptureSignature)
	api.PUT("/orders/:id/signature/draft", s.StageSignatureDraft)
	api.DELETE("/orders/:id/signature/draft", s.DiscardSignatureDraft)
	api.PUT("/orders/:id/notes", s.StageNotes)
	api.POST("/orders/:id/items", s.AddLineItem)
	api.PATCH("/orders/:id/items/:itemID", s.ChangeLineItem)
	api.DELETE("/orders/:id/items/:itemID", s.RemoveLineItem)
}

// GetActiveOrders handles GET /api/v1/orders/active - retrieves the backlog.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	query := queries.NewGetUncompletedOrdersQuery()

	orders, err := s.getUncompletedOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err, "Failed to retrieve orders")
	}

	response := make([]OrderSummary, len(orders))
	for i, o := range orders {
		response[i] = OrderSummary{
			ID:       o.ID.String(),
			Status:   o.Status,
			Priority: o.Priority,
			Value:    o.Value,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/:id - retrieves full execution detail.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	detail, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err, "Failed to retrieve order")
	}

	return ctx.JSON(http.StatusOK, toOrderDetail(detail))
}

// StartOrder handles POST /api/v1/orders/:id/start - checks the technician
// in and moves the order to in-progress.
func (s *Server) StartOrder(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	var body StartOrderRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewStartOrderCommand(orderID, body.TechnicianID)
	if err != nil {
		return badRequest(ctx, "Invalid start request: "+err.Error())
	}

	if err = s.startOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err, "Failed to start order")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteOrder handles POST /api/v1/orders/:id/complete - checks the
// technician out and finalizes the order. A failed checklist comes back as
// 422 with every unmet condition.
func (s *Server) CompleteOrder(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	var body CompleteOrderRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCompleteOrderCommand(orderID, body.TechnicianID)
	if err != nil {
		return badRequest(ctx, "Invalid completion request: "+err.Error())
	}

	if err = s.completeOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		var completionErr *order.CompletionError
		if errors.As(err, &completionErr) {
			unmet := make([]string, len(completionErr.Unmet))
			for i, condition := range completionErr.Unmet {
				unmet[i] = string(condition)
			}

			return ctx.JSON(http.StatusUnprocessableEntity, CompletionRejected{
				Code:          http.StatusUnprocessableEntity,
				Message:       "Order does not qualify for completion",
				Unmet:         unmet,
				SignatureOnly: completionErr.SignatureOnly(),
			})
		}

		return writeError(ctx, err, "Failed to complete order")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AddPhoto handles POST /api/v1/orders/:id/photos - attaches an evidence
// photo uploaded as multipart form data (file field "photo", optional
// "caption").
func (s *Server) AddPhoto(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	fileHeader, err := ctx.FormFile("photo")
	if err != nil {
		return badRequest(ctx, "Photo file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return badRequest(ctx, "Photo file could not be read")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return badRequest(ctx, "Photo file could not be read")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	cmd, err := commands.NewAddPhotoCommand(orderID, kernel.NewUUID(),
		ctx.FormValue("caption"), contentType, data, time.Now())
	if err != nil {
		return badRequest(ctx, "Invalid photo: "+err.Error())
	}

	if err = s.addPhotoHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err, "Failed to attach photo")
	}

	return ctx.NoContent(http.StatusCreated)
}

// CaptureSignature handles POST /api/v1/orders/:id/signature - records the
// customer's sign-off.
func (s *Server) CaptureSignature(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	var body SignatureRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCaptureSignatureCommand(orderID, body.Raster)
	if err != nil {
		return badRequest(ctx, "Invalid signature request: "+err.Error())
	}

	if err = s.captureSignatureHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err, "Failed to capture signature")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// StageSignatureDraft handles PUT /api/v1/orders/:id/signature/draft - stages
// an in-progress signature drawing without persisting it.
func (s *Server) StageSignatureDraft(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	var body SignatureRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewStageSignatureCommand(orderID, body.Raster)
	if err != nil {
		return badRequest(ctx, "Invalid signature drawing: "+err.Error())
	}

	if err = s.stageSignatureHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err, "Failed to stage signature drawing")
	}

	return ctx.NoContent(http.StatusAccepted)
}

// DiscardSignatureDraft handles DELETE /api/v1/orders/:id/signature/draft -
// throws away a staged signature drawing. The persisted signature, if any, is
// untouched.
func (s *Server) DiscardSignatureDraft(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	cmd, err := commands.NewDiscardSignatureCommand(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid discard request: "+err.Error())
	}

	if err = s.discardSignatureHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err, "Failed to discard signature drawing")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// StageNotes handles PUT /api/v1/orders/:id/notes - stages a notes edit on
// the order's draft.
func (s *Server) StageNotes(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	var body NotesRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	editedAt := body.EditedAt
	if editedAt.IsZero() {
		editedAt = time.Now()
	}

	cmd, err := commands.NewStageServiceNotesCommand(orderID, body.Notes, editedAt)
	if err != nil {
		return badRequest(ctx, "Invalid notes edit: "+err.Error())
	}

	if err = s.stageServiceNotesHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err, "Failed to stage notes")
	}

	return ctx.NoContent(http.StatusAccepted)
}

// AddLineItem handles POST /api/v1/orders/:id/items - adds a ledger item to
// the order's draft.
func (s *Server) AddLineItem(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	var body AddLineItemRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	kind, err := parseItemKind(body.Kind)
	if err != nil {
		return badRequest(ctx, "Invalid item kind: "+body.Kind)
	}

	var sourceID *kernel.UUID
	if body.SourceID != "" {
		id, sourceErr := kernel.UUIDFromString(body.SourceID)
		if sourceErr != nil {
			return badRequest(ctx, "Invalid source ID")
		}
		sourceID = &id
	}

	itemID := kernel.NewUUID()
	cmd, err := commands.NewAddLineItemCommand(orderID, itemID, kind,
		body.Name, body.Quantity, body.UnitPrice, sourceID)
	if err != nil {
		return badRequest(ctx, "Invalid item: "+err.Error())
	}

	if err = s.addLineItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err, "Failed to add item")
	}

	return ctx.JSON(http.StatusCreated, LineItemCreated{ID: itemID.String()})
}

// ChangeLineItem handles PATCH /api/v1/orders/:id/items/:itemID - changes
// quantity or price of a ledger item.
func (s *Server) ChangeLineItem(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	itemID, err := kernel.UUIDFromString(ctx.Param("itemID"))
	if err != nil {
		return badRequest(ctx, "Invalid item ID")
	}

	var body ChangeLineItemRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewChangeLineItemCommand(orderID, itemID, body.Quantity, body.UnitPrice)
	if err != nil {
		return badRequest(ctx, "Invalid item change: "+err.Error())
	}

	if err = s.changeLineItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err, "Failed to change item")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RemoveLineItem handles DELETE /api/v1/orders/:id/items/:itemID - removes a
// ledger item.
func (s *Server) RemoveLineItem(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	itemID, err := kernel.UUIDFromString(ctx.Param("itemID"))
	if err != nil {
		return badRequest(ctx, "Invalid item ID")
	}

	cmd, err := commands.NewRemoveLineItemCommand(orderID, itemID)
	if err != nil {
		return badRequest(ctx, "Invalid removal request: "+err.Error())
	}

	if err = s.removeLineItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err, "Failed to remove item")
	}

	return ctx.NoContent(http.StatusNoContent)
}

func orderIDParam(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("id"))
}

func parseItemKind(kind string) (order.ItemKind, error) {
	switch strings.ToLower(kind) {
	case "product":
		return order.ItemKindProduct, nil
	case "service":
		return order.ItemKindService, nil
	default:
		return order.ItemKindUnknown, errs.NewValueIsInvalidError("kind")
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps application errors onto HTTP status codes: unknown orders
// to 404, terminal-state edits to 409, failed location fixes to 503 with the
// reason, everything else to 500.
func writeError(ctx echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: "Order not found",
		})
	case errors.Is(err, commands.ErrOrderNotEditable),
		errors.Is(err, order.ErrCheckInAlreadyRecorded):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, ports.ErrLocationUnobtainable):
		var geoErr *ports.GeoError
		message := "Location could not be obtained"
		if errors.As(err, &geoErr) {
			message = "Location could not be obtained: " + string(geoErr.Reason)
		}
		return ctx.JSON(http.StatusServiceUnavailable, Error{
			Code:    http.StatusServiceUnavailable,
			Message: message,
		})
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return badRequest(ctx, err.Error())
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: fallback,
		})
	}
}

func toOrderDetail(detail queries.GetOrderQueryResponse) OrderDetail {
	response := OrderDetail{
		ID:                detail.ID.String(),
		Status:            detail.Status,
		Priority:          detail.Priority,
		ServiceNotes:      detail.ServiceNotes,
		CustomerSignature: detail.CustomerSignature,
		Value:             detail.Value,
		CompletedAt:       detail.CompletedAt,
		Photos:            make([]Photo, 0, len(detail.Photos)),
		LineItems:         make([]LineItem, 0, len(detail.LineItems)),
	}

	if detail.CheckIn != nil {
		response.CheckIn = &GeoEvent{
			At:        detail.CheckIn.At,
			Latitude:  detail.CheckIn.Latitude,
			Longitude: detail.CheckIn.Longitude,
		}
	}

	if detail.CheckOut != nil {
		response.CheckOut = &GeoEvent{
			At:        detail.CheckOut.At,
			Latitude:  detail.CheckOut.Latitude,
			Longitude: detail.CheckOut.Longitude,
		}
	}

	for _, photo := range detail.Photos {
		response.Photos = append(response.Photos, Photo{
			ID:         photo.ID,
			URL:        photo.URL,
			Caption:    photo.Caption,
			CapturedAt: photo.CapturedAt,
		})
	}

	for _, item := range detail.LineItems {
		response.LineItems = append(response.LineItems, LineItem{
			ID:        item.ID,
			Kind:      item.Kind,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Total:     item.Total,
			SourceID:  item.SourceID,
		})
	}

	return response
}
