package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"qfifat.backend/internal/domain/entities"
	"qfifat.backend/internal/infrastructure/notify"
	"qfifat.backend/internal/interfaces/http/middleware"
	"qfifat.backend/internal/interfaces/http/response"
	"qfifat.backend/internal/usecases"
	"qfifat.backend/pkg/redis"
)

// TrackingHandler handles shipment tracking endpoints
type TrackingHandler struct {
	trackingUsecase *usecases.TrackingUsecase
	orderUsecase    *usecases.OrderUsecase
}

// NewTrackingHandler creates a new tracking handler
func NewTrackingHandler(trackingUsecase *usecases.TrackingUsecase, orderUsecase *usecases.OrderUsecase) *TrackingHandler {
	return &TrackingHandler{
		trackingUsecase: trackingUsecase,
		orderUsecase:    orderUsecase,
	}
}

// Append records a checkpoint on an order's trail
// POST /api/v1/admin/orders/:id/tracking
func (h *TrackingHandler) Append(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input entities.AppendTrackingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	point, err := h.trackingUsecase.Append(c.Request.Context(), orderID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, point)
}

// History returns the full trail of an order
// GET /api/v1/orders/:id/tracking
func (h *TrackingHandler) History(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	userID, _ := middleware.GetUserID(c)

	points, err := h.trackingUsecase.History(c.Request.Context(), userID, middleware.IsAdmin(c), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, points)
}

// Latest returns the newest checkpoint of an order
// GET /api/v1/orders/:id/tracking/latest
func (h *TrackingHandler) Latest(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	userID, _ := middleware.GetUserID(c)

	point, err := h.trackingUsecase.Latest(c.Request.Context(), userID, middleware.IsAdmin(c), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, point)
}

// Live streams tracking updates for an order as server-sent events
// until the client disconnects
// GET /api/v1/orders/:id/tracking/live
func (h *TrackingHandler) Live(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	userID, _ := middleware.GetUserID(c)

	// The ownership check doubles as an existence check.
	if _, err := h.orderUsecase.GetByID(c.Request.Context(), userID, middleware.IsAdmin(c), orderID); err != nil {
		response.Error(c, err)
		return
	}

	sub := redis.Subscribe(c.Request.Context(), notify.TrackingChannel(orderID))
	defer sub.Close()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	ch := sub.Channel()
	c.Stream(func(w io.Writer) bool {
		select {
		case msg, open := <-ch:
			if !open {
				return false
			}
			c.SSEvent("tracking", msg.Payload)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
