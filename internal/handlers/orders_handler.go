package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nwtech/license-orderflow/internal/orders"
	"github.com/nwtech/license-orderflow/internal/validation"
)

type orderMessage struct {
	OrderID      string  `json:"order_id"`
	Total        float64 `json:"total"`
	Status       string  `json:"status"`
	ContactEmail string  `json:"contact_email"`
}

func (a *api) placeOrder(c *gin.Context) {
	var req validation.CreateOrderRequest
	if err := validation.BindAndValidate(c, &req, a.validate); err != nil {
		a.writeError(c, err)
		return
	}

	ctx := c.Request.Context()
	placed, err := a.orders.PlaceOrder(ctx, req.Input())
	if err != nil {
		a.writeError(c, err)
		return
	}
	ctx = a.log.WithField(ctx, "order_id", placed.OrderID)
	a.log.Info(ctx, "order.placed")
	a.metrics.OrderPlaced(ctx, placed.Total, len(req.Items))
	a.notify(ctx, placed, req.ContactEmail, c.GetString(requestIDKey))

	c.JSON(http.StatusCreated, placed)
}

// notify publishes the placed order. The order is already committed, so a
// failed publish is only logged.
func (a *api) notify(ctx context.Context, placed orders.Placement, email, correlationID string) {
	if a.notifier == nil {
		return
	}
	body, err := json.Marshal(orderMessage{
		OrderID:      placed.OrderID,
		Total:        placed.Total,
		Status:       placed.Status,
		ContactEmail: email,
	})
	if err != nil {
		a.log.Warn(ctx, "order.notify_failed", err)
		return
	}
	attrs := map[string]string{
		"order_id":       placed.OrderID,
		"status":         placed.Status,
		"total":          strconv.FormatFloat(placed.Total, 'f', 2, 64),
		"correlation_id": correlationID,
	}
	if err := a.notifier.SendOrderMessage(ctx, string(body), attrs); err != nil {
		a.log.Warn(ctx, "order.notify_failed", err)
	}
}

func (a *api) listOrders(c *gin.Context) {
	list, err := a.orders.ListOrders(c.Request.Context(), c.Query("email"))
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
