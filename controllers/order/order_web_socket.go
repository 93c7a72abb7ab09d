package orderControllers

import (
	"net/http"
	"time"

	"github.com/bookbazaar/storefront-api/backend"
	"github.com/bookbazaar/storefront-api/middleware"
	"github.com/bookbazaar/storefront-api/models"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const trackPollInterval = 5 * time.Second

type orderUpdate struct {
	OrderID       string               `json:"orderId"`
	Status        models.OrderStatus   `json:"status"`
	PaymentStatus models.PaymentStatus `json:"paymentStatus"`
}

// GET /orders/:orderID/track
// Streams status transitions of one order over a websocket. The
// storefront keeps nothing itself: the backend order endpoint is polled
// and only changes are pushed.
func TrackOrder(api *backend.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		if orderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}
		token := middleware.AuthState(c).Token

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		// Reads only surface the client going away.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		ticker := time.NewTicker(trackPollInterval)
		defer ticker.Stop()

		var last orderUpdate
		for {
			order, err := api.GetOrder(c.Request.Context(), token, orderID)
			if err != nil {
				logrus.WithError(err).WithField("order_id", orderID).Warn("order tracking poll failed")
				conn.WriteJSON(gin.H{"error": "order lookup failed"})
				return
			}

			update := orderUpdate{
				OrderID:       orderID,
				Status:        order.Status,
				PaymentStatus: order.PaymentStatus,
			}
			if update != last {
				if err := conn.WriteJSON(update); err != nil {
					return
				}
				last = update
			}

			// Delivered and cancelled orders stop moving; close cleanly.
			if order.Status == models.OrderStatusDelivered || order.Status == models.OrderStatusCancelled {
				return
			}

			select {
			case <-done:
				return
			case <-c.Request.Context().Done():
				return
			case <-ticker.C:
			}
		}
	}
}
