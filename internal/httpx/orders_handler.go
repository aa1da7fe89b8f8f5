package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/akshayam/wellness-store.git/internal/kafka"
	"github.com/akshayam/wellness-store.git/internal/orders"
	"github.com/akshayam/wellness-store.git/internal/redisx"
)

type OrdersHandler struct {
	Engine   *orders.Engine
	Repo     *orders.Repo
	Producer *kafkax.Producer
	Redis    *redis.Client
	Service  string
}

func (h *OrdersHandler) Register(r chi.Router) {
	r.Post("/orders", h.createOrder)
	r.Post("/orders/user", h.userOrders)
	r.Get("/orders/{id}/status", h.getStatus)
	r.Put("/orders/{id}/edit", h.editOrder)
}

func (h *OrdersHandler) RegisterAdmin(r chi.Router) {
	r.Get("/orders", h.listOrders)
	r.Get("/orders/analytics", h.analytics)
	r.Get("/orders/summary", h.summary)
	r.Get("/orders/{id}", h.getOrder)
	r.Put("/orders/{id}/edit", h.adminEditOrder)
	r.Put("/orders/{id}/status", h.updateStatus)
	r.Delete("/orders/{id}", h.deleteOrder)
}

// publish wraps an event payload in the v1 envelope and hands it to the
// async producer. Delivery is best-effort; the database already holds
// the truth by the time an event goes out.
func (h *OrdersHandler) publish(r *http.Request, eventType, orderID string, payload any) {
	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       r.Header.Get("X-Request-Id"),
		CorrelationID: orderID,
		Payload:       kafkax.MustMarshal(payload),
	}
	h.Producer.Publish(orders.PartitionKey(orderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

func (h *OrdersHandler) cacheStatus(r *http.Request, orderID string, st orders.Status) {
	key := fmt.Sprintf(redisx.KeyOrderStatus, orderID)
	_ = h.Redis.Set(r.Context(), key, string(st), redisx.TTLStatusCache).Err()
}

type createOrderReq struct {
	UserInfo orders.CustomerInfo `json:"user_info"`
	Items    []orders.OrderItem  `json:"items"`
}

func (h *OrdersHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.UserInfo.Email == "" || req.UserInfo.Name == "" {
		writeErr(w, http.StatusBadRequest, "missing fields")
		return
	}

	o, err := h.Engine.CreateOrder(r.Context(), req.UserInfo, req.Items)
	if err != nil {
		writeDomainErr(w, err)
		return
	}

	h.cacheStatus(r, o.ID, o.Status)
	h.publish(r, orders.EventOrderPlaced, o.ID, orders.NewOrderPlacedPayload(o))

	writeJSON(w, http.StatusOK, o)
}

type userOrdersReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *OrdersHandler) userOrders(w http.ResponseWriter, r *http.Request) {
	var req userOrdersReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	list, err := h.Engine.UserOrders(r.Context(), req.Email, req.Password)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// getStatus is cache-first; a miss falls back to the store and warms the
// cache.
func (h *OrdersHandler) getStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	key := fmt.Sprintf(redisx.KeyOrderStatus, orderID)

	if s, err := h.Redis.Get(r.Context(), key).Result(); err == nil && s != "" {
		writeJSON(w, http.StatusOK, map[string]string{"order_id": orderID, "status": s})
		return
	}

	o, err := h.Repo.Get(r.Context(), orderID)
	if err != nil {
		writeErr(w, http.StatusNotFound, "Order not found")
		return
	}
	h.cacheStatus(r, o.ID, o.Status)
	writeJSON(w, http.StatusOK, map[string]string{"order_id": o.ID, "status": string(o.Status)})
}

type editOrderReq struct {
	Items    []orders.OrderItem   `json:"items"`
	Email    string               `json:"email"`
	Password string               `json:"password"`
	UserInfo *orders.CustomerInfo `json:"user_info"`
}

func (h *OrdersHandler) editOrder(w http.ResponseWriter, r *http.Request) {
	h.edit(w, r, false)
}

func (h *OrdersHandler) adminEditOrder(w http.ResponseWriter, r *http.Request) {
	h.edit(w, r, true)
}

func (h *OrdersHandler) edit(w http.ResponseWriter, r *http.Request, admin bool) {
	orderID := chi.URLParam(r, "id")
	var req editOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if len(req.Items) == 0 {
		writeErr(w, http.StatusBadRequest, "Order must contain at least one item")
		return
	}

	previous, err := h.Repo.Get(r.Context(), orderID)
	if err != nil {
		writeErr(w, http.StatusNotFound, "Order not found")
		return
	}

	o, err := h.Engine.EditOrder(r.Context(), orderID, orders.EditRequest{
		Items:    req.Items,
		Email:    req.Email,
		Password: req.Password,
		UserInfo: req.UserInfo,
		Admin:    admin,
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}

	h.publish(r, orders.EventOrderEdited, o.ID, orders.NewOrderEditedPayload(o, previous.Items))
	writeJSON(w, http.StatusOK, o)
}

func (h *OrdersHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.ListAll(r.Context())
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *OrdersHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.Repo.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, http.StatusNotFound, "Order not found")
		return
	}
	writeJSON(w, http.StatusOK, o)
}

type updateStatusReq struct {
	Status string `json:"status"`
}

func (h *OrdersHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	o, err := h.Engine.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeDomainErr(w, err)
		return
	}

	h.cacheStatus(r, o.ID, o.Status)
	h.publish(r, orders.EventOrderStatusChanged, o.ID,
		orders.OrderStatusChangedPayload{OrderID: o.ID, Status: string(o.Status)})
	writeJSON(w, http.StatusOK, o)
}

func (h *OrdersHandler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	o, err := h.Repo.Get(r.Context(), orderID)
	if err != nil {
		writeErr(w, http.StatusNotFound, "Order not found")
		return
	}
	if err := h.Engine.DeleteOrder(r.Context(), orderID); err != nil {
		writeDomainErr(w, err)
		return
	}

	_ = h.Redis.Del(r.Context(), fmt.Sprintf(redisx.KeyOrderStatus, orderID)).Err()
	h.publish(r, orders.EventOrderDeleted, orderID, orders.OrderDeletedPayload{
		OrderID: orderID,
		Items:   orders.NewOrderPlacedPayload(o).Items,
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Order deleted successfully"})
}

// parseDate accepts both date-only and RFC3339 timestamps.
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func (h *OrdersHandler) analytics(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rows, err := h.Repo.Analytics(r.Context(),
		parseDate(q.Get("start_date")), parseDate(q.Get("end_date")), q.Get("group_by"))
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"analytics": rows})
}

func (h *OrdersHandler) summary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s, err := h.Repo.Summary(r.Context(),
		parseDate(q.Get("start_date")), parseDate(q.Get("end_date")))
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, s)
}
