package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/inkpress/bookshop-backend-go/cache"
	"github.com/inkpress/bookshop-backend-go/pricing"
	"github.com/inkpress/bookshop-backend-go/service"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// viewCache is the read side of the Redis view cache; *cache.Views
// satisfies it.
type viewCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Put(ctx context.Context, key string, body []byte)
}

type Handler struct {
	svc     *service.Service
	pricing *pricing.Resolver
	views   viewCache
	log     *logrus.Logger
}

func New(svc *service.Service, resolver *pricing.Resolver, views viewCache, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, pricing: resolver, views: views, log: log}
}

// GetPrices returns the price list for the caller's region. The country is
// taken from the query, falling back to the CDN geolocation header.
func (h *Handler) GetPrices(c echo.Context) error {
	country := c.QueryParam("country")
	if country == "" {
		country = c.Request().Header.Get("CF-IPCountry")
	}
	return okJSON(c, http.StatusOK, h.pricing.Resolve(country))
}

func (h *Handler) PlaceOrder(c echo.Context) error {
	var form service.OrderForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"success": false, "message": "Invalid request format"})
	}

	form.Region = c.QueryParam("country")
	if form.Region == "" {
		form.Region = c.Request().Header.Get("CF-IPCountry")
	}

	result, err := h.svc.PlaceOrder(c.Request().Context(), form)
	if err != nil {
		return failJSON(c, err)
	}
	return okJSON(c, http.StatusCreated, result)
}

// ListUserOrders serves a user's order history through the view cache; a miss
// renders from the store and repopulates the cache.
func (h *Handler) ListUserOrders(c echo.Context) error {
	userID := c.QueryParam("userId")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"success": false, "message": "userId is required"})
	}
	ctx := c.Request().Context()
	key := cache.UserOrdersKey(userID)

	if body, ok := h.views.Get(ctx, key); ok {
		return c.JSONBlob(http.StatusOK, body)
	}

	orders, err := h.svc.ListUserOrders(ctx, userID)
	if err != nil {
		return failJSON(c, err)
	}

	body, err := json.Marshal(map[string]interface{}{"success": true, "data": orders})
	if err != nil {
		return failJSON(c, err)
	}
	h.views.Put(ctx, key, body)
	return c.JSONBlob(http.StatusOK, body)
}

func (h *Handler) GetOrder(c echo.Context) error {
	userID := c.QueryParam("userId")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"success": false, "message": "userId is required"})
	}

	order, err := h.svc.GetOrder(c.Request().Context(), userID, c.Param("orderId"))
	if err != nil {
		return failJSON(c, err)
	}
	return okJSON(c, http.StatusOK, order)
}

type reviewRequest struct {
	UserID string `json:"userId"`
	Rating int    `json:"rating"`
	Text   string `json:"text"`
}

func (h *Handler) SubmitReview(c echo.Context) error {
	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"success": false, "message": "Invalid request format"})
	}

	review, err := h.svc.SubmitReview(c.Request().Context(), c.Param("orderId"), req.UserID, req.Rating, req.Text)
	if err != nil {
		return failJSON(c, err)
	}
	return okJSON(c, http.StatusCreated, review)
}
