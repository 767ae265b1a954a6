package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/inkpress/bookshop-backend-go/cache"
	"github.com/inkpress/bookshop-backend-go/config"
	"github.com/inkpress/bookshop-backend-go/middleware"
	"github.com/inkpress/bookshop-backend-go/models"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// AdminHandler serves the passcode-gated dashboard endpoints.
type AdminHandler struct {
	*Handler
	cfg config.Admin
}

func NewAdminHandler(h *Handler, cfg config.Admin) *AdminHandler {
	return &AdminHandler{Handler: h, cfg: cfg}
}

type loginRequest struct {
	Passcode string `json:"passcode"`
}

// Login checks the dashboard passcode against the configured bcrypt hash
// and hands out a session token.
func (h *AdminHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"success": false, "message": "Invalid request format"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(h.cfg.PasscodeHash), []byte(req.Passcode)); err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]interface{}{"success": false, "message": "Wrong passcode"})
	}

	token, err := middleware.GenerateAdminToken(h.cfg.JWTSecret)
	if err != nil {
		return failJSON(c, err)
	}
	return okJSON(c, http.StatusOK, map[string]string{"token": token})
}

// ListOrders serves the dashboard order list through the view cache; a miss
// renders from the store and repopulates the cache.
func (h *AdminHandler) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	if body, ok := h.views.Get(ctx, cache.AdminOrdersKey); ok {
		return c.JSONBlob(http.StatusOK, body)
	}

	orders, err := h.svc.ListAllOrders(ctx)
	if err != nil {
		return failJSON(c, err)
	}

	body, err := json.Marshal(map[string]interface{}{"success": true, "data": orders})
	if err != nil {
		return failJSON(c, err)
	}
	h.views.Put(ctx, cache.AdminOrdersKey, body)
	return c.JSONBlob(http.StatusOK, body)
}

type statusRequest struct {
	UserID string             `json:"userId"`
	Status models.OrderStatus `json:"status"`
}

func (h *AdminHandler) UpdateOrderStatus(c echo.Context) error {
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"success": false, "message": "Invalid request format"})
	}

	if err := h.svc.ChangeOrderStatus(c.Request().Context(), req.UserID, c.Param("orderId"), req.Status); err != nil {
		return failJSON(c, err)
	}
	return okJSON(c, http.StatusOK, map[string]string{"status": string(req.Status)})
}

func (h *AdminHandler) GetStock(c echo.Context) error {
	stock, err := h.svc.GetStock(c.Request().Context())
	if err != nil {
		return failJSON(c, err)
	}
	return okJSON(c, http.StatusOK, stock)
}

func (h *AdminHandler) SetStock(c echo.Context) error {
	var stock models.Stock
	if err := c.Bind(&stock); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"success": false, "message": "Invalid request format"})
	}

	if err := h.svc.SetStock(c.Request().Context(), stock); err != nil {
		return failJSON(c, err)
	}
	return okJSON(c, http.StatusOK, stock)
}

func (h *AdminHandler) ListDiscounts(c echo.Context) error {
	discounts, err := h.svc.ListDiscounts(c.Request().Context())
	if err != nil {
		return failJSON(c, err)
	}
	return okJSON(c, http.StatusOK, discounts)
}

type discountRequest struct {
	Code    string `json:"code"`
	Percent int    `json:"percent"`
}

func (h *AdminHandler) CreateDiscount(c echo.Context) error {
	var req discountRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"success": false, "message": "Invalid request format"})
	}

	discount, err := h.svc.CreateDiscount(c.Request().Context(), req.Code, req.Percent)
	if err != nil {
		return failJSON(c, err)
	}
	return okJSON(c, http.StatusCreated, discount)
}
