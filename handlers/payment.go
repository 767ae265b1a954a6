package handlers

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"

	"github.com/inkpress/bookshop-backend-go/payment"
	"github.com/labstack/echo/v4"
)

// PaymentHandler owns the gateway-facing endpoints: the server-to-server
// callback and the browser redirect target. Both reconcile through the
// orchestrator, which re-checks the transaction with the provider.
type PaymentHandler struct {
	*Handler
	gateway *payment.Gateway
}

func NewPaymentHandler(h *Handler, gateway *payment.Gateway) *PaymentHandler {
	return &PaymentHandler{Handler: h, gateway: gateway}
}

type callbackBody struct {
	Response string `json:"response"`
}

type callbackPayload struct {
	Data struct {
		MerchantTransactionID string `json:"merchantTransactionId"`
	} `json:"data"`
}

// Callback handles the provider's server-to-server notification. The body
// is a base64 payload signed with the same checksum scheme as outgoing
// requests; an invalid signature is dropped without touching any state.
func (h *PaymentHandler) Callback(c echo.Context) error {
	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"success": false, "message": "Invalid callback"})
	}

	var body callbackBody
	if err := json.Unmarshal(raw, &body); err != nil || body.Response == "" {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"success": false, "message": "Invalid callback"})
	}

	if !h.gateway.VerifyCallback(body.Response, c.Request().Header.Get("X-VERIFY")) {
		h.log.Warn("payment callback with bad signature dropped")
		return c.JSON(http.StatusUnauthorized, map[string]interface{}{"success": false, "message": "Invalid signature"})
	}

	decoded, err := base64.StdEncoding.DecodeString(body.Response)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"success": false, "message": "Invalid callback"})
	}
	var payload callbackPayload
	if err := json.Unmarshal(decoded, &payload); err != nil || payload.Data.MerchantTransactionID == "" {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"success": false, "message": "Invalid callback"})
	}

	order, err := h.svc.ConfirmPayment(c.Request().Context(), payload.Data.MerchantTransactionID)
	if err != nil {
		return failJSON(c, err)
	}
	return okJSON(c, http.StatusOK, order)
}

// Redirect is where the customer lands after the hosted pay page. It runs
// the same reconciliation as the callback, so whichever arrives first wins
// and the other finds the pending order already promoted.
func (h *PaymentHandler) Redirect(c echo.Context) error {
	order, err := h.svc.ConfirmPayment(c.Request().Context(), c.Param("txnId"))
	if err != nil {
		return failJSON(c, err)
	}
	return okJSON(c, http.StatusOK, order)
}
