package handlers

import (
	"errors"
	"net/http"

	"github.com/inkpress/bookshop-backend-go/payment"
	"github.com/inkpress/bookshop-backend-go/service"
	"github.com/inkpress/bookshop-backend-go/store"
	"github.com/labstack/echo/v4"
)

// failJSON maps service errors onto the discriminated result shape every
// endpoint returns: {"success": false, "message": ...}.
func failJSON(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	message := "Something went wrong"

	var gatewayErr *payment.Error
	switch {
	case errors.Is(err, service.ErrValidation):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, store.ErrNotFound):
		status, message = http.StatusNotFound, "Not found"
	case errors.Is(err, store.ErrOutOfStock):
		status, message = http.StatusConflict, "This edition is out of stock"
	case errors.Is(err, store.ErrDuplicateCode):
		status, message = http.StatusConflict, err.Error()
	case errors.Is(err, service.ErrAlreadyReviewed):
		status, message = http.StatusConflict, err.Error()
	case errors.Is(err, service.ErrPaymentPending):
		status, message = http.StatusAccepted, err.Error()
	case errors.Is(err, service.ErrPaymentFailed):
		status, message = http.StatusPaymentRequired, err.Error()
	case errors.As(err, &gatewayErr):
		status, message = http.StatusBadGateway, "Payment gateway error: "+gatewayErr.Message
	}

	return c.JSON(status, map[string]interface{}{"success": false, "message": message})
}

func okJSON(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, map[string]interface{}{"success": true, "data": data})
}
