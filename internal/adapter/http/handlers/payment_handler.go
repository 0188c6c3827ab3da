package handlers

import (
	"errors"
	"log"
	"net/http"

	"stackfood_payments/internal/adapter/http/dto/request"
	response "stackfood_payments/internal/adapter/http/dto/response"
	"stackfood_payments/internal/usecase"
	"stackfood_payments/pkg"

	"github.com/gin-gonic/gin"
)

// PaymentHandler handles HTTP requests for payments.

type PaymentHandler struct {
	createUseCase usecase.ICreatePaymentUseCase
	queryUseCase  usecase.IPaymentQueryUseCase
}

func NewPaymentHandler(create usecase.ICreatePaymentUseCase, query usecase.IPaymentQueryUseCase) *PaymentHandler {
	return &PaymentHandler{createUseCase: create, queryUseCase: query}
}

// CreatePayment runs the same decision pipeline the queue worker runs,
// exposed for manual retries and local testing.
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req request.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[payment][handler] create invalid payload err=%v", err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] create start order_id=%s", req.OrderID)

	created, err := h.createUseCase.Execute(c.Request.Context(), req.ToInput())
	if err != nil {
		log.Printf("[payment][handler] create failed order_id=%s err=%v", req.OrderID, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] create success order_id=%s payment_id=%s status=%s", req.OrderID, created.ID, created.Status)

	c.JSON(http.StatusCreated, response.FromPayment(created))
}

// GetPaymentByID returns a payment by its id.
func (h *PaymentHandler) GetPaymentByID(c *gin.Context) {
	paymentID := c.Param("payment_id")
	log.Printf("[payment][handler] get start payment_id=%s", paymentID)

	payment, err := h.queryUseCase.GetByID(c.Request.Context(), paymentID)
	if err != nil {
		log.Printf("[payment][handler] get failed payment_id=%s err=%v", paymentID, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPayment(payment))
}

// GetPaymentByOrderID returns the payment created for an order.
func (h *PaymentHandler) GetPaymentByOrderID(c *gin.Context) {
	orderID := c.Param("order_id")
	log.Printf("[payment][handler] get-by-order start order_id=%s", orderID)

	payment, err := h.queryUseCase.GetByOrderID(c.Request.Context(), orderID)
	if err != nil {
		log.Printf("[payment][handler] get-by-order failed order_id=%s err=%v", orderID, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPayment(payment))
}

// ListPaymentsByStatus returns every payment currently in the given status.
func (h *PaymentHandler) ListPaymentsByStatus(c *gin.Context) {
	status := c.Param("status")
	log.Printf("[payment][handler] list-by-status start status=%s", status)

	payments, err := h.queryUseCase.ListByStatus(c.Request.Context(), status)
	if err != nil {
		log.Printf("[payment][handler] list-by-status failed status=%s err=%v", status, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPayments(payments))
}

func mapPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidOrderID), errors.Is(err, usecase.ErrInvalidOrderNumber),
		errors.Is(err, usecase.ErrInvalidPaymentID), errors.Is(err, usecase.ErrInvalidPaymentStatus):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
