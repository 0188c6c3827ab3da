package routes

import (
	"stackfood_payments/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathPayments = "/payments"
)

func addPaymentRoutes(rg *gin.RouterGroup, paymentHandler *handlers.PaymentHandler) {
	payments := rg.Group(PathPayments)
	{
		payments.POST("", paymentHandler.CreatePayment)
		payments.GET("/:payment_id", paymentHandler.GetPaymentByID)
		payments.GET("/order/:order_id", paymentHandler.GetPaymentByOrderID)
		payments.GET("/status/:status", paymentHandler.ListPaymentsByStatus)
	}
}
