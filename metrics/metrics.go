package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	OrdersPlaced = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bookshop_orders_placed_total",
		Help: "Orders successfully placed, by payment method and variant.",
	}, []string{"method", "variant"})

	PaymentInitiations = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bookshop_payment_initiations_total",
		Help: "Prepaid transactions successfully initiated with the gateway.",
	})

	PaymentConfirmations = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bookshop_payment_confirmations_total",
		Help: "Prepaid transactions confirmed and promoted to orders.",
	})

	PaymentFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bookshop_payment_failures_total",
		Help: "Gateway initiations or confirmations that failed.",
	})
)

func init() {
	prometheus.MustRegister(OrdersPlaced, PaymentInitiations, PaymentConfirmations, PaymentFailures)
}
