package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the portal's Prometheus counters.
type Collector struct {
	checkoutSessions *prometheus.CounterVec
	webhookEvents    *prometheus.CounterVec
	admissions       *prometheus.CounterVec

	registry *prometheus.Registry
}

func NewCollector() *Collector {
	c := &Collector{
		checkoutSessions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_checkout_sessions_total",
			Help: "Checkout session attempts by outcome.",
		}, []string{"outcome"}),
		webhookEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_webhook_events_total",
			Help: "Stripe webhook events by type.",
		}, []string{"type"}),
		admissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_admissions_total",
			Help: "Admission controller actions by kind.",
		}, []string{"action"}),
		registry: prometheus.NewRegistry(),
	}

	c.registry.MustRegister(c.checkoutSessions, c.webhookEvents, c.admissions)
	return c
}

func (c *Collector) RecordCheckout(outcome string) {
	c.checkoutSessions.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordWebhookEvent(eventType string) {
	c.webhookEvents.WithLabelValues(eventType).Inc()
}

func (c *Collector) RecordAdmission(action string) {
	c.admissions.WithLabelValues(action).Inc()
}

// Handler exposes the registry for the /metrics route.
func (c *Collector) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}
