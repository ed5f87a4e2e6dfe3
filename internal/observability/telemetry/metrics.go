package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WebhookRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "smartspeaker_webhook_requests_total",
		Help: "Webhook requests by platform, event kind and HTTP status",
	}, []string{"platform", "event", "status"})

	WebhookLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "smartspeaker_webhook_latency_seconds",
		Help:    "Webhook processing latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"platform"})

	IntentsDispatchedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "smartspeaker_intents_dispatched_total",
		Help: "Intents dispatched, keyed by canonical intent name",
	}, []string{"intent"})

	// result is one of hit, fetched, absent
	FactLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "smartspeaker_fact_lookups_total",
		Help: "Latest title lookups by outcome",
	}, []string{"result"})

	FactFetchLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "smartspeaker_fact_fetch_latency_seconds",
		Help:    "Latency of upstream latest title fetches",
		Buckets: []float64{.05, .1, .25, .5, 1, 2, 3, 5},
	})
)
