package httpapi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	searchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "listing_searches_total",
		Help: "Number of storefront search requests served.",
	})
	enquiriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "listing_enquiries_total",
		Help: "Number of buyer enquiries relayed to the agent.",
	})
	viewsRecordedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "listing_views_recorded_total",
		Help: "Number of listing view events recorded.",
	})
)
