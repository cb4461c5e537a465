package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the process-wide Prometheus collectors.
type Metrics struct {
	ChatRequests          prometheus.Counter
	ChatFailures          prometheus.Counter
	SessionsCreated       prometheus.Counter
	CredentialResolutions *prometheus.CounterVec
}

var (
	once   sync.Once
	global *Metrics
)

// Global returns the singleton metrics set, registering the collectors
// on first use.
func Global() *Metrics {
	once.Do(func() {
		global = &Metrics{
			ChatRequests: promauto.NewCounter(prometheus.CounterOpts{
				Name: "chat_requests_total",
				Help: "Chat completion requests received.",
			}),
			ChatFailures: promauto.NewCounter(prometheus.CounterOpts{
				Name: "chat_failures_total",
				Help: "Chat completion requests that failed upstream.",
			}),
			SessionsCreated: promauto.NewCounter(prometheus.CounterOpts{
				Name: "sessions_created_total",
				Help: "Login sessions created.",
			}),
			CredentialResolutions: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "credential_resolutions_total",
				Help: "Successful API-key resolutions by source.",
			}, []string{"source"}),
		}
	})
	return global
}
