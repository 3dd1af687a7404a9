// Package metrics exposes Prometheus counters for the user-management
// service. Counters are registered once at package load on the default
// registry and scraped through /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RegistrationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "makemeacube_registrations_total",
		Help: "Total number of successful user registrations by kind",
	}, []string{"kind"})

	VerificationNotificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "makemeacube_verification_notifications_total",
		Help: "Total number of verification notifications by outcome",
	}, []string{"status"})

	OwnershipDenialsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "makemeacube_ownership_denials_total",
		Help: "Total number of mutations rejected by ownership validation",
	})
)
