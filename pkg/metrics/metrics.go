package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "notes", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "notes", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	NotesCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "notes", Name: "created_total", Help: "Number of notes created, by whether an attachment was stored."},
		[]string{"attachment"},
	)
	Lookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "notes", Name: "lookups_total", Help: "Number of note lookups by result."},
		[]string{"result"},
	)
	StorageOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "notes", Name: "storage_operations_total", Help: "Blob and record store calls by store, operation and result."},
		[]string{"store", "op", "result"},
	)
	OrphanedBlobs = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "notes", Name: "orphaned_blobs_total", Help: "Attachments uploaded whose record write then failed."},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(NotesCreated)
	reg.MustRegister(Lookups)
	reg.MustRegister(StorageOperations)
	reg.MustRegister(OrphanedBlobs)
}
