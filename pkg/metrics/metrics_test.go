package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestRegisterCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NotPanics(t, func() { RegisterCollectors(reg) })

	OrphanedBlobs.Inc()
	NotesCreated.WithLabelValues("false").Inc()
	families, err := reg.Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	require.True(t, names["notes_orphaned_blobs_total"])
	require.True(t, names["notes_created_total"])

	// a second registration on the same registry is a programming error
	require.Panics(t, func() { RegisterCollectors(reg) })
}
