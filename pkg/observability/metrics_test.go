package observability_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probationforms/formflow/pkg/observability"
)

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)

	m.PageShown("basic-information", "sentence-type")
	m.PageShown("basic-information", "sentence-type")
	m.PageSubmitted("basic-information", "sentence-type", "saved")
	m.PageSubmitted("basic-information", "sentence-type", "invalid")
	m.ValidationFailed("basic-information", "sentence-type", 2)
	m.ArtifactWritten()

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, fam := range families {
		names[fam.GetName()] = true
	}
	assert.True(t, names["formflow_page_shows_total"])
	assert.True(t, names["formflow_page_submissions_total"])
	assert.True(t, names["formflow_validation_failures_total"])
	assert.True(t, names["formflow_artifact_writes_total"])

	count := testutil.CollectAndCount(reg, "formflow_page_shows_total")
	assert.Equal(t, 1, count)
}

func TestMetrics_NilReceiverIsNoop(t *testing.T) {
	var m *observability.Metrics

	assert.NotPanics(t, func() {
		m.PageShown("t", "p")
		m.PageSubmitted("t", "p", "saved")
		m.ValidationFailed("t", "p", 1)
		m.ArtifactWritten()
	})
}
