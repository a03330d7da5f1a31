package infra

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()
	m.SessionStarted("full")
	m.SessionStarted("full")
	m.TransitionRecorded("full", "moved")
	m.TransitionRecorded("full", "completed")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.sessions.WithLabelValues("full")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transitions.WithLabelValues("full", "completed")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.transitions.WithLabelValues("full", "aborted")))
}

func TestMetricsRegistrySeries(t *testing.T) {
	m := NewMetrics()
	m.SessionStarted("full")
	m.SessionStarted("compact")
	m.TransitionRecorded("compact", "moved")

	sessions, err := testutil.GatherAndCount(m.Registry(), "tripzy_questionnaire_sessions_started_total")
	require.NoError(t, err)
	assert.Equal(t, 2, sessions)

	transitions, err := testutil.GatherAndCount(m.Registry(), "tripzy_questionnaire_transitions_total")
	require.NoError(t, err)
	assert.Equal(t, 1, transitions)
}

func TestMetricsHandler(t *testing.T) {
	m := NewMetrics()
	m.TransitionRecorded("compact", "aborted")

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `tripzy_questionnaire_transitions_total{flow="compact",kind="aborted"} 1`)
}
