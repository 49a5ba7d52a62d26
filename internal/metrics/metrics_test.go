package metrics_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"linkbox/internal/domain"
	"linkbox/internal/metrics"
)

func TestMetrics_Record(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.Transition(domain.StateDisconnected, domain.StateConnecting)
	m.Transition(domain.StateConnecting, domain.StateConnected)
	m.Outbound(domain.EndpointConnect)
	m.Inbound("approved")
	m.ProtocolError("approve")

	const want = `
# HELP linkbox_session_active 1 while a session is connected, 0 otherwise
# TYPE linkbox_session_active gauge
linkbox_session_active 1
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(want), "linkbox_session_active"); err != nil {
		t.Fatalf("active gauge: %v", err)
	}
	n, err := testutil.GatherAndCount(reg, "linkbox_session_transitions_total")
	if err != nil {
		t.Fatalf("GatherAndCount: %v", err)
	}
	if n != 2 {
		t.Fatalf("want 2 transition series, got %d", n)
	}

	m.Transition(domain.StateConnected, domain.StateDisconnected)
	const wantIdle = `
# HELP linkbox_session_active 1 while a session is connected, 0 otherwise
# TYPE linkbox_session_active gauge
linkbox_session_active 0
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(wantIdle), "linkbox_session_active"); err != nil {
		t.Fatalf("active gauge after disconnect: %v", err)
	}
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *metrics.Metrics
	m.Transition(domain.StateDisconnected, domain.StateConnecting)
	m.Outbound(domain.EndpointConnect)
	m.Inbound("ignored")
	m.ProtocolError("connect")
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	m.Outbound(domain.EndpointSignAndSubmit)

	rec := httptest.NewRecorder()
	metrics.Handler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if !strings.Contains(rec.Body.String(), `linkbox_outbound_links_total{endpoint="signAndSubmit"} 1`) {
		t.Fatalf("metrics output missing outbound counter:\n%s", rec.Body.String())
	}
}
