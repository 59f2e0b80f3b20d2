package metrics

import (
	"sort"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveCalculation(t *testing.T) {
	okBefore := testutil.ToFloat64(CalculationsTotal.WithLabelValues(SourceHTTP, OutcomeOK))
	ageBefore := testutil.ToFloat64(ValidationFailures.WithLabelValues("age"))

	ObserveCalculation(SourceHTTP, OutcomeOK, "")
	ObserveCalculation(SourceHTTP, OutcomeInvalid, "age")
	ObserveCalculation(SourceHTTP, OutcomeError, "age")

	if got := testutil.ToFloat64(CalculationsTotal.WithLabelValues(SourceHTTP, OutcomeOK)); got != okBefore+1 {
		t.Errorf("Expected ok counter %v, got %v", okBefore+1, got)
	}
	// only the invalid outcome counts toward field failures
	if got := testutil.ToFloat64(ValidationFailures.WithLabelValues("age")); got != ageBefore+1 {
		t.Errorf("Expected age failures %v, got %v", ageBefore+1, got)
	}
}

func TestRegisteredNames(t *testing.T) {
	ObserveCalculation(SourceBatch, OutcomeInvalid, "age")
	BatchFilesTotal.WithLabelValues(OutcomeOK).Add(0)
	RequestsTotal.WithLabelValues("/calculate", "POST", "200").Add(0)
	RequestDuration.WithLabelValues("/calculate", "POST").Observe(0)

	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("gathering: %v", err)
	}
	labels := map[string]string{}
	for _, mf := range families {
		if len(mf.GetMetric()) == 0 {
			continue
		}
		var names []string
		for _, lp := range mf.GetMetric()[0].GetLabel() {
			names = append(names, lp.GetName())
		}
		sort.Strings(names)
		labels[mf.GetName()] = strings.Join(names, ",")
	}

	want := map[string]string{
		"bmr_http_requests_total":           "method,route,status",
		"bmr_http_request_duration_seconds": "method,route",
		"bmr_calculations_total":            "outcome,source",
		"bmr_validation_failures_total":     "field",
		"bmr_batch_files_total":             "outcome",
	}
	for name, l := range want {
		got, ok := labels[name]
		if !ok {
			t.Errorf("Expected metric %s to be registered", name)
			continue
		}
		if got != l {
			t.Errorf("Expected %s labels %q, got %q", name, l, got)
		}
	}
}
