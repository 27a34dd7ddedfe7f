package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCountQuery(t *testing.T) {
	before := testutil.ToFloat64(queries.WithLabelValues("hover", "true"))
	CountQuery("hover", true)
	CountQuery("hover", true)
	after := testutil.ToFloat64(queries.WithLabelValues("hover", "true"))
	if after-before != 2 {
		t.Errorf("expected 2 hover hits, got %v", after-before)
	}
}

func TestAddDiagnostics(t *testing.T) {
	before := testutil.ToFloat64(diagnostics.WithLabelValues(KindParse))
	AddDiagnostics(KindParse, 1)
	AddDiagnostics(KindParse, 0)
	after := testutil.ToFloat64(diagnostics.WithLabelValues(KindParse))
	if after-before != 1 {
		t.Errorf("expected 1 parse diagnostic, got %v", after-before)
	}
}

func TestSetDocuments(t *testing.T) {
	SetDocuments(3)
	if got := testutil.ToFloat64(openDocuments); got != 3 {
		t.Errorf("expected 3 documents, got %v", got)
	}
}

func TestObserveIndex(t *testing.T) {
	before := testutil.CollectAndCount(indexDuration)
	ObserveIndex(OutcomeOK, time.Millisecond)
	ObserveIndex(OutcomeParseError, time.Millisecond)
	if got := testutil.CollectAndCount(indexDuration); got < before || got < 2 {
		t.Errorf("expected at least 2 outcome series, got %d", got)
	}
}
