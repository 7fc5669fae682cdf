//go:build !integration

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestVideoCounters(t *testing.T) {
	before := testutil.ToFloat64(videoRequestsTotal.WithLabelValues("queued"))
	IncVideoRequest(" Queued ")
	if got := testutil.ToFloat64(videoRequestsTotal.WithLabelValues("queued")); got != before+1 {
		t.Fatalf("expected %v, got %v", before+1, got)
	}

	claims := testutil.ToFloat64(videoDeliveriesTotal.WithLabelValues("claim", "succeeded"))
	requests := testutil.ToFloat64(videoDeliveriesTotal.WithLabelValues("request", "succeeded"))
	ObserveDelivery("claim", "succeeded", 120*time.Millisecond)
	if got := testutil.ToFloat64(videoDeliveriesTotal.WithLabelValues("claim", "succeeded")); got != claims+1 {
		t.Fatalf("expected %v claim deliveries, got %v", claims+1, got)
	}
	if got := testutil.ToFloat64(videoDeliveriesTotal.WithLabelValues("request", "succeeded")); got != requests {
		t.Fatalf("request series must not move, got %v", got)
	}

	SetPendingRequests(3)
	if got := testutil.ToFloat64(videoPendingRequests); got != 3 {
		t.Fatalf("expected gauge 3, got %v", got)
	}
}

func TestMustRegister_Idempotent(t *testing.T) {
	MustRegister()
	MustRegister()
}
