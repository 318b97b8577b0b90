package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Counters(t *testing.T) {
	r := New()

	r.OrderCreated()
	r.OrderCreated()
	r.OrderTransitioned("PENDING", "PAID")
	r.TrackingAttach("failure")
	r.AuthorizationDenied("order.transition")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.ordersCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.statusTransitions.WithLabelValues("PENDING", "PAID")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.trackingAttach.WithLabelValues("failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.authzDenials.WithLabelValues("order.transition")))
}

func TestRecorder_Handler(t *testing.T) {
	r := New()
	r.PaymentIntent("success")
	r.ObserveExternalCall("stripe", 120*time.Millisecond)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `storefront_payment_intents_total{result="success"} 1`)
	assert.Contains(t, string(body), "storefront_external_call_duration_seconds_bucket")
}
