package service

import "time"

// Metrics records business counters for the order flow.
type Metrics interface {
	OrderCreated()
	OrderTransitioned(from, to string)
	TrackingAttach(result string)
	PaymentIntent(result string)
	AuthorizationDenied(action string)
	ObserveExternalCall(service string, elapsed time.Duration)
}

// NopMetrics discards every observation.
type NopMetrics struct{}

func (NopMetrics) OrderCreated() {}
func (NopMetrics) OrderTransitioned(string, string) {}
func (NopMetrics) TrackingAttach(string) {}
func (NopMetrics) PaymentIntent(string) {}
func (NopMetrics) AuthorizationDenied(string) {}
func (NopMetrics) ObserveExternalCall(string, time.Duration) {}
