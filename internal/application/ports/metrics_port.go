package ports

import "time"

// Resultados de una intención para métricas y logs.
const (
	OutcomeApplied  = "applied"
	OutcomeQuery    = "query"
	OutcomeNotFound = "not_found"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// AssistantMetrics puerto de observabilidad del asistente.
type AssistantMetrics interface {
	ObserveIntent(action, outcome string, elapsed time.Duration)
	ObserveModelCall(provider, outcome string, elapsed time.Duration)
}

// NopMetrics descarta las observaciones.
type NopMetrics struct{}

func (NopMetrics) ObserveIntent(string, string, time.Duration)    {}
func (NopMetrics) ObserveModelCall(string, string, time.Duration) {}
