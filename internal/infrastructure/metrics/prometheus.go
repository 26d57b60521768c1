// Package metrics expone las métricas del asistente en formato Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/inventario-ai/internal/application/ports"
)

// Nombres de métricas.
const (
	MetricIntentsTotal          = "inventory_assistant_intents_total"
	MetricIntentDurationSeconds = "inventory_assistant_intent_duration_seconds"
	MetricModelCallsTotal       = "inventory_assistant_model_calls_total"
	MetricModelDurationSeconds  = "inventory_assistant_model_call_duration_seconds"
	MetricLowStockItems         = "inventory_low_stock_items"
)

var _ ports.AssistantMetrics = (*Prometheus)(nil)

// Prometheus registro propio con los contadores e histogramas del asistente.
// Seguro para uso concurrente.
type Prometheus struct {
	registry       *prometheus.Registry
	intentsTotal   *prometheus.CounterVec
	intentDuration *prometheus.HistogramVec
	modelTotal     *prometheus.CounterVec
	modelDuration  *prometheus.HistogramVec
	lowStock       prometheus.Gauge
}

// New registra las métricas y los collectors de proceso y runtime.
func New() *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		intentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricIntentsTotal,
			Help: "Intenciones procesadas por acción y resultado.",
		}, []string{"action", "outcome"}),
		intentDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    MetricIntentDurationSeconds,
			Help:    "Duración de cada intención contra el almacén.",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"action"}),
		modelTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricModelCallsTotal,
			Help: "Llamadas al modelo de lenguaje por proveedor y resultado.",
		}, []string{"provider", "outcome"}),
		modelDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    MetricModelDurationSeconds,
			Help:    "Latencia de las llamadas al modelo de lenguaje.",
			Buckets: []float64{.25, .5, 1, 2, 4, 8, 15, 30},
		}, []string{"provider"}),
		lowStock: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: MetricLowStockItems,
			Help: "Registros por debajo de su umbral de reposición en la última revisión.",
		}),
	}
	p.registry.MustRegister(
		p.intentsTotal, p.intentDuration, p.modelTotal, p.modelDuration, p.lowStock,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return p
}

func (p *Prometheus) ObserveIntent(action, outcome string, elapsed time.Duration) {
	p.intentsTotal.WithLabelValues(action, outcome).Inc()
	p.intentDuration.WithLabelValues(action).Observe(elapsed.Seconds())
}

func (p *Prometheus) ObserveModelCall(provider, outcome string, elapsed time.Duration) {
	p.modelTotal.WithLabelValues(provider, outcome).Inc()
	p.modelDuration.WithLabelValues(provider).Observe(elapsed.Seconds())
}

// SetLowStock lo actualiza el job de existencias bajas.
func (p *Prometheus) SetLowStock(n int) {
	p.lowStock.Set(float64(n))
}

// Registry expuesto para tests.
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

// Handler sirve /metrics con el registro propio.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}
