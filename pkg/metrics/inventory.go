package metrics

import "github.com/prometheus/client_golang/prometheus"

// InventoryMetrics contadores y gauges del motor contable. Todos los métodos
// toleran receptor nil para que los casos de uso puedan correr sin registro
// (p. ej. en tests).
type InventoryMetrics struct {
	movements         *prometheus.CounterVec
	transfers         prometheus.Counter
	insufficientStock prometheus.Counter
	corrections       prometheus.Counter
	driftKeys         prometheus.Gauge
}

// NewInventoryMetrics registra las métricas en el registerer dado.
func NewInventoryMetrics(reg prometheus.Registerer) *InventoryMetrics {
	if reg == nil {
		return &InventoryMetrics{}
	}
	movements := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_movements_total",
		Help: "Movimientos confirmados por tipo.",
	}, []string{"kind"})
	transfers := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "inventory_transfers_total",
		Help: "Traslados confirmados.",
	})
	insufficient := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "inventory_insufficient_stock_total",
		Help: "Operaciones rechazadas por stock insuficiente.",
	})
	corrections := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "inventory_reconcile_corrections_total",
		Help: "Llaves corregidas por reconciliación.",
	})
	driftKeys := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "inventory_drift_keys",
		Help: "Llaves con deriva snapshot/libro en la última detección.",
	})
	reg.MustRegister(movements, transfers, insufficient, corrections, driftKeys)
	return &InventoryMetrics{
		movements:         movements,
		transfers:         transfers,
		insufficientStock: insufficient,
		corrections:       corrections,
		driftKeys:         driftKeys,
	}
}

// IncMovement cuenta un movimiento confirmado del tipo dado.
func (m *InventoryMetrics) IncMovement(kind string) {
	if m == nil || m.movements == nil {
		return
	}
	m.movements.WithLabelValues(kind).Inc()
}

// IncTransfer cuenta un traslado confirmado.
func (m *InventoryMetrics) IncTransfer() {
	if m == nil || m.transfers == nil {
		return
	}
	m.transfers.Inc()
}

// IncInsufficientStock cuenta un rechazo por stock insuficiente.
func (m *InventoryMetrics) IncInsufficientStock() {
	if m == nil || m.insufficientStock == nil {
		return
	}
	m.insufficientStock.Inc()
}

// IncCorrection cuenta una llave corregida por reconciliación.
func (m *InventoryMetrics) IncCorrection() {
	if m == nil || m.corrections == nil {
		return
	}
	m.corrections.Inc()
}

// SetDriftKeys fija el número de llaves con deriva de la última detección.
func (m *InventoryMetrics) SetDriftKeys(n int) {
	if m == nil || m.driftKeys == nil {
		return
	}
	m.driftKeys.Set(float64(n))
}
