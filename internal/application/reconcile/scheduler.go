package reconcile

import (
	"context"
	"time"

	"github.com/TPBCanada/InventoryApp-sub000/pkg/logger"
)

// Scheduler corre la detección de deriva en segundo plano cada Interval.
// Solo detecta y reporta (log + métricas); la corrección queda bajo demanda
// desde el endpoint administrativo.
type Scheduler struct {
	service  *Service
	interval time.Duration
	log      *logger.Logger
}

// NewScheduler construye el scheduler. interval <= 0 lo deja deshabilitado.
func NewScheduler(service *Service, interval time.Duration, log *logger.Logger) *Scheduler {
	return &Scheduler{service: service, interval: interval, log: log}
}

// Run bloquea hasta que ctx se cancele. Lanzar en una goroutine propia.
func (s *Scheduler) Run(ctx context.Context) {
	if s.interval <= 0 {
		return
	}
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			report, err := s.service.DetectDrift(ctx)
			if err != nil {
				s.log.Error().Err(err).Msg("detección periódica de deriva")
				continue
			}
			if len(report.Keys) > 0 || len(report.SKUs) > 0 {
				s.log.Warn().
					Int("llaves", len(report.Keys)).
					Int("skus", len(report.SKUs)).
					Msg("deriva detectada entre snapshot y libro")
			} else {
				s.log.Debug().Msg("reconciliación periódica sin deriva")
			}
		}
	}
}
