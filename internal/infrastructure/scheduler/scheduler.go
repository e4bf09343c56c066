package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/stockgenius-api/pkg/logger"
)

// Runner es lo único que el scheduler sabe del motor de alertas.
type Runner interface {
	RunAllRules(ctx context.Context)
}

// Scheduler dispara una pasada de evaluación por intervalo. Las pasadas
// corren en la goroutine del scheduler, una a la vez; si una pasada tarda
// más que el intervalo, los ticks intermedios se pierden (time.Ticker).
type Scheduler struct {
	runner   Runner
	interval time.Duration
	log      *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// New construye el scheduler con el intervalo entre pasadas.
func New(runner Runner, interval time.Duration, log *logger.Logger) *Scheduler {
	return &Scheduler{runner: runner, interval: interval, log: log}
}

// Start lanza la goroutine de pasadas periódicas. La primera pasada corre
// tras un intervalo completo, no de inmediato. Idempotente: un segundo
// Start sin Stop no hace nada.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	s.log.Info().Dur("interval", s.interval).Msg("scheduler de alertas iniciado")
	go s.loop(ctx)
}

func (s *Scheduler) loop(ctx context.Context) {
	defer close(s.done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("scheduler de alertas detenido")
			return
		case <-ticker.C:
			s.runner.RunAllRules(ctx)
		}
	}
}

// Stop detiene las pasadas periódicas y espera a que termine la que esté
// en curso. Seguro de llamar sin Start previo.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
