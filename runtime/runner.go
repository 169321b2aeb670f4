// Package runtime provides a host-side tick scheduler for hfsmx stacks.
// The engine itself is synchronous and call-driven; a Runner is just the
// loop that decides when Update runs, plus logging and metrics around it.
package runtime

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/hfsmx/hfsmx"
)

// TickFunc supplies the world snapshot and update sink for one tick.
type TickFunc[W, U any] func(tick uint64) (world W, sink U)

// Config tunes a Runner.
type Config struct {
	// TickRate is the interval between updates in Run. Defaults to 60 Hz.
	TickRate time.Duration
	// MaxTicks stops Run after this many updates; 0 means run until the
	// stack completes.
	MaxTicks uint64
	// Logger receives state change and completion logs. Defaults to a nop
	// logger.
	Logger *zap.SugaredLogger
	// Metrics, when set, is updated on every step.
	Metrics *Metrics
}

// Runner drives one Stack against one Store. Like the Stack it wraps, a
// Runner is exclusively owned by one logical caller.
type Runner[W, U any] struct {
	store *hfsmx.Store[W, U]
	stack *hfsmx.Stack[W, U]
	cfg   Config
	log   *zap.SugaredLogger
	tick  uint64
}

// New creates a Runner for the given store and stack.
func New[W, U any](store *hfsmx.Store[W, U], stack *hfsmx.Stack[W, U], cfg Config) *Runner[W, U] {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 16667 * time.Microsecond // 60 Hz
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Runner[W, U]{store: store, stack: stack, cfg: cfg, log: log}
}

// Tick returns how many updates have run.
func (r *Runner[W, U]) Tick() uint64 {
	return r.tick
}

// Stack returns the stack being driven, for introspection.
func (r *Runner[W, U]) Stack() *hfsmx.Stack[W, U] {
	return r.stack
}

// Step performs exactly one update, with logging and metrics around it.
func (r *Runner[W, U]) Step(world W, sink U) (hfsmx.Status, error) {
	beforeMachine, _ := r.stack.CurrentMachineName(r.store)
	beforeState, _ := r.stack.CurrentStateName(r.store)

	status, err := r.stack.Update(r.store, sink, world)
	if err != nil {
		return status, err
	}
	r.tick++

	if m := r.cfg.Metrics; m != nil {
		m.Ticks.Inc()
		m.StackDepth.Set(float64(r.stack.Depth()))
	}
	if status == hfsmx.Done {
		r.log.Infow("machine done",
			"tick", r.tick,
			"machine", beforeMachine,
		)
		return status, nil
	}

	afterMachine, _ := r.stack.CurrentMachineName(r.store)
	afterState, _ := r.stack.CurrentStateName(r.store)
	if beforeMachine != afterMachine || beforeState != afterState {
		if m := r.cfg.Metrics; m != nil {
			m.Transitions.WithLabelValues(afterMachine).Inc()
		}
		r.log.Debugw("state change",
			"tick", r.tick,
			"machine", afterMachine,
			"from", beforeState,
			"to", afterState,
			"depth", r.stack.Depth(),
		)
	}
	return status, nil
}

// Run steps the stack on a fixed ticker until it completes, the tick budget
// is exhausted, the context is cancelled, or an update fails. supply is
// called before every step to produce that tick's world and sink.
func (r *Runner[W, U]) Run(ctx context.Context, supply TickFunc[W, U]) (hfsmx.Status, error) {
	ticker := time.NewTicker(r.cfg.TickRate)
	defer ticker.Stop()

	for {
		if r.cfg.MaxTicks > 0 && r.tick >= r.cfg.MaxTicks {
			return hfsmx.Running, nil
		}
		select {
		case <-ctx.Done():
			return hfsmx.Running, ctx.Err()
		case <-ticker.C:
			world, sink := supply(r.tick)
			status, err := r.Step(world, sink)
			if err != nil || status == hfsmx.Done {
				return status, err
			}
		}
	}
}
