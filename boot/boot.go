// Package boot runs the one-time writes that deferred-initialization cells
// wait for. A Sequencer collects named fill steps, executes each exactly
// once, and only returns from Run once every write is complete, so code
// that reads the cells after Run has the happens-before ordering the
// lateinit contract demands without touching a synchronization primitive
// at the read sites.
package boot

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rickb777/date/v2/timespan"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/on-the-ground/late_init_go/lateinit"
	"github.com/on-the-ground/late_init_go/shared/contract"
)

// ErrSequencerSpent is returned by Run on a sequencer that already ran.
// The sequencer is itself write-once, like the cells it fills.
var ErrSequencerSpent = errors.New("boot: sequencer already ran")

// Sequencer collects fill steps and runs them once.
//
// Steps sharing a group key run on the same worker in registration order;
// steps in different groups may run concurrently on separate workers. A
// step must therefore only depend on writes made by earlier steps of its
// own group.
type Sequencer struct {
	logger     *zap.Logger
	numWorkers int

	mu           sync.Mutex
	steps        []step
	placeholders []placeholderFill
	spent        bool
	reports      []StepReport
}

// NewSequencer returns a sequencer that fans steps out over numWorkers
// workers (clamped to at least 1) and logs step progress to logger. A nil
// logger disables logging.
func NewSequencer(logger *zap.Logger, numWorkers int) *Sequencer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &Sequencer{
		logger:     logger,
		numWorkers: numWorkers,
	}
}

// Register adds a fill step. Steps with the same groupKey are executed in
// registration order on one worker.
//
// Registering on a spent sequencer is a contract violation: the run
// already happened, so the step could never execute.
func (s *Sequencer) Register(name, groupKey string, fn func(context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.spent {
		contract.Violation("boot: Register(%q) on a spent sequencer", name)
		return
	}
	s.steps = append(s.steps, step{name: name, groupKey: groupKey, fn: fn})
}

// Run executes every placeholder fill, then every registered step, exactly
// once. It returns after all workers have finished: either every step
// succeeded, or each failed worker stopped at its first failing step and
// the step errors are combined into the returned error. A second Run
// returns ErrSequencerSpent.
func (s *Sequencer) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.spent {
		s.mu.Unlock()
		return ErrSequencerSpent
	}
	s.spent = true
	steps := s.steps
	placeholders := s.placeholders
	s.mu.Unlock()

	logger := s.logger.With(zap.String("run_id", uuid.New().String()))

	// Placeholder fills run first, on the caller's goroutine: they are
	// plain canonical-empty writes that steps may rely on being done.
	for _, p := range placeholders {
		p.fill()
		logger.Debug("placeholder filled", zap.String("slot", p.name))
	}

	buckets := make([][]step, s.numWorkers)
	for _, st := range steps {
		idx := indexByHash(st.groupKey, s.numWorkers)
		buckets[idx] = append(buckets[idx], st)
	}

	var wg sync.WaitGroup
	errs := make([]error, s.numWorkers)
	reports := make([][]StepReport, s.numWorkers)
	for i, bucket := range buckets {
		if len(bucket) == 0 {
			continue
		}
		wg.Add(1)
		go func(worker int, bucket []step) {
			defer wg.Done()
			for _, st := range bucket {
				select {
				case <-ctx.Done():
					errs[worker] = ctx.Err()
					return
				default:
				}

				start := time.Now()
				if err := st.fn(ctx); err != nil {
					errs[worker] = fmt.Errorf("boot step %s: %w", st.name, err)
					logger.Error("boot step failed",
						zap.String("step", st.name),
						zap.Int("worker", worker),
						zap.Error(err),
					)
					return
				}
				span := timespan.BetweenTimes(start, time.Now())
				reports[worker] = append(reports[worker], StepReport{
					Name:   st.name,
					Worker: worker,
					Span:   span,
				})
				logger.Info("boot step done",
					zap.String("step", st.name),
					zap.Int("worker", worker),
					zap.Duration("took", span.Duration()),
				)
			}
		}(i, bucket)
	}
	wg.Wait()

	s.mu.Lock()
	for _, rs := range reports {
		s.reports = append(s.reports, rs...)
	}
	s.mu.Unlock()

	return multierr.Combine(errs...)
}

// Report returns one entry per completed step, with the execution span of
// each. Valid after Run; the order interleaves workers.
func (s *Sequencer) Report() []StepReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]StepReport, len(s.reports))
	copy(out, s.reports)
	return out
}

func (s *Sequencer) registerPlaceholder(name string, fill func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.spent {
		contract.Violation("boot: Placeholder(%q) on a spent sequencer", name)
		return
	}
	s.placeholders = append(s.placeholders, placeholderFill{name: name, fill: fill})
}

// Fill registers a step that computes a value and performs the one-time
// write into cell. Free function: methods cannot carry the value's type
// parameter.
func Fill[T any](s *Sequencer, name, groupKey string, cell *lateinit.Cell[T], fn func(context.Context) (T, error)) {
	s.Register(name, groupKey, func(ctx context.Context) error {
		v, err := fn(ctx)
		if err != nil {
			return err
		}
		cell.InitShared(v)
		return nil
	})
}

// Placeholder registers cell for auto-population with the canonical empty
// value of T (lateinit.PlaceholderOf) before any step runs. Meant for
// slots no step fills; a step that later Inits the same cell trips the
// double-initialization check.
func Placeholder[T any](s *Sequencer, name string, cell *lateinit.Cell[T]) {
	s.registerPlaceholder(name, func() {
		cell.InitShared(lateinit.PlaceholderOf[T]())
	})
}
