package optimizer

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/stitts-dev/lineupgen/internal/types"
	"golang.org/x/sync/errgroup"
)

type attempt struct {
	lineup types.Lineup
	err    error
}

// generateParallel runs builder workers, each on its own random stream, and
// funnels every attempt to this goroutine, which alone evaluates, accepts
// and rejects. Exposure caps therefore hold even though workers read the
// tracker while it is being updated.
func (a *Assembler) generateParallel(ctx context.Context, s *search, dists map[string]Distribution, seed int64, log *logrus.Entry) {
	workerCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	attempts := make(chan attempt, a.config.Workers)
	g, gctx := errgroup.WithContext(workerCtx)

	for w := 0; w < a.config.Workers; w++ {
		w := w
		builder := NewLineupBuilder(
			a.players,
			a.template,
			dists,
			s.exposure,
			NewRandomSource(seed+int64(w)),
			log.WithField("worker", w),
		)
		g.Go(func() error {
			for {
				lineup, err := builder.Build()
				select {
				case attempts <- attempt{lineup: lineup, err: err}:
				case <-gctx.Done():
					return nil
				}
			}
		})
	}

loop:
	for !s.done() {
		select {
		case <-ctx.Done():
			s.cancelled = true
			break loop
		case at := <-attempts:
			if s.step(at.lineup, at.err) {
				break loop
			}
		}
	}

	cancel()
	_ = g.Wait()
}
