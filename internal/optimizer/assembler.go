package optimizer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"github.com/stitts-dev/lineupgen/internal/types"
)

// DefaultFailureThreshold is the number of consecutive failed attempts after
// which the search gives up
const DefaultFailureThreshold = 1000

// AssembleConfig controls one generation run
type AssembleConfig struct {
	RunID            string `json:"run_id"`
	NumLineups       int    `json:"num_lineups"`
	FailureThreshold int    `json:"failure_threshold"`
	Workers          int    `json:"workers"`
	Seed             int64  `json:"seed"`
}

// Observer receives search events. Implementations must be safe to call
// from the goroutine running Generate.
type Observer interface {
	ObserveAttempt()
	ObserveAccepted()
	ObserveRejected(reason string)
}

type noopObserver struct{}

func (noopObserver) ObserveAttempt()        {}
func (noopObserver) ObserveAccepted()       {}
func (noopObserver) ObserveRejected(string) {}

// Result is the outcome of a run. Lineups are in acceptance order.
type Result struct {
	RunID      string                 `json:"run_id"`
	Template   string                 `json:"template"`
	Lineups    []types.Lineup         `json:"lineups"`
	Exposures  []types.ExposureRecord `json:"exposures"`
	Requested  int                    `json:"requested"`
	Attempts   int                    `json:"attempts"`
	Rejections map[string]int         `json:"rejections"`
	Exhausted  bool                   `json:"exhausted"`
	Cancelled  bool                   `json:"cancelled"`
	Seed       int64                  `json:"seed"`
	Elapsed    time.Duration          `json:"elapsed"`
}

// Generated is the number of lineups actually produced
func (r *Result) Generated() int {
	return len(r.Lineups)
}

// Assembler runs the lineup set search over a read-only pool. One Assembler
// may be used for several runs; no state survives between them.
type Assembler struct {
	players  []types.Player
	template RosterTemplate
	config   AssembleConfig
	observer Observer
	log      *logrus.Entry
}

// NewAssembler creates an assembler, filling config defaults
func NewAssembler(players []types.Player, template RosterTemplate, config AssembleConfig, log *logrus.Entry) *Assembler {
	if config.NumLineups <= 0 {
		config.NumLineups = 1
	}
	if config.FailureThreshold <= 0 {
		config.FailureThreshold = DefaultFailureThreshold
	}
	if config.Workers <= 0 {
		config.Workers = 1
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Assembler{
		players:  players,
		template: template,
		config:   config,
		observer: noopObserver{},
		log:      log,
	}
}

// WithObserver attaches an observer for search events
func (a *Assembler) WithObserver(o Observer) *Assembler {
	if o != nil {
		a.observer = o
	}
	return a
}

// Config returns the effective configuration
func (a *Assembler) Config() AssembleConfig {
	return a.config
}

// Generate searches for up to NumLineups distinct lineups. Running out of
// attempts or a cancelled context yields a partial result, not an error;
// errors are reserved for an unusable template.
func (a *Assembler) Generate(ctx context.Context) (*Result, error) {
	if err := a.template.Validate(); err != nil {
		return nil, fmt.Errorf("cannot generate lineups: %w", err)
	}

	startTime := time.Now()
	runID := a.config.RunID
	if runID == "" {
		runID = uuid.New().String()
	}
	seed := a.config.Seed
	if seed == 0 {
		seed = startTime.UnixNano()
	}

	log := a.log.WithField("run_id", runID)
	log.WithFields(logrus.Fields{
		"total_players":     len(a.players),
		"slots":             len(a.template.Slots),
		"salary_floor":      a.template.SalaryFloor,
		"salary_cap":        a.template.SalaryCap,
		"num_lineups":       a.config.NumLineups,
		"failure_threshold": a.config.FailureThreshold,
		"workers":           a.config.Workers,
		"seed":              seed,
	}).Info("Starting lineup generation")

	dists := BuildDistributions(a.players, a.template, log)
	s := newSearch(a.template, a.config, NewExposureTracker(a.config.NumLineups, a.players), a.observer, log)

	if a.config.Workers > 1 {
		a.generateParallel(ctx, s, dists, seed, log)
	} else {
		builder := NewLineupBuilder(a.players, a.template, dists, s.exposure, NewRandomSource(seed), log)
		for !s.done() {
			if ctx.Err() != nil {
				s.cancelled = true
				break
			}
			lineup, err := builder.Build()
			if s.step(lineup, err) {
				break
			}
		}
	}

	result := &Result{
		RunID:      runID,
		Template:   a.template.Name,
		Lineups:    s.lineups,
		Exposures:  s.exposure.Records(),
		Requested:  a.config.NumLineups,
		Attempts:   s.attempts,
		Rejections: s.rejections,
		Exhausted:  s.exhausted,
		Cancelled:  s.cancelled,
		Seed:       seed,
		Elapsed:    time.Since(startTime),
	}

	entry := log.WithFields(logrus.Fields{
		"requested":  result.Requested,
		"generated":  result.Generated(),
		"attempts":   result.Attempts,
		"rejections": result.Rejections,
		"elapsed_ms": result.Elapsed.Milliseconds(),
	})
	switch {
	case result.Exhausted:
		entry.Warn("Failure threshold reached before requested lineup count")
	case result.Cancelled:
		entry.Warn("Lineup generation cancelled")
	default:
		entry.Info("Lineup generation completed")
	}

	return result, nil
}

// search is the state owned by the single evaluating goroutine of a run
type search struct {
	template   RosterTemplate
	requested  int
	exposure   *ExposureTracker
	breaker    *gobreaker.CircuitBreaker
	accepted   map[string]bool
	lineups    []types.Lineup
	attempts   int
	rejections map[string]int
	exhausted  bool
	cancelled  bool
	observer   Observer
	log        *logrus.Entry
}

func newSearch(template RosterTemplate, config AssembleConfig, exposure *ExposureTracker, observer Observer, log *logrus.Entry) *search {
	threshold := uint32(config.FailureThreshold)
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name: "lineup-search",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.WithFields(logrus.Fields{
				"component": "circuit_breaker",
				"breaker":   name,
				"from":      from.String(),
				"to":        to.String(),
			}).Debug("Search breaker state changed")
		},
	})

	return &search{
		template:   template,
		requested:  config.NumLineups,
		exposure:   exposure,
		breaker:    breaker,
		accepted:   make(map[string]bool, config.NumLineups),
		lineups:    make([]types.Lineup, 0, config.NumLineups),
		rejections: make(map[string]int),
		observer:   observer,
		log:        log,
	}
}

func (s *search) done() bool {
	return len(s.lineups) >= s.requested
}

// step evaluates one build attempt and reports whether the failure
// threshold has been reached
func (s *search) step(candidate types.Lineup, buildErr error) bool {
	s.attempts++
	s.observer.ObserveAttempt()

	_, err := s.breaker.Execute(func() (interface{}, error) {
		if buildErr != nil {
			return nil, buildErr
		}
		return nil, s.evaluate(candidate)
	})

	if err != nil {
		reason := RejectionReason(err)
		s.rejections[reason]++
		s.observer.ObserveRejected(reason)
	} else {
		s.observer.ObserveAccepted()
	}

	if s.breaker.State() == gobreaker.StateOpen {
		s.exhausted = true
		return true
	}
	return false
}

// evaluate accepts the candidate or returns why it was rejected
func (s *search) evaluate(candidate types.Lineup) error {
	key := candidate.Key()
	if s.accepted[key] {
		return ErrDuplicateLineup
	}

	salary := candidate.Salary()
	if salary <= s.template.SalaryFloor || salary >= s.template.SalaryCap {
		return ErrSalaryBand
	}

	if !s.exposure.CanAccept(candidate) {
		return ErrExposureCap
	}

	s.accepted[key] = true
	s.lineups = append(s.lineups, candidate)
	s.exposure.RecordAcceptance(candidate)

	if s.log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		s.log.WithFields(logrus.Fields{
			"lineup_number": len(s.lineups),
			"salary_used":   salary,
			"attempts":      s.attempts,
		}).Debug("Accepted lineup")
	}
	return nil
}
