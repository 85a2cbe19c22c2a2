package encounter

import (
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sprayline/sprayline-server/internal/game"
)

// State is the per-tick snapshot sent to the UI layer.
type State struct {
	EncounterID     string       `json:"encounter_id"`
	Phase           game.Phase   `json:"phase"`
	TimeRemaining   float64      `json:"time_remaining"`
	CoveragePercent float64      `json:"coverage_percent"`
	StrokeCount     int          `json:"stroke_count"`
	GuardDistance   float64      `json:"guard_distance"`
	Outcome         game.Outcome `json:"outcome"`
}

// Result is the single terminal outcome of an encounter.
type Result struct {
	EncounterID     string
	SpotID          string
	Outcome         game.Outcome
	Quality         float64
	CoveragePercent float64
	StrokeCount     int
}

// Options configures a new encounter.
type Options struct {
	// HasGuard disables the patrol when false; the encounter then ends
	// only via the clock or an explicit cancel.
	HasGuard bool
	// PerfectCoverage is the coverage percent counted as perfect quality.
	// Zero selects the default.
	PerfectCoverage float64
	// Rand drives the guard patrol. Nil selects a time-seeded source.
	Rand *rand.Rand
	// TickInterval overrides the guard tick period. Zero selects the
	// standard 500 ms period. Tests shorten it.
	TickInterval time.Duration

	OnState   func(State)
	OnOutcome func(Result)
}

// Encounter drives one timed painting attempt from start to its single
// terminal outcome.
type Encounter struct {
	ID         string
	SpotID     string
	Difficulty game.Difficulty

	cfg      game.DifficultyConfig
	hasGuard bool
	guard    *game.Guard
	canvas   *game.Canvas

	phase         game.Phase
	timeRemaining time.Duration
	outcome       game.Outcome

	tickInterval time.Duration
	stopCh       chan struct{}
	resolved     bool

	onState   func(State)
	onOutcome func(Result)

	mu sync.Mutex
}

// New creates an idle encounter for a spot at the given difficulty.
func New(spotID string, difficulty game.Difficulty, opts Options) *Encounter {
	cfg := game.ConfigFor(difficulty)

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	tick := opts.TickInterval
	if tick <= 0 {
		tick = game.GuardTickInterval
	}

	return &Encounter{
		ID:           uuid.New().String(),
		SpotID:       spotID,
		Difficulty:   difficulty,
		cfg:          cfg,
		hasGuard:     opts.HasGuard,
		guard:        game.NewGuard(cfg, rng),
		canvas:       game.NewCanvas(opts.PerfectCoverage),
		phase:        game.PhaseIdle,
		tickInterval: tick,
		onState:      opts.OnState,
		onOutcome:    opts.OnOutcome,
	}
}

// Start transitions idle → active and launches the tick loop.
// Returns false if the encounter is not idle.
func (e *Encounter) Start() bool {
	e.mu.Lock()
	if e.phase != game.PhaseIdle {
		e.mu.Unlock()
		return false
	}
	e.phase = game.PhaseActive
	e.timeRemaining = e.cfg.TimeLimit
	e.stopCh = make(chan struct{})
	e.mu.Unlock()

	go e.run()

	slog.Info("encounter started", "encounter", e.ID, "spot", e.SpotID, "difficulty", e.Difficulty.String())
	return true
}

// SubmitStroke ingests one stroke event and returns the updated coverage.
// Strokes are only accepted while the encounter is active.
func (e *Encounter) SubmitStroke() (float64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != game.PhaseActive {
		return 0, false
	}
	return e.canvas.IngestStroke(), true
}

// Cancel tears the encounter down without emitting an outcome.
// Returns false if the encounter was not active.
func (e *Encounter) Cancel() bool {
	e.mu.Lock()
	if e.phase != game.PhaseActive || e.resolved {
		e.mu.Unlock()
		return false
	}
	e.resolved = true
	e.phase = game.PhaseResolved
	close(e.stopCh)
	e.mu.Unlock()

	slog.Info("encounter cancelled", "encounter", e.ID)
	return true
}

// Snapshot returns the current state for rendering.
func (e *Encounter) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Caller must hold e.mu.
func (e *Encounter) snapshotLocked() State {
	remaining := e.timeRemaining.Seconds()
	if remaining < 0 {
		remaining = 0
	}
	return State{
		EncounterID:     e.ID,
		Phase:           e.phase,
		TimeRemaining:   remaining,
		CoveragePercent: e.canvas.CoveragePercent,
		StrokeCount:     e.canvas.StrokeCount,
		GuardDistance:   e.guard.Distance,
		Outcome:         e.outcome,
	}
}

// run is the encounter tick loop. The guard advances every tick and the
// clock decrements every second tick, so both periodic tasks are
// serialized on one goroutine with the guard checked first. The resolved
// flag guarantees at most one terminal transition; whichever condition
// is met first wins and cancels the other.
func (e *Encounter) run() {
	ticker := time.NewTicker(e.tickInterval)
	defer ticker.Stop()

	guardTicks := 0
	for {
		select {
		case <-e.stopCh:
			return
		case <-ticker.C:
			e.mu.Lock()
			if e.resolved {
				e.mu.Unlock()
				return
			}

			// Guard tick. Detection is checked before the clock so a
			// bust in the same window always beats a timeout.
			if e.hasGuard {
				if _, detected := e.guard.Tick(); detected {
					result := e.resolveLocked(game.OutcomeBusted)
					e.mu.Unlock()
					e.emit(result)
					return
				}
			}

			// Clock tick, once per two guard ticks.
			guardTicks++
			if guardTicks%2 == 0 {
				e.timeRemaining -= game.ClockTickInterval
				if e.timeRemaining <= 0 {
					e.timeRemaining = 0
					result := e.resolveLocked(game.OutcomeSuccess)
					e.mu.Unlock()
					e.emit(result)
					return
				}
			}

			state := e.snapshotLocked()
			e.mu.Unlock()

			if e.onState != nil {
				e.onState(state)
			}
		}
	}
}

// resolveLocked performs the terminal transition. Caller must hold e.mu
// and must not already have resolved.
func (e *Encounter) resolveLocked(outcome game.Outcome) Result {
	e.resolved = true
	e.phase = game.PhaseResolved
	e.outcome = outcome
	close(e.stopCh)

	quality := 0.0
	if outcome == game.OutcomeSuccess {
		quality = e.canvas.Quality()
	}
	return Result{
		EncounterID:     e.ID,
		SpotID:          e.SpotID,
		Outcome:         outcome,
		Quality:         quality,
		CoveragePercent: e.canvas.CoveragePercent,
		StrokeCount:     e.canvas.StrokeCount,
	}
}

func (e *Encounter) emit(result Result) {
	slog.Info("encounter resolved",
		"encounter", e.ID,
		"outcome", result.Outcome.String(),
		"quality", result.Quality,
	)
	if e.onOutcome != nil {
		e.onOutcome(result)
	}
}
