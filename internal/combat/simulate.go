package combat

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"langbattle/internal/logging"
)

type SimResult struct {
	BattleID        string   `json:"battle_id"`
	Seed            int64    `json:"seed"`
	Outcome         string   `json:"outcome"`
	Win             bool     `json:"win"`
	Turns           int      `json:"turns"`
	PlayerRemaining int      `json:"player_remaining"`
	EnemyRemaining  int      `json:"enemy_remaining"`
	Transcript      []string `json:"transcript,omitempty"`
	Events          []Event  `json:"events,omitempty"`
	Meta            SimMeta  `json:"meta"`
}

type SimMeta struct {
	Player []SimEntityMeta `json:"player"`
	Enemy  []SimEntityMeta `json:"enemy"`
}

type SimEntityMeta struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Name      string `json:"name"`
	Level     uint32 `json:"level"`
	MaxHealth uint32 `json:"max_health"`
	Health    uint32 `json:"health"`
}

func teamMeta(t *Team) []SimEntityMeta {
	out := make([]SimEntityMeta, 0, t.Len())
	for _, e := range t.Entities() {
		out = append(out, SimEntityMeta{
			ID:        e.ID,
			Type:      e.Type.Key(),
			Name:      e.Name,
			Level:     e.Level,
			MaxHealth: e.MaxHealth(),
			Health:    e.Health(),
		})
	}
	return out
}

// RunSingle plays b to completion with player choosing the player's actions.
// A controller returning an invalid decision forfeits the battle.
func RunSingle(b *Battle, player Controller, seed int64) SimResult {
	for !b.Over() {
		d := player.Decide(b)
		if err := b.PlayTurn(d); err != nil {
			b.log.Warn("controller decision rejected", zap.Error(err))
			_ = b.PlayTurn(Forfeit())
		}
		b.text.Drain()
	}
	return SimResult{
		BattleID:        b.ID,
		Seed:            seed,
		Outcome:         b.outcome.String(),
		Win:             b.outcome == OutcomePlayerWon,
		Turns:           b.turn,
		PlayerRemaining: b.player.Remaining(),
		EnemyRemaining:  b.enemy.Remaining(),
		Transcript:      b.transcript,
		Events:          b.events,
		Meta: SimMeta{
			Player: teamMeta(b.player),
			Enemy:  teamMeta(b.enemy),
		},
	}
}

// BatchOptions configures RunBatch. Job i always runs with Seed+i, so the
// summary depends only on Seed and Runs, never on Workers or scheduling.
type BatchOptions struct {
	Runs    int
	Workers int
	Seed    int64
	// Build creates the battle for one job and the stream it draws from.
	Build func(seed int64, log *zap.Logger) (*Battle, Rand, error)
	// Controller drives the player side; nil uses RandomController.
	Controller func(rng Rand) Controller
	Logger     *zap.Logger
}

type BatchSummary struct {
	Runs      int                     `json:"runs"`
	Failed    int                     `json:"failed"`
	WinRate   float64                 `json:"win_rate"`
	AvgTurns  float64                 `json:"avg_turns"`
	ByOutcome map[string]int          `json:"by_outcome"`
	Survival  map[string]SurvivalStat `json:"survival"`
}

type SurvivalStat struct {
	Total int     `json:"total"`
	Ratio float64 `json:"ratio"`
}

// RunBatch plays opts.Runs battles on a worker pool and aggregates them.
func RunBatch(opts BatchOptions) BatchSummary {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	controller := opts.Controller
	if controller == nil {
		controller = func(rng Rand) Controller { return RandomController{Rng: rng} }
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	var (
		mu        sync.Mutex
		wins      int
		sumTurns  int
		failed    int
		byOutcome = map[string]int{}
		survivors = map[string]int{}
	)
	wg := sync.WaitGroup{}
	jobs := make(chan int, opts.Runs)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			wlog := log.With(zap.Int(logging.FieldWorker, workerID))
			for i := range jobs {
				s := opts.Seed + int64(i)
				b, rng, err := opts.Build(s, wlog)
				if err != nil {
					wlog.Error("build battle", zap.Int64(logging.FieldSeed, s), zap.Error(err))
					mu.Lock()
					failed++
					mu.Unlock()
					continue
				}
				res := RunSingle(b, controller(rng), s)

				mu.Lock()
				if res.Win {
					wins++
				}
				sumTurns += res.Turns
				byOutcome[res.Outcome]++
				for _, m := range res.Meta.Player {
					if m.Health > 0 {
						survivors[m.Type]++
					}
				}
				mu.Unlock()
			}
		}(w)
	}
	for i := 0; i < opts.Runs; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	played := opts.Runs - failed
	ratio := func(v int) float64 {
		if played <= 0 {
			return 0
		}
		return float64(v) / float64(played)
	}
	sum := BatchSummary{
		Runs:      opts.Runs,
		Failed:    failed,
		WinRate:   ratio(wins),
		AvgTurns:  ratio(sumTurns),
		ByOutcome: byOutcome,
		Survival:  map[string]SurvivalStat{},
	}
	for k, v := range survivors {
		sum.Survival[k] = SurvivalStat{Total: v, Ratio: ratio(v)}
	}
	return sum
}

func MarshalPretty(v any) []byte {
	b, _ := json.MarshalIndent(v, "", "  ")
	return b
}
