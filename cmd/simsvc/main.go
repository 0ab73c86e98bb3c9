package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"langbattle/internal/combat"
	"langbattle/internal/config"
	"langbattle/internal/logging"
	"langbattle/internal/util"
)

func main() {
	var cfgDir, out, logLevel, aiName string
	var seed int64
	var n, workers int
	var saveLog bool
	flag.StringVar(&cfgDir, "config", "assets", "config dir (embedded defaults fill missing files)")
	flag.StringVar(&out, "out", "out.json", "output file (single) or summary file (batch)")
	flag.Int64Var(&seed, "seed", 0, "seed (0 uses battle.yaml)")
	flag.IntVar(&n, "n", 1, "number of simulations")
	flag.IntVar(&workers, "workers", 8, "batch workers")
	flag.StringVar(&logLevel, "log", "", "log level (empty uses battle.yaml)")
	flag.StringVar(&aiName, "ai", "random", "player controller: random | greedy")
	flag.BoolVar(&saveLog, "transcript", true, "save transcript and events when n==1")
	flag.Parse()

	mc, rc, bc, err := config.LoadAll(cfgDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if logLevel == "" {
		logLevel = bc.LogLevel
	}
	if seed == 0 {
		seed = bc.Seed
	}
	logger, err := logging.New(logging.Options{Level: logLevel})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync(logger)

	catalog, err := combat.NewCatalog(mc)
	if err != nil {
		logger.Fatal("build catalog", zap.Error(err))
	}
	roster, err := combat.NewRoster(rc, catalog)
	if err != nil {
		logger.Fatal("build roster", zap.Error(err))
	}
	level := uint32(bc.Level)

	controller := func(rng combat.Rand) combat.Controller {
		if aiName == "greedy" {
			return combat.GreedyController{SwitchBelow: 0.25}
		}
		return combat.RandomController{Rng: rng}
	}

	newBattle := func(s int64, log *zap.Logger, record bool) (*combat.Battle, combat.Rand, error) {
		player, err := roster.BuildTeam(bc.Player, level)
		if err != nil {
			return nil, nil, err
		}
		enemy, err := roster.BuildTeam(bc.Enemy, level)
		if err != nil {
			return nil, nil, err
		}
		rng := util.New(s)
		b, err := combat.NewBattle(player, enemy, rng,
			combat.WithLogger(log.With(zap.Int64(logging.FieldSeed, s))),
			combat.WithMaxTurns(bc.MaxTurns),
			combat.WithRecording(record))
		return b, rng, err
	}

	if n <= 1 {
		b, rng, err := newBattle(seed, logger, saveLog)
		if err != nil {
			logger.Fatal("build battle", zap.Error(err))
		}
		res := combat.RunSingle(b, controller(rng), seed)
		if err := os.WriteFile(out, combat.MarshalPretty(res), 0644); err != nil {
			logger.Fatal("write result", zap.String("path", out), zap.Error(err))
		}
		fmt.Printf("Single battle finished. Outcome=%s, Turns=%d -> %s\n", res.Outcome, res.Turns, out)
		return
	}

	summary := combat.RunBatch(combat.BatchOptions{
		Runs:    n,
		Workers: workers,
		Seed:    seed,
		Build: func(s int64, log *zap.Logger) (*combat.Battle, combat.Rand, error) {
			return newBattle(s, log, false)
		},
		Controller: controller,
		Logger:     logger,
	})
	report := map[string]any{
		"summary": summary,
		"ai":      aiName,
		"player":  bc.Player,
		"enemy":   bc.Enemy,
	}
	if err := os.WriteFile(out, combat.MarshalPretty(report), 0644); err != nil {
		logger.Fatal("write summary", zap.String("path", out), zap.Error(err))
	}
	logger.Info("batch finished", zap.Int("runs", n), zap.Int("failed", summary.Failed), zap.Float64("win_rate", summary.WinRate))
	fmt.Printf("Batch %d done -> %s\n", n, filepath.Base(out))
}
