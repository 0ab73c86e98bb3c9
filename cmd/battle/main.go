package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"langbattle/internal/combat"
	"langbattle/internal/config"
	"langbattle/internal/logging"
	"langbattle/internal/ui"
	"langbattle/internal/util"
)

func main() {
	var cfgDir, logPath string
	var seed int64
	flag.StringVar(&cfgDir, "config", "assets", "config dir (embedded defaults fill missing files)")
	flag.Int64Var(&seed, "seed", 0, "seed (0 uses battle.yaml)")
	flag.StringVar(&logPath, "log", "battle.log", "log file; the terminal belongs to the UI")
	flag.Parse()

	mc, rc, bc, err := config.LoadAll(cfgDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if seed == 0 {
		seed = bc.Seed
	}
	logger, err := logging.New(logging.Options{Level: bc.LogLevel, Encoding: "json", OutputPaths: []string{logPath}})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync(logger)

	b, err := newBattle(mc, rc, bc, seed, logger)
	if err != nil {
		logger.Error("build battle", zap.Error(err))
		fmt.Fprintf(os.Stderr, "battle: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(ui.NewModel(b))
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
	}
}

func newBattle(mc *config.MovesConfig, rc *config.RosterConfig, bc *config.BattleConfig, seed int64, logger *zap.Logger) (*combat.Battle, error) {
	catalog, err := combat.NewCatalog(mc)
	if err != nil {
		return nil, err
	}
	roster, err := combat.NewRoster(rc, catalog)
	if err != nil {
		return nil, err
	}
	player, err := roster.BuildTeam(bc.Player, uint32(bc.Level))
	if err != nil {
		return nil, err
	}
	enemy, err := roster.BuildTeam(bc.Enemy, uint32(bc.Level))
	if err != nil {
		return nil, err
	}
	return combat.NewBattle(player, enemy, util.New(seed),
		combat.WithLogger(logger.With(zap.Int64(logging.FieldSeed, seed))),
		combat.WithMaxTurns(bc.MaxTurns))
}
