package combat

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"langbattle/internal/logging"
	"langbattle/internal/util"
)

func newTestBattle(t *testing.T, player, enemy []*Entity, opts ...Option) *Battle {
	t.Helper()
	opts = append([]Option{WithRecording(true)}, opts...)
	b, err := NewBattle(teamOf(t, player...), teamOf(t, enemy...), alwaysHit(), opts...)
	if err != nil {
		t.Fatalf("new battle: %v", err)
	}
	return b
}

func hitter(name string, hp, attack uint32) *Entity {
	return plain(name, Stats{MaxHealth: hp, Attack: attack, Accuracy: 100}, Deadline, GarbageCollect)
}

func TestNewBattle_Intro(t *testing.T) {
	b := newTestBattle(t, []*Entity{hitter("Rust", 200, 10)}, []*Entity{hitter("Python", 150, 35)})
	lines := b.Text().Drain()
	if len(lines) != 2 || lines[0] != "A wild Python appeared!" || lines[1] != "Go, Rust!" {
		t.Fatalf("unexpected intro %q", lines)
	}
	if b.Outcome() != OutcomeOngoing || b.Turn() != 0 {
		t.Fatalf("fresh battle should be ongoing at turn 0")
	}
	if len(b.Events()) != 1 || b.Events()[0].Type != "Start" {
		t.Fatalf("expected a Start event, got %+v", b.Events())
	}
}

func TestNewBattle_Errors(t *testing.T) {
	if _, err := NewBattle(NewTeam(), teamOf(t, hitter("E", 1, 0)), alwaysHit()); !errors.Is(err, ErrEmptyTeam) {
		t.Fatalf("expected ErrEmptyTeam, got %v", err)
	}
	if _, err := NewBattle(teamOf(t, hitter("P", 1, 0)), teamOf(t, hitter("E", 1, 0)), nil); err == nil {
		t.Fatalf("expected an error without a random stream")
	}
}

func TestPlayTurn_Forfeit(t *testing.T) {
	b := newTestBattle(t, []*Entity{hitter("P", 100, 0)}, []*Entity{hitter("E", 100, 0)})
	if err := b.PlayTurn(Forfeit()); err != nil {
		t.Fatal(err)
	}
	if b.Outcome() != OutcomeForfeit || !b.Over() {
		t.Fatalf("outcome = %s", b.Outcome())
	}
	if err := b.PlayTurn(Attack(0)); !errors.Is(err, ErrBattleOver) {
		t.Fatalf("expected ErrBattleOver, got %v", err)
	}
}

func TestPlayTurn_InvalidMoveChangesNothing(t *testing.T) {
	p := hitter("P", 100, 0)
	e := hitter("E", 100, 0)
	b := newTestBattle(t, []*Entity{p}, []*Entity{e})
	b.Text().Drain()
	if err := b.PlayTurn(Attack(5)); !errors.Is(err, ErrInvalidMoveIndex) {
		t.Fatalf("expected ErrInvalidMoveIndex, got %v", err)
	}
	if b.Turn() != 0 || p.Health() != 100 || e.Health() != 100 || b.Text().Len() != 0 {
		t.Fatalf("a rejected decision changed the battle")
	}
}

func TestPlayTurn_AttackBothSidesAct(t *testing.T) {
	p := plain("P", Stats{MaxHealth: 100, Accuracy: 100}, Deadline)
	e := plain("E", Stats{MaxHealth: 100, Accuracy: 100}, Deadline)
	b := newTestBattle(t, []*Entity{p}, []*Entity{e})
	if err := b.PlayTurn(Attack(0)); err != nil {
		t.Fatal(err)
	}
	if p.Health() != 70 || e.Health() != 70 || b.Turn() != 1 {
		t.Fatalf("expected both at 70 after turn 1, got %d %d turn %d", p.Health(), e.Health(), b.Turn())
	}
}

func TestPlayTurn_Switch(t *testing.T) {
	first := hitter("First", 100, 0)
	second := hitter("Second", 100, 0)
	third := hitter("Third", 100, 0)
	e := plain("E", Stats{MaxHealth: 100, Accuracy: 100}, Deadline)
	b := newTestBattle(t, []*Entity{first, second, third}, []*Entity{e})

	if err := b.PlayTurn(Switch(0)); !errors.Is(err, ErrAlreadyActive) {
		t.Fatalf("expected ErrAlreadyActive, got %v", err)
	}
	if err := b.PlayTurn(Switch(7)); !errors.Is(err, ErrInvalidTeamIndex) {
		t.Fatalf("expected ErrInvalidTeamIndex, got %v", err)
	}
	third.health = 0
	if err := b.PlayTurn(Switch(2)); !errors.Is(err, ErrFaintedSwitch) {
		t.Fatalf("expected ErrFaintedSwitch, got %v", err)
	}
	if b.Turn() != 0 {
		t.Fatalf("rejected switches should not use a turn")
	}

	b.Text().Drain()
	if err := b.PlayTurn(Switch(1)); err != nil {
		t.Fatal(err)
	}
	if b.Player().ActiveIndex() != 1 || b.Turn() != 1 {
		t.Fatalf("switch not applied")
	}
	if first.Health() != 100 || second.Health() != 70 {
		t.Fatalf("enemy should hit the incoming entity, got first %d second %d", first.Health(), second.Health())
	}
	lines := b.Text().Drain()
	if lines[0] != "Come back, First! Go, Second!" {
		t.Fatalf("unexpected switch narration %q", lines)
	}
	if e.Health() != 100 {
		t.Fatalf("switching should not attack")
	}
}

func TestPlayTurn_PlayerWins(t *testing.T) {
	p := plain("P", Stats{MaxHealth: 500, Attack: 100, Accuracy: 100}, Deadline)
	e1 := plain("E1", Stats{MaxHealth: 10, Accuracy: 100}, Deadline)
	e2 := plain("E2", Stats{MaxHealth: 10, Accuracy: 100}, Deadline)
	b := newTestBattle(t, []*Entity{p}, []*Entity{e1, e2})

	if err := b.PlayTurn(Attack(0)); err != nil {
		t.Fatal(err)
	}
	if b.Over() || b.Enemy().ActiveIndex() != 1 {
		t.Fatalf("expected the enemy to send out E2")
	}
	if err := b.PlayTurn(Attack(0)); err != nil {
		t.Fatal(err)
	}
	if b.Outcome() != OutcomePlayerWon || b.Turn() != 2 {
		t.Fatalf("outcome = %s turn %d", b.Outcome(), b.Turn())
	}
	if p.Health() != 440 {
		t.Fatalf("fainted enemies still act this turn, want 440 got %d", p.Health())
	}
	transcript := strings.Join(b.Transcript(), "\n")
	for _, want := range []string{"The enemy E1 fainted!", "The enemy sent out E2!", "you win!"} {
		if !strings.Contains(transcript, want) {
			t.Fatalf("transcript missing %q:\n%s", want, transcript)
		}
	}
	last := b.Events()[len(b.Events())-1]
	if last.Type != "End" || last.Payload["outcome"] != "player_won" {
		t.Fatalf("unexpected final event %+v", last)
	}
}

func TestPlayTurn_PlayerLosesAndSendsOutNext(t *testing.T) {
	p1 := plain("P1", Stats{MaxHealth: 10, Accuracy: 100}, Deadline)
	p2 := plain("P2", Stats{MaxHealth: 10, Accuracy: 100}, Deadline)
	e := plain("E", Stats{MaxHealth: 500, Attack: 100, Accuracy: 100}, Deadline)
	b := newTestBattle(t, []*Entity{p1, p2}, []*Entity{e})

	if err := b.PlayTurn(Attack(0)); err != nil {
		t.Fatal(err)
	}
	if b.Player().ActiveIndex() != 1 {
		t.Fatalf("expected P2 sent out")
	}
	if err := b.PlayTurn(Attack(0)); err != nil {
		t.Fatal(err)
	}
	if b.Outcome() != OutcomeEnemyWon {
		t.Fatalf("outcome = %s", b.Outcome())
	}
	if !strings.Contains(strings.Join(b.Transcript(), "\n"), "Your team has been defeated, you lose.") {
		t.Fatalf("missing defeat narration")
	}
}

func TestPlayTurn_MutualWipeIsPlayerWin(t *testing.T) {
	p := plain("P", Stats{MaxHealth: 20, Attack: 100, Accuracy: 100}, Deadline)
	e := plain("E", Stats{MaxHealth: 20, Attack: 100, Accuracy: 100}, Deadline)
	b := newTestBattle(t, []*Entity{p}, []*Entity{e})
	if err := b.PlayTurn(Attack(0)); err != nil {
		t.Fatal(err)
	}
	if !p.Fainted() || !e.Fainted() {
		t.Fatalf("both should have fainted")
	}
	if b.Outcome() != OutcomePlayerWon {
		t.Fatalf("outcome = %s", b.Outcome())
	}
}

func TestPlayTurn_DrawAtMaxTurns(t *testing.T) {
	p := plain("P", Stats{MaxHealth: 100, Accuracy: 100}, GarbageCollect)
	e := plain("E", Stats{MaxHealth: 100, Accuracy: 100}, GarbageCollect)
	b := newTestBattle(t, []*Entity{p}, []*Entity{e}, WithMaxTurns(3))
	for i := 0; i < 3; i++ {
		if err := b.PlayTurn(Attack(0)); err != nil {
			t.Fatalf("turn %d: %v", i+1, err)
		}
	}
	if b.Outcome() != OutcomeDraw {
		t.Fatalf("outcome = %s", b.Outcome())
	}
}

func TestWithRecording_Off(t *testing.T) {
	b, err := NewBattle(teamOf(t, hitter("P", 10, 0)), teamOf(t, hitter("E", 10, 0)), alwaysHit())
	if err != nil {
		t.Fatal(err)
	}
	if b.Transcript() != nil || b.Events() != nil {
		t.Fatalf("nothing should be recorded by default")
	}
	if b.Text().Len() != 2 {
		t.Fatalf("narration should still reach the text queue")
	}
}

func TestRandomController(t *testing.T) {
	p := plain("P", Stats{MaxHealth: 10}, Deadline, Speed, Async)
	b := newTestBattle(t, []*Entity{p}, []*Entity{hitter("E", 10, 0)})
	d := RandomController{Rng: util.NewScript(2)}.Decide(b)
	if d.Action != ActionAttack || d.Move != 2 {
		t.Fatalf("unexpected decision %+v", d)
	}
	idle := newTestBattle(t, []*Entity{plain("Idle", Stats{MaxHealth: 10})}, []*Entity{hitter("E", 10, 0)})
	if d := (RandomController{Rng: util.NewScript(0)}).Decide(idle); d.Action != ActionForfeit {
		t.Fatalf("an entity without moves should forfeit, got %+v", d)
	}
}

func TestQueueRandomMove(t *testing.T) {
	e := plain("E", Stats{MaxHealth: 10}, Deadline, Speed)
	mv, ok := QueueRandomMove(e, util.NewScript(1))
	if !ok || mv != Speed {
		t.Fatalf("got %v %v", mv, ok)
	}
	if q, _ := e.QueuedMove(); q != Speed {
		t.Fatalf("queued = %v", q)
	}
}

func TestGreedyController_PrefersWeakness(t *testing.T) {
	p := plain("P", Stats{MaxHealth: 100, Accuracy: 100}, BorrowCheck, Speed, Deadline)
	foe := fighter("E", TypeUnknown, Stats{MaxHealth: 100}, []Move{Deadline}, []Move{Deadline}, nil)
	b := newTestBattle(t, []*Entity{p}, []*Entity{foe})
	d := GreedyController{}.Decide(b)
	if d.Action != ActionAttack || d.Move != 2 {
		t.Fatalf("expected Deadline, got %+v", d)
	}
}

func TestGreedyController_AttacksWithOnlyLosingMove(t *testing.T) {
	p := plain("P", Stats{MaxHealth: 100, Accuracy: 100, ErrorHandling: 1}, IntParse)
	foe := plain("E", Stats{MaxHealth: 100, Defense: 50, ErrorHandling: 90}, Deadline)
	b := newTestBattle(t, []*Entity{p}, []*Entity{foe})
	if s := scoreMove(p, foe, IntParse); s >= -1 {
		t.Fatalf("expected a losing gamble to score below -1, got %v", s)
	}
	d := GreedyController{}.Decide(b)
	if d.Action != ActionAttack || d.Move != 0 {
		t.Fatalf("expected IntParse even when it loses, got %+v", d)
	}
}

func TestGreedyController_SwitchesWhenLow(t *testing.T) {
	p1 := hitter("P1", 100, 0)
	p2 := hitter("P2", 100, 0)
	p3 := hitter("P3", 100, 0)
	b := newTestBattle(t, []*Entity{p1, p2, p3}, []*Entity{hitter("E", 100, 0)})
	p1.health = 10
	p2.health = 40
	d := GreedyController{SwitchBelow: 0.25}.Decide(b)
	if d.Action != ActionSwitch || d.Slot != 2 {
		t.Fatalf("expected a switch to slot 2, got %+v", d)
	}
	p1.health = 80
	if d := (GreedyController{SwitchBelow: 0.25}).Decide(b); d.Action != ActionAttack {
		t.Fatalf("expected an attack, got %+v", d)
	}
}

func TestBattle_LogsLifecycle(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	b := newTestBattle(t, []*Entity{hitter("P", 100, 0)}, []*Entity{hitter("E", 100, 0)},
		WithLogger(zap.New(core)), WithID("battle-1"))
	if err := b.PlayTurn(Attack(0)); err != nil {
		t.Fatal(err)
	}
	if err := b.PlayTurn(Forfeit()); err != nil {
		t.Fatal(err)
	}
	if logs.FilterMessage("battle started").Len() != 1 || logs.FilterMessage("turn resolved").Len() != 1 {
		t.Fatalf("unexpected log entries: %v", logs.All())
	}
	end := logs.FilterMessage("battle finished").All()
	if len(end) != 1 {
		t.Fatalf("expected one finish entry, got %d", len(end))
	}
	fields := end[0].ContextMap()
	if fields[logging.FieldOutcome] != "forfeit" || fields[logging.FieldBattleID] != "battle-1" {
		t.Fatalf("unexpected finish fields %v", fields)
	}
}
