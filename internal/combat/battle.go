package combat

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"langbattle/internal/logging"
)

const DefaultMaxTurns = 200

type Action uint8

const (
	ActionAttack Action = iota
	ActionSwitch
	ActionForfeit
)

func (a Action) String() string {
	switch a {
	case ActionAttack:
		return "attack"
	case ActionSwitch:
		return "switch"
	case ActionForfeit:
		return "forfeit"
	}
	return fmt.Sprintf("Action(%d)", uint8(a))
}

// Decision is the player's choice for one turn. Move is an index into the
// active entity's moves; Slot is a team index.
type Decision struct {
	Action Action
	Move   int
	Slot   int
}

func Attack(move int) Decision { return Decision{Action: ActionAttack, Move: move} }
func Switch(slot int) Decision { return Decision{Action: ActionSwitch, Slot: slot} }
func Forfeit() Decision        { return Decision{Action: ActionForfeit} }

type Outcome uint8

const (
	OutcomeOngoing Outcome = iota
	OutcomePlayerWon
	OutcomeEnemyWon
	OutcomeForfeit
	OutcomeDraw
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOngoing:
		return "ongoing"
	case OutcomePlayerWon:
		return "player_won"
	case OutcomeEnemyWon:
		return "enemy_won"
	case OutcomeForfeit:
		return "forfeit"
	case OutcomeDraw:
		return "draw"
	}
	return fmt.Sprintf("Outcome(%d)", uint8(o))
}

// Battle drives a player team against a randomly acting enemy team. Each
// PlayTurn queues both moves, resolves them, then routes around fainted
// entities.
type Battle struct {
	ID string

	player   *Team
	enemy    *Team
	rng      Rand
	text     *TextQueue
	log      *zap.Logger
	turn     int
	maxTurns int
	outcome  Outcome

	record     bool
	events     []Event
	transcript []string
}

type Option func(*Battle)

func WithLogger(l *zap.Logger) Option {
	return func(b *Battle) {
		if l != nil {
			b.log = l
		}
	}
}

// WithMaxTurns ends the battle in a draw after n turns; 0 means no limit.
func WithMaxTurns(n int) Option {
	return func(b *Battle) {
		if n >= 0 {
			b.maxTurns = n
		}
	}
}

// WithRecording keeps every narration line and an event log.
func WithRecording(on bool) Option { return func(b *Battle) { b.record = on } }

func WithID(id string) Option {
	return func(b *Battle) {
		if id != "" {
			b.ID = id
		}
	}
}

func NewBattle(player, enemy *Team, rng Rand, opts ...Option) (*Battle, error) {
	if player == nil || player.Len() == 0 || enemy == nil || enemy.Len() == 0 {
		return nil, ErrEmptyTeam
	}
	if rng == nil {
		return nil, fmt.Errorf("combat: NewBattle needs a random stream")
	}
	b := &Battle{
		ID:       uuid.NewString(),
		player:   player,
		enemy:    enemy,
		rng:      rng,
		text:     NewTextQueue(),
		log:      zap.NewNop(),
		maxTurns: DefaultMaxTurns,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.log = b.log.With(zap.String(logging.FieldBattleID, b.ID))
	RosterAdvance(player)
	RosterAdvance(enemy)

	p, _ := player.Active()
	e, _ := enemy.Active()
	b.say(fmt.Sprintf("A wild %s appeared!", e.Name), fmt.Sprintf("Go, %s!", p.Name))
	b.emit("Start", map[string]any{"player": p.ID, "enemy": e.ID})
	b.log.Info("battle started",
		zap.String("player", p.Name), zap.String("enemy", e.Name),
		zap.Int("player_team", player.Len()), zap.Int("enemy_team", enemy.Len()))
	return b, nil
}

func (b *Battle) Player() *Team        { return b.player }
func (b *Battle) Enemy() *Team         { return b.enemy }
func (b *Battle) Text() *TextQueue     { return b.text }
func (b *Battle) Turn() int            { return b.turn }
func (b *Battle) Outcome() Outcome     { return b.outcome }
func (b *Battle) Over() bool           { return b.outcome != OutcomeOngoing }
func (b *Battle) Events() []Event      { return b.events }
func (b *Battle) Transcript() []string { return b.transcript }

func (b *Battle) say(lines ...string) {
	b.text.Add(lines...)
	if b.record {
		b.transcript = append(b.transcript, lines...)
	}
}

func (b *Battle) emit(typ string, payload map[string]any) {
	if b.record {
		b.events = append(b.events, Event{Turn: b.turn, Type: typ, Payload: payload})
	}
}

// PlayTurn applies the player's decision and a uniform-random enemy move.
// Invalid move or slot choices return an error before anything changes.
func (b *Battle) PlayTurn(d Decision) error {
	if b.Over() {
		return ErrBattleOver
	}
	p, err := b.player.Active()
	if err != nil {
		return err
	}
	e, err := b.enemy.Active()
	if err != nil {
		return err
	}

	switch d.Action {
	case ActionForfeit:
		b.say("You decided that the battle was futile and quit early.")
		b.finish(OutcomeForfeit)
		return nil
	case ActionSwitch:
		next, err := b.switchTo(d.Slot)
		if err != nil {
			return err
		}
		b.say(fmt.Sprintf("Come back, %s! Go, %s!", p.Name, next.Name))
		b.emit("Switch", map[string]any{"from": p.ID, "to": next.ID, "slot": d.Slot})
		b.log.Debug("player switched", zap.String(logging.FieldEntityID, next.ID), zap.String(logging.FieldEntity, next.Name))
		p = next
	case ActionAttack:
		if err := p.QueueMoveAt(d.Move); err != nil {
			return err
		}
	default:
		return fmt.Errorf("combat: unknown action %s", d.Action)
	}

	b.turn++
	enemyMove, _ := QueueRandomMove(e, b.rng)
	playerMove, _ := p.QueuedMove()
	lines := ResolveTurn(p, e, b.rng)
	b.say(lines...)
	b.emit("Turn", map[string]any{
		"player": p.ID, "player_move": playerMove.Key(), "player_hp": p.Health(),
		"enemy": e.ID, "enemy_move": enemyMove.Key(), "enemy_hp": e.Health(),
	})
	b.log.Debug("turn resolved",
		zap.Int(logging.FieldTurn, b.turn),
		zap.String(logging.FieldMove, playerMove.String()),
		zap.String("enemy_move", enemyMove.String()),
		zap.Uint32("player_hp", p.Health()),
		zap.Uint32("enemy_hp", e.Health()))

	b.settle(p, e)
	if !b.Over() && b.maxTurns > 0 && b.turn >= b.maxTurns {
		b.say("Both sides ran out of time. The battle ends in a draw.")
		b.finish(OutcomeDraw)
	}
	return nil
}

func (b *Battle) switchTo(slot int) (*Entity, error) {
	if slot == b.player.ActiveIndex() {
		return nil, ErrAlreadyActive
	}
	next, err := b.player.At(slot)
	if err != nil {
		return nil, err
	}
	if next.Fainted() {
		return nil, ErrFaintedSwitch
	}
	if err := b.player.SetActive(slot); err != nil {
		return nil, err
	}
	next.ClearQueuedMove()
	return next, nil
}

// settle checks both actives after a turn. The enemy side is checked first,
// so a turn that wipes out both teams is a player win.
func (b *Battle) settle(p, e *Entity) {
	if e.Fainted() {
		b.say(fmt.Sprintf("The enemy %s fainted!", e.Name))
		b.emit("Faint", map[string]any{"entity": e.ID, "side": "enemy"})
		b.log.Debug("entity fainted", zap.String(logging.FieldEntityID, e.ID), zap.String(logging.FieldEntity, e.Name), zap.String("side", "enemy"))
		if RosterAdvance(b.enemy) {
			b.say("The enemy team has been defeated, you win!")
			b.finish(OutcomePlayerWon)
		} else {
			next, _ := b.enemy.Active()
			b.say(fmt.Sprintf("The enemy sent out %s!", next.Name))
			b.emit("Switch", map[string]any{"to": next.ID, "side": "enemy"})
		}
	}
	if p.Fainted() {
		b.say(fmt.Sprintf("%s fainted!", p.Name))
		b.emit("Faint", map[string]any{"entity": p.ID, "side": "player"})
		b.log.Debug("entity fainted", zap.String(logging.FieldEntityID, p.ID), zap.String(logging.FieldEntity, p.Name), zap.String("side", "player"))
		if RosterAdvance(b.player) {
			if !b.Over() {
				b.say("Your team has been defeated, you lose.")
				b.finish(OutcomeEnemyWon)
			}
		} else {
			next, _ := b.player.Active()
			b.say(fmt.Sprintf("Go, %s!", next.Name))
			b.emit("Switch", map[string]any{"to": next.ID, "side": "player"})
		}
	}
}

func (b *Battle) finish(o Outcome) {
	b.outcome = o
	b.emit("End", map[string]any{"outcome": o.String()})
	b.log.Info("battle finished",
		zap.String(logging.FieldOutcome, o.String()),
		zap.Int(logging.FieldTurn, b.turn),
		zap.Int("player_remaining", b.player.Remaining()),
		zap.Int("enemy_remaining", b.enemy.Remaining()))
}
