package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"langbattle/internal/combat"
)

// resolveDelay is how long the spinner shows before a turn resolves.
const resolveDelay = 400 * time.Millisecond

type Model struct {
	Battle    *combat.Battle
	Line      string
	Quitting  bool
	Resolving bool
	Switching bool
	Spinner   spinner.Model
	Err       error
}

type resolveMsg struct {
	Decision combat.Decision
}

func NewModel(b *combat.Battle) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	m := Model{
		Battle:  b,
		Spinner: s,
	}
	m.Line, _ = b.Text().Next()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Narrating reports whether a narration line is waiting to be acknowledged.
func (m Model) Narrating() bool {
	return m.Line != ""
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "q", "ctrl+c":
			m.Quitting = true
			return m, tea.Quit
		}
		if m.Resolving {
			return m, nil
		}
		if m.Narrating() {
			if key == "enter" || key == " " || key == "space" {
				m.Line, _ = m.Battle.Text().Next()
				if !m.Narrating() && m.Battle.Over() {
					m.Quitting = true
					return m, tea.Quit
				}
			}
			return m, nil
		}
		if m.Switching {
			m.Switching = false
			if slot, ok := digit(key); ok {
				return m.decide(combat.Switch(slot - 1))
			}
			return m, nil
		}
		switch key {
		case "1", "2", "3", "4":
			i, _ := digit(key)
			return m.decide(combat.Attack(i - 1))
		case "s":
			m.Switching = true
			m.Err = nil
		case "f":
			return m.decide(combat.Forfeit())
		}
	case resolveMsg:
		m.Resolving = false
		if err := m.Battle.PlayTurn(msg.Decision); err != nil {
			m.Err = err
			return m, nil
		}
		m.Err = nil
		m.Line, _ = m.Battle.Text().Next()
	case spinner.TickMsg:
		if m.Resolving {
			var cmd tea.Cmd
			m.Spinner, cmd = m.Spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if len(cmds) > 0 {
		return m, tea.Batch(cmds...)
	}
	return m, nil
}

func (m Model) decide(d combat.Decision) (tea.Model, tea.Cmd) {
	m.Resolving = true
	m.Err = nil
	return m, tea.Batch(m.Spinner.Tick, resolveCmd(d))
}

func resolveCmd(d combat.Decision) tea.Cmd {
	return tea.Tick(resolveDelay, func(time.Time) tea.Msg {
		return resolveMsg{Decision: d}
	})
}

func digit(key string) (int, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return 0, false
	}
	return int(key[0] - '0'), true
}

func (m Model) View() string {
	if m.Quitting {
		return "Goodbye\n"
	}
	var sb strings.Builder
	sb.WriteString("-- Language Battle --\n")

	enemy, _ := m.Battle.Enemy().Active()
	player, _ := m.Battle.Player().Active()
	if enemy != nil {
		fmt.Fprintf(&sb, "Enemy  %-12s %s %d/%d\n", enemy.Name, hpBar(enemy), enemy.Health(), enemy.MaxHealth())
	}
	if player != nil {
		fmt.Fprintf(&sb, "You    %-12s %s %d/%d\n", player.Name, hpBar(player), player.Health(), player.MaxHealth())
	}
	sb.WriteString("\n")

	if m.Resolving {
		fmt.Fprintf(&sb, "%s Resolving turn...\n", m.Spinner.View())
		return sb.String()
	}
	if m.Err != nil {
		fmt.Fprintf(&sb, "Error: %s\n", describe(m.Err))
	}
	if m.Narrating() {
		fmt.Fprintf(&sb, "%s\n\n[enter] Continue  [q] Quit", m.Line)
		return sb.String()
	}
	if m.Battle.Over() {
		fmt.Fprintf(&sb, "Battle over: %s\n[q] Quit", m.Battle.Outcome())
		return sb.String()
	}
	if m.Switching {
		for i, e := range m.Battle.Player().Entities() {
			marker := " "
			if i == m.Battle.Player().ActiveIndex() {
				marker = "*"
			}
			fmt.Fprintf(&sb, "%s[%d] %s %d/%d\n", marker, i+1, e.Name, e.Health(), e.MaxHealth())
		}
		sb.WriteString("Pick a slot, any other key cancels")
		return sb.String()
	}
	if player != nil {
		catalog := player.Catalog()
		for i, mv := range player.Moves() {
			fmt.Fprintf(&sb, "[%d] %s  ", i+1, catalog.Name(mv))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("[s] Switch  [f] Forfeit  [q] Quit")
	return sb.String()
}

func hpBar(e *combat.Entity) string {
	const width = 20
	filled := 0
	if e.MaxHealth() > 0 {
		filled = int(uint64(e.Health()) * width / uint64(e.MaxHealth()))
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}

func describe(err error) string {
	switch {
	case errors.Is(err, combat.ErrInvalidMoveIndex):
		return "that move slot is empty"
	case errors.Is(err, combat.ErrInvalidTeamIndex):
		return "that team slot is empty"
	case errors.Is(err, combat.ErrFaintedSwitch):
		return "that entity has fainted"
	case errors.Is(err, combat.ErrAlreadyActive):
		return "that entity is already fighting"
	}
	return err.Error()
}
