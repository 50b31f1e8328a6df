package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"gitbattle/internal/battle"
	"gitbattle/internal/ui/views"
)

// focusFight is the focus index of the FIGHT button, after the two slots
const focusFight = 2

var slots = [2]battle.SlotID{battle.SlotA, battle.SlotB}

// battleScreen collects the two players of a battle
type battleScreen struct {
	keys   keyMap
	panel  *battle.Panel
	inputs [2]textinput.Model
	focus  int
	logger *zap.Logger
}

func newBattleScreen(deps Deps, keys keyMap) *battleScreen {
	b := &battleScreen{
		keys:   keys,
		panel:  battle.NewPanel(),
		logger: deps.Logger.Named("ui.battle"),
	}
	for i := range b.inputs {
		ti := textinput.New()
		ti.Placeholder = "github username"
		ti.Prompt = ""
		ti.CharLimit = 39
		b.inputs[i] = ti
	}
	b.inputs[0].Focus()
	return b
}

func (b *battleScreen) Init() tea.Cmd {
	return textinput.Blink
}

// editing reports whether the focused element is an empty slot taking input
func (b *battleScreen) editing() bool {
	return b.focus < focusFight && b.panel.Slot(slots[b.focus]).IsEmpty()
}

func (b *battleScreen) setFocus(focus int) tea.Cmd {
	b.focus = focus
	var cmd tea.Cmd
	for i := range b.inputs {
		if i == focus && b.panel.Slot(slots[i]).IsEmpty() {
			cmd = b.inputs[i].Focus()
		} else {
			b.inputs[i].Blur()
		}
	}
	return cmd
}

func (b *battleScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if b.editing() {
			var cmd tea.Cmd
			b.inputs[b.focus], cmd = b.inputs[b.focus].Update(msg)
			return b, cmd
		}
		return b, nil
	}

	switch {
	case key.Matches(keyMsg, b.keys.Up):
		return b, b.setFocus((b.focus + focusFight) % (focusFight + 1))
	case key.Matches(keyMsg, b.keys.Down):
		return b, b.setFocus((b.focus + 1) % (focusFight + 1))
	case key.Matches(keyMsg, b.keys.Submit):
		return b, b.submit()
	case key.Matches(keyMsg, b.keys.Clear) && b.focus < focusFight && !b.editing():
		b.panel.Clear(slots[b.focus])
		b.inputs[b.focus].Reset()
		return b, b.setFocus(b.focus)
	}

	if b.editing() {
		var cmd tea.Cmd
		b.inputs[b.focus], cmd = b.inputs[b.focus].Update(msg)
		return b, cmd
	}
	return b, nil
}

func (b *battleScreen) submit() tea.Cmd {
	if b.focus == focusFight {
		target, ok := b.panel.Target()
		if !ok {
			return nil
		}
		b.logger.Info("starting battle", zap.String("target", target.String()))
		return func() tea.Msg { return startBattleMsg{target: target} }
	}

	if !b.editing() {
		return nil
	}
	slot := slots[b.focus]
	value := strings.TrimSpace(b.inputs[b.focus].Value())
	if err := b.panel.Submit(slot, value); err != nil {
		// An empty name behaves like a disabled submit button
		if !errors.Is(err, battle.ErrEmptyIdentity) {
			b.logger.Error("submit failed", zap.Error(err))
		}
		return nil
	}
	b.inputs[b.focus].Blur()

	// Move on to the next slot that still needs a player, or the button
	next := focusFight
	for i := range slots {
		if b.panel.Slot(slots[i]).IsEmpty() {
			next = i
			break
		}
	}
	return b.setFocus(next)
}

func (b *battleScreen) View(s *views.Styles, width int) string {
	var sections []string

	sections = append(sections,
		s.Title.Render("Instructions"),
		s.Dim.Render("1. Enter two github users   2. Fight or die   3. See the winner!"),
		"",
		s.Title.Render("Players"),
	)

	columns := make([]string, len(slots))
	for i, slot := range slots {
		columns[i] = b.slotView(s, i, slot)
	}
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, columns[0], "    ", columns[1]))

	if b.panel.BothFilled() {
		button := s.Button
		if b.focus == focusFight {
			button = s.ButtonOn
		}
		sections = append(sections, "", button.Render("FIGHT!"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (b *battleScreen) slotView(s *views.Styles, i int, slot battle.SlotID) string {
	focused := b.focus == i
	label := s.Label.Render(slot.String())

	if identity, filled := b.panel.Slot(slot).Identity(); filled {
		box := s.Input
		if focused {
			box = s.InputFocus
		}
		preview := box.Render(identity + "  " + s.Dim.Render("✕ ctrl+x"))
		return lipgloss.JoinVertical(lipgloss.Left, label, preview, s.Dim.Render("github.com/"+identity))
	}

	box := s.Input
	if focused {
		box = s.InputFocus
	}
	submit := s.ButtonOff.Render("Submit")
	if strings.TrimSpace(b.inputs[i].Value()) != "" {
		submit = s.Button.Render("Submit")
	}
	return lipgloss.JoinVertical(lipgloss.Left, label, box.Render(b.inputs[i].View()), submit)
}

func (b *battleScreen) Capturing() bool { return b.editing() }

func (b *battleScreen) Teardown() {}
