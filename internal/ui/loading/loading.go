// Package loading provides an animated "loading..." text for Bubble Tea views.
package loading

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	DefaultText  = "la la la"
	DefaultSpeed = 300 * time.Millisecond
)

var lastID atomic.Int64

// TickMsg advances the animation of one widget
type TickMsg struct {
	Time time.Time
	id   int64
	tag  int
}

// Model is a text that grows by one dot per tick and wraps after three dots.
// Only the most recent tick chain is honoured, so ticks never pile up.
type Model struct {
	text    string
	speed   time.Duration
	content string
	id      int64
	tag     int
	running bool
}

// New creates a stopped widget
func New(text string, speed time.Duration) Model {
	if text == "" {
		text = DefaultText
	}
	if speed <= 0 {
		speed = DefaultSpeed
	}
	return Model{
		text:    text,
		speed:   speed,
		content: text,
		id:      lastID.Add(1),
	}
}

// Start resets the text and begins ticking
func (m Model) Start() (Model, tea.Cmd) {
	m.running = true
	m.tag++
	m.content = m.text
	return m, m.tick()
}

// Stop ends the animation; ticks already scheduled are ignored
func (m Model) Stop() Model {
	m.running = false
	m.tag++
	return m
}

// Running reports whether the widget is animating
func (m Model) Running() bool {
	return m.running
}

// Update handles tick messages addressed to this widget
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	tick, ok := msg.(TickMsg)
	if !ok || tick.id != m.id || tick.tag != m.tag || !m.running {
		return m, nil
	}
	m.content = next(m.content, m.text)
	m.tag++
	return m, m.tick()
}

// View renders the current text
func (m Model) View() string {
	return m.content
}

func (m Model) tick() tea.Cmd {
	id, tag := m.id, m.tag
	return tea.Tick(m.speed, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, id: id, tag: tag}
	})
}

func next(content, text string) string {
	if content == text+"..." {
		return text
	}
	return content + "."
}
