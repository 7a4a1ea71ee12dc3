// Package tui provides a textual user interface for browsing a day's photo gallery.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/itinerary/internal/engine/carousel"
)

// Navigator is the carousel driven by the view.
type Navigator interface {
	Next()
	Previous()
	JumpTo(j int) error
	State() carousel.State
	Image(i int) string
	AutoPlaying() bool
}

// MsgSlideChanged tells the model that the carousel moved on its own.
type MsgSlideChanged struct{}

// Model represents the carousel view state.
type Model struct {
	Title    string
	Subtitle string
	Nav      Navigator
	State    carousel.State
	Keys     KeyMap
	Help     help.Model
	Width    int
	Err      error
}

// NewModel creates a carousel view over nav.
func NewModel(title, subtitle string, nav Navigator) Model {
	return Model{
		Title:    title,
		Subtitle: subtitle,
		Nav:      nav,
		State:    nav.State(),
		Keys:     DefaultKeyMap(),
		Help:     help.New(),
	}
}

// Init initializes the model.
//
//nolint:gocritic // hugeParam ignored
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles key presses and carousel notifications.
//
//nolint:gocritic // hugeParam ignored
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.Err = nil
		switch {
		case key.Matches(msg, m.Keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.Keys.Next):
			m.Nav.Next()
		case key.Matches(msg, m.Keys.Previous):
			m.Nav.Previous()
		case key.Matches(msg, m.Keys.Jump):
			m.Err = m.Nav.JumpTo(int(msg.Runes[0] - '1'))
		}
		m.State = m.Nav.State()

	case MsgSlideChanged:
		m.State = m.Nav.State()

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Help.Width = msg.Width
	}

	return m, nil
}
