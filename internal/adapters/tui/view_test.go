package tui_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/itinerary/internal/adapters/tui"
)

func TestView_Slide(t *testing.T) {
	m := tui.NewModel("Day 1", "Cairo", newCarousel(t))
	m, _ = press(m, runes("2"))

	output := m.View()

	assert.Contains(t, output, "Day 1")
	assert.Contains(t, output, "Cairo")
	assert.Contains(t, output, "/images/b.jpg")
	assert.Contains(t, output, "2/3")
	assert.Contains(t, output, "forward")
	assert.Contains(t, output, "●")
	assert.Contains(t, output, "○")
	assert.Contains(t, output, "quit")
	assert.NotContains(t, output, "autoplay")
}

func TestView_Error(t *testing.T) {
	m := tui.NewModel("Day 1", "", newCarousel(t))
	m.Err = errors.New("slide index out of range")

	assert.Contains(t, m.View(), "slide index out of range")
}
