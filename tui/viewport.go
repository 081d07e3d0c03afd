package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Viewport adapts a bubbles viewport to the chat box scroll model.
// Heights are terminal lines.
type Viewport struct {
	model viewport.Model
}

func NewViewport(width, height int) *Viewport {
	m := viewport.New(width, height)
	m.MouseWheelEnabled = true
	return &Viewport{model: m}
}

func (v *Viewport) ScrollTop() int    { return v.model.YOffset }
func (v *Viewport) ScrollHeight() int { return v.model.TotalLineCount() }
func (v *Viewport) ClientHeight() int { return v.model.Height }

func (v *Viewport) SetContent(content string) { v.model.SetContent(content) }
func (v *Viewport) ScrollTo(top int)          { v.model.SetYOffset(top) }
func (v *Viewport) View() string              { return v.model.View() }

func (v *Viewport) SetSize(width, height int) {
	v.model.Width = width
	v.model.Height = height
	v.model.SetYOffset(v.model.YOffset)
}

func (v *Viewport) PageUp()   { v.model.PageUp() }
func (v *Viewport) PageDown() { v.model.PageDown() }

// Update only forwards mouse wheel messages, keys belong to the input.
func (v *Viewport) Update(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(tea.MouseMsg); !ok {
		return nil
	}
	var cmd tea.Cmd
	v.model, cmd = v.model.Update(msg)
	return cmd
}
