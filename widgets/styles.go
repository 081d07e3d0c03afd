// Package widgets holds the chat window components: roster items, message
// bubbles, the chat box timeline and its header and input collaborators.
// Every widget embeds component.Base and renders itself to a terminal string.
package widgets

import (
	"chat-box/component"

	"github.com/charmbracelet/lipgloss"
)

var catalog = component.NewCatalog()

// Catalog exposes the registered tags, mostly for diagnostics.
func Catalog() map[string]string {
	return catalog.Tags()
}

// Palette is the set of colours a theme is drawn with.
type Palette struct {
	Primary   lipgloss.Color
	Hover     lipgloss.Color
	Font      lipgloss.Color
	Secondary lipgloss.Color
	Muted     lipgloss.Color
	White     lipgloss.Color
}

var (
	LightPalette = Palette{
		Primary:   "#3AD07A",
		Hover:     "#EDFBF3",
		Font:      "#333333",
		Secondary: "#777777",
		Muted:     "#ECECEC",
		White:     "#FFFFFF",
	}
	DarkPalette = Palette{
		Primary:   "#3AD07A",
		Hover:     "#1F3A2A",
		Font:      "#E4E4E4",
		Secondary: "#9A9A9A",
		Muted:     "#3A3A3A",
		White:     "#FFFFFF",
	}
)

// Override replaces the colours named in overrides (primary, font, ...).
// Unknown names are ignored.
func (p Palette) Override(overrides map[string]lipgloss.Color) Palette {
	slots := map[string]*lipgloss.Color{
		"primary":   &p.Primary,
		"hover":     &p.Hover,
		"font":      &p.Font,
		"secondary": &p.Secondary,
		"muted":     &p.Muted,
		"white":     &p.White,
	}
	for name, c := range overrides {
		if slot, ok := slots[name]; ok {
			*slot = c
		}
	}
	return p
}

// Theme groups the styles shared by widgets.
type Theme struct {
	Name       lipgloss.Style
	Desc       lipgloss.Style
	Meta       lipgloss.Style
	Badge      lipgloss.Style
	Online     lipgloss.Style
	Avatar     lipgloss.Style
	Selected   lipgloss.Style
	Row        lipgloss.Style
	BubbleOut  lipgloss.Style
	BubbleIn   lipgloss.Style
	Time       lipgloss.Style
	Day        lipgloss.Style
	Typing     lipgloss.Style
	ScrollHint lipgloss.Style
	Header     lipgloss.Style
	Brand      lipgloss.Style
	Input      lipgloss.Style
	Muted      lipgloss.Style
}

func DefaultTheme() Theme {
	return NewTheme(LightPalette)
}

// ThemeByName picks the dark palette for "dark" and the light one otherwise.
func ThemeByName(name string, overrides map[string]lipgloss.Color) Theme {
	p := LightPalette
	if name == "dark" {
		p = DarkPalette
	}
	return NewTheme(p.Override(overrides))
}

func NewTheme(p Palette) Theme {
	return Theme{
		Name:       lipgloss.NewStyle().Bold(true).Foreground(p.Font),
		Desc:       lipgloss.NewStyle().Foreground(p.Secondary),
		Meta:       lipgloss.NewStyle().Foreground(p.Secondary),
		Badge:      lipgloss.NewStyle().Foreground(p.White).Background(p.Primary).Padding(0, 1),
		Online:     lipgloss.NewStyle().Foreground(p.Primary),
		Avatar:     lipgloss.NewStyle().Bold(true).Padding(0, 1),
		Selected:   lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(p.Primary).Background(p.Hover),
		Row:        lipgloss.NewStyle().PaddingLeft(1),
		BubbleOut:  lipgloss.NewStyle().Foreground(p.White).Background(p.Primary).Padding(0, 1),
		BubbleIn:   lipgloss.NewStyle().Foreground(p.Font).Background(p.Muted).Padding(0, 1),
		Time:       lipgloss.NewStyle().Faint(true),
		Day:        lipgloss.NewStyle().Foreground(p.White).Background(p.Secondary).Padding(0, 2),
		Typing:     lipgloss.NewStyle().Italic(true).Foreground(p.Primary),
		ScrollHint: lipgloss.NewStyle().Foreground(p.Primary).Bold(true),
		Header:     lipgloss.NewStyle().Bold(true).Border(lipgloss.NormalBorder(), false, false, true, false).BorderForeground(p.Muted),
		Brand:      lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		Input:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Primary),
		Muted:      lipgloss.NewStyle().Foreground(p.Secondary),
	}
}
