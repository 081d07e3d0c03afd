package widgets

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"
)

func TestPalette_Override(t *testing.T) {
	req := require.New(t)

	p := LightPalette.Override(map[string]lipgloss.Color{
		"primary": "#FF0000",
		"unknown": "#00FF00",
	})

	req.Equal(lipgloss.Color("#FF0000"), p.Primary)
	req.Equal(LightPalette.Font, p.Font)
	req.Equal(lipgloss.Color("#3AD07A"), LightPalette.Primary)
}

func TestThemeByName(t *testing.T) {
	req := require.New(t)

	dark := ThemeByName("dark", nil)
	light := ThemeByName("anything", nil)

	req.Equal(DarkPalette.Font, dark.Name.GetForeground())
	req.Equal(LightPalette.Font, light.Name.GetForeground())
}
