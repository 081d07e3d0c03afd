package widgets

import (
	"chat-box/bus"
	"chat-box/component"
	"chat-box/domain/event"
	"log/slog"

	"github.com/charmbracelet/lipgloss"
)

const DefaultBrandTitle = "Chat Web App"

var appBrandTag = catalog.MustRegister("AppBrand")

var appBrandSchema = component.Schema{
	{Name: "title", Type: component.String, Observe: true},
}

// AppBrand is the static application header.
type AppBrand struct {
	*component.Base
	theme Theme
	view  string
}

func NewAppBrand(log *slog.Logger, parent *bus.Bus, theme Theme, title string) *AppBrand {
	w := &AppBrand{Base: component.NewBase(appBrandTag, appBrandSchema, log, parent), theme: theme}
	w.SetHooks(component.Hooks{Render: w.render})
	w.Init("title", title)
	_ = w.Ready()
	return w
}

func (w *AppBrand) Title() string {
	if t := w.String("title"); t != "" {
		return t
	}
	return DefaultBrandTitle
}

func (w *AppBrand) SetTitle(title string) { w.SetString("title", title) }

// ClickProfile is the profile button.
func (w *AppBrand) ClickProfile() {
	w.Emit(event.ProfileBtnClick, nil)
}

func (w *AppBrand) render() {
	w.view = lipgloss.JoinHorizontal(lipgloss.Center,
		w.theme.Brand.Render("◆ "+w.Title()), "  ", w.theme.Muted.Render("[p] profile"))
}

func (w *AppBrand) View() string {
	return w.view
}
