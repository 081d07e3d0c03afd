package component

import (
	"chat-box/bus"
	"chat-box/domain/event"
	"chat-box/errors"
	"log/slog"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

var testSchema = Schema{
	{Name: "id", Type: String, Required: true},
	{Name: "name", Type: String, Observe: true},
	{Name: "unreadcount", Type: Number, Observe: true},
	{Name: "online", Type: Boolean, Observe: true},
	{Name: "hidden", Type: Boolean},
}

type counter struct {
	*Base
	renders int
	changes []Change
	mounts  int
}

func newCounter(t *testing.T, parent *bus.Bus, id string) (*counter, error) {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	c := &counter{Base: NewBase("test-counter", testSchema, log, parent)}
	c.SetHooks(Hooks{
		Render:           func() { c.renders++ },
		AttributeChanged: func(ch Change) { c.changes = append(c.changes, ch) },
		Mount: func() {
			c.mounts++
			c.Listen(c.Bus(), event.UserTyping, func(*bus.Event) {})
			if parent != nil {
				c.Listen(parent, event.UserStopTyping, func(*bus.Event) {})
			}
		},
	})
	c.Init("id", id)
	return c, c.Ready()
}

func TestGetObservedAttrs(t *testing.T) {
	require.Equal(t, []string{"name", "unreadcount", "online"}, GetObservedAttrs(testSchema))
	require.Equal(t, []string{"id"}, testSchema.Required())
}

func TestGenerateTagName(t *testing.T) {
	tests := map[string]string{
		"ChatListItem": "chat-list-item",
		"ChatBox":      "chat-box",
		"ChatMessage":  "chat-message",
		"AppBrand":     "app-brand",
		"ActiveChat":   "active-chat",
		"HTTPServer":   "http-server",
		"Chat2Box":     "chat2-box",
	}
	for in, want := range tests {
		require.Equal(t, want, GenerateTagName(in), in)
	}
}

func TestCatalog_RejectsCollisions(t *testing.T) {
	req := require.New(t)
	c := NewCatalog()

	tag, err := c.Register("ChatBox")
	req.NoError(err)
	req.Equal("chat-box", tag)

	// Registering the same type twice is idempotent
	_, err = c.Register("ChatBox")
	req.NoError(err)

	// Another type deriving the same tag is refused
	_, err = c.Register("Chat_Box")
	req.ErrorIs(err, errors.ErrTagCollision)

	// Single word names cannot become tags
	_, err = c.Register("Header")
	req.ErrorIs(err, errors.ErrInvalidTagName)
}

func TestBase_RequiredAttributeChecked_AtConstruction(t *testing.T) {
	_, err := newCounter(t, nil, "")
	require.ErrorIs(t, err, errors.ErrMissingRequiredAttr)
}

func TestBase_BooleanPresenceEncoding(t *testing.T) {
	req := require.New(t)
	c, err := newCounter(t, nil, "c1")
	req.NoError(err)

	// When a boolean is set to true
	c.SetBool("online", true)

	// Then it is stored as an empty marker
	raw, ok := c.Raw("online")
	req.True(ok)
	req.Equal("", raw)
	req.True(c.Bool("online"))
	req.Equal(true, c.Value("online"))

	// When set to false it disappears, never stored as "false"
	c.SetValue("online", false)
	req.False(c.Has("online"))
	req.False(c.Bool("online"))
	for _, name := range c.Attrs().Names() {
		v, _ := c.Raw(name)
		req.NotEqual("false", v)
	}
}

func TestBase_NumberCoercion(t *testing.T) {
	req := require.New(t)
	c, err := newCounter(t, nil, "c1")
	req.NoError(err)

	req.Equal(0, c.Number("unreadcount"))
	req.Equal(-1, c.NumberOr("unreadcount", -1))

	c.SetNumber("unreadcount", 3)
	req.Equal(3, c.Value("unreadcount"))

	c.SetString("unreadcount", "7 new")
	req.Equal(7, c.Number("unreadcount"))

	c.SetString("unreadcount", "many")
	req.Equal(0, c.Number("unreadcount"))
	req.Equal(5, c.NumberOr("unreadcount", 5))
}

func TestBase_RenderOnlyOnObservedChange(t *testing.T) {
	req := require.New(t)
	c, err := newCounter(t, nil, "c1")
	req.NoError(err)
	req.Equal(1, c.renders) // first render from Ready

	// Given an observed attribute changes
	c.SetString("name", "Alice")
	req.Equal(2, c.renders)

	// When the same value is written again nothing happens
	c.SetString("name", "Alice")
	req.Equal(2, c.renders)

	// And an unobserved attribute never renders but is still reported
	c.SetBool("hidden", true)
	req.Equal(2, c.renders)
	req.Len(c.changes, 2)
	req.Equal(Change{Name: "hidden", HasNew: true}, c.changes[1])
}

func TestBase_StartStopSymmetry(t *testing.T) {
	req := require.New(t)
	parent := bus.New("parent", nil)
	c, err := newCounter(t, parent, "c1")
	req.NoError(err)

	req.ErrorIs(c.Stop(), errors.ErrNotStarted)

	req.NoError(c.Start())
	req.ErrorIs(c.Start(), errors.ErrAlreadyStarted)
	req.Equal(1, c.mounts)
	req.Equal(2, c.Listeners())
	req.Equal(1, parent.Len(event.UserStopTyping))

	req.NoError(c.Stop())
	req.Zero(c.Listeners())
	req.Zero(parent.Len(""))
	req.Zero(c.Bus().Len(""))
}

func TestMounted_AlwaysStops(t *testing.T) {
	req := require.New(t)
	parent := bus.New("parent", nil)
	c, err := newCounter(t, parent, "c1")
	req.NoError(err)

	err = Mounted(c, func() error {
		req.True(c.IsStarted())
		return errors.ErrInvalidMessage
	})

	req.ErrorIs(err, errors.ErrInvalidMessage)
	req.False(c.IsStarted())
	req.Zero(parent.Len(""))
}

func TestBase_Assert(t *testing.T) {
	c, err := newCounter(t, nil, "c1")
	require.NoError(t, err)

	require.NotPanics(t, func() { c.Assert(true, "fine") })
	require.PanicsWithError(t, "assertion failed: test-counter: time must be provided", func() {
		c.Assert(false, "time must be provided")
	})
}

func TestBase_Destroy(t *testing.T) {
	req := require.New(t)
	parent := bus.New("parent", nil)
	c, err := newCounter(t, parent, "c1")
	req.NoError(err)
	req.NoError(c.Start())

	c.Destroy()

	req.True(c.IsDestroyed())
	req.Nil(c.Bus().Parent())
	req.Zero(parent.Len(""))
	req.ErrorIs(c.Start(), errors.ErrDestroyed)

	renders := c.renders
	c.SetString("name", "ignored")
	req.Equal(renders, c.renders)
	req.False(c.Has("name"))
}
