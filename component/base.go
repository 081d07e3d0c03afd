package component

import (
	"chat-box/bus"
	"chat-box/domain/event"
	"chat-box/errors"
	"fmt"
	"log/slog"
)

// Change describes one attribute mutation.
type Change struct {
	Name   string
	Old    string
	HadOld bool
	New    string
	HasNew bool
}

// Hooks are the per-component overrides of the base behavior.
type Hooks struct {
	// Render must be idempotent: same attributes, same output.
	Render func()
	// AttributeChanged runs on every effective change, observed or not,
	// before Render.
	AttributeChanged func(c Change)
	// Mount attaches listeners through Base.Listen.
	Mount func()
	// Unmount runs before the recorded listeners are detached.
	Unmount func()
}

// Lifecycle is owned by whoever mounts the component.
type Lifecycle interface {
	Start() error
	Stop() error
}

type listener struct {
	target *bus.Bus
	sub    bus.Subscription
}

// Base wraps the host side of a component.
type Base struct {
	tag    string
	schema Schema
	attrs  *Attributes
	bus    *bus.Bus
	log    *slog.Logger
	hooks  Hooks

	ready     bool
	started   bool
	destroyed bool
	listeners []listener
}

// NewBase creates the component node under parent. Attributes set with Init
// before Ready never trigger hooks.
func NewBase(tag string, schema Schema, log *slog.Logger, parent *bus.Bus) *Base {
	return &Base{
		tag:    tag,
		schema: schema,
		attrs:  NewAttributes(),
		bus:    bus.New(tag, parent),
		log:    log.With("component", tag),
	}
}

func (b *Base) SetHooks(h Hooks) {
	b.hooks = h
}

func (b *Base) Tag() string             { return b.tag }
func (b *Base) Schema() Schema          { return b.schema }
func (b *Base) Bus() *bus.Bus           { return b.bus }
func (b *Base) Log() *slog.Logger       { return b.log }
func (b *Base) Attrs() *Attributes      { return b.attrs }
func (b *Base) IsStarted() bool         { return b.started }
func (b *Base) IsDestroyed() bool       { return b.destroyed }
func (b *Base) ObservedAttrs() []string { return GetObservedAttrs(b.schema) }

// Init sets an initial typed value without running hooks.
func (b *Base) Init(name string, v any) {
	raw, present := b.typeOf(name).Encode(v)
	if present {
		b.attrs.Set(name, raw)
	}
}

// Ready validates required attributes and performs the first render.
func (b *Base) Ready() error {
	for _, name := range b.schema.Required() {
		if v, ok := b.attrs.Get(name); !ok || v == "" {
			return fmt.Errorf("%w: %s requires %q", errors.ErrMissingRequiredAttr, b.tag, name)
		}
	}
	b.ready = true
	b.Render()
	return nil
}

// Render calls the component render hook.
func (b *Base) Render() {
	if b.destroyed || b.hooks.Render == nil {
		return
	}
	b.hooks.Render()
}

func (b *Base) Has(name string) bool {
	return b.attrs.Has(name)
}

func (b *Base) Raw(name string) (string, bool) {
	return b.attrs.Get(name)
}

func (b *Base) String(name string) string {
	v, _ := b.attrs.Get(name)
	return v
}

// SetString stores v verbatim; an empty string removes the attribute.
func (b *Base) SetString(name, v string) {
	b.apply(name, v, v != "")
}

// Bool is presence based.
func (b *Base) Bool(name string) bool {
	return b.attrs.Has(name)
}

// SetBool writes an empty marker for true and removes the attribute for false.
func (b *Base) SetBool(name string, v bool) {
	b.apply(name, "", v)
}

func (b *Base) Number(name string) int {
	return b.NumberOr(name, 0)
}

// NumberOr parses the attribute, returning def when absent or not numeric.
func (b *Base) NumberOr(name string, def int) int {
	raw, ok := b.attrs.Get(name)
	if !ok {
		return def
	}
	n, ok := parseInt(raw)
	if !ok {
		return def
	}
	return n
}

func (b *Base) SetNumber(name string, v int) {
	raw, _ := Number.Encode(v)
	b.apply(name, raw, true)
}

// Value decodes the attribute with the type declared in the schema.
// Undeclared attributes read as strings.
func (b *Base) Value(name string) any {
	raw, ok := b.attrs.Get(name)
	return b.typeOf(name).Decode(raw, ok)
}

// SetValue encodes v with the type declared in the schema.
func (b *Base) SetValue(name string, v any) {
	raw, present := b.typeOf(name).Encode(v)
	b.apply(name, raw, present)
}

func (b *Base) Remove(name string) {
	b.apply(name, "", false)
}

func (b *Base) typeOf(name string) Type {
	if d, ok := b.schema.Lookup(name); ok {
		return d.Type
	}
	return String
}

func (b *Base) apply(name, raw string, present bool) {
	if b.destroyed {
		return
	}
	old, had := b.attrs.Get(name)
	var changed bool
	if present {
		changed = b.attrs.Set(name, raw)
	} else {
		changed = b.attrs.Remove(name)
	}
	if !changed || !b.ready {
		return
	}
	if b.hooks.AttributeChanged != nil {
		b.hooks.AttributeChanged(Change{Name: name, Old: old, HadOld: had, New: raw, HasNew: present})
	}
	if b.schema.IsObserved(name) {
		b.Render()
	}
}

// On subscribes on the component's own bus. The caller owns the subscription.
func (b *Base) On(kind event.Kind, h bus.Handler) bus.Subscription {
	return b.bus.Subscribe(kind, h)
}

func (b *Base) Off(sub bus.Subscription) bool {
	return b.bus.Unsubscribe(sub)
}

// Emit dispatches on the component bus; ancestors see it afterwards.
func (b *Base) Emit(kind event.Kind, detail any) *bus.Event {
	return b.bus.Emit(kind, detail)
}

// Listen subscribes on target and records the subscription so Stop removes it.
func (b *Base) Listen(target *bus.Bus, kind event.Kind, h bus.Handler) {
	b.Assert(target != nil, fmt.Sprintf("listen target for %s is nil", kind))
	b.listeners = append(b.listeners, listener{target: target, sub: target.Subscribe(kind, h)})
}

// Listeners counts the subscriptions recorded since Start.
func (b *Base) Listeners() int {
	return len(b.listeners)
}

func (b *Base) Start() error {
	if b.destroyed {
		return fmt.Errorf("%w: %s", errors.ErrDestroyed, b.tag)
	}
	if b.started {
		return fmt.Errorf("%w: %s", errors.ErrAlreadyStarted, b.tag)
	}
	b.started = true
	if b.hooks.Mount != nil {
		b.hooks.Mount()
	}
	b.log.Debug("Component mounted", "listeners", len(b.listeners))
	return nil
}

func (b *Base) Stop() error {
	if !b.started {
		return fmt.Errorf("%w: %s", errors.ErrNotStarted, b.tag)
	}
	if b.hooks.Unmount != nil {
		b.hooks.Unmount()
	}
	for _, l := range b.listeners {
		l.target.Unsubscribe(l.sub)
	}
	b.listeners = nil
	b.started = false
	b.log.Debug("Component unmounted")
	return nil
}

// Destroy stops the component, cuts it from its parent and freezes its attributes.
func (b *Base) Destroy() {
	if b.destroyed {
		return
	}
	if b.started {
		_ = b.Stop()
	}
	b.destroyed = true
	b.bus.Detach()
	b.log.Warn("Component destroyed")
}

// Mounted runs fn with c started, and always stops it afterwards.
func Mounted(c Lifecycle, fn func() error) (err error) {
	if err = c.Start(); err != nil {
		return err
	}
	defer func() {
		if stopErr := c.Stop(); err == nil {
			err = stopErr
		}
	}()
	return fn()
}
