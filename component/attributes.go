package component

import "slices"

// Attributes is the host attribute store: raw string values in insertion order.
// An attribute present with an empty value is distinct from an absent one.
type Attributes struct {
	order  []string
	values map[string]string
}

func NewAttributes() *Attributes {
	return &Attributes{values: make(map[string]string)}
}

func (a *Attributes) Get(name string) (string, bool) {
	v, ok := a.values[name]
	return v, ok
}

func (a *Attributes) Has(name string) bool {
	_, ok := a.values[name]
	return ok
}

// Set stores the value and reports whether anything changed.
func (a *Attributes) Set(name, value string) bool {
	old, ok := a.values[name]
	if ok && old == value {
		return false
	}
	if !ok {
		a.order = append(a.order, name)
	}
	a.values[name] = value
	return true
}

// Remove reports whether the attribute was present.
func (a *Attributes) Remove(name string) bool {
	if _, ok := a.values[name]; !ok {
		return false
	}
	delete(a.values, name)
	a.order = slices.DeleteFunc(a.order, func(n string) bool { return n == name })
	return true
}

func (a *Attributes) Names() []string {
	return slices.Clone(a.order)
}

func (a *Attributes) Len() int {
	return len(a.order)
}
