// Package component is the base every visual component embeds: a declarative
// attribute schema, a typed attribute store, reactive re-render on observed
// attribute changes, Start/Stop lifecycle and a scoped event bus.
package component

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/samber/lo"
)

type Type int

const (
	String Type = iota
	Number
	Boolean
)

func (t Type) String() string {
	switch t {
	case Number:
		return "number"
	case Boolean:
		return "boolean"
	default:
		return "string"
	}
}

// Descriptor declares one typed attribute.
type Descriptor struct {
	Name     string
	Type     Type
	Required bool
	Observe  bool // a change triggers render
}

// Schema keeps declaration order, which is also the render order of attributes.
type Schema []Descriptor

func (s Schema) Lookup(name string) (Descriptor, bool) {
	return lo.Find(s, func(d Descriptor) bool { return d.Name == name })
}

func (s Schema) IsObserved(name string) bool {
	d, ok := s.Lookup(name)
	return ok && d.Observe
}

func (s Schema) Required() []string {
	return lo.FilterMap(s, func(d Descriptor, _ int) (string, bool) {
		return d.Name, d.Required
	})
}

// GetObservedAttrs lists the attributes whose change must re-render.
func GetObservedAttrs(s Schema) []string {
	return lo.FilterMap(s, func(d Descriptor, _ int) (string, bool) {
		return d.Name, d.Observe
	})
}

// GenerateTagName kebab-cases a type name: ChatListItem -> chat-list-item.
// Runs of capitals are kept together, so HTTPServer -> http-server.
func GenerateTagName(typeName string) string {
	runes := []rune(typeName)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prevLower := unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevLower || (unicode.IsUpper(runes[i-1]) && nextLower) {
				b.WriteByte('-')
			}
		}
		if r == '_' {
			b.WriteByte('-')
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// Encode turns a typed value into its host representation.
// present is false when the attribute must be removed.
func (t Type) Encode(v any) (raw string, present bool) {
	switch t {
	case Boolean:
		if truthy(v) {
			return "", true
		}
		return "", false
	case Number:
		switch n := v.(type) {
		case int:
			return strconv.Itoa(n), true
		case int64:
			return strconv.FormatInt(n, 10), true
		case float64:
			return strconv.FormatFloat(n, 'f', -1, 64), true
		case string:
			return n, n != ""
		case nil:
			return "", false
		}
		return "", false
	default:
		s, ok := v.(string)
		if !ok || s == "" {
			return "", false
		}
		return s, true
	}
}

// Decode reads the host representation back.
// Booleans are presence based, numbers fall back to 0.
func (t Type) Decode(raw string, present bool) any {
	switch t {
	case Boolean:
		return present
	case Number:
		n, _ := parseInt(raw)
		return n
	default:
		return raw
	}
}

func truthy(v any) bool {
	switch b := v.(type) {
	case nil:
		return false
	case bool:
		return b
	case string:
		return b != ""
	case int:
		return b != 0
	case float64:
		return b != 0
	}
	return true
}

// parseInt reads a leading integer, ignoring what follows it ("12px" -> 12).
func parseInt(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
