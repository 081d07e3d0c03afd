package component

import (
	"chat-box/errors"
	"fmt"
	"strings"
	"sync"
)

// Catalog maps derived tag names to the component types that own them.
type Catalog struct {
	mu   sync.Mutex
	tags map[string]string
}

func NewCatalog() *Catalog {
	return &Catalog{tags: make(map[string]string)}
}

// Register derives the tag of typeName and refuses a tag already owned by another type.
func (c *Catalog) Register(typeName string) (string, error) {
	tag := GenerateTagName(typeName)
	if !strings.Contains(tag, "-") {
		return "", fmt.Errorf("%w: %q from %s", errors.ErrInvalidTagName, tag, typeName)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if owner, ok := c.tags[tag]; ok && owner != typeName {
		return "", fmt.Errorf("%w: %q claimed by %s and %s", errors.ErrTagCollision, tag, owner, typeName)
	}
	c.tags[tag] = typeName
	return tag, nil
}

func (c *Catalog) MustRegister(typeName string) string {
	tag, err := c.Register(typeName)
	if err != nil {
		panic(err)
	}
	return tag
}

func (c *Catalog) Tags() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]string, len(c.tags))
	for k, v := range c.tags {
		out[k] = v
	}
	return out
}
