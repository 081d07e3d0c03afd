package domain

type ChatID string

// Chat is the conversation shown in a chat box header.
type Chat struct {
	ID     ChatID `yaml:"id"`
	Name   string `yaml:"name"`
	Avatar string `yaml:"avatar,omitempty"`
	Online bool   `yaml:"online,omitempty"`
	Desc   string `yaml:"desc,omitempty"`

	LastSeen string `yaml:"lastseen,omitempty"`
}

// IsValid mirrors the guard a chat box applies before switching conversation.
func (c *Chat) IsValid() bool {
	return c != nil && c.ID != ""
}
