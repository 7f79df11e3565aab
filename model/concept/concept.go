package concept

import (
	"fmt"
	"strings"

	"github.com/viant/conceptflow/model/types"
)

// Kind defines how concept content is interpreted
type Kind string

const (
	// KindText holds a single text value
	KindText Kind = "text"
	// KindList holds newline separated items, each exposed as a derived concept
	KindList Kind = "list"
)

// Concept represents a named value cell shared through a registry.
type Concept struct {
	Name     string  `json:"name" yaml:"name"`
	Kind     Kind    `json:"kind,omitempty" yaml:"kind,omitempty"`
	Content  *string `json:"content,omitempty" yaml:"content,omitempty"`
	Inputted bool    `json:"inputted" yaml:"inputted"`
	Level    int     `json:"level" yaml:"level"`
}

// New creates a pending text concept
func New(name string) *Concept {
	return &Concept{Name: name, Kind: KindText}
}

// Seed creates an externally supplied concept with content at level 0
func Seed(name, content string) *Concept {
	return &Concept{Name: name, Kind: KindText, Content: &content, Inputted: true}
}

// NewList creates a pending list concept
func NewList(name string) *Concept {
	return &Concept{Name: name, Kind: KindList}
}

// Resolved returns true when content has been assigned
func (c *Concept) Resolved() bool {
	return c != nil && c.Content != nil
}

// Value returns concept content or a missing value error while pending
func (c *Concept) Value() (string, error) {
	if !c.Resolved() {
		return "", types.NewMissingValueError(c.Name)
	}
	return *c.Content, nil
}

// AssignContent sets content; a resolved concept can be reassigned, the last write wins
func (c *Concept) AssignContent(content string) {
	c.Content = &content
}

// WithLevel sets the production level
func (c *Concept) WithLevel(level int) *Concept {
	c.Level = level
	return c
}

// IsList returns true for list concepts
func (c *Concept) IsList() bool {
	return c.Kind == KindList
}

// Items returns one derived concept per list entry, named <name>_<index>.
func (c *Concept) Items() ([]*Concept, error) {
	if !c.IsList() {
		return nil, fmt.Errorf("concept %q is not a list", c.Name)
	}
	value, err := c.Value()
	if err != nil {
		return nil, err
	}
	lines := strings.Split(value, "\n")
	items := make([]*Concept, 0, len(lines))
	for i, line := range lines {
		item := line
		items = append(items, &Concept{
			Name:     fmt.Sprintf("%s_%d", c.Name, i),
			Kind:     KindText,
			Content:  &item,
			Inputted: c.Inputted,
			Level:    c.Level,
		})
	}
	return items, nil
}

// Clone returns a shallow copy with its own content pointer
func (c *Concept) Clone() *Concept {
	if c == nil {
		return nil
	}
	clone := *c
	if c.Content != nil {
		content := *c.Content
		clone.Content = &content
	}
	return &clone
}

func (c *Concept) String() string {
	content := "<pending>"
	if c.Content != nil {
		content = *c.Content
	}
	return fmt.Sprintf("%s[%d]: %s", c.Name, c.Level, content)
}
