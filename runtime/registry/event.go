package registry

import (
	"fmt"
	"time"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/viant/conceptflow/model/concept"
)

// Overwrite describes a concept replaced by a distinct object under the same name.
// It is a warning; the new value is kept.
type Overwrite struct {
	Name     string           `json:"name"`
	Previous *concept.Concept `json:"previous"`
	Current  *concept.Concept `json:"current"`
	Diff     string           `json:"diff,omitempty"`
	At       time.Time        `json:"at"`
}

// Listener is invoked for every overwrite
type Listener func(event *Overwrite)

func (o *Overwrite) String() string {
	return fmt.Sprintf("overwrite of %v (level %d -> %d)", o.Name, o.Previous.Level, o.Current.Level)
}

func contentDiff(name string, previous, current *concept.Concept, contextLines int) string {
	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(contentOf(previous)),
		B:        difflib.SplitLines(contentOf(current)),
		FromFile: fmt.Sprintf("%v@%d (previous)", name, previous.Level),
		ToFile:   fmt.Sprintf("%v@%d (current)", name, current.Level),
		Context:  contextLines,
	}
	diff, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return ""
	}
	return diff
}

func contentOf(c *concept.Concept) string {
	if c == nil || c.Content == nil {
		return ""
	}
	return *c.Content
}
