package prompt

import (
	"fmt"
	"strings"
	"sync"

	"github.com/viant/conceptflow/model/concept"
	"github.com/viant/conceptflow/model/types"
	"github.com/viant/parsly"
)

// Source provides read-only access to named concepts
type Source interface {
	Lookup(name string) (*concept.Concept, bool)
	Names() []string
}

type segment struct {
	text        string
	placeholder bool
}

// Prompt represents a text template with {name} placeholders. Literal braces
// are written as {{ and }}.
type Prompt struct {
	Template string `json:"template" yaml:"template"`
	inputs   []string
	segments []segment
	filled   *string
	mu       sync.RWMutex
}

// New parses the template and derives its inputs
func New(template string) (*Prompt, error) {
	segments, err := parse(template)
	if err != nil {
		return nil, err
	}
	ret := &Prompt{Template: template, segments: segments}
	seen := map[string]bool{}
	for _, seg := range segments {
		if !seg.placeholder || seen[seg.text] {
			continue
		}
		seen[seg.text] = true
		ret.inputs = append(ret.inputs, seg.text)
	}
	return ret, nil
}

// MustNew is like New but panics on an invalid template
func MustNew(template string) *Prompt {
	ret, err := New(template)
	if err != nil {
		panic(err)
	}
	return ret
}

// Inputs returns distinct placeholder names in first occurrence order
func (p *Prompt) Inputs() []string {
	return append([]string(nil), p.inputs...)
}

// Filled returns the last resolved text
func (p *Prompt) Filled() (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.filled == nil {
		return "", false
	}
	return *p.filled, true
}

// Fill resolves every placeholder against source. The source is never modified.
func (p *Prompt) Fill(source Source) (string, error) {
	values := make(map[string]string, len(p.inputs))
	for _, name := range p.inputs {
		c, ok := source.Lookup(name)
		if !ok {
			return "", types.NewMissingConceptError(name, source.Names())
		}
		value, err := c.Value()
		if err != nil {
			return "", types.NewPendingConceptError(name, source.Names())
		}
		values[name] = value
	}
	builder := strings.Builder{}
	for _, seg := range p.segments {
		if seg.placeholder {
			builder.WriteString(values[seg.text])
			continue
		}
		builder.WriteString(seg.text)
	}
	filled := builder.String()
	p.mu.Lock()
	p.filled = &filled
	p.mu.Unlock()
	return filled, nil
}

func parse(template string) ([]segment, error) {
	cursor := parsly.NewCursor("", []byte(template), 0)
	var segments []segment
	appendText := func(text string) {
		if n := len(segments); n > 0 && !segments[n-1].placeholder {
			segments[n-1].text += text
			return
		}
		segments = append(segments, segment{text: text})
	}
	for cursor.Pos < cursor.InputSize {
		matched := cursor.MatchAny(escapedOpenToken, escapedCloseToken, placeholderToken, textToken)
		switch matched.Code {
		case escapedOpenCode:
			appendText("{")
		case escapedCloseCode:
			appendText("}")
		case textCode:
			appendText(matched.Text(cursor))
		case placeholderCode:
			text := matched.Text(cursor)
			name := text[1 : len(text)-1]
			if strings.TrimSpace(name) == "" {
				return nil, fmt.Errorf("invalid template %q: empty placeholder at %d", template, cursor.Pos-len(text))
			}
			segments = append(segments, segment{text: name, placeholder: true})
		default:
			return nil, fmt.Errorf("invalid template %q: unbalanced brace at %d", template, cursor.Pos)
		}
	}
	return segments, nil
}
