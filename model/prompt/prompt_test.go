package prompt

import (
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/conceptflow/model/concept"
	"github.com/viant/conceptflow/model/types"
	"pgregory.net/rapid"
)

type mapSource map[string]*concept.Concept

func (m mapSource) Lookup(name string) (*concept.Concept, bool) {
	c, ok := m[name]
	return c, ok
}

func (m mapSource) Names() []string {
	var ret []string
	for k := range m {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

func newSource(concepts ...*concept.Concept) mapSource {
	ret := mapSource{}
	for _, c := range concepts {
		ret[c.Name] = c
	}
	return ret
}

func TestNew_Inputs(t *testing.T) {
	testCases := []struct {
		name      string
		template  string
		expect    []string
		expectErr bool
	}{
		{name: "single", template: "Tell me about {topic}", expect: []string{"topic"}},
		{name: "first occurrence order", template: "{b} and {a} then {b}", expect: []string{"b", "a"}},
		{name: "no placeholders", template: "plain text", expect: nil},
		{name: "escaped braces", template: "{{literal}} {x}", expect: []string{"x"}},
		{name: "empty", template: "", expect: nil},
		{name: "unterminated", template: "Tell me about {topic", expectErr: true},
		{name: "stray close", template: "a } b", expectErr: true},
		{name: "empty placeholder", template: "value {}", expectErr: true},
		{name: "nested open", template: "{a{b}}", expectErr: true},
	}

	for _, tc := range testCases {
		actual, err := New(tc.template)
		if tc.expectErr {
			assert.Error(t, err, tc.name)
			continue
		}
		require.NoError(t, err, tc.name)
		assert.EqualValues(t, tc.expect, actual.Inputs(), tc.name)
	}
}

func TestPrompt_Fill(t *testing.T) {
	testCases := []struct {
		name      string
		template  string
		source    mapSource
		expect    string
		expectErr error
	}{
		{
			name:     "otters",
			template: "Tell me about {topic}",
			source:   newSource(concept.Seed("topic", "otters")),
			expect:   "Tell me about otters",
		},
		{
			name:     "repeated placeholder",
			template: "{x}-{y}-{x}",
			source:   newSource(concept.Seed("x", "1"), concept.Seed("y", "2")),
			expect:   "1-2-1",
		},
		{
			name:     "escaped braces",
			template: "{{json}}: {x}",
			source:   newSource(concept.Seed("x", "1")),
			expect:   "{json}: 1",
		},
		{
			name:      "absent",
			template:  "Tell me about {topic}",
			source:    newSource(concept.Seed("subject", "otters")),
			expectErr: types.ErrMissingConcept,
		},
		{
			name:      "pending",
			template:  "Summarise {summary}",
			source:    newSource(concept.New("summary")),
			expectErr: types.ErrMissingConcept,
		},
	}

	for _, tc := range testCases {
		p := MustNew(tc.template)
		actual, err := p.Fill(tc.source)
		if tc.expectErr != nil {
			assert.True(t, errors.Is(err, tc.expectErr), tc.name)
			_, ok := p.Filled()
			assert.False(t, ok, tc.name)
			continue
		}
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.expect, actual, tc.name)
		filled, ok := p.Filled()
		assert.True(t, ok, tc.name)
		assert.Equal(t, tc.expect, filled, tc.name)
	}
}

func TestPrompt_FillMissingListsAvailable(t *testing.T) {
	p := MustNew("{topic}")
	_, err := p.Fill(newSource(concept.Seed("a", "1"), concept.Seed("b", "2")))
	var missing *types.MissingConceptError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "topic", missing.Name)
	assert.EqualValues(t, []string{"a", "b"}, missing.Available)
}

func TestPrompt_Properties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		names := rapid.SliceOfN(rapid.StringMatching(`[a-z]{1,6}`), 0, 8).Draw(rt, "names")
		texts := rapid.SliceOfN(rapid.StringMatching(`[A-Z .,]{0,5}`), len(names)+1, len(names)+1).Draw(rt, "texts")

		builder := strings.Builder{}
		source := mapSource{}
		var expectInputs []string
		seen := map[string]bool{}
		for i, name := range names {
			builder.WriteString(texts[i])
			builder.WriteString("{" + name + "}")
			if !seen[name] {
				seen[name] = true
				expectInputs = append(expectInputs, name)
				source[name] = concept.Seed(name, strings.ToUpper(name))
			}
		}
		builder.WriteString(texts[len(names)])

		p, err := New(builder.String())
		if err != nil {
			rt.Fatalf("unexpected error: %v", err)
		}
		if strings.Join(p.Inputs(), ",") != strings.Join(expectInputs, ",") {
			rt.Fatalf("inputs %v, expected %v", p.Inputs(), expectInputs)
		}
		first, err := p.Fill(source)
		if err != nil {
			rt.Fatalf("unexpected fill error: %v", err)
		}
		second, err := p.Fill(source)
		if err != nil || first != second {
			rt.Fatalf("fill is not deterministic: %q vs %q", first, second)
		}
	})
}
