package state

import "sort"

// Parameter represents a named seed value
type Parameter struct {
	Name        string `json:"name" yaml:"name"`
	Value       string `json:"value" yaml:"value"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Parameters is a collection of named values
type Parameters []*Parameter

// Add appends a parameter to the collection
func (p *Parameters) Add(name string, value string) {
	*p = append(*p, &Parameter{
		Name:  name,
		Value: value,
	})
}

// Set replaces the value of an existing parameter or appends a new one
func (p *Parameters) Set(name string, value string) {
	if param, ok := p.Get(name); ok {
		param.Value = value
		return
	}
	p.Add(name, value)
}

// Get retrieves a parameter by name
func (p Parameters) Get(name string) (*Parameter, bool) {
	for _, param := range p {
		if param.Name == name {
			return param, true
		}
	}
	return nil, false
}

// Names returns parameter names in declaration order
func (p Parameters) Names() []string {
	ret := make([]string, 0, len(p))
	for _, param := range p {
		ret = append(ret, param.Name)
	}
	return ret
}

// ToMap converts Parameters to a map
func (p Parameters) ToMap() map[string]string {
	result := make(map[string]string, len(p))
	for _, param := range p {
		result[param.Name] = param.Value
	}
	return result
}

// Merge returns a copy with values applied on top; new names are appended in
// sorted order.
func (p Parameters) Merge(values map[string]string) Parameters {
	ret := p.Clone()
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		ret.Set(name, values[name])
	}
	return ret
}

// Clone returns a deep copy
func (p Parameters) Clone() Parameters {
	if p == nil {
		return nil
	}
	ret := make(Parameters, len(p))
	for i, param := range p {
		clone := *param
		ret[i] = &clone
	}
	return ret
}

// FromMap creates Parameters from a map, sorted by name
func FromMap(m map[string]string) Parameters {
	return Parameters(nil).Merge(m)
}
