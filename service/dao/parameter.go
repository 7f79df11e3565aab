package dao

// StateParameter is the parameter name used to filter entities by state
const StateParameter = "State"

// Parameter represents a list criterion
type Parameter struct {
	Name  string
	Value interface{}
}

// NewParameter creates a criterion; several values match any of them
func NewParameter(name string, values ...string) *Parameter {
	if len(values) == 1 {
		return &Parameter{Name: name, Value: values[0]}
	}
	return &Parameter{Name: name, Value: values}
}

// NewStateParameter creates a state criterion
func NewStateParameter[S ~string](states ...S) *Parameter {
	values := make([]string, len(states))
	for i, state := range states {
		values[i] = string(state)
	}
	return NewParameter(StateParameter, values...)
}
