package criteria

import (
	"github.com/viant/conceptflow/service/dao"
)

// FilterByState returns true when state satisfies the state criterion in
// parameters; other criteria are ignored.
func FilterByState[S ~string](state S, parameters []*dao.Parameter) bool {
	for _, parameter := range parameters {
		if parameter == nil || parameter.Name != dao.StateParameter {
			continue
		}
		switch actual := parameter.Value.(type) {
		case string:
			return string(state) == actual
		case []string:
			if len(actual) == 0 {
				return true
			}
			for _, s := range actual {
				if string(state) == s {
					return true
				}
			}
			return false
		}
	}
	return true
}
