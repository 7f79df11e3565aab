package criteria

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/conceptflow/service/dao"
)

type state string

func TestFilterByState(t *testing.T) {
	testCases := []struct {
		description string
		state       state
		parameters  []*dao.Parameter
		expect      bool
	}{
		{description: "no criteria", state: "running", expect: true},
		{description: "single match", state: "running", parameters: []*dao.Parameter{dao.NewStateParameter[state]("running")}, expect: true},
		{description: "single miss", state: "failed", parameters: []*dao.Parameter{dao.NewStateParameter[state]("running")}, expect: false},
		{description: "any of", state: "failed", parameters: []*dao.Parameter{dao.NewStateParameter[state]("running", "failed")}, expect: true},
		{description: "other criteria ignored", state: "failed", parameters: []*dao.Parameter{dao.NewParameter("Workflow", "otters")}, expect: true},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expect, FilterByState(tc.state, tc.parameters), tc.description)
	}
}
