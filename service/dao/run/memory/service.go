package memory

import (
	"github.com/viant/conceptflow/model/execution"
	"github.com/viant/conceptflow/service/dao"
	"github.com/viant/conceptflow/service/dao/criteria"
	"github.com/viant/conceptflow/service/dao/store"
)

// Service keeps run records for the process lifetime. Reads return copies.
type Service struct {
	*store.MemoryStore[string, execution.Run]
}

var _ dao.Service[string, execution.Run] = (*Service)(nil)

// New creates a run store
func New() *Service {
	return &Service{
		MemoryStore: store.NewMemoryStore[string, execution.Run](
			func(run *execution.Run) string { return run.ID },
			store.WithClone[string, execution.Run]((*execution.Run).Clone),
			store.WithFilter[string, execution.Run](func(run *execution.Run, parameters []*dao.Parameter) bool {
				return criteria.FilterByState(run.GetState(), parameters)
			}),
		),
	}
}
