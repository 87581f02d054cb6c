// File: services/tasks/email.go
package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	TypeEmailDispatch = "email:dispatch"
	TypeEmailDrain    = "email:drain"
	TypeSweepRun      = "cleanup:sweep"
)

// EmailDispatchPayload identifies the queue entry to deliver.
type EmailDispatchPayload struct {
	EntryID string `json:"entryId"`
}

func NewEmailDispatchTask(entryID string) (*asynq.Task, error) {
	b, err := json.Marshal(EmailDispatchPayload{EntryID: entryID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeEmailDispatch, b), nil
}

// NewEmailDrainTask builds the periodic drain task that re-dispatches
// pending rows whose wake-up task was lost; it carries no payload.
func NewEmailDrainTask() *asynq.Task {
	return asynq.NewTask(TypeEmailDrain, nil)
}

// NewSweepTask builds the scheduled retention sweep task; it carries no
// payload.
func NewSweepTask() *asynq.Task {
	return asynq.NewTask(TypeSweepRun, nil)
}
