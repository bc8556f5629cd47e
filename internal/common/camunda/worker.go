// internal/common/camunda/worker.go
package camunda

import (
	"context"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"

	"sonnimal/internal/common/logger"
)

// JobHandler handles one activated job. Returned errors are only logged;
// the handler is responsible for completing or failing the job.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job) error
}

type CamundaWorker struct {
	worker   worker.JobWorker
	logger   logger.Logger
	taskType string
}

func NewWorker(
	client zbc.Client,
	taskType string,
	maxJobsActive int,
	handler JobHandler,
	log logger.Logger,
) *CamundaWorker {
	log = log.With(map[string]interface{}{"taskType": taskType})

	jobWorker := client.NewJobWorker().
		JobType(taskType).
		Handler(func(client worker.JobClient, job entities.Job) {
			if err := handler.Handle(client, job); err != nil {
				log.Error("handler returned error", map[string]interface{}{
					"jobKey": job.Key,
					"error":  err.Error(),
				})
			}
		}).
		MaxJobsActive(maxJobsActive).
		Open()

	return &CamundaWorker{
		worker:   jobWorker,
		logger:   log,
		taskType: taskType,
	}
}

func (w *CamundaWorker) Start() {
	w.logger.Info("worker started", nil)
}

// Stop closes the job worker. The shared zeebe client is closed by its owner.
func (w *CamundaWorker) Stop(ctx context.Context) {
	w.logger.Info("stopping worker", nil)
	w.worker.Close()
}
