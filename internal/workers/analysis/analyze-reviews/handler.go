// internal/workers/analysis/analyze-reviews/handler.go
package analyzereviews

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"sonnimal/internal/analyzer"
	"sonnimal/internal/common/errors"
	"sonnimal/internal/common/logger"
	"sonnimal/internal/common/metrics"
	"sonnimal/internal/common/validation"
	"sonnimal/pkg/registry"
)

const (
	TaskType = "analyze-reviews"
)

type Analyzer interface {
	AnalyzeURL(ctx context.Context, rawURL string) (*analyzer.Outcome, error)
}

type Handler struct {
	config       *Config
	analyzer     Analyzer
	activity     *registry.Activity
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

// NewHandler builds the job handler. The input schema is taken from reg;
// a nil registry falls back to the built-in one.
func NewHandler(config *Config, a Analyzer, reg *registry.ActivityRegistry, log logger.Logger) *Handler {
	if reg == nil {
		reg = registry.Default()
	}
	act, _ := reg.FindByTaskType(TaskType)

	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		analyzer:     a,
		activity:     act,
		errorHandler: errors.NewErrorHandler(log),
		logger:       log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) error {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	active := metrics.WorkerJobsActive.WithLabelValues(TaskType)
	active.Inc()
	defer active.Dec()

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	input, err := h.parseInput(job.Variables)
	if err != nil {
		h.fail(ctx, client, job, err)
		return err
	}

	output, err := h.execute(ctx, input)
	if err != nil {
		h.fail(ctx, client, job, err)
		return err
	}

	if err := h.completeJob(ctx, client, job, output); err != nil {
		return err
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	return nil
}

// fail reports err to the broker. Codes the activity does not declare would
// have no catching boundary event, so they raise an incident instead.
func (h *Handler) fail(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	code := string(errors.ErrCodeUnexpectedFault)
	if stdErr, ok := errors.AsStandard(err); ok {
		code = string(stdErr.Code)
	}
	if h.activity != nil && code != string(errors.ErrCodeUnexpectedFault) && !h.activity.Throws(code) {
		err = errors.NewUnexpectedFaultError(err)
		code = string(errors.ErrCodeUnexpectedFault)
	}
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, code).Inc()
	h.errorHandler.HandleJobError(ctx, client, job, err)
}

// parseInput decodes and validates the job variables.
func (h *Handler) parseInput(variables string) (*Input, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(variables), &raw); err != nil {
		return nil, errors.NewInputInvalidError(fmt.Sprintf("parse variables: %v", err))
	}

	var schema map[string]interface{}
	if h.activity != nil {
		schema = h.activity.InputSchema
	}
	result, err := validation.ValidateInput(raw, schema)
	if err != nil {
		return nil, errors.NewUnexpectedFaultError(err)
	}
	if !result.Valid {
		return nil, errors.NewInputInvalidError(strings.Join(result.GetErrorMessages(), "; "))
	}

	var input Input
	if err := json.Unmarshal([]byte(variables), &input); err != nil {
		return nil, errors.NewInputInvalidError(fmt.Sprintf("parse input: %v", err))
	}
	return &input, nil
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	outcome, err := h.analyzer.AnalyzeURL(ctx, input.URL)
	if err != nil {
		return nil, err
	}
	return &Output{
		Analysis: outcome.Result,
		Tier:     outcome.Tier,
		IsDemo:   outcome.Result.IsDemo,
	}, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) error {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}

	h.logger.Info("job completed", map[string]interface{}{
		"jobKey": job.Key,
		"tier":   output.Tier,
	})
	return nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
