package client

import (
	"context"
	"fmt"

	"github.com/modelverse-dev/modelverse/internal/models"
)

// taskLogs is the shape of the training/evaluation log endpoints
type taskLogs struct {
	Logs []string `json:"logs"`
}

// CreateTrainingTaskRequest is the body of POST /training/tasks
type CreateTrainingTaskRequest struct {
	Name         string         `json:"name"`
	BaseModelID  int64          `json:"base_model_id"`
	DatasetID    int64          `json:"dataset_id"`
	ConfigParams map[string]any `json:"config_params,omitempty"`
}

// ListTrainingTasks returns all fine-tuning jobs
func (c *Client) ListTrainingTasks(ctx context.Context) ([]models.TrainingTask, error) {
	var tasks []models.TrainingTask
	if err := c.get(ctx, "/training/tasks", &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTrainingTask returns one fine-tuning job by ID
func (c *Client) GetTrainingTask(ctx context.Context, id int64) (*models.TrainingTask, error) {
	var task models.TrainingTask
	if err := c.get(ctx, fmt.Sprintf("/training/tasks/%d", id), &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// CreateTrainingTask creates a new fine-tuning job
func (c *Client) CreateTrainingTask(ctx context.Context, req CreateTrainingTaskRequest) (*models.TrainingTask, error) {
	var task models.TrainingTask
	if err := c.post(ctx, "/training/tasks", req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// StartTrainingTask starts a fine-tuning job
func (c *Client) StartTrainingTask(ctx context.Context, id int64) error {
	return c.post(ctx, fmt.Sprintf("/training/tasks/%d/start", id), nil, nil)
}

// StopTrainingTask stops a running fine-tuning job
func (c *Client) StopTrainingTask(ctx context.Context, id int64) error {
	return c.post(ctx, fmt.Sprintf("/training/tasks/%d/stop", id), nil, nil)
}

// DeleteTrainingTask removes a fine-tuning job
func (c *Client) DeleteTrainingTask(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/training/tasks/%d", id))
}

// TrainingLogs returns a window of a job's log lines
func (c *Client) TrainingLogs(ctx context.Context, id int64, limit, offset int) ([]string, error) {
	var logs taskLogs
	path := fmt.Sprintf("/training/tasks/%d/logs?limit=%d&offset=%d", id, limit, offset)
	if err := c.get(ctx, path, &logs); err != nil {
		return nil, err
	}
	return logs.Logs, nil
}

// AvailableModels lists models usable as a training base
func (c *Client) AvailableModels(ctx context.Context) ([]models.Resource, error) {
	var resources []models.Resource
	if err := c.get(ctx, "/training/available-models", &resources); err != nil {
		return nil, err
	}
	return resources, nil
}

// AvailableDatasets lists datasets usable for training
func (c *Client) AvailableDatasets(ctx context.Context) ([]models.Resource, error) {
	var resources []models.Resource
	if err := c.get(ctx, "/training/available-datasets", &resources); err != nil {
		return nil, err
	}
	return resources, nil
}

// CreateInferenceTaskRequest is the body of POST /inference/tasks
type CreateInferenceTaskRequest struct {
	Name               string  `json:"name"`
	ModelID            int64   `json:"model_id"`
	TensorParallelSize int     `json:"tensor_parallel_size,omitempty"`
	MaxModelLen        int     `json:"max_model_len,omitempty"`
	Quantization       string  `json:"quantization,omitempty"`
	MaxTokens          int     `json:"max_tokens,omitempty"`
	Temperature        float64 `json:"temperature,omitempty"`
	TopP               float64 `json:"top_p,omitempty"`
}

// ListInferenceTasks returns all deployed model endpoints
func (c *Client) ListInferenceTasks(ctx context.Context) ([]models.InferenceTask, error) {
	var tasks []models.InferenceTask
	if err := c.get(ctx, "/inference/tasks", &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetInferenceTask returns one deployment by ID
func (c *Client) GetInferenceTask(ctx context.Context, id int64) (*models.InferenceTask, error) {
	var task models.InferenceTask
	if err := c.get(ctx, fmt.Sprintf("/inference/tasks/%d", id), &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// CreateInferenceTask creates a new deployment
func (c *Client) CreateInferenceTask(ctx context.Context, req CreateInferenceTaskRequest) (*models.InferenceTask, error) {
	var task models.InferenceTask
	if err := c.post(ctx, "/inference/tasks", req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// StartInferenceTask starts a deployment
func (c *Client) StartInferenceTask(ctx context.Context, id int64) error {
	return c.post(ctx, fmt.Sprintf("/inference/tasks/%d/start", id), nil, nil)
}

// StopInferenceTask stops a running deployment
func (c *Client) StopInferenceTask(ctx context.Context, id int64) error {
	return c.post(ctx, fmt.Sprintf("/inference/tasks/%d/stop", id), nil, nil)
}

// DeleteInferenceTask removes a deployment
func (c *Client) DeleteInferenceTask(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/inference/tasks/%d", id))
}

// ChatHistory returns the stored conversation of a deployment
func (c *Client) ChatHistory(ctx context.Context, id int64) ([]models.ChatMessage, error) {
	var history []models.ChatMessage
	if err := c.get(ctx, fmt.Sprintf("/inference/tasks/%d/chat", id), &history); err != nil {
		return nil, err
	}
	return history, nil
}

// SendChat sends a conversation to a deployment and returns the reply
func (c *Client) SendChat(ctx context.Context, id int64, messages []models.ChatMessage) (*models.ChatMessage, error) {
	body := map[string]any{"messages": messages}
	var reply models.ChatMessage
	if err := c.post(ctx, fmt.Sprintf("/inference/tasks/%d/chat", id), body, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// GPUStatus reports the GPUs on the inference host
func (c *Client) GPUStatus(ctx context.Context) ([]models.GPUStatus, error) {
	var gpus []models.GPUStatus
	if err := c.get(ctx, "/inference/gpu", &gpus); err != nil {
		return nil, err
	}
	return gpus, nil
}

// CreateEvaluationTaskRequest is the body of POST /evaluation/tasks
type CreateEvaluationTaskRequest struct {
	Name          string `json:"name"`
	ModelID       int64  `json:"model_id"`
	BenchmarkType string `json:"benchmark_type"`
	NumFewshot    int    `json:"num_fewshot,omitempty"`
}

// ListEvaluationTasks returns all benchmark runs
func (c *Client) ListEvaluationTasks(ctx context.Context) ([]models.EvaluationTask, error) {
	var tasks []models.EvaluationTask
	if err := c.get(ctx, "/evaluation/tasks", &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetEvaluationTask returns one benchmark run by ID
func (c *Client) GetEvaluationTask(ctx context.Context, id int64) (*models.EvaluationTask, error) {
	var task models.EvaluationTask
	if err := c.get(ctx, fmt.Sprintf("/evaluation/tasks/%d", id), &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// CreateEvaluationTask creates a new benchmark run
func (c *Client) CreateEvaluationTask(ctx context.Context, req CreateEvaluationTaskRequest) (*models.EvaluationTask, error) {
	var task models.EvaluationTask
	if err := c.post(ctx, "/evaluation/tasks", req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// StartEvaluationTask starts a benchmark run
func (c *Client) StartEvaluationTask(ctx context.Context, id int64) error {
	return c.post(ctx, fmt.Sprintf("/evaluation/tasks/%d/start", id), nil, nil)
}

// StopEvaluationTask stops a running benchmark
func (c *Client) StopEvaluationTask(ctx context.Context, id int64) error {
	return c.post(ctx, fmt.Sprintf("/evaluation/tasks/%d/stop", id), nil, nil)
}

// DeleteEvaluationTask removes a benchmark run
func (c *Client) DeleteEvaluationTask(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/evaluation/tasks/%d", id))
}

// EvaluationLogs returns a window of a benchmark's log lines
func (c *Client) EvaluationLogs(ctx context.Context, id int64, limit, offset int) ([]string, error) {
	var logs taskLogs
	path := fmt.Sprintf("/evaluation/tasks/%d/logs?limit=%d&offset=%d", id, limit, offset)
	if err := c.get(ctx, path, &logs); err != nil {
		return nil, err
	}
	return logs.Logs, nil
}

// Benchmarks lists the benchmark suites the server supports
func (c *Client) Benchmarks(ctx context.Context) ([]string, error) {
	var benchmarks []string
	if err := c.get(ctx, "/evaluation/benchmarks", &benchmarks); err != nil {
		return nil, err
	}
	return benchmarks, nil
}
