package models

// UserProfile is the cached snapshot of the server-side identity, written on
// login and on explicit profile refresh. It may lag the server; only IsAdmin
// is used client-side, and purely for advisory route gating.
type UserProfile struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"is_admin"`
	CreatedAt string `json:"created_at"`
}

// Resource is a model or dataset tracked by the platform
type Resource struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	ResourceType string  `json:"resource_type"`
	Status       string  `json:"status"`
	Progress     float64 `json:"progress"`
	LocalPath    string  `json:"local_path"`
	ErrorMessage string  `json:"error_message"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

// DownloadProgress reports the state of an in-flight resource download
type DownloadProgress struct {
	ResourceID int64   `json:"resource_id"`
	Progress   float64 `json:"progress"`
	Speed      float64 `json:"speed"`
	ETA        float64 `json:"eta"`
	Status     string  `json:"status"`
	Error      string  `json:"error,omitempty"`
}

// TrainingTask is a fine-tuning job
type TrainingTask struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	BaseModelID int64   `json:"base_model_id"`
	DatasetID   int64   `json:"dataset_id"`
	Status      string  `json:"status"`
	Progress    float64 `json:"progress"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// InferenceTask is a deployed model endpoint
type InferenceTask struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ModelID   int64  `json:"model_id"`
	Status    string `json:"status"`
	Port      int    `json:"port"`
	CreatedAt string `json:"created_at"`
}

// EvaluationTask is a benchmark run against a model
type EvaluationTask struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	ModelID       int64  `json:"model_id"`
	BenchmarkType string `json:"benchmark_type"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
}

// ChatMessage is a single turn in an inference chat session
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GPUStatus describes one GPU on the inference host
type GPUStatus struct {
	Index       int     `json:"index"`
	Name        string  `json:"name"`
	MemoryUsed  float64 `json:"memory_used"`
	MemoryTotal float64 `json:"memory_total"`
	Utilization float64 `json:"utilization"`
}

// HealthStatus is the anonymous server health-check response
type HealthStatus struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}
