package models

// AnalysisTask records one import or estimation run
type AnalysisTask struct {
	ID       string `json:"id" db:"id"` // uuid
	TaskType string `json:"taskType" db:"task_type"`

	Status          string `json:"status" db:"status"`
	ProgressPercent int    `json:"progressPercent" db:"progress_percent"`

	ParamsJSON    string `json:"paramsJson,omitempty" db:"params_json"`
	ResultSummary string `json:"resultSummary,omitempty" db:"result_summary"`
	ErrorMessage  string `json:"errorMessage,omitempty" db:"error_message"`

	CreatedAt string `json:"createdAt" db:"created_at"`
	UpdatedAt string `json:"updatedAt" db:"updated_at"`
}

// TaskType constants
const (
	TaskTypeImport    = "import"
	TaskTypeHomeRange = "homerange"
	TaskTypeFractal   = "fractal"
	TaskTypeMap       = "map"
)

// TaskStatus constants
const (
	TaskStatusPending   = "pending"
	TaskStatusRunning   = "running"
	TaskStatusCompleted = "completed"
	TaskStatusFailed    = "failed"
)
