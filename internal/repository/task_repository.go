package repository

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/movetrace/homerange-backend-go/internal/models"
)

// TaskRepository handles database operations for analysis tasks
type TaskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create records a new pending task and returns its id
func (r *TaskRepository) Create(taskType, paramsJSON string) (string, error) {
	id := uuid.NewString()
	_, err := r.db.Exec(`
		INSERT INTO analysis_tasks (id, task_type, status, params_json)
		VALUES (?, ?, ?, ?)
	`, id, taskType, models.TaskStatusPending, paramsJSON)
	if err != nil {
		return "", fmt.Errorf("failed to create task: %w", err)
	}
	return id, nil
}

// MarkRunning marks a task as running
func (r *TaskRepository) MarkRunning(id string) error {
	return r.setStatus(id, models.TaskStatusRunning, 0, "", "")
}

// MarkCompleted marks a task as completed with a result summary
func (r *TaskRepository) MarkCompleted(id, resultSummary string) error {
	return r.setStatus(id, models.TaskStatusCompleted, 100, resultSummary, "")
}

// MarkFailed marks a task as failed with an error message
func (r *TaskRepository) MarkFailed(id, errorMessage string) error {
	return r.setStatus(id, models.TaskStatusFailed, 0, "", errorMessage)
}

func (r *TaskRepository) setStatus(id, status string, progress int, summary, errMsg string) error {
	_, err := r.db.Exec(`
		UPDATE analysis_tasks
		SET status = ?,
		    progress_percent = ?,
		    result_summary = CASE WHEN ? != '' THEN ? ELSE result_summary END,
		    error_message = ?,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, status, progress, summary, summary, errMsg, id)
	if err != nil {
		return fmt.Errorf("failed to update task %s: %w", id, err)
	}
	return nil
}

// Get returns one task by id, or nil when missing
func (r *TaskRepository) Get(id string) (*models.AnalysisTask, error) {
	row := r.db.QueryRow(`
		SELECT id, task_type, status, progress_percent, params_json, result_summary, error_message, created_at, updated_at
		FROM analysis_tasks WHERE id = ?
	`, id)

	var t models.AnalysisTask
	err := row.Scan(&t.ID, &t.TaskType, &t.Status, &t.ProgressPercent,
		&t.ParamsJSON, &t.ResultSummary, &t.ErrorMessage, &t.CreatedAt, &t.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task %s: %w", id, err)
	}
	return &t, nil
}

// List returns the most recent tasks
func (r *TaskRepository) List(limit int) ([]models.AnalysisTask, error) {
	if limit < 1 {
		limit = 50
	}

	rows, err := r.db.Query(`
		SELECT id, task_type, status, progress_percent, params_json, result_summary, error_message, created_at, updated_at
		FROM analysis_tasks ORDER BY created_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.AnalysisTask
	for rows.Next() {
		var t models.AnalysisTask
		if err := rows.Scan(&t.ID, &t.TaskType, &t.Status, &t.ProgressPercent,
			&t.ParamsJSON, &t.ResultSummary, &t.ErrorMessage, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}
