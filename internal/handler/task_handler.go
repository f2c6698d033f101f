package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/movetrace/homerange-backend-go/internal/repository"
	"github.com/movetrace/homerange-backend-go/pkg/response"
)

// TaskHandler handles HTTP requests for analysis tasks
type TaskHandler struct {
	taskRepo *repository.TaskRepository
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskRepo *repository.TaskRepository) *TaskHandler {
	return &TaskHandler{taskRepo: taskRepo}
}

// GetTask handles GET /api/v1/tasks/:id
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, err := h.taskRepo.Get(c.Param("id"))
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	if task == nil {
		response.NotFound(c, "Task not found")
		return
	}

	response.Success(c, task)
}

// ListTasks handles GET /api/v1/tasks
func (h *TaskHandler) ListTasks(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil {
		response.BadRequest(c, "Invalid limit parameter")
		return
	}

	tasks, err := h.taskRepo.List(limit)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"data":  tasks,
		"count": len(tasks),
	})
}
