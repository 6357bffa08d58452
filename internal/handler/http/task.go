package http

import (
	"net/http"

	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/task"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/handler/http/response"
)

type TaskHandler interface {
	ListTasks(w http.ResponseWriter, r *http.Request)
	ListOverdue(w http.ResponseWriter, r *http.Request)
	GetTask(w http.ResponseWriter, r *http.Request)
	CreateTask(w http.ResponseWriter, r *http.Request)
	CompleteTask(w http.ResponseWriter, r *http.Request)
	UpdateTask(w http.ResponseWriter, r *http.Request)
	DeleteTask(w http.ResponseWriter, r *http.Request)
}

type taskHandlerImpl struct {
	taskService task.TaskService
}

func NewTaskHandler(taskService task.TaskService) TaskHandler {
	return &taskHandlerImpl{taskService: taskService}
}

// ListTasks implements TaskHandler
func (h *taskHandlerImpl) ListTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var f task.ListFilter
	details := map[string]string{}

	var err error
	if f.EmployeeID, err = optionalID(q, "employee_id"); err != nil {
		details["employee_id"] = "Must be a number"
	}
	if f.ProjectID, err = optionalID(q, "project_id"); err != nil {
		details["project_id"] = "Must be a number"
	}
	if s := q.Get("status"); s != "" {
		status, ok := task.ParseStatus(s)
		if !ok {
			details["status"] = "Unknown task status"
		}
		f.Status = &status
	}
	if p := q.Get("priority"); p != "" {
		priority, ok := task.ParsePriority(p)
		if !ok {
			details["priority"] = "Unknown task priority"
		}
		f.Priority = &priority
	}
	f.Title = q.Get("title")

	if len(details) > 0 {
		response.BadRequest(w, "Invalid query parameters", details)
		return
	}

	tasks, err := h.taskService.ListTasks(r.Context(), f)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, tasks, &response.Meta{TotalItems: len(tasks)})
}

// ListOverdue implements TaskHandler
func (h *taskHandlerImpl) ListOverdue(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.ListOverdue(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, tasks, &response.Meta{TotalItems: len(tasks)})
}

func (h *taskHandlerImpl) GetTask(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id", "Task")
	if !ok {
		return
	}
	result, err := h.taskService.GetTask(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *taskHandlerImpl) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req task.CreateTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.taskService.CreateTask(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Task created successfully", result)
}

// CompleteTask implements TaskHandler
func (h *taskHandlerImpl) CompleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id", "Task")
	if !ok {
		return
	}
	result, err := h.taskService.CompleteTask(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Task completed", result)
}

func (h *taskHandlerImpl) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id", "Task")
	if !ok {
		return
	}
	var req task.UpdateTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.taskService.UpdateTask(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Task updated successfully", result)
}

func (h *taskHandlerImpl) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id", "Task")
	if !ok {
		return
	}
	if err := h.taskService.DeleteTask(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Task deleted successfully", nil)
}
