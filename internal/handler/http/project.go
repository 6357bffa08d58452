package http

import (
	"net/http"

	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/project"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/handler/http/response"
)

type ProjectHandler interface {
	ListProjects(w http.ResponseWriter, r *http.Request)
	ListOverdue(w http.ResponseWriter, r *http.Request)
	GetProject(w http.ResponseWriter, r *http.Request)
	CreateProject(w http.ResponseWriter, r *http.Request)
	UpdateProject(w http.ResponseWriter, r *http.Request)
	DeleteProject(w http.ResponseWriter, r *http.Request)
	ValidateStep(w http.ResponseWriter, r *http.Request)
}

type projectHandlerImpl struct {
	projectService project.ProjectService
}

func NewProjectHandler(projectService project.ProjectService) ProjectHandler {
	return &projectHandlerImpl{projectService: projectService}
}

// ListProjects implements ProjectHandler
func (h *projectHandlerImpl) ListProjects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var f project.ListFilter
	details := map[string]string{}

	var err error
	if f.ClientID, err = optionalID(q, "client_id"); err != nil {
		details["client_id"] = "Must be a number"
	}
	if f.DepartmentID, err = optionalID(q, "department_id"); err != nil {
		details["department_id"] = "Must be a number"
	}
	if f.ChefID, err = optionalID(q, "chef_id"); err != nil {
		details["chef_id"] = "Must be a number"
	}
	if s := q.Get("status"); s != "" {
		status, ok := project.ParseStatus(s)
		if !ok {
			details["status"] = "Unknown project status"
		}
		f.Status = &status
	}
	f.Name = q.Get("name")

	if len(details) > 0 {
		response.BadRequest(w, "Invalid query parameters", details)
		return
	}

	projects, err := h.projectService.ListProjects(r.Context(), f)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, projects, &response.Meta{TotalItems: len(projects)})
}

// ListOverdue implements ProjectHandler
func (h *projectHandlerImpl) ListOverdue(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projectService.ListOverdue(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, projects, &response.Meta{TotalItems: len(projects)})
}

func (h *projectHandlerImpl) GetProject(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id", "Project")
	if !ok {
		return
	}
	result, err := h.projectService.GetProject(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *projectHandlerImpl) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req project.CreateProjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.projectService.CreateProject(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Project created successfully", result)
}

func (h *projectHandlerImpl) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id", "Project")
	if !ok {
		return
	}
	var req project.UpdateProjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.projectService.UpdateProject(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Project updated successfully", result)
}

func (h *projectHandlerImpl) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id", "Project")
	if !ok {
		return
	}
	if err := h.projectService.DeleteProject(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Project deleted successfully", nil)
}

func (h *projectHandlerImpl) ValidateStep(w http.ResponseWriter, r *http.Request) {
	step, ok := stepParam(w, r)
	if !ok {
		return
	}
	var req project.CreateProjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.projectService.ValidateStep(r.Context(), step, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
