package project

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/project"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProjectRepo struct {
	projects    []project.Project
	createErr   error
	updateErr   error
	overdueDate time.Time
	lastFilter  project.ListFilter
}

func (r *fakeProjectRepo) List(ctx context.Context, filter project.ListFilter) ([]project.Project, error) {
	r.lastFilter = filter
	return r.projects, nil
}

func (r *fakeProjectRepo) ListOverdue(ctx context.Context, today time.Time) ([]project.Project, error) {
	r.overdueDate = today
	var out []project.Project
	for _, p := range r.projects {
		if p.IsOverdue(today) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProjectRepo) GetByID(ctx context.Context, id int64) (project.Project, error) {
	for _, p := range r.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return project.Project{}, project.ErrProjectNotFound
}

func (r *fakeProjectRepo) Create(ctx context.Context, p project.Project) (project.Project, error) {
	if r.createErr != nil {
		return project.Project{}, r.createErr
	}
	p.ID = int64(len(r.projects) + 1)
	r.projects = append(r.projects, p)
	return p, nil
}

func (r *fakeProjectRepo) Update(ctx context.Context, p project.Project) (project.Project, error) {
	if r.updateErr != nil {
		return project.Project{}, r.updateErr
	}
	for i := range r.projects {
		if r.projects[i].ID == p.ID {
			r.projects[i] = p
			return p, nil
		}
	}
	return project.Project{}, project.ErrProjectNotFound
}

func (r *fakeProjectRepo) Delete(ctx context.Context, id int64) error {
	for i, p := range r.projects {
		if p.ID == id {
			r.projects = append(r.projects[:i], r.projects[i+1:]...)
			return nil
		}
	}
	return project.ErrProjectNotFound
}

type fakeInvalidator struct {
	collections []dashboard.Collection
}

func (f *fakeInvalidator) Invalidate(collections ...dashboard.Collection) {
	f.collections = append(f.collections, collections...)
}

var now = time.Date(2025, time.June, 15, 18, 30, 0, 0, time.UTC)

func setup() (project.ProjectService, *fakeProjectRepo, *fakeInvalidator) {
	repo := &fakeProjectRepo{}
	inv := &fakeInvalidator{}
	return NewProjectService(repo, inv, func() time.Time { return now }, nil), repo, inv
}

func validRequest() project.CreateProjectRequest {
	return project.CreateProjectRequest{
		ProjectName:  "Portal",
		ClientID:     "1",
		DepartmentID: "2",
		ChefID:       "3",
		ProjectType:  "fixed",
		StartDate:    "2025-01-01",
		EndDate:      "2025-12-31",
		DueAt:        "2025-06-01",
	}
}

func TestCreateProject(t *testing.T) {
	svc, repo, inv := setup()

	created, err := svc.CreateProject(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, project.StatusPending, created.Status)
	assert.Equal(t, int64(3), created.ChefID)
	require.NotNil(t, created.EndDate)
	assert.Len(t, repo.projects, 1)
	assert.Equal(t, []dashboard.Collection{dashboard.CollectionProjects}, inv.collections)
}

func TestCreateProject_EndDateBeforeStart(t *testing.T) {
	svc, repo, _ := setup()
	req := validRequest()
	req.EndDate = "2024-12-31"

	_, err := svc.CreateProject(context.Background(), req)
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.True(t, verrs.Has("endDate"))
	assert.Empty(t, repo.projects)

	// ongoing projects ignore the end date entirely
	req.ProjectType = "ongoing"
	created, err := svc.CreateProject(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, created.EndDate)
}

func TestCreateProject_UnknownReferences(t *testing.T) {
	for _, want := range []error{project.ErrInvalidClient, project.ErrInvalidDepartment, project.ErrInvalidChef} {
		svc, repo, inv := setup()
		repo.createErr = want

		_, err := svc.CreateProject(context.Background(), validRequest())
		assert.ErrorIs(t, err, want)
		assert.Empty(t, inv.collections)
	}
}

func TestListOverdue_UsesToday(t *testing.T) {
	svc, repo, _ := setup()
	due := validRequest()
	_, err := svc.CreateProject(context.Background(), due)
	require.NoError(t, err)

	done := validRequest()
	done.Status = string(project.StatusCompleted)
	_, err = svc.CreateProject(context.Background(), done)
	require.NoError(t, err)

	overdue, err := svc.ListOverdue(context.Background())
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, int64(1), overdue[0].ID)
	assert.Equal(t, time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC), repo.overdueDate)
}

func TestDeleteProject(t *testing.T) {
	svc, _, inv := setup()
	_, err := svc.CreateProject(context.Background(), validRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProject(context.Background(), 1))
	assert.Contains(t, inv.collections, dashboard.CollectionTasks)
	assert.ErrorIs(t, svc.DeleteProject(context.Background(), 1), project.ErrProjectNotFound)
}

func TestValidateStep(t *testing.T) {
	svc, _, _ := setup()
	req := validRequest()
	req.ChefID = "x"

	result, err := svc.ValidateStep(context.Background(), 0, req)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "chefId")

	result, err = svc.ValidateStep(context.Background(), 1, req)
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.True(t, result.Submit)
}

func strPtr(s string) *string { return &s }

func TestUpdateProject(t *testing.T) {
	svc, repo, inv := setup()
	_, err := svc.CreateProject(context.Background(), validRequest())
	require.NoError(t, err)
	inv.collections = nil

	updated, err := svc.UpdateProject(context.Background(), 1, project.UpdateProjectRequest{
		Status: strPtr(string(project.StatusInProgress)),
	})
	require.NoError(t, err)
	assert.Equal(t, project.StatusInProgress, updated.Status)
	assert.Equal(t, "Portal", updated.ProjectName)
	require.NotNil(t, updated.EndDate)
	assert.Equal(t, "2025-12-31", updated.EndDate.String())
	require.NotNil(t, updated.DueAt)
	assert.Equal(t, "2025-06-01", updated.DueAt.String())
	assert.Equal(t, updated, repo.projects[0])
	assert.Equal(t, []dashboard.Collection{dashboard.CollectionProjects}, inv.collections)

	ongoing, err := svc.UpdateProject(context.Background(), 1, project.UpdateProjectRequest{ProjectType: strPtr("ongoing")})
	require.NoError(t, err)
	assert.Nil(t, ongoing.EndDate)
}

func TestUpdateProject_Errors(t *testing.T) {
	svc, repo, inv := setup()
	_, err := svc.CreateProject(context.Background(), validRequest())
	require.NoError(t, err)
	inv.collections = nil
	before := repo.projects[0]

	_, err = svc.UpdateProject(context.Background(), 1, project.UpdateProjectRequest{StartDate: strPtr("2026-01-01")})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.True(t, verrs.Has("endDate"))

	_, err = svc.UpdateProject(context.Background(), 1, project.UpdateProjectRequest{Status: strPtr("Archived")})
	require.ErrorAs(t, err, &verrs)
	assert.True(t, verrs.Has("status"))

	repo.updateErr = project.ErrInvalidChef
	_, err = svc.UpdateProject(context.Background(), 1, project.UpdateProjectRequest{})
	assert.ErrorIs(t, err, project.ErrInvalidChef)
	repo.updateErr = nil

	_, err = svc.UpdateProject(context.Background(), 9, project.UpdateProjectRequest{})
	assert.ErrorIs(t, err, project.ErrProjectNotFound)

	assert.Equal(t, before, repo.projects[0])
	assert.Empty(t, inv.collections)
}
