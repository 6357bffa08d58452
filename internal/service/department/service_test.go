package department

import (
	"context"
	"strings"
	"testing"

	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDepartmentRepo struct {
	departments []department.Department
	inUse       map[int64]bool
}

func (r *fakeDepartmentRepo) List(ctx context.Context) ([]department.Department, error) {
	return r.departments, nil
}

func (r *fakeDepartmentRepo) ListWithManagers(ctx context.Context) ([]department.DepartmentWithManager, error) {
	out := make([]department.DepartmentWithManager, 0, len(r.departments))
	for _, d := range r.departments {
		out = append(out, department.DepartmentWithManager{ID: d.ID, DepartmentName: d.DepartmentName, ManagerID: d.ManagerID})
	}
	return out, nil
}

func (r *fakeDepartmentRepo) GetByID(ctx context.Context, id int64) (department.Department, error) {
	for _, d := range r.departments {
		if d.ID == id {
			return d, nil
		}
	}
	return department.Department{}, department.ErrDepartmentNotFound
}

func (r *fakeDepartmentRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	for _, d := range r.departments {
		if strings.EqualFold(d.DepartmentName, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeDepartmentRepo) Create(ctx context.Context, d department.Department) (department.Department, error) {
	d.ID = int64(len(r.departments) + 1)
	r.departments = append(r.departments, d)
	return d, nil
}

func (r *fakeDepartmentRepo) Update(ctx context.Context, d department.Department) (department.Department, error) {
	for i := range r.departments {
		if r.departments[i].ID == d.ID {
			r.departments[i] = d
			return d, nil
		}
	}
	return department.Department{}, department.ErrDepartmentNotFound
}

func (r *fakeDepartmentRepo) Delete(ctx context.Context, id int64) error {
	if r.inUse[id] {
		return department.ErrDepartmentInUse
	}
	for i, d := range r.departments {
		if d.ID == id {
			r.departments = append(r.departments[:i], r.departments[i+1:]...)
			return nil
		}
	}
	return department.ErrDepartmentNotFound
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
}

func (fakeEmployeeRepo) GetByID(ctx context.Context, id int64) (employee.Employee, error) {
	if id == 1 {
		return employee.Employee{ID: 1, FirstName: "Ada", LastName: "Lovelace"}, nil
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

type fakeInvalidator struct {
	collections []dashboard.Collection
}

func (f *fakeInvalidator) Invalidate(collections ...dashboard.Collection) {
	f.collections = append(f.collections, collections...)
}

func setup() (department.DepartmentService, *fakeDepartmentRepo, *fakeInvalidator) {
	repo := &fakeDepartmentRepo{
		departments: []department.Department{{ID: 1, DepartmentName: "Engineering"}},
		inUse:       map[int64]bool{},
	}
	inv := &fakeInvalidator{}
	return NewDepartmentService(repo, fakeEmployeeRepo{}, inv, nil), repo, inv
}

func TestCreateDepartment(t *testing.T) {
	svc, repo, inv := setup()

	created, err := svc.CreateDepartment(context.Background(), department.CreateDepartmentRequest{
		DepartmentName: " Sales ",
		Description:    "Revenue",
		ManagerID:      "1",
	})
	require.NoError(t, err)
	assert.Equal(t, "Sales", created.DepartmentName)
	require.NotNil(t, created.ManagerID)
	assert.Equal(t, int64(1), *created.ManagerID)
	assert.Len(t, repo.departments, 2)
	assert.Equal(t, []dashboard.Collection{dashboard.CollectionDepartments}, inv.collections)
}

func TestCreateDepartment_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     department.CreateDepartmentRequest
		wantErr error
	}{
		{"duplicate name", department.CreateDepartmentRequest{DepartmentName: "engineering"}, department.ErrDepartmentNameExists},
		{"unknown manager", department.CreateDepartmentRequest{DepartmentName: "Ops", ManagerID: "7"}, department.ErrInvalidManager},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, inv := setup()
			_, err := svc.CreateDepartment(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, inv.collections)
		})
	}

	svc, _, _ := setup()
	_, err := svc.CreateDepartment(context.Background(), department.CreateDepartmentRequest{ManagerID: "abc"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.True(t, verrs.Has("departmentName"))
	assert.True(t, verrs.Has("managerId"))
}

func TestDeleteDepartment(t *testing.T) {
	svc, repo, inv := setup()
	repo.inUse[1] = true

	assert.ErrorIs(t, svc.DeleteDepartment(context.Background(), 1), department.ErrDepartmentInUse)
	assert.Empty(t, inv.collections)

	repo.inUse[1] = false
	require.NoError(t, svc.DeleteDepartment(context.Background(), 1))
	assert.ElementsMatch(t, []dashboard.Collection{dashboard.CollectionDepartments, dashboard.CollectionEmployees}, inv.collections)

	assert.ErrorIs(t, svc.DeleteDepartment(context.Background(), 1), department.ErrDepartmentNotFound)
	_, err := svc.GetDepartment(context.Background(), 1)
	assert.ErrorIs(t, err, department.ErrDepartmentNotFound)
}

func strPtr(s string) *string { return &s }

func TestUpdateDepartment(t *testing.T) {
	svc, repo, inv := setup()
	_, err := svc.CreateDepartment(context.Background(), department.CreateDepartmentRequest{DepartmentName: "Sales", ManagerID: "1"})
	require.NoError(t, err)
	inv.collections = nil

	noManager := validator.FormValue("")
	updated, err := svc.UpdateDepartment(context.Background(), 2, department.UpdateDepartmentRequest{
		Description: strPtr("Revenue"),
		ManagerID:   &noManager,
	})
	require.NoError(t, err)
	assert.Equal(t, "Sales", updated.DepartmentName)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "Revenue", *updated.Description)
	assert.Nil(t, updated.ManagerID)
	assert.Equal(t, updated, repo.departments[1])
	assert.Equal(t, []dashboard.Collection{dashboard.CollectionDepartments}, inv.collections)

	// renaming to its own name in another case is not a conflict
	_, err = svc.UpdateDepartment(context.Background(), 2, department.UpdateDepartmentRequest{DepartmentName: strPtr("SALES")})
	require.NoError(t, err)
}

func TestUpdateDepartment_Errors(t *testing.T) {
	svc, repo, inv := setup()
	_, err := svc.CreateDepartment(context.Background(), department.CreateDepartmentRequest{DepartmentName: "Sales"})
	require.NoError(t, err)
	inv.collections = nil
	before := repo.departments[1]

	_, err = svc.UpdateDepartment(context.Background(), 2, department.UpdateDepartmentRequest{DepartmentName: strPtr("Engineering")})
	assert.ErrorIs(t, err, department.ErrDepartmentNameExists)

	unknown := validator.FormValue("7")
	_, err = svc.UpdateDepartment(context.Background(), 2, department.UpdateDepartmentRequest{ManagerID: &unknown})
	assert.ErrorIs(t, err, department.ErrInvalidManager)

	_, err = svc.UpdateDepartment(context.Background(), 2, department.UpdateDepartmentRequest{DepartmentName: strPtr(" ")})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.True(t, verrs.Has("departmentName"))

	_, err = svc.UpdateDepartment(context.Background(), 9, department.UpdateDepartmentRequest{})
	assert.ErrorIs(t, err, department.ErrDepartmentNotFound)

	assert.Equal(t, before, repo.departments[1])
	assert.Empty(t, inv.collections)
}
