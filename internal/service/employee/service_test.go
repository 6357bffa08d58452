package employee

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/contract"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/filter"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeRepo struct {
	employees map[int64]employee.Employee
	nextID    int64
}

func (r *fakeEmployeeRepo) List(ctx context.Context) ([]employee.Employee, error) {
	out := make([]employee.Employee, 0, len(r.employees))
	for id := int64(1); id <= r.nextID; id++ {
		if e, ok := r.employees[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEmployeeRepo) GetByID(ctx context.Context, id int64) (employee.Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *fakeEmployeeRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	for _, e := range r.employees {
		if e.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	r.nextID++
	e.ID = r.nextID
	r.employees[e.ID] = e
	return e, nil
}

func (r *fakeEmployeeRepo) Update(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	if _, ok := r.employees[e.ID]; !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	r.employees[e.ID] = e
	return e, nil
}

func (r *fakeEmployeeRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.employees[id]; !ok {
		return employee.ErrEmployeeNotFound
	}
	delete(r.employees, id)
	return nil
}

type fakeContractRepo struct {
	contract.ContractRepository
	contracts []contract.Contract
	err       error
}

func (r *fakeContractRepo) Create(ctx context.Context, c contract.Contract) (contract.Contract, error) {
	if r.err != nil {
		return contract.Contract{}, r.err
	}
	c.ID = int64(len(r.contracts) + 1)
	r.contracts = append(r.contracts, c)
	return c, nil
}

func (r *fakeContractRepo) ListByEmployeeID(ctx context.Context, employeeID int64) ([]contract.Contract, error) {
	var out []contract.Contract
	for _, c := range r.contracts {
		if c.EmployeeID == employeeID {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeDepartmentRepo struct {
	department.DepartmentRepository
	departments map[int64]department.Department
}

func (r *fakeDepartmentRepo) List(ctx context.Context) ([]department.Department, error) {
	var out []department.Department
	for _, id := range []int64{10, 20} {
		if d, ok := r.departments[id]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeDepartmentRepo) GetByID(ctx context.Context, id int64) (department.Department, error) {
	d, ok := r.departments[id]
	if !ok {
		return department.Department{}, department.ErrDepartmentNotFound
	}
	return d, nil
}

type fakeInvalidator struct {
	collections []dashboard.Collection
}

func (f *fakeInvalidator) Invalidate(collections ...dashboard.Collection) {
	f.collections = append(f.collections, collections...)
}

type testDeps struct {
	employees   *fakeEmployeeRepo
	contracts   *fakeContractRepo
	invalidator *fakeInvalidator
	commits     int
	rollbacks   int
}

func id(v int64) *int64 { return &v }

func setup() (*EmployeeServiceImpl, *testDeps) {
	deps := &testDeps{
		employees: &fakeEmployeeRepo{
			employees: map[int64]employee.Employee{
				1: {ID: 1, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", DepartmentID: id(10), Status: employee.StatusActive},
				2: {ID: 2, FirstName: "Alan", LastName: "Turing", Email: "alan@example.com", DepartmentID: id(20), ManagerID: id(1), Status: employee.StatusOnLeave},
			},
			nextID: 2,
		},
		contracts:   &fakeContractRepo{},
		invalidator: &fakeInvalidator{},
	}
	departments := &fakeDepartmentRepo{departments: map[int64]department.Department{
		10: {ID: 10, DepartmentName: "Engineering", ManagerID: id(1)},
		20: {ID: 20, DepartmentName: "Sales"},
	}}
	withTx := func(ctx context.Context, fn func(txCtx context.Context) error) error {
		if err := fn(ctx); err != nil {
			deps.rollbacks++
			return err
		}
		deps.commits++
		return nil
	}
	svc := newEmployeeService(withTx, deps.employees, deps.contracts, departments, deps.invalidator, nil)
	return svc, deps
}

func validRequest() employee.CreateEmployeeRequest {
	return employee.CreateEmployeeRequest{
		FirstName:         "Grace",
		LastName:          "Hopper",
		Email:             "Grace@Example.com",
		HireDate:          "2024-02-01",
		JobTitle:          "Engineer",
		Age:               "35",
		Sexe:              "F",
		DepartmentID:      "10",
		ContractType:      "CDD",
		WorkHours:         "35",
		Salary:            "4200.50",
		ContractStartDate: "2024-02-01",
		ContractEndDate:   "2025-01-31",
	}
}

func TestCreateEmployee_StoresEmployeeAndContract(t *testing.T) {
	svc, deps := setup()

	resp, err := svc.CreateEmployee(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(3), resp.Employee.ID)
	assert.Equal(t, "grace@example.com", resp.Employee.Email)
	require.NotNil(t, resp.Employee.ManagerID)
	// defaults to the department head
	assert.Equal(t, int64(1), *resp.Employee.ManagerID)

	assert.Equal(t, int64(3), resp.Contract.EmployeeID)
	assert.Equal(t, contract.TypeCDD, resp.Contract.ContractType)
	assert.Equal(t, "4200.5", resp.Contract.Salary.String())
	require.NotNil(t, resp.Contract.EndDate)
	assert.Equal(t, "2025-01-31", resp.Contract.EndDate.String())

	assert.Equal(t, 1, deps.commits)
	assert.Equal(t, []dashboard.Collection{dashboard.CollectionEmployees}, deps.invalidator.collections)
}

func TestCreateEmployee_MissingLastNameBlocksThenPasses(t *testing.T) {
	svc, _ := setup()
	req := validRequest()
	req.LastName = "  "

	result, err := svc.ValidateStep(context.Background(), 0, req)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "lastName")
	assert.Nil(t, result.NextStep)

	_, err = svc.CreateEmployee(context.Background(), req)
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.True(t, verrs.Has("lastName"))

	req.LastName = "Hopper"
	result, err = svc.ValidateStep(context.Background(), 0, req)
	require.NoError(t, err)
	assert.True(t, result.Valid)
	require.NotNil(t, result.NextStep)
	assert.Equal(t, 1, *result.NextStep)
}

func TestCreateEmployee_StopsAtFirstFailingStep(t *testing.T) {
	svc, deps := setup()
	req := validRequest()
	req.JobTitle = ""
	req.Salary = "-1"

	_, err := svc.CreateEmployee(context.Background(), req)
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.True(t, verrs.Has("jobTitle"))
	assert.False(t, verrs.Has("salary"), "contract step is not reached")

	req.JobTitle = "Engineer"
	_, err = svc.CreateEmployee(context.Background(), req)
	require.ErrorAs(t, err, &verrs)
	assert.True(t, verrs.Has("salary"))
	assert.False(t, verrs.Has("jobTitle"))

	assert.Len(t, deps.employees.employees, 2)
	assert.Zero(t, deps.commits)
}

func TestValidateStep_LastStepSubmits(t *testing.T) {
	svc, _ := setup()

	result, err := svc.ValidateStep(context.Background(), 2, validRequest())
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.True(t, result.Submit)
	assert.Equal(t, "Contract Terms", result.StepName)

	_, err = svc.ValidateStep(context.Background(), 3, validRequest())
	assert.ErrorIs(t, err, wizard.ErrStepOutOfRange)
}

func TestCreateEmployee_Conflicts(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*employee.CreateEmployeeRequest)
		wantErr error
	}{
		{"duplicate email", func(r *employee.CreateEmployeeRequest) { r.Email = "ADA@example.com" }, employee.ErrEmailExists},
		{"unknown department", func(r *employee.CreateEmployeeRequest) { r.DepartmentID = "99" }, employee.ErrInvalidDepartment},
		{"unknown manager", func(r *employee.CreateEmployeeRequest) { r.ManagerID = "99" }, employee.ErrInvalidManager},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, deps := setup()
			req := validRequest()
			tt.modify(&req)

			_, err := svc.CreateEmployee(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, deps.contracts.contracts)
			assert.Empty(t, deps.invalidator.collections)
		})
	}
}

func TestCreateEmployee_DepartmentRequiredUnlessSkipped(t *testing.T) {
	svc, _ := setup()
	req := validRequest()
	req.DepartmentID = ""
	req.ManagerID = "2"

	// a manager does not stand in for the department
	_, err := svc.CreateEmployee(context.Background(), req)
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.True(t, verrs.Has("departmentId"))

	req.SkipDepartment = true
	resp, err := svc.CreateEmployee(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, resp.Employee.DepartmentID)
	require.NotNil(t, resp.Employee.ManagerID)
	assert.Equal(t, int64(2), *resp.Employee.ManagerID)
}

func TestCreateEmployee_ContractFailureRollsBack(t *testing.T) {
	svc, deps := setup()
	deps.contracts.err = errors.New("insert failed")

	_, err := svc.CreateEmployee(context.Background(), validRequest())
	assert.ErrorContains(t, err, "failed to create contract")
	assert.Equal(t, 1, deps.rollbacks)
	assert.Zero(t, deps.commits)
	assert.Empty(t, deps.invalidator.collections)
}

func TestListEmployees_FiltersAndNames(t *testing.T) {
	svc, _ := setup()

	all, err := svc.ListEmployees(context.Background(), filter.Selection{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Ada Lovelace", all[0].FullName)
	require.NotNil(t, all[1].ManagerName)
	assert.Equal(t, "Ada Lovelace", *all[1].ManagerName)
	require.NotNil(t, all[1].DepartmentName)
	assert.Equal(t, "Sales", *all[1].DepartmentName)

	onLeave, err := svc.ListEmployees(context.Background(), filter.Selection{Statuses: []string{"On Leave"}})
	require.NoError(t, err)
	require.Len(t, onLeave, 1)
	assert.Equal(t, int64(2), onLeave[0].ID)

	engineering, err := svc.ListEmployees(context.Background(), filter.Selection{DepartmentIDs: []int64{10}})
	require.NoError(t, err)
	require.Len(t, engineering, 1)
	assert.Equal(t, int64(1), engineering[0].ID)
}

func TestGetEmployee(t *testing.T) {
	svc, _ := setup()

	resp, err := svc.GetEmployee(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Alan Turing", resp.FullName)
	require.NotNil(t, resp.ManagerName)
	assert.Equal(t, "Ada Lovelace", *resp.ManagerName)

	_, err = svc.GetEmployee(context.Background(), 42)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestDeleteEmployee(t *testing.T) {
	svc, deps := setup()

	require.NoError(t, svc.DeleteEmployee(context.Background(), 2))
	assert.Contains(t, deps.invalidator.collections, dashboard.CollectionEmployees)
	assert.Contains(t, deps.invalidator.collections, dashboard.CollectionTasks)

	assert.ErrorIs(t, svc.DeleteEmployee(context.Background(), 2), employee.ErrEmployeeNotFound)
}

func TestListContracts(t *testing.T) {
	svc, _ := setup()

	created, err := svc.CreateEmployee(context.Background(), validRequest())
	require.NoError(t, err)

	contracts, err := svc.ListContracts(context.Background(), created.Employee.ID)
	require.NoError(t, err)
	require.Len(t, contracts, 1)
	assert.Equal(t, created.Contract.ID, contracts[0].ID)

	_, err = svc.ListContracts(context.Background(), 99)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func strPtr(s string) *string { return &s }

func formPtr(s string) *validator.FormValue {
	v := validator.FormValue(s)
	return &v
}

func TestUpdateEmployee_MergesSentFields(t *testing.T) {
	svc, deps := setup()
	created, err := svc.CreateEmployee(context.Background(), validRequest())
	require.NoError(t, err)
	deps.invalidator.collections = nil

	resp, err := svc.UpdateEmployee(context.Background(), created.Employee.ID, employee.UpdateEmployeeRequest{
		JobTitle:     strPtr("Rear Admiral"),
		DepartmentID: formPtr("20"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Rear Admiral", resp.JobTitle)
	assert.Equal(t, "grace@example.com", resp.Email)
	require.NotNil(t, resp.DepartmentName)
	assert.Equal(t, "Sales", *resp.DepartmentName)
	// the manager picked at creation is kept, not re-defaulted
	require.NotNil(t, resp.ManagerID)
	assert.Equal(t, int64(1), *resp.ManagerID)
	assert.Equal(t, []dashboard.Collection{dashboard.CollectionEmployees}, deps.invalidator.collections)
	assert.Len(t, deps.contracts.contracts, 1)
}

func TestUpdateEmployee_RerunsProfileRules(t *testing.T) {
	svc, deps := setup()
	created, err := svc.CreateEmployee(context.Background(), validRequest())
	require.NoError(t, err)
	deps.invalidator.collections = nil

	_, err = svc.UpdateEmployee(context.Background(), created.Employee.ID, employee.UpdateEmployeeRequest{
		Age: formPtr("12"),
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.True(t, verrs.Has("age"))

	// clearing the department counts as skipping the step
	resp, err := svc.UpdateEmployee(context.Background(), created.Employee.ID, employee.UpdateEmployeeRequest{
		DepartmentID: formPtr(""),
	})
	require.NoError(t, err)
	assert.Nil(t, resp.DepartmentID)
	assert.Equal(t, 35, *deps.employees.employees[created.Employee.ID].Age)
}

func TestUpdateEmployee_Conflicts(t *testing.T) {
	tests := []struct {
		name    string
		req     employee.UpdateEmployeeRequest
		wantErr error
	}{
		{"email taken", employee.UpdateEmployeeRequest{Email: strPtr("alan@example.com")}, employee.ErrEmailExists},
		{"self manager", employee.UpdateEmployeeRequest{ManagerID: formPtr("3")}, employee.ErrSelfManager},
		{"unknown manager", employee.UpdateEmployeeRequest{ManagerID: formPtr("99")}, employee.ErrInvalidManager},
		{"unknown department", employee.UpdateEmployeeRequest{DepartmentID: formPtr("99")}, employee.ErrInvalidDepartment},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, deps := setup()
			created, err := svc.CreateEmployee(context.Background(), validRequest())
			require.NoError(t, err)
			deps.invalidator.collections = nil

			_, err = svc.UpdateEmployee(context.Background(), created.Employee.ID, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, created.Employee, deps.employees.employees[created.Employee.ID])
			assert.Empty(t, deps.invalidator.collections)
		})
	}
}

func TestUpdateEmployee_KeepsOwnEmail(t *testing.T) {
	svc, _ := setup()
	created, err := svc.CreateEmployee(context.Background(), validRequest())
	require.NoError(t, err)

	resp, err := svc.UpdateEmployee(context.Background(), created.Employee.ID, employee.UpdateEmployeeRequest{
		Email: strPtr("GRACE@example.com"),
	})
	require.NoError(t, err)
	assert.Equal(t, "grace@example.com", resp.Email)

	_, err = svc.UpdateEmployee(context.Background(), 99, employee.UpdateEmployeeRequest{})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
