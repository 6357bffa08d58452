package response

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/client"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/project"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/task"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/wizard"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError(t *testing.T) {
	var verrs validator.ValidationErrors
	verrs.Add("email", "Invalid email format")

	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		details map[string]string
	}{
		{"validation", verrs, http.StatusUnprocessableEntity, "VALIDATION_ERROR", map[string]string{"email": "Invalid email format"}},
		{"wrapped validation", fmt.Errorf("create: %w", verrs), http.StatusUnprocessableEntity, "VALIDATION_ERROR", nil},
		{"reference", project.ErrInvalidChef, http.StatusUnprocessableEntity, "VALIDATION_ERROR", map[string]string{"chefId": "Project lead does not exist"}},
		{"date range", project.ErrInvalidDateRange, http.StatusUnprocessableEntity, "VALIDATION_ERROR", map[string]string{"endDate": "End date must not be before start date"}},
		{"not found", task.ErrTaskNotFound, http.StatusNotFound, "NOT_FOUND", nil},
		{"wrapped not found", fmt.Errorf("get: %w", client.ErrClientNotFound), http.StatusNotFound, "NOT_FOUND", nil},
		{"step", wizard.ErrStepOutOfRange, http.StatusNotFound, "NOT_FOUND", nil},
		{"no data", report.ErrNoDataFound, http.StatusNotFound, "NOT_FOUND", nil},
		{"conflict", department.ErrDepartmentNameExists, http.StatusConflict, "CONFLICT", nil},
		{"in use", client.ErrClientInUse, http.StatusConflict, "CONFLICT", nil},
		{"bad query", dashboard.ErrInvalidDimension, http.StatusBadRequest, "BAD_REQUEST", nil},
		{"report", report.ErrReportGenerationFailed, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", nil},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			var body Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
			if tt.details != nil {
				assert.Equal(t, tt.details, body.Error.Details)
			}
		})
	}
}

func TestHandleError_HidesInternalMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, errors.New("pq: password authentication failed"))

	assert.NotContains(t, rec.Body.String(), "password")
}

func TestFile(t *testing.T) {
	rec := httptest.NewRecorder()
	File(rec, "report.xlsx", "application/octet-stream", []byte{1, 2, 3})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="report.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, []byte{1, 2, 3}, rec.Body.Bytes())
}
