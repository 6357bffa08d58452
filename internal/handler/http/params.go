package http

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/aggregate"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/filter"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
)

// idParam reads a positive int64 URL parameter, answering 400 when it is missing or malformed.
func idParam(w http.ResponseWriter, r *http.Request, name, label string) (int64, bool) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		response.BadRequest(w, label+" ID is required", nil)
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(w, "Invalid "+label+" ID", nil)
		return 0, false
	}
	return id, true
}

func stepParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	step, err := strconv.Atoi(chi.URLParam(r, "step"))
	if err != nil {
		response.BadRequest(w, "Invalid wizard step", nil)
		return 0, false
	}
	return step, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

// optionalID parses an optional numeric query parameter.
func optionalID(q url.Values, key string) (*int64, error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseSelection(q url.Values) (filter.Selection, map[string]string) {
	var sel filter.Selection
	details := map[string]string{}

	employeeIDs, err := filter.ParseIDs(q.Get("employee_ids"))
	if err != nil {
		details["employee_ids"] = "Must be a comma-separated list of IDs"
	}
	departmentIDs, err := filter.ParseIDs(q.Get("department_ids"))
	if err != nil {
		details["department_ids"] = "Must be a comma-separated list of IDs"
	}
	sel.EmployeeIDs = employeeIDs
	sel.DepartmentIDs = departmentIDs
	sel.Statuses = filter.ParseList(q.Get("status"))

	if len(details) > 0 {
		return sel, details
	}
	return sel, nil
}

// parseQuery reads the analytics filters. Range checks on months, weighting and limit belong
// to the dashboard service.
func parseQuery(w http.ResponseWriter, r *http.Request) (dashboard.Query, bool) {
	q := r.URL.Query()
	sel, details := parseSelection(q)
	if details == nil {
		details = map[string]string{}
	}

	query := dashboard.Query{
		Selection: sel,
		Weighting: aggregate.Weighting(q.Get("weighting")),
	}
	if m := q.Get("months"); m != "" {
		months, err := strconv.Atoi(m)
		if err != nil {
			details["months"] = "Must be a number"
		}
		query.Months = months
	}
	if l := q.Get("limit"); l != "" {
		limit, err := strconv.Atoi(l)
		if err != nil {
			details["limit"] = "Must be a number"
		}
		query.Limit = limit
	}

	if len(details) > 0 {
		response.BadRequest(w, "Invalid query parameters", details)
		return query, false
	}
	return query, true
}
