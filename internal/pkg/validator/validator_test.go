package validator

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"\t\n", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.co"}
	invalid := []string{"not-an-email", "test@", "@example.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", ""}
	for _, s := range valid {
		_, ok := IsValidDate(s)
		if !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		_, ok := IsValidDate(s)
		if ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "invalid"},
		{Field: "age", Message: "required"},
	}
	assert.Equal(t, "email: invalid; age: required", errs.Error())
}

func TestValidationErrors_ToMapKeepsFirstMessage(t *testing.T) {
	var errs ValidationErrors
	errs.Add("email", "email is required")
	errs.Add("email", "invalid email format")
	errs.Add("age", "age is required")

	m := errs.ToMap()
	assert.Len(t, m, 2)
	assert.Equal(t, "email is required", m["email"])
	assert.True(t, errs.Has("age"))
	assert.False(t, errs.Has("salary"))
}

func TestValidationErrors_Err(t *testing.T) {
	var errs ValidationErrors
	assert.NoError(t, errs.Err())

	errs.Add("name", "name is required")
	assert.Error(t, errs.Err())
}

func TestFormValue_UnmarshalJSON(t *testing.T) {
	var payload struct {
		Age    FormValue `json:"age"`
		Salary FormValue `json:"salary"`
		Empty  FormValue `json:"empty"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"age":42,"salary":"2500.50","empty":null}`), &payload))

	age, ok := payload.Age.Int()
	assert.True(t, ok)
	assert.Equal(t, 42, age)

	salary, ok := payload.Salary.Decimal()
	assert.True(t, ok)
	assert.Equal(t, "2500.5", salary.String())

	assert.True(t, payload.Empty.IsEmpty())
}

func TestFormValue_Parsing(t *testing.T) {
	_, ok := FormValue("17.5").Int()
	assert.False(t, ok)

	_, ok = FormValue("abc").Decimal()
	assert.False(t, ok)

	_, ok = FormValue("0").ID()
	assert.False(t, ok)

	id, ok := FormValue(" 12 ").ID()
	assert.True(t, ok)
	assert.Equal(t, int64(12), id)
}

func TestValidationErrors_Rename(t *testing.T) {
	var errs ValidationErrors
	errs.Add("startDate", "Start date is required")
	errs.Add("salary", "Salary is required")

	renamed := errs.Rename(map[string]string{"startDate": "contractStartDate"})

	assert.Equal(t, map[string]string{
		"contractStartDate": "Start date is required",
		"salary":            "Salary is required",
	}, renamed.ToMap())
	assert.Equal(t, "startDate", errs[0].Field)
}

func TestFormValue_FromStoredValues(t *testing.T) {
	id := int64(7)
	n := 40
	assert.Equal(t, FormValue("7"), IDValue(&id))
	assert.Equal(t, FormValue(""), IDValue(nil))
	assert.Equal(t, FormValue("40"), IntValue(&n))
	assert.Equal(t, FormValue(""), IntValue(nil))
}

func TestOverlay(t *testing.T) {
	name := "Old"
	Overlay(&name, nil)
	assert.Equal(t, "Old", name)

	sent := "New"
	Overlay(&name, &sent)
	assert.Equal(t, "New", name)
}
