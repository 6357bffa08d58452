package datetime

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		input string
		want  time.Time
	}{
		{"2024-01-15", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"2024-01-15T10:30:00", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{"2024-01-15T10:30:00.123", time.Date(2024, 1, 15, 10, 30, 0, 123000000, time.UTC)},
		{"2024-01-15T10:30:00Z", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		got, err := Parse(c.input)
		require.NoError(t, err, c.input)
		assert.True(t, c.want.Equal(got.Time), "Parse(%q) = %v, want %v", c.input, got.Time, c.want)
	}

	_, err := Parse("15/01/2024")
	assert.Error(t, err)
}

func TestTime_JSON(t *testing.T) {
	type payload struct {
		Date     Time  `json:"date"`
		Stamp    Time  `json:"stamp"`
		Optional *Time `json:"optional"`
	}

	in := payload{
		Date:  New(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)),
		Stamp: New(time.Date(2024, 3, 1, 8, 5, 9, 0, time.UTC)),
	}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-03-01","stamp":"2024-03-01T08:05:09","optional":null}`, string(data))

	var out payload
	require.NoError(t, json.Unmarshal(data, &out))
	assert.True(t, in.Date.Equal(out.Date.Time))
	assert.True(t, in.Stamp.Equal(out.Stamp.Time))
	assert.Nil(t, out.Optional)
}

func TestMonthStart(t *testing.T) {
	got := MonthStart(time.Date(2026, 10, 16, 13, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), got)
}
