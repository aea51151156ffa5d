package date

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
	// tests also checks that the property remain true
	assert.Equal(t, d1.time(), d2.time(), "same day gives two different time")
}

func TestEndOfPreviousMonth(t *testing.T) {
	tests := []struct {
		on   Date
		want Date
	}{
		{New(2025, time.March, 15), New(2025, time.February, 28)},
		{New(2024, time.March, 1), New(2024, time.February, 29)},
		{New(2025, time.January, 31), New(2024, time.December, 31)},
		{New(2025, time.October, 1), New(2025, time.September, 30)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.on.EndOfPreviousMonth(), "EndOfPreviousMonth(%s)", tt.on)
	}
}

func TestFormats(t *testing.T) {
	d := New(2025, time.July, 4)
	assert.Equal(t, "2025-07-04", d.String())
	assert.Equal(t, "07/04/2025", d.US())
}

func TestParse(t *testing.T) {
	d, err := Parse("2025-7-1")
	require.NoError(t, err)
	assert.Equal(t, New(2025, time.July, 1), d)

	_, err = Parse("07/01/2025")
	assert.Error(t, err)

	assert.Panics(t, func() { MustParse("nope") })
}

func TestJSON(t *testing.T) {
	d := New(2025, time.February, 28)
	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `"2025-02-28"`, string(data))

	var got Date
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, d, got)
}
