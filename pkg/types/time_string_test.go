package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_Validate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid morning", input: "09:00"},
		{name: "valid evening", input: "23:59"},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "garbage", input: "nine", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTimeString_Sub(t *testing.T) {
	d, err := TimeString("15:00").Sub("09:00")
	require.NoError(t, err)
	assert.Equal(t, 6*time.Hour, d)

	d, err = TimeString("09:00").Sub("12:30")
	require.NoError(t, err)
	assert.Equal(t, -210*time.Minute, d)
}

func TestTimeString_AddMinutes(t *testing.T) {
	next, err := TimeString("10:45").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:15"), next)

	_, err = TimeString("23:30").AddMinutes(60)
	assert.ErrorIs(t, err, ErrTimeOverflow)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.Scan("08:30:00"))
	assert.Equal(t, TimeString("08:30"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	v, err := ts.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
