package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexFloat64_Unmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{"number", `59.99`, 59.99, false},
		{"integer number", `100`, 100, false},
		{"number string", `"59.99"`, 59.99, false},
		{"padded string", `" 42 "`, 42, false},
		{"empty string", `""`, 0, false},
		{"null", `null`, 0, false},
		{"garbage string", `"not a number"`, 0, true},
		{"boolean", `true`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FlexFloat64
			err := json.Unmarshal([]byte(tt.input), &f)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Float64())
		})
	}
}

func TestFlexInt_Unmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"number", `2003`, 2003, false},
		{"number string", `"2003"`, 2003, false},
		{"empty string", `""`, 0, false},
		{"null", `null`, 0, false},
		{"float string", `"2.5"`, 0, true},
		{"garbage", `"NaN"`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FlexInt
			err := json.Unmarshal([]byte(tt.input), &f)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Int())
		})
	}
}

func TestFlex_MarshalAsNumbers(t *testing.T) {
	payload, err := json.Marshal(struct {
		Cost FlexFloat64 `json:"cost"`
		Year FlexInt     `json:"year"`
	}{Cost: 59.99, Year: 2003})

	require.NoError(t, err)
	assert.JSONEq(t, `{"cost":59.99,"year":2003}`, string(payload))
}
