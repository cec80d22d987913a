package utils

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexFloat64 is a float64 that can be unmarshaled from either a JSON number
// or a JSON string. Cost fields arrive both ways from the web client.
type FlexFloat64 float64

func (f *FlexFloat64) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexFloat64(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if strings.TrimSpace(s) == "" {
			*f = 0
			return nil
		}
		val, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("FlexFloat64: invalid number string %q: %w", s, err)
		}
		*f = FlexFloat64(val)
		return nil
	}

	return fmt.Errorf("FlexFloat64: expected number or string")
}

func (f FlexFloat64) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(f))
}

func (f FlexFloat64) Float64() float64 {
	return float64(f)
}

// FlexInt is an int that can be unmarshaled from either a JSON number or a
// JSON string.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexInt(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if strings.TrimSpace(s) == "" {
			*f = 0
			return nil
		}
		val, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("FlexInt: invalid integer string %q: %w", s, err)
		}
		*f = FlexInt(val)
		return nil
	}

	return fmt.Errorf("FlexInt: expected number or string")
}

func (f FlexInt) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(f))
}

func (f FlexInt) Int() int {
	return int(f)
}
