// Package timex contains small time helpers shared across Arvo.
package timex

import (
	"encoding/json"
	"fmt"
	"time"
)

// Duration wraps time.Duration so JSON config files can specify intervals
// either as strings like "60s" or as integer nanoseconds.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", value, err)
		}
		d.Duration = parsed
	default:
		return fmt.Errorf("invalid duration value: %v", v)
	}
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}
