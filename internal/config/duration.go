package config

import (
	"encoding/json"
	"fmt"
	"time"
)

// Duration is a time.Duration that reads as a Go duration string ("10s",
// "1m30s") from config files and the environment.
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// SetValue parses an environment value. It implements cleanenv.Setter.
func (d *Duration) SetValue(s string) error {
	return d.UnmarshalText([]byte(s))
}

// UnmarshalText parses a duration string. Used by the YAML and TOML decoders.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDuration, text)
	}
	*d = Duration(v)
	return nil
}

// MarshalText formats d as a duration string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalJSON accepts a duration string only. A bare number would be
// read as nanoseconds, so it is rejected.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: want a duration string such as \"30s\", got %s", ErrInvalidDuration, data)
	}
	return d.UnmarshalText([]byte(s))
}
