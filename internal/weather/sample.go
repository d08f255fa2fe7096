package weather

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Sample is a single prediction request.
type Sample struct {
	TemperatureCelsius float32 `json:"temperature"`
	HumidityPercent    float32 `json:"humidity"`
}

// NewSample validates already-parsed values. Any finite value is accepted; there is no range check.
func NewSample(temperature, humidity float32) (Sample, error) {
	s := Sample{TemperatureCelsius: temperature, HumidityPercent: humidity}
	if err := s.Validate(); err != nil {
		return Sample{}, err
	}
	return s, nil
}

// Validate reports ErrInvalidInput when either field is NaN or infinite.
func (s Sample) Validate() error {
	if !finite(s.TemperatureCelsius) {
		return fmt.Errorf("%w: temperature %v is not finite", ErrInvalidInput, s.TemperatureCelsius)
	}
	if !finite(s.HumidityPercent) {
		return fmt.Errorf("%w: humidity %v is not finite", ErrInvalidInput, s.HumidityPercent)
	}
	return nil
}

// ParseSample turns the raw text of the two input fields into a Sample.
//
// Both fields are trimmed and NFKC-normalised first, so full-width digits from
// mobile keyboards parse. An empty field yields ErrMissingInput; text that is
// not a finite 32-bit float yields ErrInvalidInput.
func ParseSample(temperature, humidity string) (Sample, error) {
	temperature = normalizeField(temperature)
	humidity = normalizeField(humidity)
	if temperature == "" || humidity == "" {
		return Sample{}, ErrMissingInput
	}
	t, err := parseField("temperature", temperature)
	if err != nil {
		return Sample{}, err
	}
	h, err := parseField("humidity", humidity)
	if err != nil {
		return Sample{}, err
	}
	return NewSample(t, h)
}

func normalizeField(s string) string {
	return strings.TrimSpace(norm.NFKC.String(s))
}

func parseField(name, text string) (float32, error) {
	v, err := strconv.ParseFloat(text, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", ErrInvalidInput, name, text)
	}
	return float32(v), nil
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
