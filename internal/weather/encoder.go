package weather

import (
	"encoding/binary"
	"fmt"
	"math"
)

const (
	// FeatureCount is the number of model inputs: temperature, then humidity.
	FeatureCount = 2
	// InputSize is the encoded input length in bytes.
	InputSize = FeatureCount * 4
	// OutputSize is the length in bytes of the model output region.
	OutputSize = CategoryCount * 4
)

// ByteOrder is the order the model was exported with: the host's native order.
var ByteOrder binary.ByteOrder = binary.NativeEndian

// Encode packs the sample into the 8-byte model input. It performs no validation.
func Encode(s Sample) []byte {
	buf := make([]byte, InputSize)
	ByteOrder.PutUint32(buf[0:4], math.Float32bits(s.TemperatureCelsius))
	ByteOrder.PutUint32(buf[4:8], math.Float32bits(s.HumidityPercent))
	return buf
}

// DecodeInput is the inverse of Encode.
func DecodeInput(b []byte) (Sample, error) {
	if len(b) != InputSize {
		return Sample{}, fmt.Errorf("input buffer is %d bytes, want %d", len(b), InputSize)
	}
	return Sample{
		TemperatureCelsius: math.Float32frombits(ByteOrder.Uint32(b[0:4])),
		HumidityPercent:    math.Float32frombits(ByteOrder.Uint32(b[4:8])),
	}, nil
}

// PutFloats writes vals into dst as consecutive float32 values.
func PutFloats(dst []byte, vals []float32) error {
	if len(dst) != len(vals)*4 {
		return fmt.Errorf("buffer is %d bytes, want %d", len(dst), len(vals)*4)
	}
	for i, v := range vals {
		ByteOrder.PutUint32(dst[i*4:(i+1)*4], math.Float32bits(v))
	}
	return nil
}

// Floats reads b as consecutive float32 values. Trailing bytes that do not fill a float are ignored.
func Floats(b []byte) []float32 {
	out := make([]float32, len(b)/4)
	for i := range out {
		out[i] = math.Float32frombits(ByteOrder.Uint32(b[i*4 : (i+1)*4]))
	}
	return out
}
