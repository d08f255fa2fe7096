package handlers

import (
	"encoding/json"
	"math"

	"github.com/Brownie44l1/weather-api/internal/weather"
)

// fieldText accepts a JSON string or number and keeps its text so the
// request goes through the same parsing as a form field.
type fieldText string

func (f *fieldText) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = fieldText(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = fieldText(n.String())
	return nil
}

// score encodes NaN and infinities as null, which JSON cannot represent.
type score float32

func (s score) MarshalJSON() ([]byte, error) {
	f := float64(s)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(float32(s))
}

type PredictionRequest struct {
	Temperature fieldText `json:"temperature"`
	Humidity    fieldText `json:"humidity"`
}

type PredictionResponse struct {
	Label   weather.Label `json:"label"`
	Icon    string        `json:"icon"`
	Index   int           `json:"index"`
	Scores  []score       `json:"scores"`
	Message string        `json:"message"`
}

type CategoryResponse struct {
	Index int           `json:"index"`
	Label weather.Label `json:"label"`
	Icon  string        `json:"icon"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func newPredictionResponse(p weather.Prediction) PredictionResponse {
	return PredictionResponse{
		Label:   p.Label,
		Icon:    p.Label.Icon(),
		Index:   p.Index,
		Scores:  toScores(p.Scores),
		Message: "Predicted Weather: \n" + string(p.Label),
	}
}

func toScores(in []float32) []score {
	out := make([]score, len(in))
	for i, v := range in {
		out[i] = score(v)
	}
	return out
}
