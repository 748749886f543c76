// Package domain holds the predict request and response shapes
package domain

import (
	"encoding/json"

	"textclf/internal/core/classifier"
)

// PredictInput is the request body of POST /predict/
type PredictInput struct {
	Text string `json:"text" validate:"required,notblank" example:"great product, highly recommend"`
}

// UnmarshalJSON reads only the exact key "text"; other keys, including
// differently cased ones such as "Text", are ignored
func (in *PredictInput) UnmarshalJSON(b []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	var out PredictInput
	if raw, ok := fields["text"]; ok {
		if err := json.Unmarshal(raw, &out.Text); err != nil {
			return err
		}
	}
	*in = out
	return nil
}

// PredictOutput is written bare, {"prediction": <label>}
type PredictOutput struct {
	Prediction classifier.Label `json:"prediction" swaggertype:"string" example:"positive"`
}

// ScoredOutput adds per class probabilities when the model exposes them
type ScoredOutput struct {
	Prediction classifier.Label   `json:"prediction"`
	Proba      map[string]float64 `json:"proba,omitempty"`
}
