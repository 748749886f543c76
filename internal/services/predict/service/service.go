// Package service runs one text through the loaded vectorizer and classifier
package service

import (
	"context"
	"fmt"
	"unicode/utf8"

	"textclf/internal/core/artifact"
	"textclf/internal/core/classifier"
	"textclf/internal/core/vectorizer"
	perr "textclf/internal/platform/errors"
	"textclf/internal/platform/logger"
	str "textclf/internal/platform/strings"
	"textclf/internal/services/predict/domain"
)

// DefaultMaxTextChars caps the runes of one text
const DefaultMaxTextChars = 100_000

// Service defines the predict service contract
type Service interface {
	domain.ServicePort
}

// Options tunes input limits
type Options struct {
	// MaxTextChars caps the text in runes, <= 0 disables the cap
	MaxTextChars int
}

// Svc implements the predict service over a read-only bundle
type Svc struct {
	model   *artifact.Bundle
	maxText int
}

// New constructs a predict service
func New(model *artifact.Bundle, opt Options) *Svc {
	if model == nil || model.Vectorizer == nil || model.Classifier == nil {
		panic("predict.Service requires a loaded model bundle")
	}
	return &Svc{model: model, maxText: opt.MaxTextChars}
}

// Predict returns the single label the classifier assigns to in.Text
func (s *Svc) Predict(ctx context.Context, in domain.PredictInput) (domain.PredictOutput, error) {
	rows, err := s.rows(ctx, in.Text)
	if err != nil {
		return domain.PredictOutput{}, err
	}
	label, err := s.predict(ctx, rows)
	if err != nil {
		return domain.PredictOutput{}, err
	}
	return domain.PredictOutput{Prediction: label}, nil
}

// Score is Predict plus class probabilities keyed by label, when the model has them
func (s *Svc) Score(ctx context.Context, in domain.PredictInput) (domain.ScoredOutput, error) {
	rows, err := s.rows(ctx, in.Text)
	if err != nil {
		return domain.ScoredOutput{}, err
	}
	label, err := s.predict(ctx, rows)
	if err != nil {
		return domain.ScoredOutput{}, err
	}
	out := domain.ScoredOutput{Prediction: label}

	p, ok := s.model.Classifier.(classifier.Prober)
	if !ok {
		return out, nil
	}
	var probs [][]float64
	if err := guard(func() (err error) { probs, err = p.PredictProba(rows); return err }); err != nil {
		return domain.ScoredOutput{}, s.fail(ctx, err, "predict_proba failed")
	}
	classes := s.model.Classes()
	if len(probs) != 1 || len(probs[0]) != len(classes) {
		return domain.ScoredOutput{}, s.fail(ctx, nil, "classifier returned a malformed probability row")
	}
	out.Proba = make(map[string]float64, len(classes))
	for i, c := range classes {
		out.Proba[c.String()] = probs[0][i]
	}
	return out, nil
}

// rows validates text and transforms it into exactly one feature row
func (s *Svc) rows(ctx context.Context, text string) ([]vectorizer.Vector, error) {
	if err := ctx.Err(); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "request cancelled")
	}
	if str.IsBlank(text) {
		return nil, perr.WithField(perr.InvalidInputf("text must not be blank"), "text")
	}
	if s.maxText > 0 && utf8.RuneCountInString(text) > s.maxText {
		return nil, perr.WithField(perr.InvalidInputf("text exceeds %d characters", s.maxText), "text")
	}

	var rows []vectorizer.Vector
	if err := guard(func() (err error) { rows, err = s.model.Vectorizer.Transform([]string{text}); return err }); err != nil {
		return nil, s.fail(ctx, err, "transform failed")
	}
	if len(rows) != 1 {
		return nil, s.fail(ctx, fmt.Errorf("vectorizer returned %d rows for one text", len(rows)), "transform failed")
	}
	return rows, nil
}

func (s *Svc) predict(ctx context.Context, rows []vectorizer.Vector) (classifier.Label, error) {
	var labels []classifier.Label
	if err := guard(func() (err error) { labels, err = s.model.Classifier.Predict(rows); return err }); err != nil {
		return classifier.Label{}, s.fail(ctx, err, "predict failed")
	}
	if len(labels) != 1 {
		return classifier.Label{}, s.fail(ctx, fmt.Errorf("classifier returned %d labels for one text", len(labels)), "predict failed")
	}
	return labels[0], nil
}

// fail logs cause with the request id and returns an inference error
func (s *Svc) fail(ctx context.Context, cause error, msg string) error {
	logger.C(ctx).Error().Err(cause).
		Str("vectorizer", s.model.VectorizerInfo.Kind).
		Str("classifier", s.model.ClassifierInfo.Kind).
		Msg(msg)
	return perr.WithOp(perr.Wrap(cause, perr.ErrorCodeInference, msg), "predict")
}

// guard turns a panic inside a model call into an error
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("model panic: %v", r)
		}
	}()
	return fn()
}
