package module

import (
	"context"

	"textclf/internal/core/artifact"
	"textclf/internal/core/classifier"
	"textclf/internal/services/predict/domain"
	predictsvc "textclf/internal/services/predict/service"
)

// Ports is the predict module's bundle for other modules
type Ports struct {
	Predictor domain.ServicePort
	Model     ModelPort
}

// ModelPort describes the loaded artifacts to read-only consumers such as meta
type ModelPort interface {
	VectorizerInfo() artifact.Info
	ClassifierInfo() artifact.Info
	Classes() []classifier.Label
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptPredictPort struct{ svc predictsvc.Service }

// Predict returns the label for one text
func (a adaptPredictPort) Predict(ctx context.Context, in domain.PredictInput) (domain.PredictOutput, error) {
	return a.svc.Predict(ctx, in)
}

// Score returns the label and class probabilities for one text
func (a adaptPredictPort) Score(ctx context.Context, in domain.PredictInput) (domain.ScoredOutput, error) {
	return a.svc.Score(ctx, in)
}

type modelInfo struct{ b *artifact.Bundle }

func (m modelInfo) VectorizerInfo() artifact.Info { return m.b.VectorizerInfo }
func (m modelInfo) ClassifierInfo() artifact.Info { return m.b.ClassifierInfo }
func (m modelInfo) Classes() []classifier.Label   { return m.b.Classes() }
