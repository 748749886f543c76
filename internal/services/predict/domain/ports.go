package domain

import "context"

// ServicePort is consumed by handlers and the offline check command
type ServicePort interface {
	Predict(ctx context.Context, in PredictInput) (PredictOutput, error)
	Score(ctx context.Context, in PredictInput) (ScoredOutput, error)
}
