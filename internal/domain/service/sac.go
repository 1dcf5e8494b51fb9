package service

import (
	"context"

	"TrendPulse/internal/domain/models"
)

// Predictor fetches an external directional prediction for a ticker. The
// prediction feeds the fourth confluence subsystem; a nil result with a nil
// error means the predictor had no opinion.
type Predictor interface {
	Predict(ctx context.Context, ticker string, closes []float64) (*models.SACPrediction, error)
}
