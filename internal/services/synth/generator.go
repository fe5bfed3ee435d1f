package synth

import (
	"fmt"
	"math"

	"DashPull/internal/domain/models"
)

// Config drives the synthetic churn population.
type Config struct {
	Seed      uint32  `yaml:"seed" default:"42"`
	Customers int     `yaml:"customers" default:"1000" validate:"gt=0,lte=1000000"`
	CLVMu     float64 `yaml:"clv_mu" default:"4.5"`
	CLVSigma  float64 `yaml:"clv_sigma" default:"0.8" validate:"gte=0"`
	Alpha     int     `yaml:"alpha" default:"2" validate:"gt=0"`
	Beta      int     `yaml:"beta" default:"5" validate:"gt=0"`
	// Score = min(beta*ScoreScale + ScoreShift, ScoreCap)
	ScoreScale float64 `yaml:"score_scale" default:"1.5"`
	ScoreShift float64 `yaml:"score_shift" default:"0.1"`
	ScoreCap   float64 `yaml:"score_cap" default:"0.99" validate:"gt=0,lte=1"`
	// Quantiles used for the Low/Mid and Mid/High cuts.
	LowerQuantile float64 `yaml:"lower_quantile" default:"0.40" validate:"gte=0,lt=1"`
	UpperQuantile float64 `yaml:"upper_quantile" default:"0.75" validate:"gte=0,lt=1"`
}

// DefaultConfig returns the reference generator settings.
func DefaultConfig() Config {
	return Config{
		Seed:          42,
		Customers:     1000,
		CLVMu:         4.5,
		CLVSigma:      0.8,
		Alpha:         2,
		Beta:          5,
		ScoreScale:    1.5,
		ScoreShift:    0.1,
		ScoreCap:      0.99,
		LowerQuantile: 0.40,
		UpperQuantile: 0.75,
	}
}

// Validate checks values that would make the draws meaningless.
func (c Config) Validate() error {
	if c.Customers <= 0 {
		return fmt.Errorf("customers must be positive, got %d", c.Customers)
	}
	if c.Alpha <= 0 || c.Beta <= 0 {
		return fmt.Errorf("beta shapes must be positive, got %d/%d", c.Alpha, c.Beta)
	}
	if c.LowerQuantile > c.UpperQuantile {
		return fmt.Errorf("lower quantile %.2f above upper quantile %.2f", c.LowerQuantile, c.UpperQuantile)
	}
	return nil
}

// Generate draws the raw customers. Draw order per record is CLV then score,
// so changing either distribution shifts every later record.
func Generate(cfg Config) ([]models.Customer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rng := NewRand(cfg.Seed)
	out := make([]models.Customer, cfg.Customers)
	for i := range out {
		clv := math.Exp(cfg.CLVMu + rng.Norm()*cfg.CLVSigma)
		score := math.Min(rng.Beta(cfg.Alpha, cfg.Beta)*cfg.ScoreScale+cfg.ScoreShift, cfg.ScoreCap)
		out[i] = models.Customer{ID: i + 1, CLV: clv, Score: score}
	}
	return out, nil
}
