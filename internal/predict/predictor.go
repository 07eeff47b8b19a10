// Package predict produces the placeholder bid estimate shown by the form.
//
// The estimate is a uniform random draw; no fitted model is consulted. Each
// call is an independent sample.
package predict

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Caseyio/federal-bid-prediction/internal/form"
)

// Sampling range for the placeholder estimate, in dollars.
const (
	MinAmount = 500000.0
	MaxAmount = 2000000.0
)

// Disclaimer accompanies every estimate.
const Disclaimer = "Note: This is a placeholder prediction. Model integration coming soon."

// Prediction is one estimate for one InputRecord.
type Prediction struct {
	ID         string
	Amount     float64
	Display    string
	Disclaimer string
	Input      form.InputRecord
	CreatedAt  time.Time
}

// Predictor turns a validated selection into an estimate.
type Predictor interface {
	Predict(ctx context.Context, in form.InputRecord) (Prediction, error)
}

// RandomPredictor samples uniformly from [Min, Max].
type RandomPredictor struct {
	Min, Max float64

	mu  sync.Mutex
	rnd *rand.Rand
	now func() time.Time
}

// NewRandomPredictor returns a predictor over the default range. A zero seed
// seeds from the clock.
func NewRandomPredictor(seed int64) *RandomPredictor {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandomPredictor{
		Min: MinAmount,
		Max: MaxAmount,
		rnd: rand.New(rand.NewSource(seed)),
		now: time.Now,
	}
}

// Predict validates the input and draws a fresh amount. The input does not
// influence the amount.
func (p *RandomPredictor) Predict(ctx context.Context, in form.InputRecord) (Prediction, error) {
	if err := ctx.Err(); err != nil {
		return Prediction{}, err
	}
	if err := in.Validate(); err != nil {
		return Prediction{}, err
	}
	amount := p.sample()
	return Prediction{
		ID:         uuid.NewString(),
		Amount:     amount,
		Display:    FormatUSD(amount),
		Disclaimer: Disclaimer,
		Input:      in,
		CreatedAt:  p.now(),
	}, nil
}

func (p *RandomPredictor) sample() float64 {
	p.mu.Lock()
	u := p.rnd.Float64()
	p.mu.Unlock()
	return p.Min + u*(p.Max-p.Min)
}
