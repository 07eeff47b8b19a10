package gbm

// Params are the boosting hyperparameters. The defaults follow XGBoost's
// regressor: 100 rounds of depth-6 trees with eta 0.3 and L2 leaf penalty 1.
type Params struct {
	NEstimators    int     `json:"n_estimators" yaml:"n_estimators" toml:"n_estimators"`
	MaxDepth       int     `json:"max_depth" yaml:"max_depth" toml:"max_depth"` // 0 => unlimited
	LearningRate   float64 `json:"learning_rate" yaml:"learning_rate" toml:"learning_rate"`
	Lambda         float64 `json:"lambda" yaml:"lambda" toml:"lambda"`
	Gamma          float64 `json:"gamma" yaml:"gamma" toml:"gamma"`
	MinChildWeight float64 `json:"min_child_weight" yaml:"min_child_weight" toml:"min_child_weight"`
}

// DefaultParams returns the stock configuration.
func DefaultParams() Params {
	return Params{
		NEstimators:    100,
		MaxDepth:       6,
		LearningRate:   0.3,
		Lambda:         1,
		Gamma:          0,
		MinChildWeight: 1,
	}
}

// Option functional config
type Option func(*Regressor)

func WithNEstimators(n int) Option        { return func(r *Regressor) { r.Params.NEstimators = n } }
func WithMaxDepth(d int) Option           { return func(r *Regressor) { r.Params.MaxDepth = d } }
func WithLearningRate(eta float64) Option { return func(r *Regressor) { r.Params.LearningRate = eta } }
func WithLambda(l float64) Option         { return func(r *Regressor) { r.Params.Lambda = l } }
func WithGamma(g float64) Option          { return func(r *Regressor) { r.Params.Gamma = g } }
func WithMinChildWeight(w float64) Option { return func(r *Regressor) { r.Params.MinChildWeight = w } }
func WithParams(p Params) Option          { return func(r *Regressor) { r.Params = p } }
