package linear

import (
	"gonum.org/v1/gonum/mat"

	"github.com/sgdkit/sgdkit/core/model"
	"github.com/sgdkit/sgdkit/linalg"
	"github.com/sgdkit/sgdkit/metrics"
	"github.com/sgdkit/sgdkit/objective"
	"github.com/sgdkit/sgdkit/optimizer"
	"github.com/sgdkit/sgdkit/param"
	"github.com/sgdkit/sgdkit/pkg/errors"
	"github.com/sgdkit/sgdkit/pkg/log"
)

// SGDRegressor is a linear regressor trained with minibatch SGD. It
// supports multi-output targets; y may have any number of columns.
type SGDRegressor struct {
	state *model.StateManager

	cfg       trainerConfig
	objective objective.Regression

	params    *param.LinearParameters
	nOutputs  int
	lossCurve []float64
}

// RegressorOption is a functional option for SGDRegressor.
type RegressorOption func(*SGDRegressor)

// WithRegressorObjective sets the training objective.
func WithRegressorObjective(obj objective.Regression) RegressorOption {
	return func(r *SGDRegressor) { r.objective = obj }
}

// WithRegressorOptimizer sets the gradient optimizer.
func WithRegressorOptimizer(opt optimizer.Optimizer) RegressorOption {
	return func(r *SGDRegressor) { r.cfg.optimizer = opt }
}

// WithRegressorEpochs sets the number of passes over the training data.
func WithRegressorEpochs(epochs int) RegressorOption {
	return func(r *SGDRegressor) { r.cfg.epochs = epochs }
}

// WithRegressorMinibatchSize sets the minibatch size.
func WithRegressorMinibatchSize(size int) RegressorOption {
	return func(r *SGDRegressor) { r.cfg.minibatchSize = size }
}

// WithRegressorSeed sets the RNG seed used for shuffling.
func WithRegressorSeed(seed int64) RegressorOption {
	return func(r *SGDRegressor) { r.cfg.seed = seed }
}

// WithRegressorShuffle turns example shuffling on or off.
func WithRegressorShuffle(shuffle bool) RegressorOption {
	return func(r *SGDRegressor) { r.cfg.shuffle = shuffle }
}

// WithRegressorWorkers sets the number of goroutines used to compute
// minibatch gradients.
func WithRegressorWorkers(workers int) RegressorOption {
	return func(r *SGDRegressor) { r.cfg.workers = workers }
}

// WithRegressorFitIntercept controls whether a bias column is appended to
// the features. Default true.
func WithRegressorFitIntercept(fit bool) RegressorOption {
	return func(r *SGDRegressor) { r.cfg.fitIntercept = fit }
}

// WithRegressorLoggingInterval logs the loss every n updates at debug
// level. Zero disables per-iteration logging.
func WithRegressorLoggingInterval(n int) RegressorOption {
	return func(r *SGDRegressor) { r.cfg.loggingInterval = n }
}

// NewSGDRegressor creates an SGDRegressor with the given options.
func NewSGDRegressor(opts ...RegressorOption) *SGDRegressor {
	r := &SGDRegressor{
		state:     model.NewStateManager(),
		cfg:       defaultTrainerConfig(),
		objective: objective.NewSquaredLoss(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Fit trains the regressor on X and targets y. y may have multiple
// columns for multi-output regression.
func (r *SGDRegressor) Fit(X, y mat.Matrix) error {
	nSamples, nFeatures := X.Dims()
	yRows, yCols := y.Dims()
	if nSamples == 0 {
		return errors.Wrap(errors.ErrEmptyData, "SGDRegressor.Fit")
	}
	if yRows != nSamples {
		return errors.NewDimensionError("SGDRegressor.Fit", nSamples, yRows, 0)
	}

	targets := make([]*linalg.DenseVector, nSamples)
	for i := 0; i < nSamples; i++ {
		row := make([]float64, yCols)
		for j := 0; j < yCols; j++ {
			row[j] = y.At(i, j)
		}
		targets[i] = linalg.NewDenseVectorFrom(row)
	}

	features := vectorizeRows(X, r.cfg.fitIntercept)
	width := nFeatures
	if r.cfg.fitIntercept {
		width++
	}

	logger := log.GetLogger().With(
		log.ModelNameKey, "SGDRegressor",
		log.OperationKey, "fit")
	logger.Info("training started",
		log.SamplesKey, nSamples,
		log.FeaturesKey, nFeatures,
		log.OutputsKey, yCols)

	params, lossCurve, err := train(r.cfg, features, targets,
		r.objective.LossAndGradient, width, yCols, logger)
	if err != nil {
		return errors.NewModelError("SGDRegressor.Fit", "training failed", err)
	}

	r.params = params
	r.nOutputs = yCols
	r.lossCurve = lossCurve
	r.state.SetFitted(nFeatures, yCols)
	logger.Info("training finished", log.LossKey, lossCurve[len(lossCurve)-1])
	return nil
}

// Predict returns the predicted targets for each row of X.
func (r *SGDRegressor) Predict(X mat.Matrix) (mat.Matrix, error) {
	if err := r.state.RequireFitted("SGDRegressor", "Predict"); err != nil {
		return nil, err
	}
	_, nFeatures := X.Dims()
	fitted, _ := r.state.Dimensions()
	if nFeatures != fitted {
		return nil, errors.NewDimensionError("SGDRegressor.Predict", fitted, nFeatures, 1)
	}

	nSamples, _ := X.Dims()
	features := vectorizeRows(X, r.cfg.fitIntercept)
	predictions := mat.NewDense(nSamples, r.nOutputs, nil)
	for i, feat := range features {
		predictions.SetRow(i, r.params.Predict(feat).Data())
	}
	return predictions, nil
}

// Score returns the coefficient of determination R^2 of the predictions,
// averaged over the output dimensions.
func (r *SGDRegressor) Score(X, y mat.Matrix) (float64, error) {
	predictions, err := r.Predict(X)
	if err != nil {
		return 0, err
	}

	nSamples, _ := y.Dims()
	total := 0.0
	for j := 0; j < r.nOutputs; j++ {
		yCol := mat.NewVecDense(nSamples, nil)
		pCol := mat.NewVecDense(nSamples, nil)
		for i := 0; i < nSamples; i++ {
			yCol.SetVec(i, y.At(i, j))
			pCol.SetVec(i, predictions.At(i, j))
		}
		r2, err := metrics.R2Score(yCol, pCol)
		if err != nil {
			return 0, err
		}
		total += r2
	}
	return total / float64(r.nOutputs), nil
}

// LossCurve returns the mean training loss per epoch.
func (r *SGDRegressor) LossCurve() []float64 {
	out := make([]float64, len(r.lossCurve))
	copy(out, r.lossCurve)
	return out
}

// IsFitted reports whether Fit has completed.
func (r *SGDRegressor) IsFitted() bool {
	return r.state.IsFitted()
}

// Parameters exposes the fitted weights, or nil before Fit.
func (r *SGDRegressor) Parameters() *param.LinearParameters {
	return r.params
}
