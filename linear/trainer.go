// Package linear provides sklearn-style linear estimators trained with
// minibatch stochastic gradient descent.
package linear

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/sgdkit/sgdkit/core/parallel"
	"github.com/sgdkit/sgdkit/linalg"
	"github.com/sgdkit/sgdkit/optimizer"
	"github.com/sgdkit/sgdkit/param"
	"github.com/sgdkit/sgdkit/pkg/log"
)

const defaultSeed = 12345

// trainerConfig holds the knobs shared by the SGD estimators.
type trainerConfig struct {
	optimizer       optimizer.Optimizer
	epochs          int
	minibatchSize   int
	seed            int64
	shuffle         bool
	loggingInterval int
	workers         int
	fitIntercept    bool
}

func defaultTrainerConfig() trainerConfig {
	return trainerConfig{
		optimizer:       optimizer.NewAdaGrad(1.0),
		epochs:          5,
		minibatchSize:   1,
		seed:            defaultSeed,
		shuffle:         true,
		loggingInterval: 0,
		workers:         1,
		fitIntercept:    true,
	}
}

// train runs minibatch SGD over prepared feature vectors and returns the
// fitted parameters plus the per-epoch mean loss.
//
// Gradients within a minibatch are computed on worker goroutines, merged
// on the calling goroutine, and applied in a single update, so the
// parameters are never written concurrently. The merge is deterministic,
// so a fixed seed produces identical weights at any worker count.
func train[T any](cfg trainerConfig, features []linalg.Vector, targets []T,
	lossAndGradient func(truth T, prediction *linalg.DenseVector) (float64, linalg.Vector),
	numFeatures, numOutputs int, logger log.Logger) (*param.LinearParameters, []float64, error) {

	rng := rand.New(rand.NewSource(cfg.seed))
	params := param.NewLinearParameters(numFeatures, numOutputs)

	opt := cfg.optimizer.Copy()
	opt.Initialise(params)
	defer opt.Reset()

	lossCurve := make([]float64, 0, cfg.epochs)
	iteration := 0

	for epoch := 0; epoch < cfg.epochs; epoch++ {
		if cfg.shuffle {
			shuffleInPlace(features, targets, rng)
		}

		epochLoss := 0.0
		if cfg.minibatchSize <= 1 {
			for j := range features {
				prediction := params.Predict(features[j])
				loss, gradient := lossAndGradient(targets[j], prediction)
				epochLoss += loss

				updates := opt.Step(params.Gradients(gradient, features[j]), 1.0)
				params.Update(updates)

				iteration++
				if cfg.loggingInterval > 0 && iteration%cfg.loggingInterval == 0 {
					logger.Debug("training progress",
						log.IterationKey, iteration, log.LossKey, loss)
				}
			}
		} else {
			gradients := make([][]linalg.Tensor, cfg.minibatchSize)
			losses := make([]float64, cfg.minibatchSize)
			for j := 0; j < len(features); j += cfg.minibatchSize {
				end := j + cfg.minibatchSize
				if end > len(features) {
					end = len(features)
				}
				cur := end - j

				// Compute-locally: each worker fills disjoint slots.
				base := j
				parallel.ParallelizeN(cur, cfg.workers, func(start, stop int) {
					for k := start; k < stop; k++ {
						prediction := params.Predict(features[base+k])
						loss, gradient := lossAndGradient(targets[base+k], prediction)
						losses[k] = loss
						gradients[k] = params.Gradients(gradient, features[base+k])
					}
				})

				// Sum losses sequentially to keep the result independent
				// of the worker count.
				for k := 0; k < cur; k++ {
					epochLoss += losses[k]
				}

				merged, err := params.Merge(gradients[:cur], cur)
				if err != nil {
					return nil, nil, err
				}
				for _, u := range merged {
					u.ScaleInPlace(1.0 / float64(cur))
				}
				params.Update(opt.Step(merged, 1.0))

				iteration++
				if cfg.loggingInterval > 0 && iteration%cfg.loggingInterval == 0 {
					logger.Debug("training progress",
						log.IterationKey, iteration, log.LossKey, epochLoss)
				}
			}
		}

		meanLoss := epochLoss / float64(len(features))
		lossCurve = append(lossCurve, meanLoss)
		logger.Debug("epoch complete", log.EpochKey, epoch+1, log.LossKey, meanLoss)
	}

	return params, lossCurve, nil
}

// shuffleInPlace permutes features and targets together with a
// Fisher-Yates shuffle driven by rng.
func shuffleInPlace[T any](features []linalg.Vector, targets []T, rng *rand.Rand) {
	for i := len(features); i > 1; i-- {
		j := rng.Intn(i)
		features[i-1], features[j] = features[j], features[i-1]
		targets[i-1], targets[j] = targets[j], targets[i-1]
	}
}

// vectorizeRows converts the rows of X into feature vectors, appending a
// trailing 1.0 bias feature when addBias is set. Rows are represented
// uniformly, dense when most of the matrix is non-zero and sparse
// otherwise, so one minibatch never mixes gradient shapes.
func vectorizeRows(X mat.Matrix, addBias bool) []linalg.Vector {
	nSamples, nFeatures := X.Dims()

	nonzero := 0
	for i := 0; i < nSamples; i++ {
		for j := 0; j < nFeatures; j++ {
			if X.At(i, j) != 0 {
				nonzero++
			}
		}
	}
	useDense := nSamples == 0 || float64(nonzero) >= 0.5*float64(nSamples*nFeatures)

	width := nFeatures
	if addBias {
		width++
	}

	out := make([]linalg.Vector, nSamples)
	for i := 0; i < nSamples; i++ {
		if useDense {
			row := make([]float64, width)
			for j := 0; j < nFeatures; j++ {
				row[j] = X.At(i, j)
			}
			if addBias {
				row[nFeatures] = 1.0
			}
			out[i] = linalg.NewDenseVectorFrom(row)
		} else {
			var indices []int
			var values []float64
			for j := 0; j < nFeatures; j++ {
				if v := X.At(i, j); v != 0 {
					indices = append(indices, j)
					values = append(values, v)
				}
			}
			if addBias {
				indices = append(indices, nFeatures)
				values = append(values, 1.0)
			}
			out[i] = linalg.NewSparseVector(width, indices, values)
		}
	}
	return out
}
