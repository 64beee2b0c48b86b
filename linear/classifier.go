package linear

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/sgdkit/sgdkit/core/model"
	"github.com/sgdkit/sgdkit/objective"
	"github.com/sgdkit/sgdkit/optimizer"
	"github.com/sgdkit/sgdkit/param"
	"github.com/sgdkit/sgdkit/pkg/errors"
	"github.com/sgdkit/sgdkit/pkg/log"
)

// SGDClassifier is a multiclass linear classifier trained with minibatch
// SGD. The default objective is softmax cross-entropy; swap in a hinge
// objective for an SVM-style margin classifier.
type SGDClassifier struct {
	state *model.StateManager

	cfg       trainerConfig
	objective objective.Classification

	params    *param.LinearParameters
	classes   []int
	lossCurve []float64
}

// ClassifierOption is a functional option for SGDClassifier.
type ClassifierOption func(*SGDClassifier)

// WithClassifierObjective sets the training objective.
func WithClassifierObjective(obj objective.Classification) ClassifierOption {
	return func(c *SGDClassifier) { c.objective = obj }
}

// WithClassifierOptimizer sets the gradient optimizer.
func WithClassifierOptimizer(opt optimizer.Optimizer) ClassifierOption {
	return func(c *SGDClassifier) { c.cfg.optimizer = opt }
}

// WithClassifierEpochs sets the number of passes over the training data.
func WithClassifierEpochs(epochs int) ClassifierOption {
	return func(c *SGDClassifier) { c.cfg.epochs = epochs }
}

// WithClassifierMinibatchSize sets the minibatch size. Sizes above one
// merge per-example gradients before each update.
func WithClassifierMinibatchSize(size int) ClassifierOption {
	return func(c *SGDClassifier) { c.cfg.minibatchSize = size }
}

// WithClassifierSeed sets the RNG seed used for shuffling.
func WithClassifierSeed(seed int64) ClassifierOption {
	return func(c *SGDClassifier) { c.cfg.seed = seed }
}

// WithClassifierShuffle turns example shuffling on or off. Only turn it
// off for debugging.
func WithClassifierShuffle(shuffle bool) ClassifierOption {
	return func(c *SGDClassifier) { c.cfg.shuffle = shuffle }
}

// WithClassifierWorkers sets the number of goroutines used to compute
// minibatch gradients. Has no effect when the minibatch size is one.
func WithClassifierWorkers(workers int) ClassifierOption {
	return func(c *SGDClassifier) { c.cfg.workers = workers }
}

// WithClassifierFitIntercept controls whether a bias column is appended
// to the features. Default true.
func WithClassifierFitIntercept(fit bool) ClassifierOption {
	return func(c *SGDClassifier) { c.cfg.fitIntercept = fit }
}

// WithClassifierLoggingInterval logs the loss every n updates at debug
// level. Zero disables per-iteration logging.
func WithClassifierLoggingInterval(n int) ClassifierOption {
	return func(c *SGDClassifier) { c.cfg.loggingInterval = n }
}

// NewSGDClassifier creates an SGDClassifier with the given options.
func NewSGDClassifier(opts ...ClassifierOption) *SGDClassifier {
	c := &SGDClassifier{
		state:     model.NewStateManager(),
		cfg:       defaultTrainerConfig(),
		objective: objective.NewLogMulticlass(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fit trains the classifier on X and integer class labels y (a column
// vector).
func (c *SGDClassifier) Fit(X, y mat.Matrix) error {
	nSamples, nFeatures := X.Dims()
	yRows, yCols := y.Dims()
	if nSamples == 0 {
		return errors.Wrap(errors.ErrEmptyData, "SGDClassifier.Fit")
	}
	if yCols != 1 {
		return errors.NewDimensionError("SGDClassifier.Fit", 1, yCols, 1)
	}
	if yRows != nSamples {
		return errors.NewDimensionError("SGDClassifier.Fit", nSamples, yRows, 0)
	}

	c.classes = extractClasses(y)
	if len(c.classes) < 2 {
		return errors.NewValueError("SGDClassifier.Fit", "training data contains a single class")
	}
	classIndex := make(map[int]int, len(c.classes))
	for i, class := range c.classes {
		classIndex[class] = i
	}

	targets := make([]int, nSamples)
	for i := 0; i < nSamples; i++ {
		targets[i] = classIndex[int(y.At(i, 0))]
	}

	features := vectorizeRows(X, c.cfg.fitIntercept)
	width := nFeatures
	if c.cfg.fitIntercept {
		width++
	}

	logger := log.GetLogger().With(
		log.ModelNameKey, "SGDClassifier",
		log.OperationKey, "fit")
	logger.Info("training started",
		log.SamplesKey, nSamples,
		log.FeaturesKey, nFeatures,
		log.OutputsKey, len(c.classes))

	params, lossCurve, err := train(c.cfg, features, targets,
		c.objective.LossAndGradient, width, len(c.classes), logger)
	if err != nil {
		return errors.NewModelError("SGDClassifier.Fit", "training failed", err)
	}

	c.params = params
	c.lossCurve = lossCurve
	c.state.SetFitted(nFeatures, len(c.classes))
	logger.Info("training finished", log.LossKey, lossCurve[len(lossCurve)-1])
	return nil
}

// Predict returns the predicted class label for each row of X as a column
// vector.
func (c *SGDClassifier) Predict(X mat.Matrix) (mat.Matrix, error) {
	if err := c.state.RequireFitted("SGDClassifier", "Predict"); err != nil {
		return nil, err
	}
	if err := c.checkFeatures(X, "SGDClassifier.Predict"); err != nil {
		return nil, err
	}

	nSamples, _ := X.Dims()
	features := vectorizeRows(X, c.cfg.fitIntercept)
	predictions := mat.NewDense(nSamples, 1, nil)
	for i, feat := range features {
		scores := c.params.Predict(feat)
		predictions.Set(i, 0, float64(c.classes[scores.MaxIndex()]))
	}
	return predictions, nil
}

// PredictProba returns the class distribution for each row of X, one
// column per class in Classes order.
func (c *SGDClassifier) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	if err := c.state.RequireFitted("SGDClassifier", "PredictProba"); err != nil {
		return nil, err
	}
	if err := c.checkFeatures(X, "SGDClassifier.PredictProba"); err != nil {
		return nil, err
	}

	nSamples, _ := X.Dims()
	features := vectorizeRows(X, c.cfg.fitIntercept)
	probas := mat.NewDense(nSamples, len(c.classes), nil)
	for i, feat := range features {
		dist := c.objective.Distribution(c.params.Predict(feat))
		probas.SetRow(i, dist.Data())
	}
	return probas, nil
}

// DecisionFunction returns the raw per-class scores for each row of X.
func (c *SGDClassifier) DecisionFunction(X mat.Matrix) (mat.Matrix, error) {
	if err := c.state.RequireFitted("SGDClassifier", "DecisionFunction"); err != nil {
		return nil, err
	}
	if err := c.checkFeatures(X, "SGDClassifier.DecisionFunction"); err != nil {
		return nil, err
	}

	nSamples, _ := X.Dims()
	features := vectorizeRows(X, c.cfg.fitIntercept)
	scores := mat.NewDense(nSamples, len(c.classes), nil)
	for i, feat := range features {
		scores.SetRow(i, c.params.Predict(feat).Data())
	}
	return scores, nil
}

// Score returns the mean accuracy on the given test data and labels.
func (c *SGDClassifier) Score(X, y mat.Matrix) (float64, error) {
	predictions, err := c.Predict(X)
	if err != nil {
		return 0, err
	}
	nSamples, _ := X.Dims()
	correct := 0
	for i := 0; i < nSamples; i++ {
		if predictions.At(i, 0) == y.At(i, 0) {
			correct++
		}
	}
	return float64(correct) / float64(nSamples), nil
}

// Classes returns the sorted class labels seen during Fit.
func (c *SGDClassifier) Classes() []int {
	out := make([]int, len(c.classes))
	copy(out, c.classes)
	return out
}

// LossCurve returns the mean training loss per epoch.
func (c *SGDClassifier) LossCurve() []float64 {
	out := make([]float64, len(c.lossCurve))
	copy(out, c.lossCurve)
	return out
}

// IsFitted reports whether Fit has completed.
func (c *SGDClassifier) IsFitted() bool {
	return c.state.IsFitted()
}

// Parameters exposes the fitted weights, or nil before Fit.
func (c *SGDClassifier) Parameters() *param.LinearParameters {
	return c.params
}

func (c *SGDClassifier) checkFeatures(X mat.Matrix, op string) error {
	_, nFeatures := X.Dims()
	fitted, _ := c.state.Dimensions()
	if nFeatures != fitted {
		return errors.NewDimensionError(op, fitted, nFeatures, 1)
	}
	return nil
}

// extractClasses returns the sorted distinct integer labels in y.
func extractClasses(y mat.Matrix) []int {
	rows, _ := y.Dims()
	seen := make(map[int]struct{})
	for i := 0; i < rows; i++ {
		seen[int(y.At(i, 0))] = struct{}{}
	}
	classes := make([]int, 0, len(seen))
	for class := range seen {
		classes = append(classes, class)
	}
	sort.Ints(classes)
	return classes
}
