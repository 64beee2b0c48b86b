package metrics

import (
	"gonum.org/v1/gonum/mat"

	"github.com/sgdkit/sgdkit/pkg/errors"
)

// Accuracy computes the fraction of labels predicted exactly.
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("Accuracy", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("Accuracy", n, yPred.Len(), 0)
	}

	correct := 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == yPred.AtVec(i) {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}

// ConfusionMatrix computes the confusion matrix for integer labels in
// [0, numClasses). Rows are true labels, columns are predictions.
func ConfusionMatrix(yTrue, yPred *mat.VecDense, numClasses int) (*mat.Dense, error) {
	n := yTrue.Len()
	if n == 0 {
		return nil, errors.NewValueError("ConfusionMatrix", "empty vector")
	}
	if yPred.Len() != n {
		return nil, errors.NewDimensionError("ConfusionMatrix", n, yPred.Len(), 0)
	}

	cm := mat.NewDense(numClasses, numClasses, nil)
	for i := 0; i < n; i++ {
		t := int(yTrue.AtVec(i))
		p := int(yPred.AtVec(i))
		if t < 0 || t >= numClasses || p < 0 || p >= numClasses {
			return nil, errors.NewValueError("ConfusionMatrix", "label outside [0, numClasses)")
		}
		cm.Set(t, p, cm.At(t, p)+1)
	}
	return cm, nil
}
