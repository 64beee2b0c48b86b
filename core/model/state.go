// Package model provides shared state management and interfaces for sgdkit
// estimators.
package model

import (
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/sgdkit/sgdkit/pkg/errors"
)

// Fitter is a model that can be trained on a dataset.
type Fitter interface {
	Fit(X, y mat.Matrix) error
}

// Predictor is a fitted model that can produce predictions.
type Predictor interface {
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Estimator is a supervised model.
type Estimator interface {
	Fitter
	Predictor
}

// StateManager tracks the fitted state of an estimator. Estimators embed it
// by composition and consult it before predicting.
type StateManager struct {
	mu        sync.RWMutex
	fitted    bool
	nFeatures int
	nOutputs  int
}

// NewStateManager creates an unfitted StateManager.
func NewStateManager() *StateManager {
	return &StateManager{}
}

// IsFitted reports whether the model has been fitted.
func (s *StateManager) IsFitted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fitted
}

// SetFitted marks the model as fitted with the given dimensions.
func (s *StateManager) SetFitted(nFeatures, nOutputs int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fitted = true
	s.nFeatures = nFeatures
	s.nOutputs = nOutputs
}

// Reset clears the fitted state.
func (s *StateManager) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fitted = false
	s.nFeatures = 0
	s.nOutputs = 0
}

// Dimensions returns the feature and output counts recorded at fit time.
func (s *StateManager) Dimensions() (nFeatures, nOutputs int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nFeatures, s.nOutputs
}

// RequireFitted returns a NotFittedError naming the model and method if the
// model has not been fitted.
func (s *StateManager) RequireFitted(modelName, method string) error {
	if !s.IsFitted() {
		return errors.NewNotFittedError(modelName, method)
	}
	return nil
}
