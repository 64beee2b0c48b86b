package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sgdkit/sgdkit/pkg/errors"
)

func TestStateManagerLifecycle(t *testing.T) {
	s := NewStateManager()
	assert.False(t, s.IsFitted())

	err := s.RequireFitted("SGDClassifier", "Predict")
	require.Error(t, err)
	var nfe *errors.NotFittedError
	require.True(t, errors.As(err, &nfe))
	assert.Equal(t, "SGDClassifier", nfe.ModelName)

	s.SetFitted(10, 3)
	assert.True(t, s.IsFitted())
	assert.NoError(t, s.RequireFitted("SGDClassifier", "Predict"))

	nFeatures, nOutputs := s.Dimensions()
	assert.Equal(t, 10, nFeatures)
	assert.Equal(t, 3, nOutputs)

	s.Reset()
	assert.False(t, s.IsFitted())
}
