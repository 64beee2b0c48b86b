package linear

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"

	"github.com/sgdkit/sgdkit/linalg"
	"github.com/sgdkit/sgdkit/param"
	"github.com/sgdkit/sgdkit/pkg/errors"
)

const snapshotVersion = "1.0"

// ModelSnapshot is the JSON-serializable form of a fitted estimator. The
// checksum covers the weights so corrupted or hand-edited snapshots are
// rejected on import.
type ModelSnapshot struct {
	ModelType    string      `json:"model_type"`
	Version      string      `json:"version"`
	Weights      [][]float64 `json:"weights"`
	FitIntercept bool        `json:"fit_intercept"`
	NFeatures    int         `json:"n_features"`
	NOutputs     int         `json:"n_outputs"`
	Classes      []int       `json:"classes,omitempty"`
	Checksum     string      `json:"checksum"`
}

// WriteJSON marshals the snapshot to w.
func (s *ModelSnapshot) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return errors.Wrap(err, "ModelSnapshot.WriteJSON")
	}
	return nil
}

// ReadSnapshot unmarshals a snapshot from r.
func ReadSnapshot(r io.Reader) (*ModelSnapshot, error) {
	var s ModelSnapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, errors.Wrap(err, "ReadSnapshot")
	}
	return &s, nil
}

func weightChecksum(weights [][]float64) string {
	data, _ := json.Marshal(weights)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func exportWeights(p *param.LinearParameters) [][]float64 {
	m := p.WeightMatrix()
	rows, cols := m.Dims()
	out := make([][]float64, rows)
	for i := 0; i < rows; i++ {
		out[i] = make([]float64, cols)
		for j := 0; j < cols; j++ {
			out[i][j] = m.At(i, j)
		}
	}
	return out
}

func importWeights(weights [][]float64) (*param.LinearParameters, error) {
	if len(weights) == 0 {
		return nil, errors.NewValueError("importWeights", "empty weight matrix")
	}
	cols := len(weights[0])
	m := linalg.NewDenseMatrix(len(weights), cols)
	for i, row := range weights {
		if len(row) != cols {
			return nil, errors.NewDimensionError("importWeights", cols, len(row), 1)
		}
		for j, v := range row {
			m.Set(i, j, v)
		}
	}
	return param.WrapLinearParameters(m), nil
}

// Export returns a snapshot of the fitted classifier.
func (c *SGDClassifier) Export() (*ModelSnapshot, error) {
	if err := c.state.RequireFitted("SGDClassifier", "Export"); err != nil {
		return nil, err
	}
	nFeatures, nOutputs := c.state.Dimensions()
	weights := exportWeights(c.params)
	return &ModelSnapshot{
		ModelType:    "SGDClassifier",
		Version:      snapshotVersion,
		Weights:      weights,
		FitIntercept: c.cfg.fitIntercept,
		NFeatures:    nFeatures,
		NOutputs:     nOutputs,
		Classes:      c.Classes(),
		Checksum:     weightChecksum(weights),
	}, nil
}

// Import restores the classifier from a snapshot, replacing any fitted
// state.
func (c *SGDClassifier) Import(s *ModelSnapshot) error {
	if s == nil {
		return errors.NewValueError("SGDClassifier.Import", "nil snapshot")
	}
	if s.ModelType != "SGDClassifier" {
		return errors.NewValueError("SGDClassifier.Import", "model type mismatch: "+s.ModelType)
	}
	if s.Checksum != weightChecksum(s.Weights) {
		return errors.NewValueError("SGDClassifier.Import", "checksum mismatch: weights may be corrupted")
	}

	params, err := importWeights(s.Weights)
	if err != nil {
		return err
	}
	c.params = params
	c.cfg.fitIntercept = s.FitIntercept
	c.classes = append([]int(nil), s.Classes...)
	c.state.SetFitted(s.NFeatures, s.NOutputs)
	return nil
}

// Export returns a snapshot of the fitted regressor.
func (r *SGDRegressor) Export() (*ModelSnapshot, error) {
	if err := r.state.RequireFitted("SGDRegressor", "Export"); err != nil {
		return nil, err
	}
	nFeatures, nOutputs := r.state.Dimensions()
	weights := exportWeights(r.params)
	return &ModelSnapshot{
		ModelType:    "SGDRegressor",
		Version:      snapshotVersion,
		Weights:      weights,
		FitIntercept: r.cfg.fitIntercept,
		NFeatures:    nFeatures,
		NOutputs:     nOutputs,
		Checksum:     weightChecksum(weights),
	}, nil
}

// Import restores the regressor from a snapshot, replacing any fitted
// state.
func (r *SGDRegressor) Import(s *ModelSnapshot) error {
	if s == nil {
		return errors.NewValueError("SGDRegressor.Import", "nil snapshot")
	}
	if s.ModelType != "SGDRegressor" {
		return errors.NewValueError("SGDRegressor.Import", "model type mismatch: "+s.ModelType)
	}
	if s.Checksum != weightChecksum(s.Weights) {
		return errors.NewValueError("SGDRegressor.Import", "checksum mismatch: weights may be corrupted")
	}

	params, err := importWeights(s.Weights)
	if err != nil {
		return err
	}
	r.params = params
	r.cfg.fitIntercept = s.FitIntercept
	r.nOutputs = s.NOutputs
	r.state.SetFitted(s.NFeatures, s.NOutputs)
	return nil
}
