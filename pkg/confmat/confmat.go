// Package confmat computes confusion matrices.
//
// A confusion matrix of n classes is an n x n matrix of counts.
// Rows are true classes, and columns are predicted classes.
// It is exported as a flat, row-major list of integers.
package confmat

import (
	"fmt"
	"math"

	xe "github.com/opst/confusionflow/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

type Matrix struct {
	numclass int
	dense    *mat.Dense
}

// New returns a zero matrix for numclass classes.
func New(numclass int) (*Matrix, error) {
	if numclass <= 0 {
		return nil, xe.Wrapf(xe.ErrInvalidConfmat, "numclass should be positive, but %d", numclass)
	}
	return &Matrix{numclass: numclass, dense: mat.NewDense(numclass, numclass, nil)}, nil
}

// FromLabels counts pairs of true and predicted labels.
//
// truth and predicted should have same length, and each label should be in [0, numclass).
func FromLabels(numclass int, truth, predicted []int) (*Matrix, error) {
	if len(truth) != len(predicted) {
		return nil, xe.Wrapf(
			xe.ErrInvalidConfmat,
			"length of labels unmatch: (truth, predicted) = (%d, %d)", len(truth), len(predicted),
		)
	}
	m, err := New(numclass)
	if err != nil {
		return nil, err
	}
	for nth := range truth {
		if err := m.Add(truth[nth], predicted[nth]); err != nil {
			return nil, xe.WrapWithNote(fmt.Sprintf("#%d", nth), err)
		}
	}
	return m, nil
}

// FromFlat restores Matrix from its flat, row-major form.
//
// The length of flat should be a positive perfect square.
func FromFlat(flat []int) (*Matrix, error) {
	n, ok := Side(len(flat))
	if !ok {
		return nil, xe.Wrapf(xe.ErrInvalidConfmat, "length %d is not a positive perfect square", len(flat))
	}
	data := make([]float64, len(flat))
	for i, v := range flat {
		if v < 0 {
			return nil, xe.Wrapf(xe.ErrInvalidConfmat, "negative count %d at %d", v, i)
		}
		data[i] = float64(v)
	}
	return &Matrix{numclass: n, dense: mat.NewDense(n, n, data)}, nil
}

// Side returns n when length == n*n for some positive n.
func Side(length int) (int, bool) {
	if length <= 0 {
		return 0, false
	}
	n := int(math.Round(math.Sqrt(float64(length))))
	return n, n*n == length
}

// Add counts up a pair of true and predicted class.
func (m *Matrix) Add(truth, predicted int) error {
	if truth < 0 || m.numclass <= truth {
		return xe.Wrapf(xe.ErrInvalidConfmat, "true label %d is out of range [0, %d)", truth, m.numclass)
	}
	if predicted < 0 || m.numclass <= predicted {
		return xe.Wrapf(xe.ErrInvalidConfmat, "predicted label %d is out of range [0, %d)", predicted, m.numclass)
	}
	m.dense.Set(truth, predicted, m.dense.At(truth, predicted)+1)
	return nil
}

func (m *Matrix) NumClass() int {
	return m.numclass
}

// At returns the count of instances of class `truth` predicted as `predicted`.
func (m *Matrix) At(truth, predicted int) int {
	return int(m.dense.At(truth, predicted))
}

// Flatten returns counts in row-major order.
func (m *Matrix) Flatten() []int {
	flat := make([]int, 0, m.numclass*m.numclass)
	for r := 0; r < m.numclass; r++ {
		for _, v := range m.dense.RawRowView(r) {
			flat = append(flat, int(v))
		}
	}
	return flat
}

// Total is the number of counted instances.
func (m *Matrix) Total() int {
	return int(mat.Sum(m.dense))
}

// Correct is the number of instances on the diagonal.
func (m *Matrix) Correct() int {
	return int(mat.Trace(m.dense))
}

// Accuracy is Correct / Total. It is 0 for an empty matrix.
func (m *Matrix) Accuracy() float64 {
	total := m.Total()
	if total == 0 {
		return 0
	}
	return float64(m.Correct()) / float64(total)
}

// Recall of the class: diagonal count over the row sum. 0 when the row is empty.
func (m *Matrix) Recall(class int) float64 {
	row := mat.Row(nil, class, m.dense)
	sum := floats.Sum(row)
	if sum == 0 {
		return 0
	}
	return row[class] / sum
}

// Precision of the class: diagonal count over the column sum. 0 when the column is empty.
func (m *Matrix) Precision(class int) float64 {
	col := mat.Col(nil, class, m.dense)
	sum := floats.Sum(col)
	if sum == 0 {
		return 0
	}
	return col[class] / sum
}
