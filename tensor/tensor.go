// Package tensor describes the channel (non-spatial) structure of a pixel.
//
// A pixel holds one or more samples. A Tensor records how many there are and
// how they are arranged: as a column or row vector, or as one of several
// matrix layouts. A scalar pixel is a one-element column vector.
package tensor

import (
	"fmt"

	"github.com/hupe1980/ndimage/internal/errs"
)

// Shape tags the arrangement of tensor elements.
type Shape uint8

// Tensor shapes.
const (
	ColumnVector      Shape = iota // n×1
	RowVector                      // 1×n
	ColumnMajorMatrix              // r×c, stored column-wise
	RowMajorMatrix                 // r×c, stored row-wise
	DiagonalMatrix                 // n×n, only the diagonal is stored
	SymmetricMatrix                // n×n, upper triangle stored (n(n+1)/2 elements)
	UpperTriangular                // n×n, upper triangle stored
	LowerTriangular                // n×n, lower triangle stored
)

var shapeNames = [...]string{
	ColumnVector:      "column vector",
	RowVector:         "row vector",
	ColumnMajorMatrix: "column-major matrix",
	RowMajorMatrix:    "row-major matrix",
	DiagonalMatrix:    "diagonal matrix",
	SymmetricMatrix:   "symmetric matrix",
	UpperTriangular:   "upper triangular matrix",
	LowerTriangular:   "lower triangular matrix",
}

// String returns the shape name.
func (s Shape) String() string {
	if int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return "unknown"
}

// Tensor is the shape descriptor for one pixel. The zero value is invalid;
// use Scalar, Vector or a New* constructor.
type Tensor struct {
	shape    Shape
	elements int
	rows     int
}

// Scalar returns the descriptor of a single-sample pixel.
func Scalar() Tensor {
	return Tensor{shape: ColumnVector, elements: 1, rows: 1}
}

// Vector returns an n-element column vector descriptor. n must be positive.
func Vector(n int) (Tensor, error) {
	if n < 1 {
		return Tensor{}, errs.Parameterf("%s: %d tensor elements", errs.ParameterOutOfRange, n)
	}
	return Tensor{shape: ColumnVector, elements: n, rows: n}, nil
}

// New returns a descriptor of the given shape. For vectors and diagonal or
// triangular matrices only one of rows/cols is meaningful; for full
// matrices both are. New validates that the shape is consistent.
func New(shape Shape, rows, cols int) (Tensor, error) {
	if rows < 1 || cols < 1 {
		return Tensor{}, errs.Parameterf("%s: tensor %dx%d", errs.ParameterOutOfRange, rows, cols)
	}
	switch shape {
	case ColumnVector:
		if cols != 1 {
			return Tensor{}, errs.Parameter("Column vector must have one column")
		}
		return Tensor{shape: shape, elements: rows, rows: rows}, nil
	case RowVector:
		if rows != 1 {
			return Tensor{}, errs.Parameter("Row vector must have one row")
		}
		return Tensor{shape: shape, elements: cols, rows: 1}, nil
	case ColumnMajorMatrix, RowMajorMatrix:
		t := Tensor{shape: shape, elements: rows * cols, rows: rows}
		return t.normalize(), nil
	case DiagonalMatrix, SymmetricMatrix, UpperTriangular, LowerTriangular:
		if rows != cols {
			return Tensor{}, errs.Parameterf("%s matrix must be square", shape)
		}
		n := rows
		if shape == DiagonalMatrix {
			return Tensor{shape: shape, elements: n, rows: n}, nil
		}
		return Tensor{shape: shape, elements: n * (n + 1) / 2, rows: n}, nil
	default:
		return Tensor{}, errs.Parameter(errs.InvalidFlag)
	}
}

// Matrix returns a column-major rows×cols matrix descriptor.
func Matrix(rows, cols int) (Tensor, error) {
	return New(ColumnMajorMatrix, rows, cols)
}

// normalize collapses degenerate matrices into vectors.
func (t Tensor) normalize() Tensor {
	switch {
	case t.elements == 1:
		return Scalar()
	case t.rows == t.elements:
		return Tensor{shape: ColumnVector, elements: t.elements, rows: t.elements}
	case t.rows == 1:
		return Tensor{shape: RowVector, elements: t.elements, rows: 1}
	}
	return t
}

// Shape returns the shape tag.
func (t Tensor) Shape() Shape { return t.shape }

// Elements returns the number of stored samples per pixel.
func (t Tensor) Elements() int { return t.elements }

// Rows returns the number of tensor rows.
func (t Tensor) Rows() int { return t.rows }

// Columns returns the number of tensor columns.
func (t Tensor) Columns() int {
	switch t.shape {
	case ColumnVector:
		return 1
	case RowVector:
		return t.elements
	case ColumnMajorMatrix, RowMajorMatrix:
		if t.rows == 0 {
			return 0
		}
		return t.elements / t.rows
	default:
		return t.rows
	}
}

// IsValid reports whether t was built by a constructor.
func (t Tensor) IsValid() bool { return t.elements > 0 }

// IsScalar reports whether the pixel has exactly one sample.
func (t Tensor) IsScalar() bool { return t.elements == 1 }

// IsVector reports whether the tensor is a row or column vector.
func (t Tensor) IsVector() bool {
	return t.shape == ColumnVector || t.shape == RowVector
}

// Equal reports whether both descriptors have the same shape, element
// count and rows.
func (t Tensor) Equal(other Tensor) bool {
	return t == other
}

// Transpose returns the transposed descriptor. Vectors swap orientation,
// full matrices swap storage order, triangular matrices swap upper/lower.
func (t Tensor) Transpose() Tensor {
	switch t.shape {
	case ColumnVector:
		if t.elements == 1 {
			return t
		}
		return Tensor{shape: RowVector, elements: t.elements, rows: 1}
	case RowVector:
		return Tensor{shape: ColumnVector, elements: t.elements, rows: t.elements}
	case ColumnMajorMatrix:
		return Tensor{shape: RowMajorMatrix, elements: t.elements, rows: t.Columns()}
	case RowMajorMatrix:
		return Tensor{shape: ColumnMajorMatrix, elements: t.elements, rows: t.Columns()}
	case UpperTriangular:
		return Tensor{shape: LowerTriangular, elements: t.elements, rows: t.rows}
	case LowerTriangular:
		return Tensor{shape: UpperTriangular, elements: t.elements, rows: t.rows}
	default:
		return t
	}
}

// String formats the tensor as "rows x columns shape".
func (t Tensor) String() string {
	if t.IsScalar() {
		return "scalar"
	}
	return fmt.Sprintf("%dx%d %s", t.rows, t.Columns(), t.shape)
}
