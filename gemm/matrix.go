// Copyright 2025 gemmflux Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package gemm

import (
	"fmt"
	"math"

	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
)

// Matrix is a dense row-major float32 matrix: element (i, j) is
// Data[i*Cols+j].
type Matrix struct {
	Rows, Cols int
	Data       []float32
}

// NewMatrix returns a zeroed rows x cols matrix. It panics on negative
// dimensions.
func NewMatrix(rows, cols int) Matrix {
	if rows < 0 || cols < 0 {
		exceptions.Panicf("gemm.NewMatrix: negative dimensions [%d, %d]", rows, cols)
	}
	return Matrix{Rows: rows, Cols: cols, Data: make([]float32, rows*cols)}
}

// FromRows copies a slice of equal-length rows into a new Matrix.
func FromRows(rows [][]float32) (Matrix, error) {
	if len(rows) == 0 {
		return Matrix{}, nil
	}
	cols := len(rows[0])
	m := NewMatrix(len(rows), cols)
	for i, row := range rows {
		if len(row) != cols {
			return Matrix{}, errors.Wrapf(ErrShapeMismatch, "row %d has %d elements, row 0 has %d", i, len(row), cols)
		}
		copy(m.Data[i*cols:], row)
	}
	return m, nil
}

// Shape returns (Rows, Cols).
func (m Matrix) Shape() (rows, cols int) {
	return m.Rows, m.Cols
}

// At returns element (i, j).
func (m Matrix) At(i, j int) float32 {
	return m.Data[i*m.Cols+j]
}

// Set assigns element (i, j).
func (m Matrix) Set(i, j int, v float32) {
	m.Data[i*m.Cols+j] = v
}

// Row returns row i as a view into Data.
func (m Matrix) Row(i int) []float32 {
	return m.Data[i*m.Cols : (i+1)*m.Cols]
}

// Validate checks that the dimensions are non-negative, that Rows*Cols fits
// in an int and that Data holds exactly Rows*Cols elements.
func (m Matrix) Validate() error {
	if m.Rows < 0 || m.Cols < 0 {
		return errors.Wrapf(ErrShapeMismatch, "negative dimensions [%d, %d]", m.Rows, m.Cols)
	}
	if m.Rows > 0 && m.Cols > math.MaxInt/m.Rows {
		return errors.Wrapf(ErrShapeMismatch, "[%d, %d] overflows int", m.Rows, m.Cols)
	}
	if len(m.Data) != m.Rows*m.Cols {
		return errors.Wrapf(ErrShapeMismatch, "[%d, %d] matrix holds %d elements", m.Rows, m.Cols, len(m.Data))
	}
	return nil
}

// String implements fmt.Stringer with the shape only.
func (m Matrix) String() string {
	return fmt.Sprintf("Matrix[%d, %d]", m.Rows, m.Cols)
}
