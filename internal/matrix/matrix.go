// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package matrix provides the dense float64 matrices used as benchmark
// workload.
package matrix

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/valyala/fastrand"
)

// ErrShape is returned when operand dimensions do not fit an operation.
var ErrShape = errors.New("matrix: shape mismatch")

// Matrix is a dense row-major matrix.
type Matrix struct {
	rows, cols int
	data       []float64
}

// New returns a zero rows×cols matrix. Panics if either dimension is
// negative.
func New(rows, cols int) *Matrix {
	if rows < 0 || cols < 0 {
		panic("matrix: negative dimension")
	}
	return &Matrix{rows: rows, cols: cols, data: make([]float64, rows*cols)}
}

// FromRows builds a matrix from row slices of equal length.
func FromRows(rows [][]float64) (*Matrix, error) {
	if len(rows) == 0 {
		return New(0, 0), nil
	}
	m := New(len(rows), len(rows[0]))
	for i, row := range rows {
		if len(row) != m.cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrShape, i, len(row), m.cols)
		}
		copy(m.data[i*m.cols:], row)
	}
	return m, nil
}

// Random returns a rows×cols matrix with elements uniform in [0, 1).
func Random(rows, cols int) *Matrix {
	m := New(rows, cols)
	for i := range m.data {
		m.data[i] = float64(fastrand.Uint32()) / (1 << 32)
	}
	return m
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// At returns the element at row i, column j.
func (m *Matrix) At(i, j int) float64 { return m.data[i*m.cols+j] }

// Set sets the element at row i, column j.
func (m *Matrix) Set(i, j int, v float64) { m.data[i*m.cols+j] = v }

// Add returns m + other.
func (m *Matrix) Add(other *Matrix) (*Matrix, error) {
	if m.rows != other.rows || m.cols != other.cols {
		return nil, fmt.Errorf("%w: %dx%d + %dx%d", ErrShape, m.rows, m.cols, other.rows, other.cols)
	}
	res := New(m.rows, m.cols)
	for i := range m.data {
		res.data[i] = m.data[i] + other.data[i]
	}
	return res, nil
}

// Mul returns the matrix product m × other.
func (m *Matrix) Mul(other *Matrix) (*Matrix, error) {
	if m.cols != other.rows {
		return nil, fmt.Errorf("%w: %dx%d × %dx%d", ErrShape, m.rows, m.cols, other.rows, other.cols)
	}
	res := New(m.rows, other.cols)
	for i := range m.rows {
		row := res.data[i*res.cols : (i+1)*res.cols]
		for k := range m.cols {
			a := m.data[i*m.cols+k]
			for j, b := range other.data[k*other.cols : (k+1)*other.cols] {
				row[j] += a * b
			}
		}
	}
	return res, nil
}

// Transpose returns the transpose of m.
func (m *Matrix) Transpose() *Matrix {
	res := New(m.cols, m.rows)
	for i := range m.rows {
		for j := range m.cols {
			res.data[j*res.cols+i] = m.data[i*m.cols+j]
		}
	}
	return res
}

// Equal reports whether m and other have the same shape and every pair of
// elements differs by at most eps.
func (m *Matrix) Equal(other *Matrix, eps float64) bool {
	if m.rows != other.rows || m.cols != other.cols {
		return false
	}
	for i := range m.data {
		if math.Abs(m.data[i]-other.data[i]) > eps {
			return false
		}
	}
	return true
}

// Format writes m to w, one row per line.
func (m *Matrix) Format(w io.Writer) error {
	for i := range m.rows {
		for j := range m.cols {
			if _, err := fmt.Fprintf(w, "%g ", m.At(i, j)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}
