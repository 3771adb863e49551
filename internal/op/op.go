// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package op describes matrix operations sent to benchmark workers.
//
// An Operation borrows its operands: the matrices must outlive the
// Operation and must not be modified while it is in flight. Operations are
// small values and are copied through channels.
package op

import (
	"errors"
	"fmt"

	"code.hybscloud.com/lfchan/internal/matrix"
)

// ErrOperand is returned when an operation is built with missing or
// incompatible operands.
var ErrOperand = errors.New("op: invalid operand")

// Kind selects the arithmetic performed by an Operation.
type Kind uint8

const (
	Nop Kind = iota
	Sum
	Multiply
	Transpose
)

func (k Kind) String() string {
	switch k {
	case Nop:
		return "nop"
	case Sum:
		return "sum"
	case Multiply:
		return "multiply"
	case Transpose:
		return "transpose"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Kinds lists the non-trivial kinds in a stable order.
var Kinds = []Kind{Sum, Multiply, Transpose}

// Operation is a matrix operation over borrowed operands.
// The zero value is a Nop.
type Operation struct {
	Kind Kind
	LHS  *matrix.Matrix
	RHS  *matrix.Matrix // unused by Transpose
}

// NewSum returns an operation computing lhs + rhs.
func NewSum(lhs, rhs *matrix.Matrix) (Operation, error) {
	if lhs == nil || rhs == nil {
		return Operation{}, fmt.Errorf("%w: sum needs two matrices", ErrOperand)
	}
	if lhs.Rows() != rhs.Rows() || lhs.Cols() != rhs.Cols() {
		return Operation{}, fmt.Errorf("%w: sum of %dx%d and %dx%d", ErrOperand, lhs.Rows(), lhs.Cols(), rhs.Rows(), rhs.Cols())
	}
	return Operation{Kind: Sum, LHS: lhs, RHS: rhs}, nil
}

// NewMultiply returns an operation computing lhs × rhs.
func NewMultiply(lhs, rhs *matrix.Matrix) (Operation, error) {
	if lhs == nil || rhs == nil {
		return Operation{}, fmt.Errorf("%w: multiply needs two matrices", ErrOperand)
	}
	if lhs.Cols() != rhs.Rows() {
		return Operation{}, fmt.Errorf("%w: product of %dx%d and %dx%d", ErrOperand, lhs.Rows(), lhs.Cols(), rhs.Rows(), rhs.Cols())
	}
	return Operation{Kind: Multiply, LHS: lhs, RHS: rhs}, nil
}

// NewTranspose returns an operation computing the transpose of m.
func NewTranspose(m *matrix.Matrix) (Operation, error) {
	if m == nil {
		return Operation{}, fmt.Errorf("%w: transpose needs a matrix", ErrOperand)
	}
	return Operation{Kind: Transpose, LHS: m}, nil
}

// Execute performs the operation. A Nop returns (nil, nil).
func (o Operation) Execute() (*matrix.Matrix, error) {
	switch o.Kind {
	case Nop:
		return nil, nil
	case Sum:
		return o.LHS.Add(o.RHS)
	case Multiply:
		return o.LHS.Mul(o.RHS)
	case Transpose:
		return o.LHS.Transpose(), nil
	default:
		return nil, fmt.Errorf("%w: unknown %v", ErrOperand, o.Kind)
	}
}
