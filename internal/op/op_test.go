// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package op_test

import (
	"errors"
	"testing"

	"code.hybscloud.com/lfchan/internal/matrix"
	"code.hybscloud.com/lfchan/internal/op"
)

func TestConstructorsValidate(t *testing.T) {
	a := matrix.New(2, 3)
	b := matrix.New(3, 2)

	tests := []struct {
		name string
		err  error
	}{
		{"sum nil", second(op.NewSum(a, nil))},
		{"sum shape", second(op.NewSum(a, b))},
		{"multiply nil", second(op.NewMultiply(nil, b))},
		{"multiply shape", second(op.NewMultiply(a, a))},
		{"transpose nil", second(op.NewTranspose(nil))},
	}
	for _, tt := range tests {
		if !errors.Is(tt.err, op.ErrOperand) {
			t.Errorf("%s: got %v, want ErrOperand", tt.name, tt.err)
		}
	}
}

func second(_ op.Operation, err error) error { return err }

func TestExecute(t *testing.T) {
	a := matrix.Random(3, 4)
	b := matrix.Random(3, 4)
	c := matrix.Random(4, 2)

	sum, err := op.NewSum(a, b)
	if err != nil {
		t.Fatalf("NewSum: %v", err)
	}
	got, err := sum.Execute()
	if err != nil {
		t.Fatalf("sum.Execute: %v", err)
	}
	want, _ := a.Add(b)
	if !got.Equal(want, 0) {
		t.Fatal("sum.Execute: result differs from Add")
	}

	mul, err := op.NewMultiply(a, c)
	if err != nil {
		t.Fatalf("NewMultiply: %v", err)
	}
	got, err = mul.Execute()
	if err != nil {
		t.Fatalf("mul.Execute: %v", err)
	}
	if got.Rows() != 3 || got.Cols() != 2 {
		t.Fatalf("mul.Execute: got %dx%d, want 3x2", got.Rows(), got.Cols())
	}

	tr, err := op.NewTranspose(a)
	if err != nil {
		t.Fatalf("NewTranspose: %v", err)
	}
	got, err = tr.Execute()
	if err != nil || !got.Equal(a.Transpose(), 0) {
		t.Fatalf("tr.Execute: got (%v, %v)", got, err)
	}

	var nop op.Operation
	if got, err := nop.Execute(); got != nil || err != nil {
		t.Fatalf("Nop.Execute: got (%v, %v), want (nil, nil)", got, err)
	}
}

func TestKindString(t *testing.T) {
	for k, want := range map[op.Kind]string{
		op.Nop:       "nop",
		op.Sum:       "sum",
		op.Multiply:  "multiply",
		op.Transpose: "transpose",
		op.Kind(9):   "kind(9)",
	} {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", uint8(k), got, want)
		}
	}
}
