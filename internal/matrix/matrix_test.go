// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package matrix_test

import (
	"errors"
	"strings"
	"testing"

	"code.hybscloud.com/lfchan/internal/matrix"
)

func mustRows(t *testing.T, rows [][]float64) *matrix.Matrix {
	t.Helper()
	m, err := matrix.FromRows(rows)
	if err != nil {
		t.Fatalf("FromRows: %v", err)
	}
	return m
}

func TestAdd(t *testing.T) {
	a := mustRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	b := mustRows(t, [][]float64{{6, 5, 4}, {3, 2, 1}})
	want := mustRows(t, [][]float64{{7, 7, 7}, {7, 7, 7}})

	got, err := a.Add(b)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !got.Equal(want, 0) {
		t.Fatalf("Add: got %v, want %v", got, want)
	}

	if _, err := a.Add(a.Transpose()); !errors.Is(err, matrix.ErrShape) {
		t.Fatalf("Add 2x3 + 3x2: got %v, want ErrShape", err)
	}
}

func TestMul(t *testing.T) {
	a := mustRows(t, [][]float64{{1, 2}, {3, 4}, {5, 6}})
	b := mustRows(t, [][]float64{{1, 0, 2}, {0, 1, 3}})
	want := mustRows(t, [][]float64{{1, 2, 8}, {3, 4, 18}, {5, 6, 28}})

	got, err := a.Mul(b)
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	if !got.Equal(want, 1e-12) {
		t.Fatalf("Mul: got %v, want %v", got, want)
	}

	if _, err := a.Mul(a); !errors.Is(err, matrix.ErrShape) {
		t.Fatalf("Mul 3x2 × 3x2: got %v, want ErrShape", err)
	}
}

func TestTranspose(t *testing.T) {
	a := mustRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	want := mustRows(t, [][]float64{{1, 4}, {2, 5}, {3, 6}})
	if got := a.Transpose(); !got.Equal(want, 0) {
		t.Fatalf("Transpose: got %v, want %v", got, want)
	}
	if got := a.Transpose().Transpose(); !got.Equal(a, 0) {
		t.Fatal("Transpose twice: not the original")
	}
}

func TestRandomRange(t *testing.T) {
	m := matrix.Random(16, 16)
	for i := range m.Rows() {
		for j := range m.Cols() {
			if v := m.At(i, j); v < 0 || v >= 1 {
				t.Fatalf("At(%d, %d) = %g, want [0, 1)", i, j, v)
			}
		}
	}
}

func TestFromRowsRagged(t *testing.T) {
	if _, err := matrix.FromRows([][]float64{{1, 2}, {3}}); !errors.Is(err, matrix.ErrShape) {
		t.Fatalf("FromRows ragged: got %v, want ErrShape", err)
	}
}

func TestFormat(t *testing.T) {
	var sb strings.Builder
	if err := mustRows(t, [][]float64{{1, 2}, {3, 4}}).Format(&sb); err != nil {
		t.Fatalf("Format: %v", err)
	}
	if got, want := sb.String(), "1 2 \n3 4 \n"; got != want {
		t.Fatalf("Format: got %q, want %q", got, want)
	}
}
