// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfchan

import (
	"testing"
	"unsafe"
)

// TestRingSlotLayout checks a slot is the sequence, the element and the
// padding: 64 + sizeof(T) bytes rounded up to alignment.
func TestRingSlotLayout(t *testing.T) {
	checkSlot[uint64](t, "uint64")
	checkSlot[byte](t, "byte")
	checkSlot[[4]uint64](t, "[4]uint64")
}

func checkSlot[T any](t *testing.T, name string) {
	t.Helper()
	var s ringSlot[T]
	seq, elem := unsafe.Sizeof(s.seq), unsafe.Sizeof(s.data)
	if seq+unsafe.Sizeof(padShort{}) != 64 {
		t.Fatalf("ringSlot[%s]: sequence plus padding is %d bytes, want 64", name, seq+unsafe.Sizeof(padShort{}))
	}
	if off := unsafe.Offsetof(s.data); off != seq {
		t.Errorf("ringSlot[%s]: element at offset %d, want %d", name, off, seq)
	}
	size, align := unsafe.Sizeof(s), unsafe.Alignof(s)
	if want := (64 + elem + align - 1) / align * align; size != want {
		t.Errorf("ringSlot[%s]: got %d bytes, want %d", name, size, want)
	}
}
