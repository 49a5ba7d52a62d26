package memzero_test

import (
	"bytes"
	"testing"

	"linkbox/internal/util/memzero"
)

func TestZero(t *testing.T) {
	b := bytes.Repeat([]byte{0xAB}, 64)
	memzero.Zero(b)
	if !bytes.Equal(b, make([]byte, 64)) {
		t.Fatalf("buffer not zeroed: %x", b)
	}
	memzero.Zero(nil)
}
