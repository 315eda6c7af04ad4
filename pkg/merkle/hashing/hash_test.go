package hashing

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func TestEmpty(t *testing.T) {
	want, _ := hex.DecodeString("e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855")
	got := Empty()
	if !bytes.Equal(got.Bytes(), want) {
		t.Fatalf("Empty() = %x, want %x", got.Bytes(), want)
	}
}

func TestLeafSingleLeaf(t *testing.T) {
	data := bytes.Repeat([]byte{0x01}, 16)
	got := Leaf(data)

	h := sha256.New()
	h.Write([]byte{0x00})
	h.Write(data)
	want := h.Sum(nil)

	if !bytes.Equal(got.Bytes(), want) {
		t.Fatalf("Leaf(...) = %x, want %x", got.Bytes(), want)
	}
}

func TestZero(t *testing.T) {
	if !Zero().IsZero() {
		t.Fatal("Zero() is not zero")
	}
	if Empty().IsZero() {
		t.Fatal("Empty() must not equal Zero()")
	}
}
