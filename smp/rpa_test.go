package smp

import (
	"bytes"
	"testing"
)

func TestResolveRPA(t *testing.T) {
	addr := []byte{0x70, 0x81, 0x94, 0x0d, 0xfb, 0xaa}

	ok, err := ResolveRPA(testIRK, addr)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("failed to resolve address")
	}

	addr[5] ^= 0x01
	ok, err = ResolveRPA(testIRK, addr)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("resolved a tampered address")
	}

	// static random address, top bits 0b11
	ok, err = ResolveRPA(testIRK, []byte{0xf0, 0x81, 0x94, 0x0d, 0xfb, 0xaa})
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("resolved a static address")
	}
}

func TestGenerateRPA(t *testing.T) {
	addr, err := GenerateRPA(testIRK, []byte{0x70, 0x81, 0x94})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(addr, []byte{0x70, 0x81, 0x94, 0x0d, 0xfb, 0xaa}) {
		t.Fatalf("got %x", addr)
	}

	prand := []byte{0xff, 0x12, 0x34}
	addr, err = GenerateRPA(testIRK, prand)
	if err != nil {
		t.Fatal(err)
	}
	if addr[0]&0xc0 != 0x40 {
		t.Fatalf("type bits not set: %x", addr)
	}
	if prand[0] != 0xff {
		t.Fatal("prand modified in place")
	}

	ok, err := ResolveRPA(testIRK, addr)
	if err != nil || !ok {
		t.Fatalf("generated address does not resolve: %v", err)
	}

	if _, err := GenerateRPA(testIRK, []byte{1, 2}); err == nil {
		t.Fatal("expected length error")
	}
}
