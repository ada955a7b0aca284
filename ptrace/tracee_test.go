//go:build linux && amd64
// +build linux,amd64

package ptrace

import (
	"strings"
	"syscall"
	"testing"
)

func TestParseExecutableRegion(t *testing.T) {
	maps := strings.Join([]string{
		"00400000-00401000 r--p 00000000 00:1f 123 /bin/cat",
		"00401000-00402000 r-xp 00001000 00:1f 123 /bin/cat",
		"00402000-00403000 r--p 00002000 00:1f 123 /bin/cat",
		"7ffff7a00000-7ffff7a21000 r-xp 00000000 00:1f 456 /lib/x86_64-linux-gnu/ld-2.31.so",
		"",
	}, "\n")

	base, err := parseExecutableRegion(strings.NewReader(maps))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if base != 0x401000 {
		t.Fatalf("expected base 0x401000, got %#x", base)
	}
}

func TestParseExecutableRegionNoMatch(t *testing.T) {
	maps := "00400000-00401000 r--p 00000000 00:1f 123 /bin/cat\n"

	if _, err := parseExecutableRegion(strings.NewReader(maps)); err != errNoRXRegion {
		t.Fatalf("expected errNoRXRegion, got %v", err)
	}
}

func TestGetSetArgRoundTrip(t *testing.T) {
	var regs syscall.PtraceRegs

	for n, want := range map[int]uint64{
		0: 0x1111,
		1: 0x2222,
		2: 0x3333,
		3: 0x4444,
		4: 0x5555,
		5: 0x6666,
	} {
		if err := setArg(&regs, n, want); err != nil {
			t.Fatalf("setArg(%d): %v", n, err)
		}
		got, err := getArg(&regs, n)
		if err != nil {
			t.Fatalf("getArg(%d): %v", n, err)
		}
		if got != want {
			t.Fatalf("arg %d: got %#x, want %#x", n, got, want)
		}
	}

	if _, err := getArg(&regs, 6); err != errArgOutOfRange {
		t.Fatalf("expected errArgOutOfRange for n=6, got %v", err)
	}
	if err := setArg(&regs, 6, 0); err != errArgOutOfRange {
		t.Fatalf("expected errArgOutOfRange for n=6, got %v", err)
	}
}

func TestSyscallNumberAndReturn(t *testing.T) {
	regs := syscall.PtraceRegs{Orig_rax: 2, Rax: 3}
	if got := syscallNumber(&regs); got != 2 {
		t.Fatalf("syscallNumber: got %d, want 2", got)
	}
	if got := syscallReturn(&regs); got != 3 {
		t.Fatalf("syscallReturn: got %d, want 3", got)
	}
}
