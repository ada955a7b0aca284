//
// Copyright 2026 The FSSB Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

// Package ptrace implements the Tracee Memory & Register Interface (TMRI):
// a narrow, arch-aware wrapper over the kernel's process-tracing
// primitives. All arch-specific register knowledge lives behind the
// unexported getArg/setArg/syscallNumber/syscallReturn functions, each
// supplied by an arch-specific file (arch_amd64.go, arch_386.go); this
// file holds everything that doesn't vary by architecture.
package ptrace

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/fssb/fssb/domain"
)

var _ domain.TraceeIface = (*Tracer)(nil)

var errArgOutOfRange = fmt.Errorf("syscall argument index out of range")

// sysgoodBit is the bit the kernel sets in the reported stop signal when
// PTRACE_O_TRACESYSGOOD is in effect, tagging syscall-stops so they can be
// told apart from ordinary signal-delivery stops.
const sysgoodBit = 0x80

// wordSize is the number of bytes ReadCString and WriteCString hand to
// PtracePeekData/PtracePokeData per call (one machine word on x86_64, two
// on 32-bit x86).
const wordSize = 8

// Tracer implements domain.TraceeIface using the Linux ptrace(2) interface
// via the standard library's syscall package (the same package the
// stub-exec reference implementations in this codebase's research corpus
// use for PtraceAttach/PtraceSyscall/PtraceGetRegs/PtracePokeData). It
// carries no per-tracee state of its own; every operation takes the pid
// explicitly, matching the Syscall Interposer's call pattern.
type Tracer struct{}

// New returns a Tracer.
func New() *Tracer {
	return &Tracer{}
}

// AttachAfterExec implements domain.TraceeIface.
func (t *Tracer) AttachAfterExec(pid int) error {
	var ws syscall.WaitStatus
	if _, err := syscall.Wait4(pid, &ws, 0, nil); err != nil {
		return fmt.Errorf("waiting for tracee %d's initial stop: %w", pid, err)
	}
	if !ws.Stopped() {
		return fmt.Errorf("tracee %d did not stop as expected (status=%v)", pid, ws)
	}
	if err := syscall.PtraceSetOptions(pid, syscall.PTRACE_O_TRACESYSGOOD); err != nil {
		return fmt.Errorf("setting PTRACE_O_TRACESYSGOOD on %d: %w", pid, err)
	}
	return nil
}

// StepToNextSyscallStop implements domain.TraceeIface. It mirrors
// original_source/utils.c's syscall_breakpoint: resume with signal 0 and
// loop until either a syscall-stop or process exit is observed.
func (t *Tracer) StepToNextSyscallStop(pid int) (exited bool, status int, err error) {
	for {
		if err := syscall.PtraceSyscall(pid, 0); err != nil {
			return false, 0, fmt.Errorf("resuming tracee %d: %w", pid, err)
		}

		var ws syscall.WaitStatus
		if _, err := syscall.Wait4(pid, &ws, 0, nil); err != nil {
			return false, 0, fmt.Errorf("waiting for tracee %d: %w", pid, err)
		}

		switch {
		case ws.Exited():
			return true, ws.ExitStatus(), nil
		case ws.Signaled():
			return true, 128 + int(ws.Signal()), nil
		case ws.Stopped():
			if ws.StopSignal() == syscall.SIGTRAP|sysgoodBit {
				return false, 0, nil
			}
			// Any other signal-delivery stop is not ours to interpret;
			// loop past it (the next PtraceSyscall call above delivers 0).
			continue
		default:
			continue
		}
	}
}

func (t *Tracer) getRegs(pid int) (*syscall.PtraceRegs, error) {
	var regs syscall.PtraceRegs
	if err := syscall.PtraceGetRegs(pid, &regs); err != nil {
		return nil, fmt.Errorf("reading registers of %d: %w", pid, err)
	}
	return &regs, nil
}

// GetSyscallNumber implements domain.TraceeIface.
func (t *Tracer) GetSyscallNumber(pid int) (int64, error) {
	regs, err := t.getRegs(pid)
	if err != nil {
		return 0, err
	}
	return syscallNumber(regs), nil
}

// GetSyscallReturn implements domain.TraceeIface.
func (t *Tracer) GetSyscallReturn(pid int) (int64, error) {
	regs, err := t.getRegs(pid)
	if err != nil {
		return 0, err
	}
	return syscallReturn(regs), nil
}

// GetSyscallArg implements domain.TraceeIface.
func (t *Tracer) GetSyscallArg(pid int, n int) (uint64, error) {
	regs, err := t.getRegs(pid)
	if err != nil {
		return 0, err
	}
	return getArg(regs, n)
}

// SetSyscallArg implements domain.TraceeIface.
func (t *Tracer) SetSyscallArg(pid int, n int, value uint64) error {
	regs, err := t.getRegs(pid)
	if err != nil {
		return err
	}
	if err := setArg(regs, n, value); err != nil {
		return err
	}
	if err := syscall.PtraceSetRegs(pid, regs); err != nil {
		return fmt.Errorf("writing registers of %d: %w", pid, err)
	}
	return nil
}

// ReadCString implements domain.TraceeIface. It peeks one machine word at a
// time, growing the buffer geometrically, and stops as soon as a word
// containing a zero byte is read (or the kernel refuses the peek, in which
// case the partial string collected so far is returned, NUL-terminated).
func (t *Tracer) ReadCString(pid int, addr uint64) ([]byte, error) {
	var out []byte
	for {
		word := make([]byte, wordSize)
		n, err := syscall.PtracePeekData(pid, uintptr(addr)+uintptr(len(out)), word)
		if err != nil || n == 0 {
			out = append(out, 0)
			return out, nil
		}
		if idx := bytes.IndexByte(word[:n], 0); idx >= 0 {
			out = append(out, word[:idx+1]...)
			return out, nil
		}
		out = append(out, word[:n]...)
	}
}

// WriteCString implements domain.TraceeIface.
func (t *Tracer) WriteCString(pid int, addr uint64, data []byte) error {
	for off := 0; off < len(data); off += wordSize {
		end := off + wordSize
		if end > len(data) {
			end = len(data)
		}
		chunk := data[off:end]
		if n, err := syscall.PtracePokeData(pid, uintptr(addr)+uintptr(off), chunk); err != nil || n != len(chunk) {
			if err == nil {
				err = fmt.Errorf("short write: wrote %d of %d bytes", n, len(chunk))
			}
			return fmt.Errorf("writing tracee %d memory at %#x: %w", pid, addr, err)
		}
	}
	return nil
}

// DiscoverExecutableRegion implements domain.TraceeIface by reading the
// tracee's /proc/<pid>/maps listing and returning the base of the first
// entry whose permissions contain "r-xp".
func (t *Tracer) DiscoverExecutableRegion(pid int) (uint64, error) {
	f, err := os.Open(fmt.Sprintf("/proc/%d/maps", pid))
	if err != nil {
		return 0, fmt.Errorf("opening memory map of %d: %w", pid, err)
	}
	defer f.Close()

	return parseExecutableRegion(f)
}

// errNoRXRegion is returned when the tracee's memory map has no
// readable+executable private mapping to use as scratch space.
var errNoRXRegion = fmt.Errorf("no-rx-region: tracee has no r-xp memory mapping")

// parseExecutableRegion scans a /proc/<pid>/maps-formatted stream and
// returns the base address of the first r-xp entry. Factored out of
// DiscoverExecutableRegion so it can be exercised with an in-memory fixture.
func parseExecutableRegion(r io.Reader) (uint64, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		perms := fields[1]
		if !strings.Contains(perms, "r-xp") {
			continue
		}

		addrRange := fields[0]
		base, _, found := strings.Cut(addrRange, "-")
		if !found {
			continue
		}

		addr, err := strconv.ParseUint(base, 16, 64)
		if err != nil {
			continue
		}
		return addr, nil
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("scanning memory map: %w", err)
	}
	return 0, errNoRXRegion
}
