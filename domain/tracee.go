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

package domain

// TraceeIface is the Tracee Memory & Register Interface (TMRI). It owns all
// low-level, arch-specific knowledge of the kernel's debugging primitives so
// that the Syscall Interposer never has to know whether it's running on
// x86 or x86_64.
type TraceeIface interface {
	// AttachAfterExec waits for the tracee's initial stop (raised right
	// after it requested tracing and before it reaches its target program's
	// first instruction) and configures the trace session so that syscall
	// stops are distinguishable from other signal-delivery stops.
	AttachAfterExec(pid int) error

	// StepToNextSyscallStop resumes the tracee and blocks until the next
	// syscall-entry or syscall-exit stop. Non-syscall signal-delivery stops
	// are skipped by resuming with signal 0, so the pending signal is not
	// delivered to the tracee. exited reports whether the
	// tracee ran to completion instead of stopping again; status is only
	// meaningful when exited is true.
	StepToNextSyscallStop(pid int) (exited bool, status int, err error)

	// GetSyscallNumber reads the kernel-preserved original syscall number
	// register (valid at syscall-entry).
	GetSyscallNumber(pid int) (int64, error)

	// GetSyscallReturn reads the syscall result register (valid at
	// syscall-exit).
	GetSyscallReturn(pid int) (int64, error)

	// GetSyscallArg reads syscall argument n (0..5) in ABI order.
	GetSyscallArg(pid int, n int) (uint64, error)

	// SetSyscallArg writes syscall argument n (0..5) in ABI order.
	SetSyscallArg(pid int, n int, value uint64) error

	// ReadCString copies a NUL-terminated byte sequence out of the tracee's
	// address space starting at addr. A kernel peek failure truncates (but
	// still NUL-terminates) the result instead of failing the call.
	ReadCString(pid int, addr uint64) ([]byte, error)

	// WriteCString writes bytes (which must already carry a trailing zero)
	// into the tracee's address space at addr.
	WriteCString(pid int, addr uint64, bytes []byte) error

	// DiscoverExecutableRegion returns the base address of the tracee's
	// first read+execute private memory mapping.
	DiscoverExecutableRegion(pid int) (uint64, error)
}
