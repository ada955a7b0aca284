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

//go:build linux && amd64
// +build linux,amd64

package ptrace

import "syscall"

// x86_64 syscall ABI argument registers, in order: rdi, rsi, rdx, r10, r8, r9.

func getArg(regs *syscall.PtraceRegs, n int) (uint64, error) {
	switch n {
	case 0:
		return regs.Rdi, nil
	case 1:
		return regs.Rsi, nil
	case 2:
		return regs.Rdx, nil
	case 3:
		return regs.R10, nil
	case 4:
		return regs.R8, nil
	case 5:
		return regs.R9, nil
	default:
		return 0, errArgOutOfRange
	}
}

func setArg(regs *syscall.PtraceRegs, n int, v uint64) error {
	switch n {
	case 0:
		regs.Rdi = v
	case 1:
		regs.Rsi = v
	case 2:
		regs.Rdx = v
	case 3:
		regs.R10 = v
	case 4:
		regs.R8 = v
	case 5:
		regs.R9 = v
	default:
		return errArgOutOfRange
	}
	return nil
}

func syscallNumber(regs *syscall.PtraceRegs) int64 {
	return int64(regs.Orig_rax)
}

func syscallReturn(regs *syscall.PtraceRegs) int64 {
	return int64(regs.Rax)
}
