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

//go:build linux && 386
// +build linux,386

package ptrace

import "syscall"

// x86 (32-bit) syscall ABI argument registers, in order: ebx, ecx, edx,
// esi, edi, ebp.

func getArg(regs *syscall.PtraceRegs, n int) (uint64, error) {
	switch n {
	case 0:
		return uint64(uint32(regs.Ebx)), nil
	case 1:
		return uint64(uint32(regs.Ecx)), nil
	case 2:
		return uint64(uint32(regs.Edx)), nil
	case 3:
		return uint64(uint32(regs.Esi)), nil
	case 4:
		return uint64(uint32(regs.Edi)), nil
	case 5:
		return uint64(uint32(regs.Ebp)), nil
	default:
		return 0, errArgOutOfRange
	}
}

func setArg(regs *syscall.PtraceRegs, n int, v uint64) error {
	switch n {
	case 0:
		regs.Ebx = int32(uint32(v))
	case 1:
		regs.Ecx = int32(uint32(v))
	case 2:
		regs.Edx = int32(uint32(v))
	case 3:
		regs.Esi = int32(uint32(v))
	case 4:
		regs.Edi = int32(uint32(v))
	case 5:
		regs.Ebp = int32(uint32(v))
	default:
		return errArgOutOfRange
	}
	return nil
}

func syscallNumber(regs *syscall.PtraceRegs) int64 {
	return int64(regs.Orig_eax)
}

func syscallReturn(regs *syscall.PtraceRegs) int64 {
	return int64(regs.Eax)
}
