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

// Package scratch implements the Scratch Memory Allocator (SMA): it carves
// six fixed-size write slots out of the tracee's first read+execute memory
// mapping, discovered via the TMRI and reused until the tracee's next
// execve. Writing rewritten paths into memory the tracee's own code never
// reads means the Syscall Interposer never has to restore the bytes it
// overwrote there, only the argument registers that pointed at them.
package scratch

import (
	"fmt"

	"github.com/fssb/fssb/domain"
)

var _ domain.ScratchAllocatorIface = (*Allocator)(nil)

// Allocator implements domain.ScratchAllocatorIface by delegating region
// discovery to a TMRI and doing the slot-address arithmetic itself.
type Allocator struct {
	tracee domain.TraceeIface
}

// New returns an Allocator that discovers scratch regions through tracee.
func New(tracee domain.TraceeIface) *Allocator {
	return &Allocator{tracee: tracee}
}

// DiscoverSlots implements domain.ScratchAllocatorIface.
func (a *Allocator) DiscoverSlots(pid int) (domain.SlotTable, error) {
	var slots domain.SlotTable

	base, err := a.tracee.DiscoverExecutableRegion(pid)
	if err != nil {
		return slots, fmt.Errorf("discovering scratch region for %d: %w", pid, err)
	}

	for i := 0; i < domain.NumWriteSlots; i++ {
		slots[i] = base + uint64(i)*domain.WriteSlotSize
	}
	return slots, nil
}

// Fits reports whether path (including its trailing NUL) fits in a single
// write slot.
func Fits(path string) bool {
	return len(path)+1 <= domain.WriteSlotSize
}
