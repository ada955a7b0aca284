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

// Package interpose implements the Syscall Interposer (SI): the state
// machine that drives a traced process one syscall at a time, redirecting
// filesystem operations into the sandbox. It is the core of fssb, the way
// the teacher's handler package was the core of its procfs emulation - a
// dispatch table keyed by syscall number instead of by /proc path.
package interpose

import (
	"github.com/sirupsen/logrus"

	"github.com/fssb/fssb/domain"
	"github.com/fssb/fssb/scratch"
)

var _ domain.InterposerIface = (*Interposer)(nil)

// pending carries state about a syscall from its entry stop to its exit
// stop: which argument register (if any) was overwritten to redirect the
// call, and what it must be restored to before the tracee is allowed to
// observe its own registers again (the Transparency Invariant, TI).
type pending struct {
	sysno      int64
	redirected bool
	argIndex   int
	savedArg   uint64
	rec        *domain.Proxyfile
	// extra is a second redirected argument, used by rename (old and new
	// paths may both need to move into the sandbox).
	extra bool
	argIndex2 int
	savedArg2 uint64
}

// Interposer drives one tracee through its entire lifetime: attach, then
// alternate entry/exit syscall stops until the tracee exits.
type Interposer struct {
	tracee   domain.TraceeIface
	registry domain.RegistryIface
	scratch  domain.ScratchAllocatorIface
	mainLog  *logrus.Logger
	debugLog *logrus.Logger

	slots     domain.SlotTable
	haveSlots bool

	// atEntry toggles on every syscall-stop: ptrace does not distinguish
	// syscall-entry from syscall-exit, so the interposer must track parity
	// itself, exactly as the reference implementation's main loop does.
	atEntry bool
	cur     pending
}

// New returns an Interposer ready to drive pid (already attached) through
// its syscalls.
func New(tracee domain.TraceeIface, registry domain.RegistryIface, scratch domain.ScratchAllocatorIface, mainLog, debugLog *logrus.Logger) *Interposer {
	return &Interposer{
		tracee:   tracee,
		registry: registry,
		scratch:  scratch,
		mainLog:  mainLog,
		debugLog: debugLog,
		atEntry:  true,
	}
}

// Run implements domain.InterposerIface. It loops stepping the tracee to
// its next syscall stop, dispatching to the entry or exit half of the
// matching handler, until the tracee exits or is killed by a signal.
func (ip *Interposer) Run(pid int) (int, error) {
	for {
		exited, status, err := ip.tracee.StepToNextSyscallStop(pid)
		if err != nil {
			return 0, err
		}
		if exited {
			return status, nil
		}

		sysno, err := ip.tracee.GetSyscallNumber(pid)
		if err != nil {
			return 0, err
		}

		if ip.atEntry {
			ip.cur = pending{sysno: sysno}
			if h, ok := dispatch[sysno]; ok && h.enter != nil {
				if err := h.enter(ip, pid); err != nil {
					ip.debugLog.Debugf("fssb: enter handler for syscall %d failed: %v", sysno, err)
				}
			}
		} else {
			if h, ok := dispatch[ip.cur.sysno]; ok && h.exit != nil {
				if err := h.exit(ip, pid); err != nil {
					ip.debugLog.Debugf("fssb: exit handler for syscall %d failed: %v", ip.cur.sysno, err)
				}
			}
			ip.restoreArgs(pid)
		}
		ip.atEntry = !ip.atEntry
	}
}

// restoreArgs undoes whatever argument redirection the entry handler
// performed, satisfying the Transparency Invariant: once a handled syscall
// completes, all six argument registers must be bit-identical to what the
// tracee itself set.
func (ip *Interposer) restoreArgs(pid int) {
	if ip.cur.redirected {
		if err := ip.tracee.SetSyscallArg(pid, ip.cur.argIndex, ip.cur.savedArg); err != nil {
			ip.debugLog.Debugf("fssb: failed to restore arg %d: %v", ip.cur.argIndex, err)
		}
	}
	if ip.cur.extra {
		if err := ip.tracee.SetSyscallArg(pid, ip.cur.argIndex2, ip.cur.savedArg2); err != nil {
			ip.debugLog.Debugf("fssb: failed to restore arg %d: %v", ip.cur.argIndex2, err)
		}
	}
}

// ensureSlots discovers the tracee's scratch write slots on first use. It is
// called lazily rather than immediately after attach because the tracee may
// still be inside the loader (see AttachAfterExec and execve's handler),
// and is re-run after every execve since the address space is replaced.
func (ip *Interposer) ensureSlots(pid int) error {
	if ip.haveSlots {
		return nil
	}
	slots, err := ip.scratch.DiscoverSlots(pid)
	if err != nil {
		return err
	}
	ip.slots = slots
	ip.haveSlots = true
	return nil
}

// redirectPath writes replacement, NUL-terminated, into the scratch slot
// reserved for argIndex and overwrites the syscall's argIndex-th register
// to point at it, recording the original
// value so restoreArgs can undo it once the syscall completes. A
// replacement that does not fit in a write slot is declined rather than
// written (it would otherwise overflow into the neighboring slot): the
// syscall is logged and left to run unredirected against its original
// argument.
func (ip *Interposer) redirectPath(pid int, argIndex int, replacement string) error {
	if !scratch.Fits(replacement) {
		ip.debugLog.Debugf("fssb: path too long for scratch slot, leaving unredirected: %s", replacement)
		return nil
	}
	if err := ip.ensureSlots(pid); err != nil {
		return err
	}
	orig, err := ip.tracee.GetSyscallArg(pid, argIndex)
	if err != nil {
		return err
	}
	slot := ip.slots[argIndex]
	if err := ip.tracee.WriteCString(pid, slot, append([]byte(replacement), 0)); err != nil {
		return err
	}
	if err := ip.tracee.SetSyscallArg(pid, argIndex, slot); err != nil {
		return err
	}
	ip.cur.redirected = true
	ip.cur.argIndex = argIndex
	ip.cur.savedArg = orig
	return nil
}

// redirectSecondPath is redirectPath for a second argument in the same
// syscall (rename's destination), using the next scratch slot so the two
// writes do not overlap. Subject to the same length guard as redirectPath.
func (ip *Interposer) redirectSecondPath(pid int, argIndex int, replacement string) error {
	if !scratch.Fits(replacement) {
		ip.debugLog.Debugf("fssb: path too long for scratch slot, leaving unredirected: %s", replacement)
		return nil
	}
	if err := ip.ensureSlots(pid); err != nil {
		return err
	}
	orig, err := ip.tracee.GetSyscallArg(pid, argIndex)
	if err != nil {
		return err
	}
	slot := ip.slots[1]
	if err := ip.tracee.WriteCString(pid, slot, append([]byte(replacement), 0)); err != nil {
		return err
	}
	if err := ip.tracee.SetSyscallArg(pid, argIndex, slot); err != nil {
		return err
	}
	ip.cur.extra = true
	ip.cur.argIndex2 = argIndex
	ip.cur.savedArg2 = orig
	return nil
}

func (ip *Interposer) readPathArg(pid int, argIndex int) (string, error) {
	addr, err := ip.tracee.GetSyscallArg(pid, argIndex)
	if err != nil {
		return "", err
	}
	b, err := ip.tracee.ReadCString(pid, addr)
	if err != nil {
		return "", err
	}
	// ReadCString's result carries the trailing NUL; the path does not.
	if n := len(b); n > 0 && b[n-1] == 0 {
		b = b[:n-1]
	}
	return string(b), nil
}
