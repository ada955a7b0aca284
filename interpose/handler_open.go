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

package interpose

import "golang.org/x/sys/unix"

const writeIntentMask = unix.O_WRONLY | unix.O_RDWR | unix.O_CREAT | unix.O_TRUNC | unix.O_APPEND

// enterOpen redirects open(2) into the sandbox. A path already tracked by
// the registry is always redirected. An untracked path is only brought
// into the sandbox (registered and redirected) if the open carries
// write intent; a read-only open of an untracked path passes through to
// the real filesystem (Open Question Q1: never dereference a nil record).
func enterOpen(ip *Interposer, pid int) error {
	path, err := ip.readPathArg(pid, 0)
	if err != nil {
		return err
	}
	flags, err := ip.tracee.GetSyscallArg(pid, 1)
	if err != nil {
		return err
	}

	rec := ip.registry.Lookup(path)
	if rec == nil {
		if int64(flags)&writeIntentMask == 0 {
			return nil
		}
		rec = ip.registry.Insert(path)
	}
	return ip.redirectPath(pid, 0, rec.ProxyPath)
}

// enterCreat redirects creat(2), which always carries write intent.
func enterCreat(ip *Interposer, pid int) error {
	path, err := ip.readPathArg(pid, 0)
	if err != nil {
		return err
	}
	rec := ip.registry.Lookup(path)
	if rec == nil {
		rec = ip.registry.Insert(path)
	}
	return ip.redirectPath(pid, 0, rec.ProxyPath)
}

func exitOpen(ip *Interposer, pid int) error {
	ret, err := ip.tracee.GetSyscallReturn(pid)
	if err != nil {
		return err
	}
	ip.debugLog.Debugf("fssb: pid %d open/creat returned %d", pid, ret)
	return nil
}
