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

// enterExit logs the tracee's requested exit code. exit/exit_group are
// never redirected; they carry no path argument.
func enterExit(ip *Interposer, pid int) error {
	code, err := ip.tracee.GetSyscallArg(pid, 0)
	if err != nil {
		return err
	}
	ip.debugLog.Debugf("fssb: pid %d requested exit(%d)", pid, int32(code))
	return nil
}

// exitExecve runs at the exit stop of a successful execve(2). The tracee's
// address space has just been replaced, so any previously discovered
// scratch slots are invalid; the next redirect lazily rediscovers them
// against the new image.
func exitExecve(ip *Interposer, pid int) error {
	ip.haveSlots = false
	return nil
}
