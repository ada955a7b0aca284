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

// syscallHandler splits a syscall's handling across its entry and exit
// stops. Either half may be nil, in which case the syscall passes through
// untouched at that stop.
type syscallHandler struct {
	enter func(ip *Interposer, pid int) error
	exit  func(ip *Interposer, pid int) error
}

// dispatch maps a syscall number to the handler that redirects it into the
// sandbox. Syscalls with no entry are passed straight through to the real
// filesystem.
var dispatch = map[int64]syscallHandler{
	unix.SYS_OPEN:    {enter: enterOpen, exit: exitOpen},
	unix.SYS_CREAT:   {enter: enterCreat, exit: exitOpen},
	unix.SYS_UNLINK:  {enter: enterUnlink},
	unix.SYS_UNLINKAT: {enter: enterUnlinkat},
	unix.SYS_RENAME:  {enter: enterRename},
	unix.SYS_STAT:    {enter: enterStat},
	unix.SYS_LSTAT:   {enter: enterStat},
	unix.SYS_ACCESS:  {enter: enterAccess},
	unix.SYS_EXIT:       {enter: enterExit},
	unix.SYS_EXIT_GROUP: {enter: enterExit},
	unix.SYS_EXECVE:     {exit: exitExecve},
}
