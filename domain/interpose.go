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

// InterposerIface is the Syscall Interposer (SI): the state machine that
// drives a traced child across syscall-stop boundaries, dispatches
// per-syscall handlers, and orchestrates the PFR and TMRI on the child's
// behalf. Run blocks until the tracee exits and returns the exit status the
// kernel reported for it.
type InterposerIface interface {
	Run(pid int) (exitStatus int, err error)
}
