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

// enterRename always redirects both sides of rename(2) into the sandbox -
// the source's proxy path (whether or not it was ever registered) is
// renamed to the destination's proxy path, so the real filesystem is never
// touched regardless of whether the tracee had previously written to
// oldPath. Only the registry bookkeeping (dropping the old record, adding
// the new one) is conditioned on oldPath actually being tracked.
func enterRename(ip *Interposer, pid int) error {
	oldPath, err := ip.readPathArg(pid, 0)
	if err != nil {
		return err
	}
	newPath, err := ip.readPathArg(pid, 1)
	if err != nil {
		return err
	}

	proxyOld := ip.registry.ProxyPathFor(oldPath)
	proxyNew := ip.registry.ProxyPathFor(newPath)

	if oldRec := ip.registry.Lookup(oldPath); oldRec != nil {
		ip.registry.Remove(oldRec)
		ip.registry.Insert(newPath)
	}

	if err := ip.redirectPath(pid, 0, proxyOld); err != nil {
		return err
	}
	return ip.redirectSecondPath(pid, 1, proxyNew)
}
