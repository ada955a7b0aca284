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

// enterStat and enterAccess redirect lookup-only syscalls (stat, lstat,
// access) for paths already tracked by the registry, without registering
// anything new - observing a file's metadata does not give the tracee a
// reason to start shadowing it.
func enterStat(ip *Interposer, pid int) error {
	return lookupRedirect(ip, pid, 0)
}

func enterAccess(ip *Interposer, pid int) error {
	return lookupRedirect(ip, pid, 0)
}

func lookupRedirect(ip *Interposer, pid int, argIndex int) error {
	path, err := ip.readPathArg(pid, argIndex)
	if err != nil {
		return err
	}
	rec := ip.registry.Lookup(path)
	if rec == nil {
		return nil
	}
	return ip.redirectPath(pid, argIndex, rec.ProxyPath)
}
