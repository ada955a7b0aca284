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

// enterUnlink redirects unlink(2) of a tracked path into the sandbox and
// forgets the registry record; the real unlink syscall (running against
// the redirected proxy path) performs the actual removal. An untracked
// path that exists on the real filesystem is redirected to a freshly
// materialized empty proxy file; an untracked path that does not exist
// passes through untouched.
func enterUnlink(ip *Interposer, pid int) error {
	return unlinkAtArg(ip, pid, 0)
}

// enterUnlinkat is enterUnlink for unlinkat(2), whose path argument is the
// second register rather than the first.
func enterUnlinkat(ip *Interposer, pid int) error {
	return unlinkAtArg(ip, pid, 1)
}

func unlinkAtArg(ip *Interposer, pid int, argIndex int) error {
	path, err := ip.readPathArg(pid, argIndex)
	if err != nil {
		return err
	}

	if rec := ip.registry.Lookup(path); rec != nil {
		if !ip.registry.Exists(rec.ProxyPath) {
			// The tracee logically owns this path (it was opened for write
			// at some point) but no bytes were ever flushed to the proxy
			// file. Materialize an empty one so the tracee's unlink
			// observes success instead of a spurious ENOENT.
			if err := ip.registry.MaterializeEmpty(rec.ProxyPath); err != nil {
				return err
			}
		}
		ip.registry.Remove(rec)
		return ip.redirectPath(pid, argIndex, rec.ProxyPath)
	}

	// Never registered, but the real path may still exist on disk (the
	// tracee never opened it for write, e.g. it unlinks a file seeded
	// before it ran). Redirect to the proxy path it would have gotten
	// anyway so the real file is never touched; only let the real unlink
	// run if there is nothing at the real path to protect.
	proxyPath := ip.registry.ProxyPathFor(path)
	if ip.registry.Exists(path) {
		if err := ip.registry.MaterializeEmpty(proxyPath); err != nil {
			return err
		}
		return ip.redirectPath(pid, argIndex, proxyPath)
	}
	return nil
}
