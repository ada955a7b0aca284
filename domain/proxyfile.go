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

import "io"

// Proxyfile is one record of the Proxy File Registry: it associates an
// original path the tracee has written to (or is about to unlink/rename)
// with the sandbox file that silently shadows it.
type Proxyfile struct {
	OriginalPath string
	Fingerprint  string
	ProxyPath    string
}

// RegistryIface is the Proxy File Registry (PFR) contract. Implementations
// must preserve invariants R1-R4 from the data model: at most one record per
// fingerprint, an immutable proxy path per record, Remove never touching the
// filesystem, and stable iteration order.
type RegistryIface interface {
	// Lookup fingerprints originalPath and returns the matching record, or
	// nil if none is registered.
	Lookup(originalPath string) *Proxyfile

	// Insert fingerprints originalPath, allocates its proxy path and adds it
	// to the registry. Callers must Lookup first; inserting over an existing
	// fingerprint is undefined behavior.
	Insert(originalPath string) *Proxyfile

	// Remove unlinks rec from the registry. It never touches the filesystem.
	Remove(rec *Proxyfile)

	// Iterate returns every record in a stable order.
	Iterate() []*Proxyfile

	// RemoveAllProxyFiles deletes the backing file of every record from the
	// filesystem. Best-effort: a missing file is not an error.
	RemoveAllProxyFiles() error

	// WriteMap renders "<proxy_path> = <original_path>" lines, one per
	// record, in iteration order.
	WriteMap(w io.Writer) error

	// ProxyPathFor computes the proxy path for originalPath without
	// registering it (sandboxDir + fingerprint(originalPath)), used when a
	// handler needs the path a record *would* have without creating one
	// (e.g. rename's destination before it decides whether to re-register).
	ProxyPathFor(originalPath string) string

	// Exists reports whether path exists on the real filesystem. Used by
	// the unlink handler to decide between materializing an empty proxy
	// file and letting the kernel return a natural ENOENT.
	Exists(path string) bool

	// MaterializeEmpty creates an empty file at proxyPath.
	MaterializeEmpty(proxyPath string) error

	// RemoveProxyFile deletes the file at path, ignoring a missing file.
	// The unlink handler does not call it: a record's backing file is
	// deleted by the tracee's own unlink syscall, redirected onto it.
	RemoveProxyFile(path string) error
}
