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

// Package registry implements the Proxy File Registry (PFR): the mutable
// mapping from an original path's fingerprint to its proxyfile record. The
// registry itself is indexed by a hashicorp/go-immutable-radix tree keyed by
// the fingerprint string, the same "service wraps an ordered/indexed DB"
// shape the teacher codebase uses for its handler lookup table — here swept
// from a path-keyed tree to a fingerprint-keyed one, giving O(log n)
// lookup/insert/delete and, for free, the stable iteration order the
// registry's contract requires.
package registry

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"sync"

	iradix "github.com/hashicorp/go-immutable-radix"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/fssb/fssb/domain"
)

var _ domain.RegistryIface = (*Registry)(nil)

// Fingerprint returns the 32-character lowercase hex MD5 digest of the raw
// bytes of originalPath. No path normalization is performed: "/tmp/a" and
// "/tmp/./a" fingerprint differently, preserving compatibility with the
// reference implementation's behavior (see DESIGN.md, Q2).
func Fingerprint(originalPath string) string {
	sum := md5.Sum([]byte(originalPath))
	return hex.EncodeToString(sum[:])
}

// Registry is the Proxy File Registry.
type Registry struct {
	mu         sync.Mutex
	tree       *iradix.Tree
	sandboxDir string
	fs         afero.Fs
}

// New returns an empty Registry parameterized by the sandbox directory
// (every proxy path is sandboxDir+fingerprint) and the afero filesystem used
// for all on-disk proxy-file operations.
func New(sandboxDir string, fs afero.Fs) *Registry {
	return &Registry{
		tree:       iradix.New(),
		sandboxDir: sandboxDir,
		fs:         fs,
	}
}

func (r *Registry) proxyPath(fingerprint string) string {
	return r.sandboxDir + fingerprint
}

// ProxyPathFor implements domain.RegistryIface.
func (r *Registry) ProxyPathFor(originalPath string) string {
	return r.proxyPath(Fingerprint(originalPath))
}

// Lookup implements domain.RegistryIface.
func (r *Registry) Lookup(originalPath string) *domain.Proxyfile {
	r.mu.Lock()
	defer r.mu.Unlock()

	fp := Fingerprint(originalPath)
	v, ok := r.tree.Get([]byte(fp))
	if !ok {
		return nil
	}
	return v.(*domain.Proxyfile)
}

// Insert implements domain.RegistryIface. Callers must have already called
// Lookup and found no existing record; inserting over an existing
// fingerprint silently replaces it (undefined by contract, per spec).
func (r *Registry) Insert(originalPath string) *domain.Proxyfile {
	r.mu.Lock()
	defer r.mu.Unlock()

	fp := Fingerprint(originalPath)
	rec := &domain.Proxyfile{
		OriginalPath: originalPath,
		Fingerprint:  fp,
		ProxyPath:    r.proxyPath(fp),
	}

	tree, _, _ := r.tree.Insert([]byte(fp), rec)
	r.tree = tree
	return rec
}

// Remove implements domain.RegistryIface. It never touches the filesystem
// (see invariant R3). RemoveAllProxyFiles only walks records still
// registered, so a removed record's proxy file is left to the syscall that
// removed it: a redirected unlink deletes it, a redirected rename moves it.
func (r *Registry) Remove(rec *domain.Proxyfile) {
	if rec == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	tree, _, _ := r.tree.Delete([]byte(rec.Fingerprint))
	r.tree = tree
}

// Iterate implements domain.RegistryIface, walking the radix tree in key
// (fingerprint) order.
func (r *Registry) Iterate() []*domain.Proxyfile {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*domain.Proxyfile
	r.tree.Root().Walk(func(k []byte, v interface{}) bool {
		out = append(out, v.(*domain.Proxyfile))
		return false
	})
	return out
}

// RemoveAllProxyFiles implements domain.RegistryIface.
func (r *Registry) RemoveAllProxyFiles() error {
	for _, rec := range r.Iterate() {
		if err := r.fs.Remove(rec.ProxyPath); err != nil && !isNotExist(err) {
			logrus.Warnf("fssb: failed to remove proxy file %s: %v", rec.ProxyPath, err)
		}
	}
	return nil
}

func isNotExist(err error) bool {
	return err != nil && (afero.IsNotExist(err) || afero.IsDir(err))
}

// WriteMap implements domain.RegistryIface, rendering one
// "<proxy_path> = <original_path>" line per record, in iteration order.
func (r *Registry) WriteMap(w io.Writer) error {
	for _, rec := range r.Iterate() {
		if _, err := fmt.Fprintf(w, "%s = %s\n", rec.ProxyPath, rec.OriginalPath); err != nil {
			return err
		}
	}
	return nil
}

// MaterializeEmpty creates an empty proxy file at proxyPath, used by the
// unlink handler when the tracee unlinks a path that has no proxy file yet
// (so the redirected unlink succeeds and the real file is left in place).
func (r *Registry) MaterializeEmpty(proxyPath string) error {
	f, err := r.fs.Create(proxyPath)
	if err != nil {
		return err
	}
	return f.Close()
}

// RemoveProxyFile deletes the file at path from the filesystem, ignoring
// already-missing files. It does not change the registry. The unlink
// handler does not call it; it lets the tracee's redirected unlink delete
// the proxy file.
func (r *Registry) RemoveProxyFile(path string) error {
	if err := r.fs.Remove(path); err != nil && !isNotExist(err) {
		return err
	}
	return nil
}

// Exists reports whether path exists on the registry's filesystem. Used by
// the unlink handler to decide whether to materialize an empty proxy file
// or let the kernel return its natural ENOENT.
func (r *Registry) Exists(path string) bool {
	_, err := r.fs.Stat(path)
	return err == nil
}
