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

package registry

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestFingerprintIsDeterministicAndPure(t *testing.T) {
	fp1 := Fingerprint("/tmp/a")
	fp2 := Fingerprint("/tmp/a")
	require.Equal(t, fp1, fp2)
	require.Len(t, fp1, 32)

	// /tmp/a and /tmp/./a name the same file but fingerprint differently:
	// the routine does no path normalization (see DESIGN.md, Q2).
	require.NotEqual(t, Fingerprint("/tmp/a"), Fingerprint("/tmp/./a"))
}

func TestInsertThenLookup(t *testing.T) {
	r := New("/tmp/fssb-1/", afero.NewMemMapFs())

	rec := r.Insert("/tmp/x")
	got := r.Lookup("/tmp/x")

	require.NotNil(t, got)
	require.Equal(t, rec, got)
	require.Equal(t, "/tmp/fssb-1/"+Fingerprint("/tmp/x"), got.ProxyPath)
}

func TestLookupMiss(t *testing.T) {
	r := New("/tmp/fssb-1/", afero.NewMemMapFs())
	require.Nil(t, r.Lookup("/tmp/never-written"))
}

func TestRemoveForgetsButLeavesFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	r := New("/tmp/fssb-1/", fs)

	rec := r.Insert("/tmp/y")
	require.NoError(t, afero.WriteFile(fs, rec.ProxyPath, []byte("data"), 0644))

	r.Remove(rec)
	require.Nil(t, r.Lookup("/tmp/y"))

	exists, err := afero.Exists(fs, rec.ProxyPath)
	require.NoError(t, err)
	require.True(t, exists, "Remove must not touch the filesystem (R3)")
}

func TestRemoveAllProxyFilesDeletesFromDisk(t *testing.T) {
	fs := afero.NewMemMapFs()
	r := New("/tmp/fssb-1/", fs)

	rec1 := r.Insert("/tmp/a")
	rec2 := r.Insert("/tmp/b")
	require.NoError(t, afero.WriteFile(fs, rec1.ProxyPath, []byte("1"), 0644))
	require.NoError(t, afero.WriteFile(fs, rec2.ProxyPath, []byte("2"), 0644))

	require.NoError(t, r.RemoveAllProxyFiles())

	for _, p := range []string{rec1.ProxyPath, rec2.ProxyPath} {
		exists, err := afero.Exists(fs, p)
		require.NoError(t, err)
		require.False(t, exists)
	}
}

func TestRemoveAllProxyFilesIsBestEffort(t *testing.T) {
	fs := afero.NewMemMapFs()
	r := New("/tmp/fssb-1/", fs)

	// Register a record whose proxy file was never actually created.
	r.Insert("/tmp/never-materialized")

	require.NoError(t, r.RemoveAllProxyFiles())
}

func TestIterateIsStable(t *testing.T) {
	r := New("/tmp/fssb-1/", afero.NewMemMapFs())
	r.Insert("/tmp/a")
	r.Insert("/tmp/b")
	r.Insert("/tmp/c")

	first := r.Iterate()
	second := r.Iterate()
	require.Equal(t, first, second)
	require.Len(t, first, 3)
}

func TestWriteMapFormat(t *testing.T) {
	r := New("/tmp/fssb-1/", afero.NewMemMapFs())
	rec := r.Insert("/tmp/x")

	var buf bytes.Buffer
	require.NoError(t, r.WriteMap(&buf))
	require.Equal(t, rec.ProxyPath+" = /tmp/x\n", buf.String())
}

func TestMaterializeEmptyAndRemoveProxyFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	r := New("/tmp/fssb-1/", fs)

	path := "/tmp/fssb-1/deadbeef"
	require.NoError(t, r.MaterializeEmpty(path))

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	require.Empty(t, data)

	require.NoError(t, r.RemoveProxyFile(path))
	require.NoError(t, r.RemoveProxyFile(path)) // missing file is not an error
}

func TestExists(t *testing.T) {
	fs := afero.NewMemMapFs()
	r := New("/tmp/fssb-1/", fs)

	require.False(t, r.Exists("/tmp/missing"))
	require.NoError(t, afero.WriteFile(fs, "/tmp/present", []byte("x"), 0644))
	require.True(t, r.Exists("/tmp/present"))
}
