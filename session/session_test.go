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

package session

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestNewAllocatesLowestFreeSandboxDir(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/tmp/fssb-1", 0775))

	s, err := New("/tmp", fs)
	require.NoError(t, err)
	require.Equal(t, "/tmp/fssb-2", s.Dir)

	exists, err := afero.DirExists(fs, "/tmp/fssb-2")
	require.NoError(t, err)
	require.True(t, exists)
}

func TestWriteFileMapAndCleanup(t *testing.T) {
	fs := afero.NewMemMapFs()
	s, err := New("/tmp", fs)
	require.NoError(t, err)

	rec := s.Registry.Insert("/tmp/target/a.txt")
	require.NoError(t, afero.WriteFile(fs, rec.ProxyPath, []byte("hi"), 0644))

	require.NoError(t, s.WriteFileMap())
	data, err := afero.ReadFile(fs, s.FileMapPath())
	require.NoError(t, err)
	require.Contains(t, string(data), "/tmp/target/a.txt")

	require.NoError(t, s.Cleanup(true))

	exists, err := afero.Exists(fs, rec.ProxyPath)
	require.NoError(t, err)
	require.False(t, exists)

	dirExists, err := afero.DirExists(fs, s.Dir)
	require.NoError(t, err)
	require.False(t, dirExists)
}

func TestCleanupWithoutRemoveKeepsSandboxDir(t *testing.T) {
	fs := afero.NewMemMapFs()
	s, err := New("/tmp", fs)
	require.NoError(t, err)

	require.NoError(t, s.Cleanup(false))

	dirExists, err := afero.DirExists(fs, s.Dir)
	require.NoError(t, err)
	require.True(t, dirExists)
}
