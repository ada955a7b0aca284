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

// Package session owns everything that used to be sysbox-fs global mutable
// state: the sandbox directory, its registry, and the log destinations a
// single fssb invocation writes to. One Session is created per run of the
// fssb command.
package session

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/fssb/fssb/registry"
)

const fileMapName = "file-map"

// Session bundles the sandbox directory, its Proxy File Registry, and the
// two loggers (main and debug) a run writes to.
type Session struct {
	Dir      string
	Registry *registry.Registry
	Fs       afero.Fs
	MainLog  *logrus.Logger
	DebugLog *logrus.Logger
}

// New creates a fresh sandbox directory under base (normally "/tmp") named
// "fssb-<n>" for the smallest positive n that does not already exist, mode
// 0775, and returns a Session wired to it.
func New(base string, fs afero.Fs) (*Session, error) {
	mainLog := logrus.New()
	mainLog.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})

	debugLog := logrus.New()
	debugLog.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})
	debugLog.SetLevel(logrus.DebugLevel)

	dir, err := allocateSandboxDir(base, fs)
	if err != nil {
		return nil, err
	}

	return &Session{
		Dir:      dir,
		Registry: registry.New(dir+string(filepath.Separator), fs),
		Fs:       fs,
		MainLog:  mainLog,
		DebugLog: debugLog,
	}, nil
}

func allocateSandboxDir(base string, fs afero.Fs) (string, error) {
	for n := 1; ; n++ {
		dir := filepath.Join(base, fmt.Sprintf("fssb-%d", n))
		if _, err := fs.Stat(dir); err == nil {
			continue
		} else if !os.IsNotExist(err) && !afero.IsNotExist(err) {
			return "", err
		}
		if err := fs.MkdirAll(dir, 0775); err != nil {
			return "", err
		}
		return dir, nil
	}
}

// OpenLogFile redirects the main log to path, appending, creating it if
// necessary - the same open flags the teacher's CLI uses for its "-log"
// option.
func (s *Session) OpenLogFile(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND|os.O_SYNC, 0666)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	s.MainLog.SetOutput(f)
	return nil
}

// OpenDebugLogFile redirects the debug log to path.
func (s *Session) OpenDebugLogFile(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND|os.O_SYNC, 0666)
	if err != nil {
		return fmt.Errorf("failed to open debug log file %s: %w", path, err)
	}
	s.DebugLog.SetOutput(f)
	return nil
}

// WriteFileMap renders the registry's proxy-to-original mapping to the
// file-map file under the sandbox directory. fssb always writes this file;
// "-m" additionally copies its contents into the main log.
func (s *Session) WriteFileMap() error {
	path := filepath.Join(s.Dir, fileMapName)
	f, err := s.Fs.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return s.Registry.WriteMap(f)
}

// FileMapPath returns the path WriteFileMap writes to.
func (s *Session) FileMapPath() string {
	return filepath.Join(s.Dir, fileMapName)
}

// Cleanup is a no-op unless remove is true (the "-r" flag), in which case
// it removes every proxy file the registry knows about, the file-map, and
// then the now-empty sandbox directory itself. Without "-r" the directory,
// its proxy files and its file-map are left behind for inspection.
func (s *Session) Cleanup(remove bool) error {
	if !remove {
		return nil
	}
	if err := s.Registry.RemoveAllProxyFiles(); err != nil {
		return err
	}
	if err := s.Fs.Remove(s.FileMapPath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file map %s: %w", s.FileMapPath(), err)
	}
	if err := s.Fs.Remove(s.Dir); err != nil && !afero.IsNotExist(err) {
		return fmt.Errorf("failed to remove sandbox dir %s: %w", s.Dir, err)
	}
	return nil
}
