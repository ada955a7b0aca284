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

package main

import (
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/urfave/cli"

	"github.com/fssb/fssb/interpose"
	"github.com/fssb/fssb/ptrace"
	"github.com/fssb/fssb/scratch"
	"github.com/fssb/fssb/session"
)

const (
	sandboxBaseDir string = "/tmp"
	usage          string = `fssb [OPTIONS] -- <program> [args...]

fssb is a ptrace-based filesystem sandbox. It traces <program> and
transparently redirects its filesystem writes into a per-run sandbox
directory, leaving the real filesystem untouched.
`
)

// Globals populated at build time.
var (
	version  string
	commitId string
	builtAt  string
	builtBy  string
)

// runProfiler mirrors the teacher's cpu/mem profiling toggle: mutually
// exclusive, hidden flags, and no shutdown hook since fssb's own exit
// handling is responsible for calling Stop().
func runProfiler(ctx *cli.Context) (interface{ Stop() }, error) {
	cpuProfOn := ctx.Bool("cpu-profiling")
	memProfOn := ctx.Bool("memory-profiling")

	if cpuProfOn && memProfOn {
		return nil, fmt.Errorf("unsupported parameter combination: cpu and memory profiling")
	}
	if !(cpuProfOn || memProfOn) {
		return nil, nil
	}

	if cpuProfOn {
		return profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook), nil
	}
	return profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook), nil
}

func exitHandler(signalChan chan os.Signal, sess *session.Session, prof interface{ Stop() }) {
	s := <-signalChan
	sess.MainLog.Warnf("fssb: caught signal: %s, exiting", s)
	if prof != nil {
		prof.Stop()
	}
	os.Exit(1)
}

// runTracee starts program under ptrace and drives it to completion through
// the Syscall Interposer, returning the wait-status value StepToNextSyscallStop
// reported for the final exit.
func runTracee(program string, programArgs []string, sess *session.Session) (int, error) {
	cmd := exec.Command(program, programArgs...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.SysProcAttr = &syscall.SysProcAttr{Ptrace: true}

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("failed to launch %s: %w", program, err)
	}
	pid := cmd.Process.Pid

	tracer := ptrace.New()
	if err := tracer.AttachAfterExec(pid); err != nil {
		return 0, fmt.Errorf("failed to attach to pid %d: %w", pid, err)
	}

	sc := scratch.New(tracer)
	ip := interpose.New(tracer, sess.Registry, sc, sess.MainLog, sess.DebugLog)

	return ip.Run(pid)
}

func main() {
	flags, program, err := splitArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}

	if isSoleHelpFlag(flags) {
		fmt.Println(usage)
		os.Exit(0)
	}

	app := cli.NewApp()
	app.Name = "fssb"
	app.Usage = usage
	app.Version = version
	app.HideHelp = true

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "r",
			Usage: "after the tracee exits, delete all proxy files and rmdir the sandbox directory",
		},
		cli.StringFlag{
			Name:  "o",
			Usage: "redirect log output to this file",
		},
		cli.StringFlag{
			Name:  "d",
			Usage: "redirect per-syscall debug log to this file",
		},
		cli.BoolFlag{
			Name:  "m",
			Usage: "after the tracee exits, write the proxy map to the log file",
		},
		cli.BoolFlag{
			Name:   "cpu-profiling",
			Usage:  "enable cpu-profiling data collection",
			Hidden: true,
		},
		cli.BoolFlag{
			Name:   "memory-profiling",
			Usage:  "enable memory-profiling data collection",
			Hidden: true,
		},
	}

	cli.VersionPrinter = func(c *cli.Context) {
		fmt.Printf("fssb\n\tversion: \t%s\n\tcommit: \t%s\n\tbuilt at: \t%s\n\tbuilt by: \t%s\n",
			c.App.Version, commitId, builtAt, builtBy)
	}

	app.Action = func(ctx *cli.Context) error {
		if len(program) == 0 {
			return errMissingProgram
		}

		sess, err := session.New(sandboxBaseDir, afero.NewOsFs())
		if err != nil {
			return fmt.Errorf("failed to create sandbox: %w", err)
		}

		if logPath := ctx.String("o"); logPath != "" {
			if err := sess.OpenLogFile(logPath); err != nil {
				return err
			}
		} else {
			sess.MainLog.SetOutput(os.Stderr)
		}

		if debugPath := ctx.String("d"); debugPath != "" {
			if err := sess.OpenDebugLogFile(debugPath); err != nil {
				return err
			}
		} else {
			sess.DebugLog.SetOutput(logrus.StandardLogger().Out)
			sess.DebugLog.SetLevel(logrus.WarnLevel)
		}

		prof, err := runProfiler(ctx)
		if err != nil {
			return err
		}

		exitChan := make(chan os.Signal, 1)
		signal.Notify(exitChan, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
		go exitHandler(exitChan, sess, prof)

		status, err := runTracee(program[0], program[1:], sess)
		if err != nil {
			return err
		}

		sess.MainLog.Infof("fssb: child exited with %d", status)
		sess.MainLog.Infof("fssb: sandbox directory: %s", sess.Dir)

		if err := sess.WriteFileMap(); err != nil {
			sess.MainLog.Warnf("fssb: failed to write file map: %v", err)
		}
		if ctx.Bool("m") {
			data, err := afero.ReadFile(sess.Fs, sess.FileMapPath())
			if err != nil {
				sess.MainLog.Warnf("fssb: failed to read file map: %v", err)
			} else {
				sess.MainLog.Infof("fssb: proxy map:\n%s", string(data))
			}
		}

		if err := sess.Cleanup(ctx.Bool("r")); err != nil {
			sess.MainLog.Warnf("fssb: cleanup failed: %v", err)
		}

		if prof != nil {
			prof.Stop()
		}

		return nil
	}

	if err := app.Run(append([]string{"fssb"}, flags...)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
