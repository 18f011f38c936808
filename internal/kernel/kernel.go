// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package kernel implements Wolfram Language kernel detection and session
// lifecycle management. One kernel process is launched per run and reused
// for every evaluation to amortize its startup cost.
package kernel

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

const (
	binWolframKernel = "WolframKernel"
	binMathKernel    = "MathKernel"
	binMath          = "math"
)

// launchArgs are shared by all kernel binaries. -noinit skips user init
// files; -noprompt suppresses the In[n]:= prompt so stdout carries only
// printed output.
var launchArgs = []string{"-noinit", "-noprompt"}

// Kernel locates a Wolfram Language kernel binary and launches sessions.
type Kernel interface {
	// Name returns the kernel binary name or path.
	Name() string

	// Available reports whether the binary exists on PATH and a probe
	// evaluation exits cleanly.
	Available() bool

	// Launch starts a kernel process and returns an interactive session.
	Launch(extraArgs ...string) (*Session, error)
}

// process is a handle to a running kernel, line oriented on both ends.
type process interface {
	Send(line string) error
	ReadLine() (string, error)
	Close() error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
	Start(name string, args ...string) (process, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (o *osExecutor) Start(name string, args ...string) (process, error) {
	cmd := exec.Command(name, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &osProcess{cmd: cmd, stdin: stdin, stdout: bufio.NewReader(stdout)}, nil
}

// osProcess wraps a started kernel command with line-oriented pipes.
type osProcess struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout *bufio.Reader
}

func (p *osProcess) Send(line string) error {
	_, err := io.WriteString(p.stdin, line+"\n")
	return err
}

func (p *osProcess) ReadLine() (string, error) {
	line, err := p.stdout.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (p *osProcess) Close() error {
	// The kernel exits on end of input.
	p.stdin.Close()
	return p.cmd.Wait()
}

// kernel implements Kernel for a specific binary. All supported binaries
// expose the same command line; they differ only in name.
type kernel struct {
	bin  string
	exec executor
}

func (k *kernel) Name() string { return k.bin }

func (k *kernel) Available() bool {
	if _, err := k.exec.LookPath(k.bin); err != nil {
		return false
	}
	probe := append(append([]string{}, launchArgs...), "-run", "Quit[]")
	return k.exec.RunSilent(k.bin, probe...) == nil
}

func (k *kernel) Launch(extraArgs ...string) (*Session, error) {
	args := append(append([]string{}, launchArgs...), extraArgs...)
	proc, err := k.exec.Start(k.bin, args...)
	if err != nil {
		return nil, fmt.Errorf("launching %s: %w", k.bin, err)
	}
	return &Session{proc: proc}, nil
}

var defaultExec = &osExecutor{}

// Detect tries WolframKernel, MathKernel, and math in order. Returns an
// error when no kernel binary is available.
func Detect() (Kernel, error) {
	return detect(defaultExec)
}

// At returns a Kernel for an explicitly configured binary, bypassing PATH
// detection. The binary is still probed before use.
func At(path string) (Kernel, error) {
	return at(defaultExec, path)
}

func detect(exec executor) (Kernel, error) {
	for _, bin := range []string{binWolframKernel, binMathKernel, binMath} {
		k := &kernel{bin: bin, exec: exec}
		if k.Available() {
			return k, nil
		}
	}
	return nil, fmt.Errorf(
		"no Wolfram kernel available: none of %s, %s, %s found or operational",
		binWolframKernel, binMathKernel, binMath,
	)
}

func at(exec executor, path string) (Kernel, error) {
	k := &kernel{bin: path, exec: exec}
	if !k.Available() {
		return nil, fmt.Errorf("configured kernel %s not found or not operational", path)
	}
	return k, nil
}
