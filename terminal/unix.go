// Copyright 2013 Google, Inc.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build linux || darwin

package terminal

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// attrLock serializes attribute changes across every unixProvider in the
// process, per spec.md §5 ("the terminal's attribute state is process-wide
// ... MUST be serialized through a single lock").
var attrLock sync.Mutex

// teardown holds the restore callbacks registered by live providers. The
// handler installed in init runs them when the process receives SIGTERM,
// SIGHUP or SIGQUIT, before exiting. A panic or a call to os.Exit does not
// run them.
var teardown struct {
	sync.Mutex
	restores []func()
}

func registerTeardown(fn func()) (unregister func()) {
	teardown.Lock()
	defer teardown.Unlock()
	teardown.restores = append(teardown.restores, fn)
	idx := len(teardown.restores) - 1
	return func() {
		teardown.Lock()
		defer teardown.Unlock()
		if idx < len(teardown.restores) {
			teardown.restores[idx] = nil
		}
	}
}

func runTeardown() {
	teardown.Lock()
	fns := append([]func(){}, teardown.restores...)
	teardown.Unlock()
	for _, fn := range fns {
		if fn != nil {
			fn()
		}
	}
}

func init() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)
	go func() {
		for range sigs {
			runTeardown()
			os.Exit(1)
		}
	}()
}

// termiosAttrs wraps a unix.Termios snapshot.
type termiosAttrs struct {
	t   unix.Termios
	raw bool
}

func (a termiosAttrs) Raw() bool { return a.raw }

// unixProvider implements Provider on top of golang.org/x/sys/unix ioctl
// calls, generalizing the teacher's cgo tcgetattr/tcsetattr/cfmakeraw calls
// (termios/termios.go) to a syscall-only implementation so the module
// never needs cgo to build.
type unixProvider struct {
	fd       int
	in       *os.File
	out      *os.File
	original unix.Termios
	current  unix.Termios

	resizeMu sync.Mutex
	resizeCb ResizeFunc
	sigwinch chan os.Signal
	stopSig  chan struct{}

	unregister func()
	closeOnce  sync.Once
}

// OpenUnix opens the controlling terminal on the given file (typically
// os.Stdin for input, os.Stdout for output) as a unixProvider. If in is not
// a terminal, it returns the ioctl error unchanged.
func OpenUnix(in, out *os.File) (Provider, error) {
	fd := int(in.Fd())
	var t unix.Termios
	if err := ioctlGetTermios(fd, &t); err != nil {
		return nil, err
	}
	p := &unixProvider{
		fd:       fd,
		in:       in,
		out:      out,
		original: t,
		current:  t,
	}
	p.unregister = registerTeardown(func() { _ = p.restore() })
	return p, nil
}

func (p *unixProvider) Capable() bool { return true }

func (p *unixProvider) Attributes() (Attributes, error) {
	attrLock.Lock()
	defer attrLock.Unlock()
	return termiosAttrs{t: p.current, raw: isRaw(p.current)}, nil
}

func (p *unixProvider) SetAttributes(a Attributes) error {
	ta, ok := a.(termiosAttrs)
	if !ok {
		return ErrProviderMismatch
	}
	attrLock.Lock()
	defer attrLock.Unlock()
	p.current = ta.t
	return ioctlSetTermios(p.fd, &p.current)
}

func (p *unixProvider) Raw() error {
	attrLock.Lock()
	defer attrLock.Unlock()
	raw := p.current
	cfmakeraw(&raw)
	p.current = raw
	return ioctlSetTermios(p.fd, &p.current)
}

func (p *unixProvider) restore() error {
	attrLock.Lock()
	defer attrLock.Unlock()
	p.current = p.original
	return ioctlSetTermios(p.fd, &p.current)
}

func (p *unixProvider) Size() (Size, error) {
	ws, err := unix.IoctlGetWinsize(p.fd, unix.TIOCGWINSZ)
	if err != nil {
		return Size{}, err
	}
	return Size{Rows: int(ws.Row), Cols: int(ws.Col)}, nil
}

func (p *unixProvider) Read(buf []byte, deadline time.Time) (int, error) {
	if !deadline.IsZero() {
		if err := p.in.SetReadDeadline(deadline); err != nil {
			// Non-terminal files (e.g. a pipe in tests) may not support
			// deadlines; fall back to a blocking read.
			_ = err
		}
		defer p.in.SetReadDeadline(time.Time{})
	}
	n, err := p.in.Read(buf)
	if err != nil {
		if ne, ok := err.(interface{ Timeout() bool }); ok && ne.Timeout() {
			return 0, ErrTimeout
		}
		return n, err
	}
	return n, nil
}

func (p *unixProvider) Write(buf []byte) (int, error) {
	return p.out.Write(buf)
}

func (p *unixProvider) Flush() error { return p.out.Sync() }

func (p *unixProvider) OnResize(cb ResizeFunc) {
	p.resizeMu.Lock()
	defer p.resizeMu.Unlock()
	p.resizeCb = cb
	if cb == nil {
		p.stopWinch()
		return
	}
	p.startWinch()
}

func (p *unixProvider) startWinch() {
	if p.sigwinch != nil {
		return
	}
	p.sigwinch = make(chan os.Signal, 1)
	p.stopSig = make(chan struct{})
	signal.Notify(p.sigwinch, syscall.SIGWINCH)
	go func() {
		for {
			select {
			case <-p.sigwinch:
				sz, err := p.Size()
				if err != nil {
					continue
				}
				p.resizeMu.Lock()
				cb := p.resizeCb
				p.resizeMu.Unlock()
				if cb != nil {
					cb(sz)
				}
			case <-p.stopSig:
				return
			}
		}
	}()
}

func (p *unixProvider) stopWinch() {
	if p.sigwinch == nil {
		return
	}
	signal.Stop(p.sigwinch)
	close(p.stopSig)
	p.sigwinch = nil
	p.stopSig = nil
}

func (p *unixProvider) Close() error {
	var err error
	p.closeOnce.Do(func() {
		p.stopWinch()
		err = p.restore()
		if p.unregister != nil {
			p.unregister()
		}
	})
	return err
}

// Suspend restores cooked attributes, raises SIGSTOP on the calling
// process (implementing the SIGTSTP policy of spec.md §4.10: "attributes
// are restored, SIGSTOP is raised on self"), and on resume re-applies the
// previously active attributes.
func (p *unixProvider) Suspend() error {
	attrLock.Lock()
	resume := p.current
	attrLock.Unlock()

	if err := p.restore(); err != nil {
		return err
	}
	if err := unix.Kill(os.Getpid(), syscall.SIGSTOP); err != nil {
		return err
	}
	attrLock.Lock()
	p.current = resume
	err := ioctlSetTermios(p.fd, &p.current)
	attrLock.Unlock()
	return err
}

func ioctlGetTermios(fd int, t *unix.Termios) error {
	got, err := unix.IoctlGetTermios(fd, ioctlGets)
	if err != nil {
		return err
	}
	*t = *got
	return nil
}

func ioctlSetTermios(fd int, t *unix.Termios) error {
	return unix.IoctlSetTermios(fd, ioctlSets, t)
}

// cfmakeraw mirrors glibc's cfmakeraw, matching the teacher's
// C.cfmakeraw(&tio.current) call in termios/termios.go without requiring
// cgo.
func cfmakeraw(t *unix.Termios) {
	t.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP |
		unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON
	t.Oflag &^= unix.OPOST
	t.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	t.Cflag &^= unix.CSIZE | unix.PARENB
	t.Cflag |= unix.CS8
	t.Cc[unix.VMIN] = 1
	t.Cc[unix.VTIME] = 0
}

func isRaw(t unix.Termios) bool {
	return t.Lflag&(unix.ICANON|unix.ECHO) == 0
}

// ErrProviderMismatch is returned by SetAttributes when given an
// Attributes value from a different kind of provider.
var ErrProviderMismatch = newSentinel("terminal: attributes from a different provider")
