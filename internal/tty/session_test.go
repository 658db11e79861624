package tty

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"syscall"
	"testing"
	"time"
)

type recordingRestorer struct {
	out       *bytes.Buffer
	calls     int
	outAtCall string
	err       error
}

func (r *recordingRestorer) Restore() error {
	r.calls++
	r.outAtCall = r.out.String()
	return r.err
}

func TestSessionCloseLeavesScreenBeforeRestoringMode(t *testing.T) {
	var out bytes.Buffer
	restorer := &recordingRestorer{out: &out}
	s := &Session{out: &out, mode: restorer}

	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if restorer.calls != 1 {
		t.Fatalf("expected one restore, got %d", restorer.calls)
	}
	if !strings.Contains(restorer.outAtCall, seqAltScreenOff) {
		t.Fatalf("alternate screen must be released before the mode is restored, saw %q", restorer.outAtCall)
	}
}

func TestSessionCloseIsIdempotent(t *testing.T) {
	var out bytes.Buffer
	restorer := &recordingRestorer{out: &out, err: errors.New("tcsetattr failed")}
	s := &Session{out: &out, mode: restorer}

	first := s.Close()
	second := s.Close()
	if restorer.calls != 1 {
		t.Fatalf("expected a single restore across repeated Close calls, got %d", restorer.calls)
	}
	if first == nil || !errors.Is(second, restorer.err) {
		t.Fatalf("expected repeated Close to report the first result, got %v / %v", first, second)
	}
	if got := strings.Count(out.String(), seqAltScreenOff); got != 1 {
		t.Fatalf("expected alternate screen to be left once, got %d", got)
	}
}

func TestSessionWatchTearsDownOnInterrupt(t *testing.T) {
	originalExit := exitFn
	t.Cleanup(func() { exitFn = originalExit })

	var code int
	exitFn = func(c int) { code = c }

	var out bytes.Buffer
	restorer := &recordingRestorer{out: &out}
	s := &Session{out: &out, mode: restorer}

	sigCh := make(chan os.Signal, 1)
	sigCh <- syscall.SIGINT
	s.watch(sigCh, make(chan struct{}))

	if restorer.calls != 1 {
		t.Fatalf("expected interrupt to restore the terminal once, got %d", restorer.calls)
	}
	if code != 128+int(syscall.SIGINT) {
		t.Fatalf("expected exit code %d, got %d", 128+int(syscall.SIGINT), code)
	}

	// The normal exit path runs afterwards and must be harmless.
	if err := s.Close(); err != nil {
		t.Fatalf("Close after interrupt: %v", err)
	}
	if restorer.calls != 1 {
		t.Fatalf("expected no second restore, got %d", restorer.calls)
	}
}

func TestSessionWatchStopsWithoutSignal(t *testing.T) {
	var out bytes.Buffer
	restorer := &recordingRestorer{out: &out}
	s := &Session{out: &out, mode: restorer}

	done := make(chan struct{})
	close(done)
	s.watch(make(chan os.Signal), done)

	if restorer.calls != 0 || out.Len() != 0 {
		t.Fatalf("watch must not tear down when stopped, restores=%d out=%q", restorer.calls, out.String())
	}
}

func TestAltScreenSequences(t *testing.T) {
	var out bytes.Buffer
	if err := EnterAltScreen(&out); err != nil {
		t.Fatalf("EnterAltScreen: %v", err)
	}
	if !strings.HasPrefix(out.String(), seqAltScreenOn) || !strings.Contains(out.String(), seqClearScreen) {
		t.Fatalf("unexpected enter sequence %q", out.String())
	}
	out.Reset()
	if err := LeaveAltScreen(&out); err != nil {
		t.Fatalf("LeaveAltScreen: %v", err)
	}
	if !strings.HasSuffix(out.String(), seqAltScreenOff) {
		t.Fatalf("unexpected leave sequence %q", out.String())
	}
}

func TestSessionSuspendRestoresAndReacquires(t *testing.T) {
	originalStop, originalEnter := stopProcess, enterRawMode
	t.Cleanup(func() { stopProcess, enterRawMode = originalStop, originalEnter })

	var out bytes.Buffer
	first := &recordingRestorer{out: &out}
	second := &recordingRestorer{out: &out}

	var outAtStop string
	stopProcess = func() error {
		outAtStop = out.String()
		return nil
	}
	enterRawMode = func(int) (modeRestorer, error) { return second, nil }

	in, err := os.Open(os.DevNull)
	if err != nil {
		t.Fatalf("open %s: %v", os.DevNull, err)
	}
	t.Cleanup(func() { _ = in.Close() })

	s := &Session{in: in, out: &out, mode: first}
	s.suspend()

	if first.calls != 1 {
		t.Fatalf("expected the captured mode to be restored before stopping, got %d", first.calls)
	}
	if !strings.Contains(outAtStop, seqAltScreenOff) {
		t.Fatalf("alternate screen must be left before stopping, saw %q", outAtStop)
	}
	if !strings.HasSuffix(out.String(), seqAltScreenOn+seqCursorHome+seqClearScreen+seqHideCursor) {
		t.Fatalf("expected the alternate screen to be re-entered, got %q", out.String())
	}
	if !s.TakeResumed() || s.TakeResumed() {
		t.Fatalf("resume must be reported exactly once")
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if second.calls != 1 || first.calls != 1 {
		t.Fatalf("Close must restore the reacquired mode, got first=%d second=%d", first.calls, second.calls)
	}
}

func TestSessionSuspendAfterCloseIsIgnored(t *testing.T) {
	originalStop := stopProcess
	t.Cleanup(func() { stopProcess = originalStop })
	stopped := false
	stopProcess = func() error {
		stopped = true
		return nil
	}

	var out bytes.Buffer
	s := &Session{out: &out, mode: &recordingRestorer{out: &out}}
	_ = s.Close()
	s.suspend()

	if stopped || s.TakeResumed() {
		t.Fatalf("a closed session must not stop or resume")
	}
}

func TestSessionOutputDroppedAfterInterrupt(t *testing.T) {
	originalExit := exitFn
	t.Cleanup(func() { exitFn = originalExit })
	exitFn = func(int) {}

	var out bytes.Buffer
	s := &Session{out: &out, mode: &recordingRestorer{out: &out}}
	w := s.Output()

	if _, err := io.WriteString(w, "page-one"); err != nil {
		t.Fatalf("write before teardown: %v", err)
	}
	sigCh := make(chan os.Signal, 1)
	sigCh <- syscall.SIGTERM
	s.watch(sigCh, make(chan struct{}))

	n, err := io.WriteString(w, "page-two")
	if err != nil || n != len("page-two") {
		t.Fatalf("late write should be swallowed, got n=%d err=%v", n, err)
	}
	got := out.String()
	if !strings.HasPrefix(got, "page-one") || !strings.HasSuffix(got, seqAltScreenOff) {
		t.Fatalf("nothing may follow the alternate screen release, got %q", got)
	}
}

func TestSessionOutputWaitsForTeardown(t *testing.T) {
	var out bytes.Buffer
	s := &Session{out: &out}
	w := s.Output()

	s.mu.Lock()
	done := make(chan struct{})
	go func() {
		_, _ = io.WriteString(w, "frame")
		close(done)
	}()

	select {
	case <-done:
		t.Fatalf("output must wait while the session is being torn down")
	case <-time.After(20 * time.Millisecond):
	}
	s.closed = true
	s.mu.Unlock()

	<-done
	if out.Len() != 0 {
		t.Fatalf("write queued behind teardown must be dropped, got %q", out.String())
	}
}
