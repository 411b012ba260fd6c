package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool

	calls     []string
	whoamiErr error
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error {
	f.calls = append(f.calls, "register")
	return nil
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Refresh(ctx context.Context) error {
	f.calls = append(f.calls, "refresh")
	return nil
}
func (f *fakeExec) Whoami(ctx context.Context) error {
	f.calls = append(f.calls, "whoami")
	return f.whoamiErr
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}

func silencePrintln(t *testing.T) {
	t.Helper()
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"register",
		"login",
		"help",
		"whoami",
		"refresh",
		"foobar",
		"logout",
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	wantOrder := []string{"register", "login", "whoami", "refresh", "logout"}
	if len(exec.calls) < len(wantOrder) {
		t.Fatalf("few calls: %+v", exec.calls)
	}
	idx := 0
	for _, c := range exec.calls {
		if idx < len(wantOrder) && c == wantOrder[idx] {
			idx++
		}
	}
	if idx != len(wantOrder) {
		t.Fatalf("commands order mismatch: got %v, want subseq %v", exec.calls, wantOrder)
	}
}

func TestRunREPL_EmptyLinesAndQuit(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader("\n   \nquit\n")
	exec := &fakeExec{loggedIn: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}

func TestRunREPL_ExitsOnEOF(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader("help\n")
	exec := &fakeExec{}
	sc := bufio.NewScanner(input)

	// Must return once the scanner runs dry, even without an explicit exit.
	runREPL(context.Background(), exec, func() string { return "" }, sc)
}

func TestRunREPL_ReportsCommandErrors(t *testing.T) {
	var lines []string
	origPrint := printlnFn
	printlnFn = func(args ...any) (int, error) {
		lines = append(lines, fmt.Sprintln(args...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("whoami\nexit\n")
	exec := &fakeExec{loggedIn: true, whoamiErr: errors.New("access token expired")}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "" }, sc)

	joined := strings.Join(lines, "")
	if !strings.Contains(joined, "Error: access token expired") {
		t.Fatalf("error not reported, output: %q", joined)
	}
}

func TestGetStatus(t *testing.T) {
	a := &App{}
	if got := a.getStatus(); got != "" {
		t.Fatalf("empty status expected, got %q", got)
	}
	a.userName = "alice"
	if got := a.getStatus(); got != "(alice)" {
		t.Fatalf("got %q", got)
	}
}
