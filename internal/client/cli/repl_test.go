package cli

import (
	"bufio"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	arg   string
	err   error
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error {
	f.calls = append(f.calls, "register")
	return f.err
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) ChangePassword(ctx context.Context) error {
	f.calls = append(f.calls, "passwd")
	return nil
}
func (f *fakeExec) Enroll(ctx context.Context, path string) error {
	f.calls = append(f.calls, "enroll")
	f.arg = path
	return nil
}
func (f *fakeExec) Fetch(ctx context.Context) error { f.calls = append(f.calls, "fetch"); return nil }
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}

func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var out []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, 0, len(a))
		for _, v := range a {
			if e, ok := v.(error); ok {
				parts = append(parts, e.Error())
				continue
			}
			if s, ok := v.(string); ok {
				parts = append(parts, s)
			}
		}
		out = append(out, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &out
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	capturePrintln(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"enroll finger.tpl",
		"fetch",
		"passwd",
		"foobar",
		"logout",
		"exit",
		"register",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewReader(input))

	assert.Equal(t, []string{"login", "enroll", "fetch", "passwd", "logout"}, exec.calls)
	assert.Equal(t, "finger.tpl", exec.arg)
}

func TestRunREPL_UsageAndQuit(t *testing.T) {
	out := capturePrintln(t)

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewReader(strings.NewReader("enroll\nquit\n")))

	assert.Empty(t, exec.calls)
	assert.Contains(t, *out, "Usage: enroll <file>")
	assert.Contains(t, *out, "Bye!")
}

func TestRunREPL_ReportsErrors(t *testing.T) {
	out := capturePrintln(t)

	exec := &fakeExec{err: errors.New("already exists")}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("register\n")))

	assert.Contains(t, *out, "Error: already exists")
}

func TestRunREPL_SessionCommandsNeedLogin(t *testing.T) {
	out := capturePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("fetch\nenroll face.tpl\npasswd\n")))

	assert.Empty(t, exec.calls)
	assert.Equal(t, 3, countPrefix(*out, "Error: login first"))
}

func TestHelpText(t *testing.T) {
	assert.Equal(t, "Available commands: login, register, help, exit", helpText(false))
	assert.Equal(t, "Available commands: enroll <file>, fetch, login, logout, passwd, register, help, exit", helpText(true))
}

func countPrefix(lines []string, prefix string) int {
	n := 0
	for _, l := range lines {
		if strings.HasPrefix(l, prefix) {
			n++
		}
	}
	return n
}
