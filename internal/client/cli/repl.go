package cli

import (
	"bufio"
	"context"
	"fmt"
	"sort"
	"strings"
)

// printlnFn is the REPL's output seam.
var printlnFn = fmt.Println

// execIface is the command surface the REPL drives; *App implements it.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	Enroll(ctx context.Context, path string) error
	Fetch(ctx context.Context) error
	Logout(ctx context.Context) error
}

type command struct {
	usage    string
	nargs    int
	loggedIn bool // available only with an unlocked session
	run      func(ctx context.Context, a execIface, args []string) error
}

var commands = map[string]command{
	"register": {usage: "register", run: func(ctx context.Context, a execIface, _ []string) error { return a.Register(ctx) }},
	"login":    {usage: "login", run: func(ctx context.Context, a execIface, _ []string) error { return a.Login(ctx) }},
	"passwd":   {usage: "passwd", loggedIn: true, run: func(ctx context.Context, a execIface, _ []string) error { return a.ChangePassword(ctx) }},
	"enroll":   {usage: "enroll <file>", nargs: 1, loggedIn: true, run: func(ctx context.Context, a execIface, args []string) error { return a.Enroll(ctx, args[0]) }},
	"fetch":    {usage: "fetch", loggedIn: true, run: func(ctx context.Context, a execIface, _ []string) error { return a.Fetch(ctx) }},
	"logout":   {usage: "logout", loggedIn: true, run: func(ctx context.Context, a execIface, _ []string) error { return a.Logout(ctx) }},
}

func helpText(loggedIn bool) string {
	var names []string
	for _, c := range commands {
		if !c.loggedIn || loggedIn {
			names = append(names, c.usage)
		}
	}
	sort.Strings(names)
	return "Available commands: " + strings.Join(append(names, "help", "exit"), ", ")
}

// runREPL reads commands from r until EOF, "exit" or "quit". Prompts issued
// by the handlers read from the same r, so piped input stays in order.
// Handler errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, r *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("zk %s> ", statusFn()))
		line, err := readLine(r)
		if err != nil {
			return
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		name, args := fields[0], fields[1:]

		switch name {
		case "exit", "quit":
			printlnFn("Bye!")
			return
		case "help":
			printlnFn(helpText(a.isLoggedIn()))
			continue
		}

		cmd, ok := commands[name]
		switch {
		case !ok:
			printlnFn("Unknown command:", name)
		case cmd.loggedIn && !a.isLoggedIn():
			printlnFn("Error:", errNotLoggedIn)
		case len(args) < cmd.nargs:
			printlnFn("Usage:", cmd.usage)
		default:
			if err := cmd.run(ctx, a, args); err != nil {
				printlnFn("Error:", err)
			}
		}
	}
}
