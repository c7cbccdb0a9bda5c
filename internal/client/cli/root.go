package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
)

func (a *App) getStatus() string {
	s := ""
	if a.userName != "" {
		s = a.userName + " "
	}
	if a.Mode != "" {
		s = s + string(a.Mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root runs the REPL on stdin until exit or EOF.
func (a *App) Root(ctx context.Context) {

	log.Println("Welcome to zkauth CLI (type 'help' for commands)")
	if a.reader == nil {
		a.reader = bufio.NewReader(os.Stdin)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)

	if a.isLoggedIn() {
		_ = a.Logout(ctx)
	}
}
