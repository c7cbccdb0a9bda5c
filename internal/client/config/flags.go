package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/zkauth/internal/flagx"
)

var clientFlags = []string{"-a", "-i", "-t", "-o"}

// seconds is a duration flag that takes either Go syntax ("1m30s") or a bare
// number of seconds ("90").
type seconds struct{ d *time.Duration }

func (s seconds) String() string {
	if s.d == nil {
		return ""
	}
	return s.d.String()
}

func (s seconds) Set(v string) error {
	if n, err := strconv.Atoi(v); err == nil {
		*s.d = time.Duration(n) * time.Second
	} else if d, err := time.ParseDuration(v); err == nil {
		*s.d = d
	} else {
		return fmt.Errorf("invalid duration %q", v)
	}
	if *s.d <= 0 {
		return fmt.Errorf("duration must be positive, got %q", v)
	}
	return nil
}

// parseFlags overlays cfg with the client's short flags:
//
//	-a  server host:port
//	-i  online check interval ("10" or "10s")
//	-t  per-request timeout
//	-o  directory for fetched templates
//
// Panics on a malformed value, like parseFile.
func parseFlags(cfg *Config) {
	fs := flag.NewFlagSet("zkauth-client", flag.ContinueOnError)
	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "server host:port")
	fs.Var(seconds{&cfg.OnlineCheckInterval}, "i", "online check interval")
	fs.Var(seconds{&cfg.RequestTimeout}, "t", "request timeout")
	fs.StringVar(&cfg.TemplateDir, "o", cfg.TemplateDir, "directory for fetched templates")

	if err := fs.Parse(flagx.FilterArgs(os.Args[1:], clientFlags)); err != nil {
		panic(err)
	}
}
