package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubTerminal(t *testing.T, terminal bool, read func(int) ([]byte, error)) {
	t.Helper()
	origRead, origIs, origFd := readPassword, isTerminal, stdinFd
	readPassword = read
	isTerminal = func(int) bool { return terminal }
	stdinFd = func() int { return 0 }
	t.Cleanup(func() {
		readPassword, isTerminal, stdinFd = origRead, origIs, origFd
	})
}

func TestPromptLine(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr error
	}{
		{"newline", "alice\n", "alice", nil},
		{"crlf", "alice\r\n", "alice", nil},
		{"last line without newline", "alice", "alice", nil},
		{"inner spaces kept", "face scan.tpl\n", "face scan.tpl", nil},
		{"empty input", "", "", io.EOF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := PromptLine(bufio.NewReader(strings.NewReader(tt.in)), &out, "Username")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "Username: ", out.String())
		})
	}
}

func TestPromptSecret_Terminal(t *testing.T) {
	stubTerminal(t, true, func(int) ([]byte, error) { return []byte("Secr3t!23"), nil })

	var out bytes.Buffer
	got, err := PromptSecret(bufio.NewReader(strings.NewReader("ignored\n")), &out, "Password")
	require.NoError(t, err)
	assert.Equal(t, []byte("Secr3t!23"), got)
	assert.Equal(t, "Password: \n", out.String())
}

func TestPromptSecret_TerminalError(t *testing.T) {
	stubTerminal(t, true, func(int) ([]byte, error) { return nil, errors.New("tty closed") })

	_, err := PromptSecret(bufio.NewReader(strings.NewReader("")), io.Discard, "Password")
	require.EqualError(t, err, "tty closed")
}

func TestPromptSecret_PipedInput(t *testing.T) {
	stubTerminal(t, false, func(int) ([]byte, error) {
		t.Fatal("terminal read on piped input")
		return nil, nil
	})

	r := bufio.NewReader(strings.NewReader("old-pass\nnew-pass\n"))
	first, err := PromptSecret(r, io.Discard, "Current password")
	require.NoError(t, err)
	second, err := PromptSecret(r, io.Discard, "New password")
	require.NoError(t, err)

	assert.Equal(t, []byte("old-pass"), first)
	assert.Equal(t, []byte("new-pass"), second)
}
