// Copyright (c) 2025 @AmarnathCJD

package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/amarnathcjd/sessionconv/internal/session"
)

// IOStreams are the standard streams a command talks to.
type IOStreams struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

func StdStreams() IOStreams {
	return IOStreams{In: os.Stdin, Out: os.Stdout, ErrOut: os.Stderr}
}

func terminalFd(r any) (int, bool) {
	f, ok := r.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0, false
	}
	return int(f.Fd()), true
}

// readSession returns the session string named by args: the argument itself, the content
// of a file given as @path, or stdin for "-" or no argument. On a terminal stdin is read
// without echo.
func readSession(streams IOStreams, args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		if path, ok := strings.CutPrefix(args[0], "@"); ok {
			return session.ReadFile(path)
		}
		return strings.TrimSpace(args[0]), nil
	}

	if fd, ok := terminalFd(streams.In); ok {
		fmt.Fprint(streams.ErrOut, "Session string: ")
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(streams.ErrOut)
		if err != nil {
			return "", errors.Wrap(err, "reading session from terminal")
		}
		return strings.TrimSpace(string(b)), nil
	}

	b, err := io.ReadAll(streams.In)
	if err != nil {
		return "", errors.Wrap(err, "reading session from stdin")
	}
	raw := strings.TrimSpace(string(b))
	if raw == "" {
		return "", errors.New("no session string given")
	}
	return raw, nil
}

func isTerminal(w io.Writer) bool {
	_, ok := terminalFd(w)
	return ok
}
