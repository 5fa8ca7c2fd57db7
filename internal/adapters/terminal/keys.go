package terminal

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

const ctrlC = 0x03

// RawInput switches stdin into raw mode when it is a terminal, so single key
// presses arrive without Enter. The returned function restores the terminal.
func RawInput(in *os.File) (restore func(), err error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return func() {}, nil
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return func() { term.Restore(fd, state) }, nil
}

// ReadKeys delivers every rune read from in to onKey until in is exhausted,
// ctx is done, or the operator presses q or Ctrl-C. onKey is responsible for
// getting onto the UI goroutine.
func ReadKeys(ctx context.Context, in io.Reader, log logrus.FieldLogger, onKey func(rune)) error {
	r := bufio.NewReader(in)
	for {
		if ctx.Err() != nil {
			return nil
		}
		key, _, err := r.ReadRune()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		switch key {
		case 'q', 'Q', ctrlC:
			log.Debug("quit key pressed")
			return nil
		}
		onKey(key)
	}
}
