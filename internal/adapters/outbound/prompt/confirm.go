// Package prompt asks the developer for confirmation before the expensive
// part of a run.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

// Confirmer implements domain.Confirmer. On a terminal it shows a huh
// confirm field; otherwise it reads one line, where anything but n/no
// proceeds and end of input aborts.
type Confirmer struct {
	in  io.Reader
	out io.Writer
	tty bool
}

// New detects whether in is a terminal.
func New(in *os.File, out io.Writer) *Confirmer {
	tty := isatty.IsTerminal(in.Fd()) || isatty.IsCygwinTerminal(in.Fd())
	return &Confirmer{in: in, out: out, tty: tty}
}

// NewLineReader always uses the plain line prompt.
func NewLineReader(in io.Reader, out io.Writer) *Confirmer {
	return &Confirmer{in: in, out: out}
}

func (c *Confirmer) Confirm(ctx context.Context, question string) (bool, error) {
	if c.tty {
		return c.confirmTTY(ctx, question)
	}
	return c.confirmLine(question)
}

func (c *Confirmer) confirmTTY(ctx context.Context, question string) (bool, error) {
	ok := true
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(question).
			Affirmative("Continue").
			Negative("Abort").
			Value(&ok),
	))
	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, fmt.Errorf("prompt: %w", err)
	}
	return ok, nil
}

func (c *Confirmer) confirmLine(question string) (bool, error) {
	fmt.Fprintf(c.out, "%s [Y/n]: ", question)
	line, err := bufio.NewReader(c.in).ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return false, fmt.Errorf("reading answer: %w", err)
		}
		if line == "" {
			return false, nil
		}
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "n", "no":
		return false, nil
	}
	return true, nil
}
