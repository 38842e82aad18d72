package browser

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// Opener implements domain.ReportOpener by launching a browser command
// detached from the run; it does not wait for the browser to exit.
type Opener struct {
	bin string
}

func New(bin string) *Opener {
	if bin == "" {
		bin = "xdg-open"
	}
	return &Opener{bin: bin}
}

func (o *Opener) Open(_ context.Context, target string) error {
	if _, err := os.Stat(target); err != nil {
		return fmt.Errorf("rendered report %s: %w", target, err)
	}
	cmd := exec.Command(o.bin, target)
	// Firefox on some Mesa drivers crashes with threaded GL.
	cmd.Env = append(os.Environ(), "MESA_GLTHREAD=false")
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launching %s: %w", o.bin, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
