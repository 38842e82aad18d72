package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/scopecheck/scopecheck/internal/domain"
	"github.com/scopecheck/scopecheck/internal/domain/pipeline"
)

// PipelineService executes planned steps in order. A step that cannot start
// is always fatal; a non-zero exit is fatal unless the step tolerates it.
type PipelineService struct {
	runner domain.CommandRunner
	log    *slog.Logger
}

func NewPipelineService(runner domain.CommandRunner, log *slog.Logger) *PipelineService {
	return &PipelineService{runner: runner, log: log}
}

func (s *PipelineService) Run(ctx context.Context, steps []pipeline.Step) error {
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.log.Info("running step", "step", step.Name, "phase", step.Phase)

		err := s.runner.Run(ctx, domain.Command{Args: step.Args, Dir: step.Dir})
		if err == nil {
			continue
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("step %s: %w", step.Name, ctxErr)
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && step.Policy == pipeline.ExitTolerated {
			s.log.Debug("step exited non-zero, continuing", "step", step.Name, "code", exitErr.ExitCode())
			continue
		}
		return fmt.Errorf("step %s (%s): %v: %w", step.Name, strings.Join(step.Args, " "), err, domain.ErrCommand)
	}
	return nil
}
