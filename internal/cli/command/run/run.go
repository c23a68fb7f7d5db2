package run

import (
	"context"
	"io"

	"github.com/Tomas-vilte/MateRisk/internal/cli/input"
	cfg "github.com/Tomas-vilte/MateRisk/internal/config"
	"github.com/Tomas-vilte/MateRisk/internal/domain/models"
	"github.com/Tomas-vilte/MateRisk/internal/domain/ports"
	"github.com/Tomas-vilte/MateRisk/internal/i18n"
	"github.com/Tomas-vilte/MateRisk/internal/logger"
	"github.com/Tomas-vilte/MateRisk/internal/services"
	"github.com/Tomas-vilte/MateRisk/internal/ui"
	"github.com/urfave/cli/v3"
)

// PipelineFactory builds a pipeline for the given runtime settings.
type PipelineFactory interface {
	CreatePipeline(ctx context.Context, rt input.Runtime) (ports.PipelineRunner, error)
}

type RunCommand struct {
	factory PipelineFactory
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

func NewRunCommand(factory PipelineFactory, stdin io.Reader, stdout, stderr io.Writer) *RunCommand {
	return &RunCommand{
		factory: factory,
		stdin:   stdin,
		stdout:  stdout,
		stderr:  stderr,
	}
}

func (c *RunCommand) CreateCommand(t *i18n.Translations, _ *cfg.Config) *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: t.GetMessage("cmd_run_usage", 0, nil),
		Flags: append([]cli.Flag{input.EventFlag(t)}, input.RuntimeFlags(t)...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			event, err := input.ReadEvent(cmd.String(input.FlagEvent), c.stdin)
			if err != nil {
				return c.finish(models.Failed(err), err, t)
			}

			// el gate no necesita configuración ni red
			if ok, reason := services.Gate(event); !ok {
				return c.finish(models.Skipped(reason), nil, t)
			}

			pipeline, err := c.factory.CreatePipeline(ctx, input.RuntimeFrom(cmd))
			if err != nil {
				return c.finish(models.Failed(err), err, t)
			}

			defer func() {
				if err := pipeline.Close(); err != nil {
					logger.Warn(ctx, "error closing pipeline", "error", err)
				}
			}()

			result, err := pipeline.Run(ctx, event)
			return c.finish(result, err, t)
		},
	}
}

// finish prints the JSON result on stdout and a summary on stderr.
func (c *RunCommand) finish(result models.PipelineResult, runErr error, t *i18n.Translations) error {
	if err := input.WriteJSON(c.stdout, result); err != nil {
		return err
	}
	ui.PrintResult(c.stderr, result, t)
	if runErr != nil {
		ui.HandleAppError(c.stderr, runErr, t)
	}
	return runErr
}
