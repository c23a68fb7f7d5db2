package render

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Tomas-vilte/MateRisk/internal/cli/input"
	cfg "github.com/Tomas-vilte/MateRisk/internal/config"
	"github.com/Tomas-vilte/MateRisk/internal/domain/models"
	"github.com/Tomas-vilte/MateRisk/internal/i18n"
	"github.com/Tomas-vilte/MateRisk/internal/infrastructure/ai/parser"
	"github.com/Tomas-vilte/MateRisk/internal/report"
	"github.com/Tomas-vilte/MateRisk/internal/ui"
	"github.com/urfave/cli/v3"
)

const (
	flagAnalysis = "analysis"
	flagTests    = "tests"
	flagTicket   = "ticket"
	flagOutput   = "output"
	flagLang     = "lang"
)

// RenderCommand renders the HTML report from saved model answers, without any network call.
type RenderCommand struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func NewRenderCommand(stdin io.Reader, stdout, stderr io.Writer) *RenderCommand {
	return &RenderCommand{stdin: stdin, stdout: stdout, stderr: stderr}
}

func (c *RenderCommand) CreateCommand(t *i18n.Translations, _ *cfg.Config) *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: t.GetMessage("cmd_render_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     flagAnalysis,
				Aliases:  []string{"a"},
				Usage:    t.GetMessage("flag_analysis_usage", 0, nil),
				Required: true,
			},
			&cli.StringFlag{
				Name:    flagTests,
				Aliases: []string{"t"},
				Usage:   t.GetMessage("flag_tests_usage", 0, nil),
			},
			&cli.StringFlag{
				Name:  input.FlagEvent,
				Usage: t.GetMessage("flag_event_usage", 0, nil),
			},
			&cli.StringFlag{
				Name:  flagTicket,
				Usage: t.GetMessage("flag_ticket_usage", 0, nil),
			},
			&cli.StringFlag{
				Name:    flagOutput,
				Aliases: []string{"o"},
				Usage:   t.GetMessage("flag_output_usage", 0, nil),
			},
			&cli.StringFlag{
				Name:  flagLang,
				Usage: t.GetMessage("flag_lang_usage", 0, nil),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			html, err := c.render(ctx, cmd, t)
			if err != nil {
				ui.HandleAppError(c.stderr, err, t)
				return err
			}

			out := cmd.String(flagOutput)
			if out == "" {
				_, err = io.WriteString(c.stdout, html)
				return err
			}
			if err := os.WriteFile(out, []byte(html), 0o644); err != nil {
				return fmt.Errorf("error writing %s: %w", out, err)
			}
			ui.PrintSuccess(c.stderr, t.GetMessage("ui_report_written", 0, map[string]interface{}{"Path": out}))
			return nil
		},
	}
}

func (c *RenderCommand) render(ctx context.Context, cmd *cli.Command, t *i18n.Translations) (string, error) {
	rawAnalysis, err := input.ReadFile(cmd.String(flagAnalysis), c.stdin)
	if err != nil {
		return "", err
	}
	analysis, err := parser.ParseImpactAnalysis(ctx, string(rawAnalysis))
	if err != nil {
		return "", err
	}

	tests := models.TestCaseSet{TestCases: []models.TestCase{}}
	if path := cmd.String(flagTests); path != "" {
		rawTests, err := input.ReadFile(path, c.stdin)
		if err != nil {
			return "", err
		}
		if tests, err = parser.ParseTestCaseSet(ctx, string(rawTests)); err != nil {
			return "", err
		}
	}

	var event models.TriggerEvent
	if path := cmd.String(input.FlagEvent); path != "" {
		if event, err = input.ReadEvent(path, c.stdin); err != nil {
			return "", err
		}
	}

	trans := t
	if lang := cmd.String(flagLang); lang != "" {
		if trans, err = i18n.NewTranslations(lang); err != nil {
			return "", err
		}
	}

	return report.NewCompiler(trans).Compile(event, cmd.String(flagTicket), analysis, tests)
}
