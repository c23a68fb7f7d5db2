package gate

import (
	"context"
	"io"

	"github.com/Tomas-vilte/MateRisk/internal/cli/input"
	cfg "github.com/Tomas-vilte/MateRisk/internal/config"
	"github.com/Tomas-vilte/MateRisk/internal/i18n"
	"github.com/Tomas-vilte/MateRisk/internal/services"
	"github.com/Tomas-vilte/MateRisk/internal/ui"
	"github.com/urfave/cli/v3"
)

// Decision is the dry-run answer of the trigger gate.
type Decision struct {
	Triggered bool   `json:"triggered"`
	Reason    string `json:"reason,omitempty"`
	Action    string `json:"action"`
	BaseRef   string `json:"baseRef"`
	PRNumber  int    `json:"prNumber"`
	Repo      string `json:"repo"`
	TicketKey string `json:"ticketKey,omitempty"`
}

type GateCommand struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func NewGateCommand(stdin io.Reader, stdout, stderr io.Writer) *GateCommand {
	return &GateCommand{stdin: stdin, stdout: stdout, stderr: stderr}
}

func (c *GateCommand) CreateCommand(t *i18n.Translations, _ *cfg.Config) *cli.Command {
	return &cli.Command{
		Name:  "gate",
		Usage: t.GetMessage("cmd_gate_usage", 0, nil),
		Flags: []cli.Flag{input.EventFlag(t)},
		Action: func(_ context.Context, cmd *cli.Command) error {
			event, err := input.ReadEvent(cmd.String(input.FlagEvent), c.stdin)
			if err != nil {
				ui.HandleAppError(c.stderr, err, t)
				return err
			}

			ok, reason := services.Gate(event)
			return input.WriteJSON(c.stdout, Decision{
				Triggered: ok,
				Reason:    reason,
				Action:    event.Action,
				BaseRef:   event.BaseRef,
				PRNumber:  event.PRNumber,
				Repo:      event.FullName(),
				TicketKey: services.DetectTicketKey(event.PRTitle, event.HeadRef, event.PRBody),
			})
		},
	}
}
