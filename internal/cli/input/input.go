// Package input holds the flags and payload helpers shared by the commands.
package input

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Tomas-vilte/MateRisk/internal/domain/models"
	"github.com/Tomas-vilte/MateRisk/internal/i18n"
	"github.com/urfave/cli/v3"
)

const (
	FlagEvent   = "event"
	FlagConfig  = "config"
	FlagDebug   = "debug"
	FlagVerbose = "verbose"

	// stdinPath reads the payload from standard input.
	stdinPath = "-"
)

// Runtime carries the settings every pipeline command accepts.
type Runtime struct {
	ConfigPath string
	Debug      bool
	Verbose    bool
}

func EventFlag(t *i18n.Translations) cli.Flag {
	return &cli.StringFlag{
		Name:    FlagEvent,
		Aliases: []string{"e"},
		Usage:   t.GetMessage("flag_event_usage", 0, nil),
		Value:   stdinPath,
	}
}

func RuntimeFlags(t *i18n.Translations) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    FlagConfig,
			Aliases: []string{"c"},
			Usage:   t.GetMessage("flag_config_usage", 0, nil),
		},
		&cli.BoolFlag{
			Name:  FlagDebug,
			Usage: t.GetMessage("flag_debug_usage", 0, nil),
		},
		&cli.BoolFlag{
			Name:    FlagVerbose,
			Aliases: []string{"v"},
			Usage:   t.GetMessage("flag_verbose_usage", 0, nil),
		},
	}
}

func RuntimeFrom(cmd *cli.Command) Runtime {
	return Runtime{
		ConfigPath: cmd.String(FlagConfig),
		Debug:      cmd.Bool(FlagDebug),
		Verbose:    cmd.Bool(FlagVerbose),
	}
}

// ReadEvent parses the webhook payload at path, or stdin when path is "-" or empty.
func ReadEvent(path string, stdin io.Reader) (models.TriggerEvent, error) {
	data, err := ReadFile(path, stdin)
	if err != nil {
		return models.TriggerEvent{}, err
	}
	return models.ParseTriggerEvent(data)
}

// ReadFile returns the contents of path, or of stdin when path is "-" or empty.
func ReadFile(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == stdinPath {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("error reading standard input: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	return data, nil
}

// WriteJSON prints v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
