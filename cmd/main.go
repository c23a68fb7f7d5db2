package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/Tomas-vilte/MateRisk/internal/cli/command/gate"
	"github.com/Tomas-vilte/MateRisk/internal/cli/command/render"
	"github.com/Tomas-vilte/MateRisk/internal/cli/command/run"
	"github.com/Tomas-vilte/MateRisk/internal/cli/registry"
	cfg "github.com/Tomas-vilte/MateRisk/internal/config"
	"github.com/Tomas-vilte/MateRisk/internal/i18n"
	"github.com/Tomas-vilte/MateRisk/internal/infrastructure/factory"
	"github.com/Tomas-vilte/MateRisk/internal/version"
	"github.com/urfave/cli/v3"
)

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Error iniciando la cli: %v", err)
	}

	// el detalle del error ya se imprimió en stderr
	if err := app.Run(context.Background(), os.Args); err != nil {
		os.Exit(1)
	}
}

func initializeApp() (*cli.Command, error) {
	// solo para el idioma de la ayuda; cada comando carga su propia configuración
	cfgApp, err := cfg.LoadConfig(os.Getenv("MATERISK_CONFIG"))
	if err != nil {
		return nil, err
	}

	translations, err := i18n.NewTranslations(cfgApp.Language)
	if err != nil {
		return nil, fmt.Errorf("error al cargar las traducciones: %w", err)
	}

	registerCommand := registry.NewRegistry(cfgApp, translations)

	if err := registerCommand.Register("run", run.NewRunCommand(factory.NewPipelineFactory(), os.Stdin, os.Stdout, os.Stderr)); err != nil {
		return nil, err
	}
	if err := registerCommand.Register("gate", gate.NewGateCommand(os.Stdin, os.Stdout, os.Stderr)); err != nil {
		return nil, err
	}
	if err := registerCommand.Register("render", render.NewRenderCommand(os.Stdin, os.Stdout, os.Stderr)); err != nil {
		return nil, err
	}

	return &cli.Command{
		Name:        "materisk",
		Usage:       translations.GetMessage("app_usage", 0, nil),
		Version:     version.Version,
		Description: translations.GetMessage("app_description", 0, nil),
		Commands:    registerCommand.CreateCommands(),
	}, nil
}
