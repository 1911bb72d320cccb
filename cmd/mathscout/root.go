package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/csheth/mathscout/internal/config"
	"github.com/csheth/mathscout/internal/recognition"
	"github.com/csheth/mathscout/internal/recognizer"
	"github.com/csheth/mathscout/internal/scene"
	"github.com/csheth/mathscout/internal/tui"
)

type rootOptions struct {
	configPath  string
	endpoint    string
	scenePath   string
	logFile     string
	noAltScreen bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "mathscout",
		Short: "Handwritten math on a terminal canvas, checked as you write",
		Long: `mathscout is a drawing surface for handwritten math. Strokes are sent to a
recognition service which reads them back as formulas, colors each symbol by
kind and, on request, checks every equation and offers step by step hints.

Example usage:
  mathscout --scene homework.json      # Draw, press c to check
  mathscout check homework.json        # Print the reading and feedback
  mathscout export homework.json out.pdf`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(opts)
		},
	}
	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default is $MATHSCOUT_CONFIG or ./mathscout.yaml)")
	flags.StringVar(&opts.endpoint, "endpoint", "", "recognition service URL (overrides config and RECOGNIZER_HOST)")
	cmd.Flags().StringVar(&opts.scenePath, "scene", "", "scene file to open and save to")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "write logs to this file")
	cmd.Flags().BoolVar(&opts.noAltScreen, "no-alt-screen", false, "disable the alternate screen buffer")

	cmd.AddCommand(newCheckCmd(opts), newExportCmd(opts))
	return cmd
}

// loadConfig resolves the config file, then the environment, then flags.
func loadConfig(opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(config.ResolvePath(opts.configPath))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ApplyEnv()
	if opts.endpoint != "" {
		cfg.Recognizer.Endpoint = opts.endpoint
	}
	if opts.logFile != "" {
		cfg.Logging.File = opts.logFile
	}
	return cfg, nil
}

func newEvaluator(cfg *config.Config, logger *log.Logger, seed int64) (*recognition.Evaluator, error) {
	client, err := recognizer.New(recognizer.Config{
		Endpoint: cfg.Recognizer.Endpoint,
		Timeout:  cfg.Recognizer.Timeout,
	})
	if err != nil {
		return nil, err
	}
	return recognition.New(recognition.Config{
		Client:      client,
		Scale:       cfg.Recognizer.Scale,
		Palette:     cfg.Palette,
		HintOffset:  cfg.Overlay.HintOffset,
		Motivations: cfg.Motivations,
		Rand:        rand.New(rand.NewSource(seed)),
		Logger:      logger,
		Timeout:     cfg.Recognizer.Timeout,
	})
}

// openScene loads path, or starts an empty scene when the file does not exist yet.
func openScene(path string) (*scene.Scene, error) {
	if path == "" {
		return scene.New(), nil
	}
	s, err := scene.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return scene.New(), nil
	}
	return s, err
}

func runInteractive(opts *rootOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	if cfg.Logging.File != "" {
		f, err := tea.LogToFile(cfg.Logging.File, "mathscout")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	seed := cfg.Overlay.ParticleSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	eval, err := newEvaluator(cfg, log.Default(), seed)
	if err != nil {
		return err
	}
	s, err := openScene(opts.scenePath)
	if err != nil {
		return fmt.Errorf("open scene: %w", err)
	}
	log.Printf("[mathscout] recognizer %s, %d stroke(s) loaded", eval.Client().Name(), len(s.FreeDraw()))

	programOpts := []tea.ProgramOption{tea.WithMouseCellMotion()}
	if !opts.noAltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	program := tea.NewProgram(tui.New(tui.Config{
		Scene:        s,
		ScenePath:    opts.scenePath,
		Evaluator:    eval,
		Grey:         cfg.GreyStyle(),
		MinHintWidth: cfg.Overlay.MinHintWidth,
		Particles:    cfg.Overlay.Particles,
		Rand:         rand.New(rand.NewSource(seed)),
	}), programOpts...)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}
