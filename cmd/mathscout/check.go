package main

import (
	"fmt"
	"io"
	"log"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/csheth/mathscout/internal/recognition"
	"github.com/csheth/mathscout/internal/scene"
	"github.com/csheth/mathscout/internal/trace"
)

func newCheckCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check <scene.json>",
		Short: "Recognize a saved scene and print feedback for each equation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eval, _, err := evaluateScene(opts, args[0], cmd.ErrOrStderr(), true)
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), args[0], eval)
			return nil
		},
	}
}

// evaluateScene runs one recognition pass, and a hint pass when withHints is
// set, outside the interactive loop.
func evaluateScene(opts *rootOptions, path string, logs io.Writer, withHints bool) (*recognition.Evaluator, *scene.Scene, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, nil, err
	}
	s, err := scene.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open scene: %w", err)
	}
	eval, err := newEvaluator(cfg, log.New(logs, "", log.LstdFlags), cfg.Overlay.ParticleSeed)
	if err != nil {
		return nil, nil, err
	}

	traces := trace.NewStore(s, cfg.GreyStyle()).Sync(s.FreeDraw())
	cmd := eval.Update(traces)
	if cmd == nil {
		return eval, s, nil
	}
	result := cmd()
	msg, ok := result.(recognition.RecognizeMsg)
	if !ok {
		return nil, nil, fmt.Errorf("recognize: unexpected result %T", result)
	}
	if eval.ApplyRecognition(msg) == recognition.OutcomeFailed {
		return nil, nil, fmt.Errorf("recognize %s: %w", filepath.Base(path), msg.Err)
	}
	if !withHints {
		return eval, s, nil
	}

	hintsCmd := eval.Check()
	if hintsCmd == nil {
		return eval, s, nil
	}
	result = hintsCmd()
	hints, ok := result.(recognition.HintsMsg)
	if !ok {
		return nil, nil, fmt.Errorf("hints: unexpected result %T", result)
	}
	if eval.ApplyHints(hints) == recognition.OutcomeFailed {
		return nil, nil, fmt.Errorf("hints %s: %w", filepath.Base(path), hints.Err)
	}
	return eval, s, nil
}

func printReport(w io.Writer, path string, eval *recognition.Evaluator) {
	fmt.Fprintf(w, "%s: %d stroke(s)\n", filepath.Base(path), len(eval.Traces()))
	lines := eval.Lines()
	if len(lines) == 0 {
		fmt.Fprintln(w, "no formulas recognized")
	}
	for i, line := range lines {
		fmt.Fprintf(w, "line %d: %s\n", i+1, line.Text)
	}
	for i, symbol := range eval.Symbols() {
		if symbol.Correct {
			fmt.Fprintf(w, "equation %d: correct. %s\n", i+1, symbol.Texts[0])
			continue
		}
		fmt.Fprintf(w, "equation %d: needs work\n", i+1)
		for j, text := range symbol.Texts {
			fmt.Fprintf(w, "  step %d: %s\n", j+1, text)
		}
	}
}
