package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/csheth/mathscout/internal/export"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var withHints bool
	cmd := &cobra.Command{
		Use:   "export <scene.json> <out.pdf>",
		Short: "Recognize a saved scene and write it as a PDF with formula captions",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			eval, s, err := evaluateScene(opts, args[0], cmd.ErrOrStderr(), withHints)
			if err != nil {
				return err
			}
			page := export.Page{
				Title:    strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0])),
				Elements: s.FreeDraw(),
				Lines:    eval.Lines(),
				Symbols:  eval.Symbols(),
			}
			if err := export.WriteFile(args[1], page); err != nil {
				return fmt.Errorf("export %s: %w", args[1], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d stroke(s), %d line(s))\n", args[1], len(page.Elements), len(page.Lines))
			return nil
		},
	}
	cmd.Flags().BoolVar(&withHints, "check", false, "also mark each equation as correct or not")
	return cmd
}
