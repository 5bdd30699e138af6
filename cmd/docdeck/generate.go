package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fredcamaral/docdeck/internal/domain/entities"
	"github.com/fredcamaral/docdeck/internal/domain/ports"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <file>",
		Short: "Generate Marp markup from a document",
		Long: `Generate a presentation from a PDF, text, markdown or HTML document.

The Marp markup is written to --output, or stdout when no output is given.
With --format the deck is also rendered through marp-cli next to the
markup (or next to the input when writing to stdout).

Example:
  docdeck generate report.pdf --audience business --output report.md
  docdeck generate notes.txt --demo --format html`,
		Args: cobra.ExactArgs(1),
		RunE: runGenerate,
	}

	cmd.Flags().String("density", "", "Content density: concise, balanced, comprehensive")
	cmd.Flags().String("audience", "", "Target audience: casual, educational, specialized, business, leadership")
	cmd.Flags().String("style", "", "Visual style (see 'docdeck styles')")
	cmd.Flags().StringP("output", "o", "", "Write markup to this file instead of stdout")
	cmd.Flags().StringP("format", "f", "", "Also render to pdf or html")
	cmd.Flags().Bool("demo", false, "Build a demo deck without calling the generator")
	cmd.Flags().String("model", "", "Generator model (overrides config)")
	cmd.Flags().String("orphan-bullets", "", "Bullets before the first heading: synthesize or drop")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	output, _ := cmd.Flags().GetString("output")
	formatName, _ := cmd.Flags().GetString("format")
	demo, _ := cmd.Flags().GetBool("demo")

	var format entities.OutputFormat
	if formatName != "" {
		parsed, err := entities.ParseOutputFormat(formatName)
		if err != nil {
			return err
		}
		format = parsed
	}

	data, err := readInputFile(inputPath)
	if err != nil {
		return err
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	stderr := cmd.ErrOrStderr()
	result, err := a.deck.Generate(cmd.Context(), ports.GenerateRequest{
		FileName:  filepath.Base(inputPath),
		Data:      data,
		Options:   a.config.Defaults,
		ForceDemo: demo,
	}, func(message string) {
		fmt.Fprintln(stderr, message)
	})
	if err != nil {
		return err
	}

	if result.DemoMode {
		fmt.Fprintln(stderr, "No generator available, built a demo deck from the document")
	}

	if output == "" {
		fmt.Fprint(cmd.OutOrStdout(), result.Markup)
	} else {
		if err := os.WriteFile(output, []byte(result.Markup), 0600); err != nil {
			return fmt.Errorf("writing markup: %w", err)
		}
		fmt.Fprintf(stderr, "Markup written to %s (%d slides)\n", output, len(result.Presentation.Slides))
	}

	if format == "" {
		return nil
	}

	base := output
	if base == "" {
		base = inputPath
	}
	target := replaceExt(base, format.Extension())

	rendered, err := a.deck.Render(cmd.Context(), ports.RenderRequest{
		Markup: result.Markup,
		Theme:  result.Theme,
		Format: format,
	})
	if err != nil {
		return err
	}

	if err := os.WriteFile(target, rendered.Data, 0600); err != nil {
		return fmt.Errorf("writing %s: %w", format, err)
	}
	fmt.Fprintf(stderr, "Rendered %s to %s\n", strings.ToUpper(string(format)), target)
	return nil
}

// readInputFile reads a regular file given on the command line
func readInputFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("accessing input file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("input path is not a regular file: %s", path)
	}

	data, err := os.ReadFile(path) // #nosec G304 - path given by the user
	if err != nil {
		return nil, fmt.Errorf("reading input file: %w", err)
	}
	return data, nil
}

// replaceExt swaps the extension of path for ext
func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + "." + ext
}
