package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/pipeline"
	"github.com/matzehuels/wordcloud/pkg/wordcloud/sink"
)

// stdoutPath selects standard output for a single artifact.
const stdoutPath = "-"

// renderCommand creates the render command. It goes from words to artifacts
// in one step, or renders a layout document written by 'layout'.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		fromLayout bool
		run        layoutRun
		flags      *optionFlags
	)

	cmd := &cobra.Command{
		Use:   "render [words-file | layout.json]",
		Short: "Render a word cloud to SVG, PNG or JSON",
		Long: `Render a word cloud to SVG, PNG or JSON.

Given a word list (or --text), render reads the words, computes the layout and
writes one file per requested format. Given a layout document produced by
'layout' (*.layout.json, or any file with --from-layout), it only renders.

Examples:
  wordcloud render words.csv -f svg,png --palette sunset
  wordcloud render --text "$(cat README.md)" -o readme.svg
  wordcloud render words.layout.json -f png --png-scale 2 --background white

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if len(args) == 1 {
				opts.Input = args[0]
			}
			if output == stdoutPath && len(opts.Formats) != 1 {
				return fmt.Errorf("output %q needs exactly one format, got %s", stdoutPath, strings.Join(opts.Formats, ","))
			}
			if output == stdoutPath {
				c.Out = cmd.ErrOrStderr()
			}
			if fromLayout || isLayoutFile(opts.Input) {
				return c.runRenderLayout(cmd.Context(), opts, output, run)
			}
			return c.runRender(cmd.Context(), opts, output, run)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format), base path (multiple), or - for stdout")
	cmd.Flags().BoolVar(&fromLayout, "from-layout", false, "treat the input as a layout document")
	run.register(cmd)
	flags = newOptionFlags(cmd, bindReadFlags, bindFontFlags, bindLayoutFlags, bindRenderFlags)

	return cmd
}

// isLayoutFile reports whether path names a layout document by convention.
func isLayoutFile(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), layoutSuffix+"."+pipeline.FormatJSON)
}

// runRender runs the full pipeline: read, layout, render.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, run layoutRun) error {
	opts.Logger = c.Logger
	prog := newProgress(c.Logger)

	runner, err := c.newRunner(ctx, run.cache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	words, wordsHit, err := runner.ReadWithCacheInfo(ctx, opts)
	if err != nil {
		return fmt.Errorf("read words: %w", err)
	}
	c.Logger.Debug("read words", "words", len(words), "cached", wordsHit)

	cl, layoutHit, err := c.computeLayout(ctx, runner, words, opts, run.tui)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}

	artifacts, renderHit, err := runner.RenderWithCacheInfo(ctx, cl, opts)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	paths, err := c.writeArtifacts(artifacts, opts.Formats, opts.Input, output)
	if err != nil {
		return err
	}
	prog.done("rendered word cloud", "formats", opts.Formats)

	c.printSuccess("Rendered %d words", len(words))
	for _, p := range paths {
		c.printFile(p)
	}
	c.reportCloud(cl, cloudStats(cl), layoutHit && renderHit, run.table)
	return nil
}

// runRenderLayout renders a saved layout document without placing words.
func (c *CLI) runRenderLayout(ctx context.Context, opts pipeline.Options, output string, run layoutRun) error {
	if opts.Input == "" {
		return fmt.Errorf("a layout file is required with --from-layout")
	}
	opts.Logger = c.Logger

	data, err := os.ReadFile(opts.Input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", opts.Input, err)
	}
	cl, err := sink.ReadJSON(data)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", opts.Input, err)
	}

	runner, err := c.newRunner(ctx, run.cache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinner(ctx, os.Stderr, fmt.Sprintf("Rendering %s...", strings.Join(opts.Formats, ", ")))
	spinner.Start()
	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, cl, opts)
	spinner.Stop()
	if err != nil {
		if spinner.Cancelled() {
			c.printWarning("Render cancelled")
		} else {
			c.printError("Render failed")
		}
		return fmt.Errorf("render: %w", err)
	}

	paths, err := c.writeArtifacts(artifacts, opts.Formats, opts.Input, output)
	if err != nil {
		return err
	}
	c.printSuccess("Rendered %s", filepath.Base(opts.Input))
	for _, p := range paths {
		c.printFile(p)
	}
	c.reportCloud(cl, cloudStats(cl), cacheHit, run.table)
	return nil
}

// =============================================================================
// Output
// =============================================================================

// artifactPaths maps each format to its output path. A single format with an
// explicit output uses it verbatim; otherwise files share a base path.
func artifactPaths(formats []string, input, output string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// writeArtifacts writes artifacts in format order and returns the paths
// written. Standard output is reported as "-".
func (c *CLI) writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	paths := artifactPaths(formats, input, output)
	written := make([]string, 0, len(formats))
	seen := make(map[string]bool, len(formats))
	for _, f := range formats {
		if seen[f] {
			continue
		}
		seen[f] = true
		data, ok := artifacts[f]
		if !ok {
			return written, fmt.Errorf("no %s output produced", f)
		}
		if err := writeFile(paths[f], data); err != nil {
			return written, err
		}
		c.Logger.Debug("wrote artifact", "format", f, "path", paths[f], "bytes", len(data))
		written = append(written, paths[f])
	}
	return written, nil
}

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for path; "-" is standard output.
func openOutput(path string) (io.WriteCloser, error) {
	if path == stdoutPath {
		return nopCloser{os.Stdout}, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}
	return os.Create(path)
}

func writeFile(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return fmt.Errorf("write output %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}
