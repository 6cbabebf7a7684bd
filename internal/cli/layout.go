package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/pipeline"
	"github.com/matzehuels/wordcloud/pkg/wordcloud"
	"github.com/matzehuels/wordcloud/pkg/wordcloud/layout"
	"github.com/matzehuels/wordcloud/pkg/wordcloud/sink"
)

const (
	// layoutSuffix marks layout documents written by the layout command.
	layoutSuffix = ".layout"

	// tableRows is the number of words listed by --table.
	tableRows = 20
)

// layoutRun holds the per-invocation settings shared by layout and render.
type layoutRun struct {
	cache cacheFlags
	tui   bool
	table bool
}

func (r *layoutRun) register(cmd *cobra.Command) {
	r.cache.register(cmd)
	cmd.Flags().BoolVar(&r.tui, "tui", false, "show a live progress view while placing words")
	cmd.Flags().BoolVar(&r.table, "table", false, fmt.Sprintf("print the %d heaviest words with their placement", tableRows))
}

// layoutCommand creates the layout command for computing word cloud layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		run    layoutRun
		flags  *optionFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [words-file]",
		Short: "Compute a word cloud layout from weighted words",
		Long: `Compute a word cloud layout from weighted words.

Words are read from a JSON, CSV or TOML word list, or counted in plain text
(--text or a .txt file). The output is a layout document (<input>.layout.json)
that 'render' turns into SVG or PNG without placing the words again.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				opts.Input = args[0]
			}
			return c.runLayout(cmd.Context(), opts, output, run)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	run.register(cmd)
	flags = newOptionFlags(cmd, bindReadFlags, bindFontFlags, bindLayoutFlags)

	return cmd
}

// runLayout reads the words, computes the layout, and writes the document.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string, run layoutRun) error {
	opts.Logger = c.Logger

	runner, err := c.newRunner(ctx, run.cache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	words, _, err := runner.ReadWithCacheInfo(ctx, opts)
	if err != nil {
		return fmt.Errorf("read words: %w", err)
	}

	cl, cacheHit, err := c.computeLayout(ctx, runner, words, opts, run.tui)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}

	data, err := sink.RenderJSON(cl)
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	outputPath := output
	if outputPath == "" {
		outputPath = basePath("", opts.Input) + layoutSuffix + "." + pipeline.FormatJSON
	}
	if err := writeFile(outputPath, data); err != nil {
		return err
	}

	c.printSuccess("Layout complete")
	c.printFile(outputPath)
	c.reportCloud(cl, cloudStats(cl), cacheHit, run.table)
	c.printNewline()
	c.printNextStep("Render", appName+" render "+outputPath)
	return nil
}

// computeLayout runs the layout stage behind a spinner or, with tui, the
// interactive progress view.
func (c *CLI) computeLayout(ctx context.Context, runner *pipeline.Runner, words []wordcloud.Word, opts pipeline.Options, tui bool) (wordcloud.Cloud, bool, error) {
	title := fmt.Sprintf("Placing %d words on %dx%d", len(words), opts.Width, opts.Height)

	var (
		cl  wordcloud.Cloud
		hit bool
	)
	if tui {
		err := runWithTUI(ctx, os.Stdin, os.Stderr, title, func(ctx context.Context, onProgress func(layout.Progress)) error {
			opts.OnProgress = onProgress
			var err error
			cl, hit, err = runner.LayoutWithCacheInfo(ctx, words, opts)
			return err
		})
		return cl, hit, err
	}

	spinner := newSpinner(ctx, os.Stderr, title+"...")
	opts.OnProgress = func(p layout.Progress) {
		spinner.Update(fmt.Sprintf("%s... %d/%d", title, p.Done(), p.Total))
	}
	spinner.Start()
	cl, hit, err := runner.LayoutWithCacheInfo(ctx, words, opts)
	spinner.Stop()
	switch {
	case err != nil && spinner.Cancelled():
		c.printWarning("Layout cancelled")
	case err != nil:
		c.printError("Layout failed")
	}
	return cl, hit, err
}

// reportCloud prints the stats line, a warning for unplaced words and,
// when asked, the word table.
func (c *CLI) reportCloud(cl wordcloud.Cloud, stats pipeline.Stats, cached, table bool) {
	c.printCloudStats(stats, cached)
	if stats.Unplaced > 0 {
		c.printWarning("%d of %d words did not fit; try a larger canvas or smaller fonts", stats.Unplaced, len(cl.Words))
	}
	if table {
		c.printNewline()
		fmt.Fprintln(c.Out, wordTable(cl, tableRows))
	}
}
