package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	wcio "github.com/matzehuels/wordcloud/pkg/io"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
)

// wordsSuffix marks word lists written by the words command.
const wordsSuffix = ".words"

// wordsCommand creates the words command that extracts a weighted word list.
func (c *CLI) wordsCommand() *cobra.Command {
	var (
		output string
		cf     cacheFlags
		flags  *optionFlags
	)

	cmd := &cobra.Command{
		Use:   "words [input]",
		Short: "Extract a weighted word list",
		Long: `Extract a weighted word list.

Counts the words of a text (--text or a .txt file) or normalizes a JSON, CSV or
TOML list, keeps the --max-words heaviest, and writes them as CSV or JSON
depending on the output extension. The list can be edited and passed to
'layout' or 'render'.

Examples:
  wordcloud words README.md --input-format text --max-words 50
  wordcloud words --text "$(cat notes.txt)" -o notes.json
  wordcloud words speech.txt -o - | head`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				opts.Input = args[0]
			}
			if output == stdoutPath {
				c.Out = cmd.ErrOrStderr()
			}
			return c.runWords(cmd.Context(), opts, output, cf)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, .csv or .json (default: <input>.words.csv), or - for CSV on stdout")
	cf.register(cmd)
	flags = newOptionFlags(cmd, bindReadFlags)

	return cmd
}

func (c *CLI) runWords(ctx context.Context, opts pipeline.Options, output string, cf cacheFlags) error {
	opts.Logger = c.Logger

	runner, err := c.newRunner(ctx, cf)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	words, cached, err := runner.ReadWithCacheInfo(ctx, opts)
	if err != nil {
		return fmt.Errorf("read words: %w", err)
	}

	if output == stdoutPath {
		if err := wcio.WriteCSV(words, os.Stdout); err != nil {
			return fmt.Errorf("write words: %w", err)
		}
		c.printSuccess("Extracted %d words", len(words))
		return nil
	}

	path := output
	if path == "" {
		path = basePath("", opts.Input) + wordsSuffix + "." + string(wcio.FormatCSV)
	}
	if err := wcio.ExportWords(words, path); err != nil {
		return err
	}

	c.printSuccess("Extracted %d words", len(words))
	c.printFile(path)
	if cached {
		c.printDetail("%s", iconCached)
	}
	c.printNewline()
	c.printNextStep("Render", appName+" render "+path)
	return nil
}
