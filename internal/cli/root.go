package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// The command tree is:
//
//	wordcloud words <input>           extract a weighted word list
//	wordcloud layout <words>          compute a layout document
//	wordcloud render <words|layout>   write SVG, PNG or JSON
//	wordcloud serve                   run the HTTP API
//	wordcloud cache info|clear|path   manage the local cache
//	wordcloud completion <shell>      shell completion scripts
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Wordcloud lays out weighted words without overlap",
		Long: `Wordcloud places weighted words on a canvas, heaviest first, along a spiral
from the center, shrinking words that do not fit until every word is placed
or reported as unplaced. Layouts render to SVG, PNG and JSON.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.wordsCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())
	registerCompletions(root)

	return root
}
