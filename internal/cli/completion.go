package cli

import (
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	wcio "github.com/matzehuels/wordcloud/pkg/io"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
	"github.com/matzehuels/wordcloud/pkg/wordcloud/sink"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for wordcloud.

Load them for the current shell:

  $ source <(wordcloud completion bash)
  $ source <(wordcloud completion zsh)
  $ wordcloud completion fish | source
  PS> wordcloud completion powershell | Out-String | Invoke-Expression

Palette names, output formats, engines and input formats complete as flag
values.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// flagValues lists the fixed values offered for option flags.
func flagValues() map[string][]string {
	return map[string][]string{
		"palette":      sink.PaletteNames(),
		"format":       sortedKeys(pipeline.ValidFormats),
		"engine":       sortedKeys(pipeline.ValidEngines),
		"input-format": inputFormats(),
	}
}

// registerCompletions attaches value completions to every command in the
// tree that defines one of the option flags.
func registerCompletions(root *cobra.Command) {
	values := flagValues()
	var walk func(*cobra.Command)
	walk = func(cmd *cobra.Command) {
		for name, vals := range values {
			if cmd.Flags().Lookup(name) == nil {
				continue
			}
			_ = cmd.RegisterFlagCompletionFunc(name, completeList(vals))
		}
		for _, sub := range cmd.Commands() {
			walk(sub)
		}
	}
	walk(root)
}

// completeList completes the last element of a comma-separated value.
func completeList(vals []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		prefix := ""
		if i := strings.LastIndex(toComplete, ","); i >= 0 {
			prefix = toComplete[:i+1]
		}
		out := make([]string, 0, len(vals))
		for _, v := range vals {
			if strings.HasPrefix(prefix+v, toComplete) {
				out = append(out, prefix+v)
			}
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	}
}

func inputFormats() []string {
	out := make([]string, len(wcio.Formats))
	for i, f := range wcio.Formats {
		out[i] = string(f)
	}
	return out
}

func sortedKeys(m map[string]bool) []string {
	return slices.Sorted(maps.Keys(m))
}
