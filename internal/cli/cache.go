package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/cache"
)

// cacheCommand groups the subcommands that inspect and empty the local
// file cache. Shared Redis caches are managed outside the CLI.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local layout and render cache",
	}
	cmd.AddCommand(
		c.cacheInfoCommand(),
		c.cacheClearCommand(),
		c.cachePathCommand(),
	)
	return cmd
}

// openLocalCache opens the file cache without creating it. A nil cache
// with a nil error means nothing has been cached yet.
func openLocalCache() (*cache.FileCache, string, error) {
	dir, err := cacheDir()
	if err != nil {
		return nil, "", fmt.Errorf("locate cache: %w", err)
	}
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return nil, dir, nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, dir, fmt.Errorf("open cache %s: %w", dir, err)
	}
	return fc, dir, nil
}

func (c *CLI) cacheInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show how many entries the cache holds and their size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, dir, err := openLocalCache()
			if err != nil {
				return err
			}
			if fc == nil {
				c.printInfo("Cache is empty")
				return nil
			}
			n, size, err := fc.Usage()
			if err != nil {
				return fmt.Errorf("read cache: %w", err)
			}
			c.printInfo("%d cached entries, %s", n, fmtBytes(size))
			c.printDetail("Directory: %s", dir)
			return nil
		},
	}
}

func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached words, layouts and renders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, dir, err := openLocalCache()
			if err != nil {
				return err
			}
			if fc == nil {
				c.printInfo("Cache is empty")
				return nil
			}
			n, err := fc.Clear()
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			c.printSuccess("Cleared %d cached entries", n)
			c.printDetail("Directory: %s", dir)
			return nil
		},
	}
}

func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("locate cache: %w", err)
			}
			fmt.Fprintln(c.Out, dir)
			return nil
		},
	}
}

// fmtBytes renders n with a binary unit, e.g. "1.5 KiB".
func fmtBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
