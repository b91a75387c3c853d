package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local figure cache",
		Long: `Manage the local figure cache.

Rendered figures and outlier reports are cached on disk, keyed by the
input data and the render options, so repeated plots are instant. When a
redis URL is configured the cache lives there instead and these commands
only affect the local directory.`,
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached figures and reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}

			// The file cache fans entries out into two-character hash
			// prefix directories holding one .json file per entry.
			prefixes, err := os.ReadDir(dir)
			if os.IsNotExist(err) {
				printInfo("Cache is empty")
				return nil
			}
			if err != nil {
				return fmt.Errorf("read cache dir: %w", err)
			}

			entries := 0
			var size int64
			for _, prefix := range prefixes {
				if !prefix.IsDir() {
					continue
				}
				prefixPath := filepath.Join(dir, prefix.Name())
				files, err := os.ReadDir(prefixPath)
				if err != nil {
					continue
				}
				for _, f := range files {
					if f.IsDir() || filepath.Ext(f.Name()) != ".json" {
						continue
					}
					if info, err := f.Info(); err == nil {
						size += info.Size()
					}
					if err := os.Remove(filepath.Join(prefixPath, f.Name())); err == nil {
						entries++
					}
				}
				os.Remove(prefixPath) // drops the prefix dir once empty
			}

			if entries == 0 {
				printInfo("Cache is empty")
				return nil
			}
			printSuccess("Cleared %d cached entries (%.1f KiB)", entries, float64(size)/1024)
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Println(dir)
			if c.Config.Cache.RedisURL != "" {
				printDetail("redis is configured; the directory is only used as a fallback")
			}
			return nil
		},
	}
}
