package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mmcdole/sessionbrew/internal/adapter"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the library cache",
	}

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show cached entries per bucket",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			cache, err := ctx.openStore()
			if err != nil {
				return err
			}

			stats := cache.Stats()
			buckets := make([]string, 0, len(stats))
			for b := range stats {
				buckets = append(buckets, b)
			}
			sort.Strings(buckets)

			rows := make([][]string, 0, len(buckets))
			for _, b := range buckets {
				rows = append(rows, []string{b, strconv.Itoa(stats[b])})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Cache:      %s\n", cacheLocation(cfg))
			fmt.Fprintf(out, "Persistent: %s\n", yesNo(cfg.CacheDir() != ""))
			if len(rows) == 0 {
				fmt.Fprintln(out, "Cache is empty")
				return nil
			}
			fmt.Fprintln(out, renderTable([]string{"Bucket", "Entries"}, rows, []columnAlignment{alignLeft, alignRight}))
			return nil
		},
	})

	var all bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Drop cached library trees and resolutions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			out := cmd.OutOrStdout()
			if all {
				if err := adapter.ClearCache(cfg.CacheDir()); err != nil {
					return err
				}
				fmt.Fprintf(out, "Removed %s\n", cacheLocation(cfg))
				return nil
			}

			cache, err := ctx.openStore()
			if err != nil {
				return err
			}
			cache.InvalidateAll()
			fmt.Fprintln(out, "Cache cleared")
			return nil
		},
	}
	clearCmd.Flags().BoolVar(&all, "all", false, "Delete the cache directory instead of emptying it")
	cacheCmd.AddCommand(clearCmd)

	return cacheCmd
}

func cacheLocation(cfg *adapter.Config) string {
	if dir := cfg.CacheDir(); dir != "" {
		return dir
	}
	return "memory only (cache.enabled is false)"
}
