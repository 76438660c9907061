package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// cacheCmd groups the response cache maintenance commands.
var cacheCmd = &cobra.Command{
	Use:                        "cache [clear,stats]",
	Short:                      "Manage the response cache",
	SuggestionsMinimumDistance: 2,
	Long: `Manage the local response cache that answers repeated E-utilities
requests without touching the network`,
}

var cacheClearCmd = &cobra.Command{
	Use:                        "clear",
	Short:                      "Remove cached responses",
	SuggestionsMinimumDistance: 2,
	Run: func(cmd *cobra.Command, args []string) {
		expiredOnly, _ := cmd.Flags().GetBool("expired")

		store := openStore()
		defer store.Close()

		if expiredOnly {
			cleared, err := store.ClearExpired()
			if err != nil {
				logger.Fatal("failed to clear cache", "err", err)
			}
			fmt.Printf("cleared %d expired entries\n", cleared)
			return
		}

		if err := store.Clear(); err != nil {
			logger.Fatal("failed to clear cache", "err", err)
		}
		fmt.Println("cache cleared")
	},
}

var cacheStatsCmd = &cobra.Command{
	Use:                        "stats",
	Short:                      "Report cache size and entry counts",
	SuggestionsMinimumDistance: 2,
	Run: func(cmd *cobra.Command, args []string) {
		store := openStore()
		defer store.Close()

		stats, err := store.Stats()
		if err != nil {
			logger.Fatal("failed to read cache stats", "err", err)
		}
		printJSON(stats)
	},
}

func init() {
	cacheClearCmd.Flags().Bool("expired", false, "only remove entries past their lifetime")

	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatsCmd)

	RootCmd.AddCommand(cacheCmd)
}
