package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

// cacheCmd 缓存管理命令
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Cache management commands",
	Long:  "Manage application cache. Only user profiles are cached.",
}

// cacheClearCmd 清除缓存命令
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear cached user profiles",
	Run: func(cmd *cobra.Command, args []string) {
		userID, _ := cmd.Flags().GetUint("user")
		all, _ := cmd.Flags().GetBool("all-users")

		if err := runCacheClear(userID, all); err != nil {
			log.Fatalf("Cache clear failed: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheClearCmd)

	cacheClearCmd.Flags().Uint("user", 0, "Clear the cached profile of this user")
	cacheClearCmd.Flags().Bool("all-users", false, "Clear all cached user profiles")
}

// runCacheClear 执行缓存清理
func runCacheClear(userID uint, all bool) error {
	if userID == 0 && !all {
		return fmt.Errorf("either --user or --all-users is required")
	}

	container, err := openContainer()
	if err != nil {
		return err
	}
	defer container.Close()

	ctx := context.Background()
	if err := container.InitServices(ctx); err != nil {
		return err
	}
	log.Printf("Using cache provider: %s", container.GetCacheProvider().Name())

	if userID != 0 {
		if err := container.Accounts.Invalidate(ctx, userID); err != nil {
			return err
		}
		fmt.Printf("Cleared cached profile of user %d\n", userID)
	}

	if all {
		n, err := container.Accounts.InvalidateAll(ctx)
		if err != nil {
			return err
		}
		if n < 0 {
			fmt.Println("Cleared all cached user profiles")
		} else {
			fmt.Printf("Cleared %d cached user profile(s)\n", n)
		}
	}
	return nil
}
