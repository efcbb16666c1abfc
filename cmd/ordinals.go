package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

// ordinalsCmd 地点序号维护命令
var ordinalsCmd = &cobra.Command{
	Use:   "ordinals",
	Short: "Inspect and repair item ordinals",
	Long:  "Every trip's items must carry ordinals 0..n-1. These commands find trips that drifted and renumber them.",
}

var ordinalsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "List trips whose item ordinals are not contiguous",
	Run: func(cmd *cobra.Command, args []string) {
		tripID, _ := cmd.Flags().GetUint("trip")
		if err := runOrdinals(tripID, false, true); err != nil {
			log.Fatalf("Ordinal check failed: %v", err)
		}
	},
}

var ordinalsRepairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Renumber item ordinals of broken trips",
	Run: func(cmd *cobra.Command, args []string) {
		tripID, _ := cmd.Flags().GetUint("trip")
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		if err := runOrdinals(tripID, true, dryRun); err != nil {
			log.Fatalf("Ordinal repair failed: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(ordinalsCmd)
	ordinalsCmd.AddCommand(ordinalsCheckCmd)
	ordinalsCmd.AddCommand(ordinalsRepairCmd)

	ordinalsCheckCmd.Flags().Uint("trip", 0, "Only check this trip")
	ordinalsRepairCmd.Flags().Uint("trip", 0, "Only repair this trip")
	ordinalsRepairCmd.Flags().Bool("dry-run", false, "Show what would be repaired without writing")
}

func runOrdinals(tripID uint, repair, dryRun bool) error {
	container, err := openContainer()
	if err != nil {
		return err
	}
	defer container.Close()

	ctx := context.Background()
	reports, err := container.ItemsRepo.BrokenOrdinals(ctx, tripID)
	if err != nil {
		return err
	}
	if len(reports) == 0 {
		fmt.Println("All item ordinals are contiguous.")
		return nil
	}

	fmt.Printf("%-10s %-8s %-6s %-6s %-8s\n", "TRIP", "ITEMS", "MIN", "MAX", "DISTINCT")
	for _, r := range reports {
		fmt.Printf("%-10d %-8d %-6d %-6d %-8d\n", r.TripID, r.Count, r.MinOrdinal, r.MaxOrdinal, r.DistinctOrdinals)
	}

	if !repair || dryRun {
		fmt.Printf("\n%d trip(s) need repair.\n", len(reports))
		return nil
	}

	total := 0
	for _, r := range reports {
		changed, err := container.ItemsRepo.Renumber(ctx, r.TripID)
		if err != nil {
			return fmt.Errorf("trip %d: %w", r.TripID, err)
		}
		total += changed
		log.Printf("Trip %d renumbered, %d item(s) moved", r.TripID, changed)
	}
	fmt.Printf("\nRepaired %d trip(s), %d item(s) updated.\n", len(reports), total)
	return nil
}
