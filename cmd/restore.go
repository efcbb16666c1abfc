package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/anoixa/tripill/config"
	"github.com/anoixa/tripill/database"
	"github.com/anoixa/tripill/database/transfer"
	"github.com/spf13/cobra"
)

// restoreCmd 数据库恢复命令
var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore database from a SQLite backup",
	Long: `Copy every table of a SQLite backup file into the configured database.

Example:
  tripill restore --input ./data/backups/tripill_20240101_120000.db
  tripill restore --input ./backup.db --on-conflict=overwrite --yes`,
	Run: func(cmd *cobra.Command, args []string) {
		inputFile, _ := cmd.Flags().GetString("input")
		onConflict, _ := cmd.Flags().GetString("on-conflict")
		batchSize, _ := cmd.Flags().GetInt("batch-size")
		skipConfirm, _ := cmd.Flags().GetBool("yes")

		if err := runRestore(inputFile, onConflict, batchSize, skipConfirm); err != nil {
			log.Fatalf("Restore failed: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(restoreCmd)

	restoreCmd.Flags().StringP("input", "i", "", "Backup file path")
	restoreCmd.Flags().String("on-conflict", "skip", "Conflict resolution strategy: skip (default), overwrite, error")
	restoreCmd.Flags().Int("batch-size", 500, "Rows per batch")
	restoreCmd.Flags().Bool("yes", false, "Skip confirmation prompt")
	_ = restoreCmd.MarkFlagRequired("input")
}

func runRestore(inputFile, onConflict string, batchSize int, skipConfirm bool) error {
	strategy, err := transfer.ParseConflictStrategy(onConflict)
	if err != nil {
		return err
	}
	if _, err := os.Stat(inputFile); err != nil {
		return fmt.Errorf("backup file not found: %w", err)
	}

	config.InitConfig()
	dbType, dsn := database.Target(config.Get())
	log.Printf("Restoring %s into %s database (%s)", inputFile, dbType, maskDSN(dsn))

	if !skipConfirm && !confirm(fmt.Sprintf("This will write backup rows into the configured database (conflicts: %s).", strategy)) {
		fmt.Println("Restore cancelled.")
		return nil
	}

	return copyDatabase("sqlite", inputFile, dbType, dsn, transfer.Options{
		BatchSize:  batchSize,
		OnConflict: strategy,
	})
}
