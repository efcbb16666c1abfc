package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/anoixa/tripill/config"
	"github.com/anoixa/tripill/database"
	"github.com/anoixa/tripill/database/transfer"
	"github.com/spf13/cobra"
)

// backupCmd 数据库备份命令
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Backup database to a SQLite file",
	Long: `Copy every table of the configured database into a new SQLite file.

Example:
  # Backup to default file (./data/backups/tripill_YYYYMMDD_HHMMSS.db)
  tripill backup

  # Backup to specific file
  tripill backup --output ./my-backup.db`,
	Run: func(cmd *cobra.Command, args []string) {
		outputFile, _ := cmd.Flags().GetString("output")
		batchSize, _ := cmd.Flags().GetInt("batch-size")

		if err := runBackup(outputFile, batchSize); err != nil {
			log.Fatalf("Backup failed: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)

	backupCmd.Flags().StringP("output", "o", "", "Output file path (default: ./data/backups/tripill_YYYYMMDD_HHMMSS.db)")
	backupCmd.Flags().Int("batch-size", 500, "Rows per batch")
}

func runBackup(outputFile string, batchSize int) error {
	config.InitConfig()

	if outputFile == "" {
		outputFile = filepath.Join("./data/backups", fmt.Sprintf("tripill_%s.db", time.Now().Format("20060102_150405")))
	}
	if _, err := os.Stat(outputFile); err == nil {
		return fmt.Errorf("output file already exists: %s", outputFile)
	}
	if err := os.MkdirAll(filepath.Dir(outputFile), 0o755); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}

	dbType, dsn := database.Target(config.Get())
	log.Printf("Backing up %s database to %s", dbType, outputFile)

	if err := copyDatabase(dbType, dsn, "sqlite", outputFile, transfer.Options{
		BatchSize:  batchSize,
		OnConflict: transfer.ConflictError,
	}); err != nil {
		_ = os.Remove(outputFile)
		return err
	}

	fmt.Printf("Backup written to %s\n", outputFile)
	return nil
}
