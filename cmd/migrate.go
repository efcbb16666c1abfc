package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/anoixa/tripill/database"
	"github.com/anoixa/tripill/database/transfer"
	"github.com/spf13/cobra"
)

// migrateCmd 数据库迁移命令
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Database migration tools",
	Long:  `Create the schema, or copy data from one database to another (e.g., SQLite to PostgreSQL).`,
}

// migrateSchemaCmd 只执行表结构迁移
var migrateSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Create or update tables in the configured database",
	Run: func(cmd *cobra.Command, args []string) {
		container, err := openContainer()
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer container.Close()

		InitDatabase(container)
	},
}

// migrateRunCmd 执行迁移命令
var migrateRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run database migration",
	Long: `Run database migration from source to target database.

Examples:
  # Migrate from SQLite to PostgreSQL
  tripill migrate run --from-sqlite ./data/tripill.db --to-postgres "host=localhost user=postgres password=secret dbname=tripill port=5432"

  # Migrate with overwrite strategy (replace existing rows)
  tripill migrate run --from-sqlite ./data/tripill.db --to-postgres "..." --on-conflict=overwrite

  # Stop on conflict
  tripill migrate run --from-sqlite ./data/tripill.db --to-postgres "..." --on-conflict=error`,
	Run: func(cmd *cobra.Command, args []string) {
		fromType, _ := cmd.Flags().GetString("from-type")
		toType, _ := cmd.Flags().GetString("to-type")
		fromDSN, _ := cmd.Flags().GetString("from-dsn")
		toDSN, _ := cmd.Flags().GetString("to-dsn")
		fromSQLite, _ := cmd.Flags().GetString("from-sqlite")
		toPostgres, _ := cmd.Flags().GetString("to-postgres")
		skipConfirm, _ := cmd.Flags().GetBool("yes")
		batchSize, _ := cmd.Flags().GetInt("batch-size")
		onConflict, _ := cmd.Flags().GetString("on-conflict")

		if fromSQLite != "" {
			fromType, fromDSN = "sqlite", fromSQLite
		}
		if toPostgres != "" {
			toType, toDSN = "postgres", toPostgres
		}

		if err := runMigration(fromType, fromDSN, toType, toDSN, skipConfirm, batchSize, onConflict); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateSchemaCmd)
	migrateCmd.AddCommand(migrateRunCmd)

	migrateRunCmd.Flags().String("from-type", "", "Source database type (sqlite, postgres)")
	migrateRunCmd.Flags().String("to-type", "", "Target database type (sqlite, postgres)")
	migrateRunCmd.Flags().String("from-dsn", "", "Source database DSN/connection string")
	migrateRunCmd.Flags().String("to-dsn", "", "Target database DSN/connection string")
	migrateRunCmd.Flags().String("from-sqlite", "", "Source SQLite file path (shortcut)")
	migrateRunCmd.Flags().String("to-postgres", "", "Target PostgreSQL connection string (shortcut)")
	migrateRunCmd.Flags().Bool("yes", false, "Skip confirmation prompt")
	migrateRunCmd.Flags().Int("batch-size", 100, "Batch size for data migration")
	migrateRunCmd.Flags().String("on-conflict", "skip", "Conflict resolution strategy: skip (default), overwrite, error")
}

// runMigration 执行数据库迁移
func runMigration(fromType, fromDSN, toType, toDSN string, skipConfirm bool, batchSize int, onConflict string) error {
	strategy, err := transfer.ParseConflictStrategy(onConflict)
	if err != nil {
		return err
	}
	if fromType == "" || toType == "" {
		return fmt.Errorf("both --from-type and --to-type are required")
	}
	if fromDSN == "" || toDSN == "" {
		return fmt.Errorf("both --from-dsn and --to-dsn (or shortcuts) are required")
	}
	if fromType == toType && fromDSN == toDSN {
		return fmt.Errorf("source and target databases are the same")
	}

	log.Printf("Migrating from %s to %s", fromType, toType)
	log.Printf("Source: %s", maskDSN(fromDSN))
	log.Printf("Target: %s", maskDSN(toDSN))
	log.Printf("Conflict strategy: %s", strategy)

	if !skipConfirm && !confirm(fmt.Sprintf("This will copy all data into the target database (conflicts: %s).", strategy)) {
		fmt.Println("Migration cancelled.")
		return nil
	}

	return copyDatabase(fromType, fromDSN, toType, toDSN, transfer.Options{BatchSize: batchSize, OnConflict: strategy})
}

// copyDatabase 打开两端数据库并复制全部表，迁移、备份和恢复共用
func copyDatabase(fromType, fromDSN, toType, toDSN string, opts transfer.Options) error {
	sourceDB, err := database.Open(fromType, fromDSN)
	if err != nil {
		return fmt.Errorf("failed to connect to source database: %w", err)
	}
	if sqlDB, err := sourceDB.DB(); err == nil {
		defer sqlDB.Close()
	}

	targetDB, err := database.Open(toType, toDSN)
	if err != nil {
		return fmt.Errorf("failed to connect to target database: %w", err)
	}
	if sqlDB, err := targetDB.DB(); err == nil {
		defer sqlDB.Close()
	}

	stats, err := transfer.Run(context.Background(), sourceDB, targetDB, opts)
	if stats != nil {
		printMigrateStats(stats)
	}
	if err != nil {
		return err
	}

	log.Println("Migration completed successfully!")
	return nil
}

// confirm 交互确认
func confirm(message string) bool {
	fmt.Println("\nWarning: " + message)
	fmt.Print("Do you want to continue? [y/N]: ")
	var response string
	fmt.Scanln(&response)
	return response == "y" || response == "Y"
}

// maskDSN 隐藏敏感信息
func maskDSN(dsn string) string {
	if len(dsn) > 50 {
		return dsn[:50] + "..."
	}
	return dsn
}

// printMigrateStats 打印迁移统计
func printMigrateStats(stats *transfer.Stats) {
	fmt.Println()
	fmt.Println("========================================")
	fmt.Println("       Migration Statistics")
	fmt.Println("========================================")
	for _, t := range stats.Tables {
		fmt.Printf("%-20s read: %-8d written: %-8d skipped: %d\n", t.Table, t.Read, t.Written, t.Skipped())
	}
	fmt.Println("========================================")

	if len(stats.Errors) > 0 {
		fmt.Println("\nErrors encountered:")
		for _, err := range stats.Errors {
			fmt.Printf("  - %s\n", err)
		}
	}
}
