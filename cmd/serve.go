package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anoixa/tripill/api/core"
	"github.com/anoixa/tripill/config"
	"github.com/anoixa/tripill/internal/app"
	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start API server",
	Run: func(cmd *cobra.Command, args []string) {
		RunServer()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func RunServer() {
	config.InitConfig()
	cfg := config.Get()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	container := app.NewContainer(cfg)
	if err := container.InitDatabase(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	InitDatabase(container)

	if err := container.InitServices(context.Background()); err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}
	if err := container.InitAuth(); err != nil {
		log.Fatalf("Failed to initialize JWT: %s", err)
	}

	server, cleanup := core.NewServer(&core.ServerDependencies{
		RouterDependencies: core.RouterDependencies{
			DB:            container.GetDatabaseProvider(),
			CacheProvider: container.GetCacheProvider(),
			JWT:           container.JWT,
			Accounts:      container.Accounts,
			Trips:         container.Trips,
			Items:         container.Items,
			Ledger:        container.Ledger,
		},
		Config: cfg,
	})
	go func() {
		log.Printf("Server started on %s", cfg.Addr())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// 处理退出signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if cleanup != nil {
		cleanup()
	}

	if err := container.Close(); err != nil {
		log.Printf("Error closing container: %v", err)
	}

	log.Println("Server exited successfully")
}

// InitDatabase 自动迁移表结构
func InitDatabase(container *app.Container) {
	provider := container.GetDatabaseProvider()
	log.Printf("Initializing database, database type: %s", provider.Name())

	if err := provider.AutoMigrate(); err != nil {
		log.Fatalf("Failed to auto migrate database: %v", err)
	}

	log.Println("Database initialized successfully")
}

// openContainer 只初始化数据库的容器，供维护命令使用
func openContainer() (*app.Container, error) {
	config.InitConfig()
	container := app.NewContainer(config.Get())
	if err := container.InitDatabase(); err != nil {
		return nil, err
	}
	return container, nil
}
