package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/habithero/habitherod/internal/blockchain"
	"github.com/habithero/habitherod/internal/config"
	"github.com/habithero/habitherod/internal/habithero"
	"github.com/habithero/habitherod/internal/http_api"
	"github.com/habithero/habitherod/internal/ipfs"
	"github.com/habithero/habitherod/internal/motivator"
	"github.com/habithero/habitherod/internal/notificator"
	"github.com/habithero/habitherod/internal/repository"
	"github.com/habithero/habitherod/internal/session"
	"github.com/habithero/habitherod/pkg/logger"
)

func main() {
	app := &cli.App{
		Name:  "habitherod",
		Usage: "HabitHero is a habit tracking service backed by habit NFTs",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "postgres-user", Aliases: []string{"u"}, Usage: "Postgres user"},
			&cli.StringFlag{Name: "postgres-password", Aliases: []string{"p"}, Usage: "Postgres password"},
			&cli.StringFlag{Name: "postgres-host", Aliases: []string{"t"}, Usage: "Postgres host"},
			&cli.IntFlag{Name: "postgres-port", Aliases: []string{"P"}, Usage: "Postgres port"},
			&cli.StringFlag{Name: "postgres-db", Aliases: []string{"d"}, Usage: "Postgres database name"},
			&cli.StringFlag{Name: "rpc-url", Aliases: []string{"b"}, Usage: "Blockchain RPC URL"},
			&cli.StringFlag{Name: "registry-contract-address", Aliases: []string{"r"}, Usage: "User registry contract address"},
			&cli.IntFlag{Name: "api-port", Aliases: []string{"a"}, Usage: "API port"},
			&cli.BoolFlag{Name: "development", Aliases: []string{"D"}, Usage: "Development mode"},
		},
		Action: func(c *cli.Context) error {
			return run(c)
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	// Load configuration from environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	// Override with flags if set
	if c.IsSet("postgres-user") {
		cfg.PostgresUser = c.String("postgres-user")
	}
	if c.IsSet("postgres-password") {
		cfg.PostgresPassword = c.String("postgres-password")
	}
	if c.IsSet("postgres-host") {
		cfg.PostgresHost = c.String("postgres-host")
	}
	if c.IsSet("postgres-port") {
		cfg.PostgresPort = c.Int("postgres-port")
	}
	if c.IsSet("postgres-db") {
		cfg.PostgresDB = c.String("postgres-db")
	}
	if c.IsSet("rpc-url") {
		cfg.RPCURL = c.String("rpc-url")
	}
	if c.IsSet("registry-contract-address") {
		cfg.RegistryContractAddress = c.String("registry-contract-address")
	}
	if c.IsSet("api-port") {
		cfg.APIPort = c.Int("api-port")
	}
	if c.IsSet("development") {
		cfg.Development = c.Bool("development")
	}

	// Initialize logger
	log, err := logger.NewLogger(cfg.Development)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %v", err)
	}

	// Initialize database
	db, err := repository.NewPostgresDB(cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresDB, cfg.PostgresHost, cfg.PostgresPort, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %v", err)
	}

	// Initialize blockchain service
	chain := blockchain.NewGocore(cfg.RPCURL, log, cfg)
	if err := chain.Run(); err != nil {
		return fmt.Errorf("failed to start blockchain service: %v", err)
	}
	defer chain.Close()

	// Initialize uploader and motivator
	uploader := ipfs.NewUploader(log, cfg)
	gemini, err := motivator.NewGemini(context.Background(), log, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return fmt.Errorf("failed to initialize motivator: %v", err)
	}

	// Initialize delivery channels (both optional)
	var telegramNotificator *notificator.TelegramNotificator
	if cfg.TelegramBotToken != "" {
		telegramNotificator, err = notificator.NewTelegramNotificator(log, cfg.TelegramBotToken, db)
		if err != nil {
			return fmt.Errorf("failed to initialize telegram delivery: %v", err)
		}
	}
	var emailNotificator *notificator.EmailNotificator
	if cfg.SMTPHost != "" {
		emailNotificator = notificator.NewEmailNotificator(log, cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPSender)
	}
	deliverer := notificator.NewNotificator(log, db, telegramNotificator, emailNotificator)

	// Create HabitHero instance
	store := session.NewStore(db)
	heroApp := habithero.NewHabitHero(store, chain, uploader, gemini, log, cfg,
		habithero.WithDeliverer(db, deliverer),
		habithero.WithSweeper(db),
	)
	heroApp.Start()

	apiServer := http_api.NewHTTPServer(heroApp, uploader, cfg.APIPort, log)

	go apiServer.Start()

	// Wait for termination and shut down gracefully
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	if err := apiServer.Shutdown(); err != nil {
		log.Error("Failed to shut down API server: ", err)
	}
	return db.Close()
}
