package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/tincan-finance/tincan/infra"
	infrarepo "github.com/tincan-finance/tincan/infra/repository"
	"github.com/tincan-finance/tincan/pkg/config"
	"github.com/tincan-finance/tincan/pkg/dto"
	"github.com/tincan-finance/tincan/pkg/repository"
	"github.com/tincan-finance/tincan/pkg/service/category"
	"github.com/tincan-finance/tincan/pkg/service/schedule"
	"github.com/tincan-finance/tincan/pkg/service/user"

	"github.com/google/uuid"
)

func usage() {
	fmt.Println("Usage: cli <command> [arguments]")
	fmt.Println("Commands:")
	fmt.Println("  migrate                      apply the database schema")
	fmt.Println("  create-user <username> <email>  create a user (prompts for password)")
	fmt.Println("  seed-categories <user_id>    provision the default category tree")
	fmt.Println("  process-schedules            materialize due schedules now")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		color.Red("Failed to load configuration: %v", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	db, err := infra.NewDBConnection(*cfg.DB, cfg.Env)
	if err != nil {
		color.Red("Failed to connect to database: %v", err)
		os.Exit(1)
	}
	uow := infrarepo.NewUoW(db)
	ctx := context.Background()

	switch os.Args[1] {
	case "migrate":
		if err := db.AutoMigrate(infrarepo.AllModels()...); err != nil {
			color.Red("Migration failed: %v", err)
			os.Exit(1)
		}
		color.Green("Schema migrated")
	case "create-user":
		if len(os.Args) < 4 {
			usage()
			os.Exit(1)
		}
		createUser(ctx, uow, logger, os.Args[2], os.Args[3])
	case "seed-categories":
		if len(os.Args) < 3 {
			usage()
			os.Exit(1)
		}
		userID, err := uuid.Parse(os.Args[2])
		if err != nil {
			color.Red("Invalid user id: %v", err)
			os.Exit(1)
		}
		if err := category.New(uow, logger).SeedDefaults(ctx, userID); err != nil {
			color.Red("Seeding failed: %v", err)
			os.Exit(1)
		}
		color.Green("Default categories created for %s", userID)
	case "process-schedules":
		n, err := schedule.New(uow, nil, logger).ProcessDue(ctx, time.Now())
		if err != nil {
			color.Red("Processing failed: %v", err)
			os.Exit(1)
		}
		color.Green("Materialized %d transactions", n)
	default:
		color.Yellow("Unknown command: %s", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func createUser(ctx context.Context, uow repository.UnitOfWork, logger *slog.Logger, username, email string) {
	fmt.Print("Password: ")
	pw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		color.Red("Failed to read password: %v", err)
		os.Exit(1)
	}
	password := strings.TrimSpace(string(pw))

	u, err := user.New(uow, logger).Register(ctx, dto.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		color.Red("Failed to create user: %v", err)
		os.Exit(1)
	}
	color.Green("User created: %s (%s)", u.Username, u.ID)
}
