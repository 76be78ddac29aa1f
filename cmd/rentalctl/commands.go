package main

import (
	"context"
	"fmt"

	"rental-movies/internal/auth"
	"rental-movies/internal/cache"
	"rental-movies/internal/config"
	"rental-movies/internal/data"
	"rental-movies/internal/service"

	"github.com/jmoiron/sqlx"
	"github.com/urfave/cli/v3"
)

func loadConfig(c *cli.Command) (*config.Config, error) {
	var args []string
	if path := c.String("config"); path != "" {
		args = []string{"--config", path}
	}
	cfg, err := config.LoadConfig(args)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// openDB loads the configuration and connects to the site database.
func openDB(c *cli.Command) (*config.Config, *sqlx.DB, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, err
	}
	db, err := data.NewDB(cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

// operator is the identity command line tasks run as.
func operator(cfg *config.Config) auth.Identity {
	return auth.Identity{Role: auth.RoleAdmin, Acronym: cfg.Auth.AdminAcronym, Name: "rentalctl"}
}

func settings(cfg *config.Config) service.Settings {
	return service.Settings{AdminAcronym: cfg.Auth.AdminAcronym}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply the pending database migrations",
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			if err := data.ApplyMigrations(cfg.DB.Driver, cfg.DB.DSN); err != nil {
				return err
			}
			fmt.Println("Migrations applied.")
			return nil
		},
	}
}

func userCommand() *cli.Command {
	return &cli.Command{
		Name:  "user",
		Usage: "Manage member accounts",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Create an account, including the administrator's",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "acronym", Usage: "Login name", Required: true},
					&cli.StringFlag{Name: "name", Usage: "Display name", Required: true},
					&cli.StringFlag{Name: "password", Usage: "Password", Required: true},
					&cli.StringFlag{Name: "email", Usage: "E-mail address"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, db, err := openDB(c)
					if err != nil {
						return err
					}
					defer db.Close()

					users := service.NewUserService(data.NewSQLUserRepository(db), db, settings(cfg))
					msg, err := users.Create(ctx, service.UserInput{
						Acronym:  c.String("acronym"),
						Name:     c.String("name"),
						Email:    c.String("email"),
						Password: c.String("password"),
					}, operator(cfg))
					if err != nil {
						return err
					}
					fmt.Printf("%s (id %d)\n", msg.Text, msg.ID)
					return nil
				},
			},
		},
	}
}

func contentCommand() *cli.Command {
	return &cli.Command{
		Name:  "content",
		Usage: "Manage pages and news posts",
		Commands: []*cli.Command{
			{
				Name:  "reset",
				Usage: "Replace all content with the default news posts",
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, db, err := openDB(c)
					if err != nil {
						return err
					}
					defer db.Close()

					content := service.NewContentService(data.NewSQLContentRepository(db), db, nil, settings(cfg))
					msg, err := content.Reset(ctx, operator(cfg))
					if err != nil {
						return err
					}
					fmt.Println(msg.Text)
					return nil
				},
			},
		},
	}
}

func cacheCommand() *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Manage the rendered content cache",
		Commands: []*cli.Command{
			{
				Name:  "purge",
				Usage: "Remove expired entries",
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig(c)
					if err != nil {
						return err
					}
					renderCache, err := cache.New(cfg.Cache)
					if err != nil {
						return err
					}
					defer renderCache.Close()

					n, err := renderCache.Purge(ctx)
					if err != nil {
						return err
					}
					fmt.Printf("Removed %d expired cache entries.\n", n)
					return nil
				},
			},
		},
	}
}
