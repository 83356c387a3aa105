package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nutriplan/config"
	"nutriplan/repository"
	"nutriplan/routes"
	"nutriplan/services"
	"nutriplan/utils"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:          "nutriplan",
		Short:        "Recipe, meal plan and nutrition tracking API",
		SilenceUsage: true,
	}
	root.AddCommand(serveCmd(), migrateCmd(), seedCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// openStore loads configuration and opens the database.
func openStore(ctx context.Context) (*config.Config, *repository.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	db, err := config.OpenDB(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, repository.New(db), nil
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			if err := config.Migrate(store.DB()); err != nil {
				return err
			}
			log.Println("migrations applied")
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the sample user, foods and recipe",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			if err := config.Migrate(store.DB()); err != nil {
				return err
			}
			return config.Seed(cmd.Context(), store)
		},
	}
}

func serveCmd() *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, store, err := openStore(ctx)
			if err != nil {
				return err
			}
			if cfg.JWTSecret == "" {
				return errors.New("JWT_SECRET is required")
			}
			if migrate {
				if err := config.Migrate(store.DB()); err != nil {
					return err
				}
			}
			srv := &http.Server{
				Addr:    ":" + cfg.Port,
				Handler: routes.SetupRouter(buildDeps(ctx, cfg, store)),
			}
			return run(srv)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", true, "apply migrations before serving")
	return cmd
}

// buildDeps wires the services. AWS and Edamam integrations are optional and
// left out when their settings are missing.
func buildDeps(ctx context.Context, cfg *config.Config, store *repository.Store) routes.Deps {
	hub := services.NewRealtimeHub()

	var push *services.PushService
	var notifier services.Notifier
	if cfg.SNSFCMArn != "" {
		p, err := services.NewPushService(ctx, store, cfg.AWSRegion, cfg.SNSFCMArn)
		if err != nil {
			log.Printf("push disabled: %v", err)
		} else {
			push, notifier = p, p
		}
	}
	events := services.NewEventBus(hub, notifier)

	var images services.ImageUploader
	if cfg.S3Bucket != "" {
		up, err := utils.NewS3Uploader(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.CloudFrontURL)
		if err != nil {
			log.Printf("recipe images disabled: %v", err)
		} else {
			images = up
		}
	}

	var mailer services.Mailer
	if cfg.SESEmail != "" {
		m, err := utils.NewSESMailer(ctx, cfg.AWSRegion, cfg.SESEmail)
		if err != nil {
			log.Printf("email disabled: %v", err)
		} else {
			mailer = m
		}
	}

	var labels services.LabelDetector
	if rek, err := services.NewRekognitionService(ctx, cfg.AWSRegion); err != nil {
		log.Printf("food recognition disabled: %v", err)
	} else {
		labels = rek
	}

	var catalog services.FoodCatalog
	if cfg.EdamamAppID != "" && cfg.EdamamAppKey != "" {
		catalog = services.NewEdamamService(cfg.EdamamAppID, cfg.EdamamAppKey)
	}

	secret := []byte(cfg.JWTSecret)
	return routes.Deps{
		JWTSecret: secret,
		Auth:      services.NewAuthService(store, secret, cfg.JWTTTL),
		Users:     services.NewUserService(store),
		Goals:     services.NewGoalService(store),
		Foods:     services.NewFoodService(store, labels, catalog),
		Recipes:   services.NewRecipeService(store, store, store, store, images, events),
		MealPlans: services.NewMealPlanService(store, store, store, mailer, events),
		Analytics: services.NewAnalyticsService(store, store),
		Realtime:  hub,
		Push:      push,
	}
}

// run serves until SIGINT or SIGTERM, then drains in-flight requests.
func run(srv *http.Server) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-sigCh:
		log.Println("received shutdown signal")
	case err := <-errCh:
		return err
	}

	log.Println("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
