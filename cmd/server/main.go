package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/VitaminP8/gqltour/graph"
	"github.com/VitaminP8/gqltour/graph/model"
	"github.com/VitaminP8/gqltour/internal/auth"
	"github.com/VitaminP8/gqltour/internal/config"
	"github.com/VitaminP8/gqltour/internal/fixtures"
	"github.com/VitaminP8/gqltour/internal/logger"
	"github.com/VitaminP8/gqltour/internal/metrics"
	"github.com/VitaminP8/gqltour/internal/post"
	"github.com/VitaminP8/gqltour/internal/storage/memory"
	"github.com/VitaminP8/gqltour/internal/storage/postgres"
	"github.com/VitaminP8/gqltour/internal/subscription"
	"github.com/VitaminP8/gqltour/internal/user"
	"github.com/VitaminP8/gqltour/models"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

type options struct {
	storage   string
	port      string
	fakeUsers int
	fakePosts int
	fakeSeed  int64
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "gqltour-server",
		Short:        "GraphQL API с пользователями, постами, друзьями и лайками",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return run(ctx, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.storage, "storage", "memory", "Тип хранилища: memory или postgres")
	flags.StringVar(&opts.port, "port", "", "Порт HTTP сервера (по умолчанию PORT из окружения)")
	flags.IntVar(&opts.fakeUsers, "fake-users", 0, "Сколько случайных пользователей добавить к стартовым")
	flags.IntVar(&opts.fakePosts, "fake-posts", 1, "Сколько постов создать каждому случайному пользователю")
	flags.Int64Var(&opts.fakeSeed, "fake-seed", 1, "Seed генератора случайных данных")

	return cmd
}

func run(ctx context.Context, opts *options) error {
	// загружаем .env, если он есть
	envErr := config.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if opts.port != "" {
		cfg.Port = opts.port
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	log, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if envErr != nil {
		log.Debug(".env file not loaded", zap.Error(envErr))
	}

	fields, err := graph.LintSchema()
	if err != nil {
		return fmt.Errorf("invalid schema: %w", err)
	}
	log.Debug("schema loaded", zap.Int("fields", len(fields)), zap.Strings("names", fields))

	users, posts, err := seedData(opts)
	if err != nil {
		return err
	}

	var userStore user.UserStorage
	var postStore post.PostStorage

	switch opts.storage {
	case "postgres":
		db, err := postgres.InitDB(cfg.DB, log)
		if err != nil {
			return err
		}
		defer func() {
			if err := postgres.CloseDB(db); err != nil {
				log.Error("close database", zap.Error(err))
			}
		}()

		if err := postgres.Migrate(db); err != nil {
			return err
		}
		if err := postgres.Seed(db, userRows(users), postRows(posts)); err != nil {
			return err
		}

		log.Info("using PostgreSQL storage")
		userStore = postgres.NewUserPostgresStorage(db)
		postStore = postgres.NewPostPostgresStorage(db)

	case "memory":
		log.Info("using in-memory storage", zap.Int("users", len(users)), zap.Int("posts", len(posts)))
		userStore = memory.NewUserMemoryStorage(users...)
		postStore = memory.NewPostMemoryStorage(posts...)

	default:
		return fmt.Errorf("unknown storage type %q", opts.storage)
	}

	m := metrics.New()

	resolver := &graph.Resolver{
		UserStore: userStore,
		PostStore: postStore,
		Tokens:    auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL),
		Events:    subscription.NewSubscriptionManager(m),
		Logger:    log,
	}

	schema, err := graph.NewSchema(resolver, graphql.Tracer(m.Tracer()))
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(schema, resolver.Tokens, log, m),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ListenAndServe блокирует до Shutdown, поэтому запускаем в горутине
	serverErr := make(chan error, 1)
	go func() {
		log.Info("server started", zap.String("addr", "http://localhost:"+cfg.Port+"/"), zap.String("env", cfg.AppEnv))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	log.Info("server stopped")
	return nil
}

// seedData собирает стартовых пользователей и посты плюс случайных из faker
func seedData(opts *options) ([]*model.User, []*model.Post, error) {
	users := fixtures.Users()
	posts := fixtures.Posts()

	if opts.fakeUsers > 0 {
		fk := fixtures.NewFaker(opts.fakeSeed)
		fake := fk.Users(len(users)+1, opts.fakeUsers)
		posts = append(posts, fk.Posts(len(posts)+1, fake, opts.fakePosts)...)
		users = append(users, fake...)
	}

	// у всех стартовых пользователей один пароль, bcrypt считаем один раз
	hash, err := auth.HashPassword(fixtures.DefaultPassword)
	if err != nil {
		return nil, nil, err
	}
	users, err = fixtures.WithPasswords(users, func(string) (string, error) { return hash, nil })
	if err != nil {
		return nil, nil, err
	}
	return users, posts, nil
}

func userRows(users []*model.User) []*models.User {
	rows := make([]*models.User, 0, len(users))
	for _, u := range users {
		rows = append(rows, models.UserFromModel(u))
	}
	return rows
}

func postRows(posts []*model.Post) []*models.Post {
	rows := make([]*models.Post, 0, len(posts))
	for _, p := range posts {
		rows = append(rows, models.PostFromModel(p))
	}
	return rows
}
