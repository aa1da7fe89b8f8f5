package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/akshayam/wellness-store.git/internal/auth"
	"github.com/akshayam/wellness-store.git/internal/catalog"
	"github.com/akshayam/wellness-store.git/internal/cms"
	"github.com/akshayam/wellness-store.git/internal/config"
	"github.com/akshayam/wellness-store.git/internal/files"
	"github.com/akshayam/wellness-store.git/internal/httpx"
	kafkax "github.com/akshayam/wellness-store.git/internal/kafka"
	"github.com/akshayam/wellness-store.git/internal/mailer"
	"github.com/akshayam/wellness-store.git/internal/notify"
	"github.com/akshayam/wellness-store.git/internal/orders"
	"github.com/akshayam/wellness-store.git/internal/postgres"
	"github.com/akshayam/wellness-store.git/internal/redisx"
	"github.com/akshayam/wellness-store.git/internal/settings"
	"github.com/akshayam/wellness-store.git/internal/users"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN, cfg.PostgresMaxConn)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("schema: %v", err)
	}

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producer
	prod := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderEvents, 1024)
	prod.Start(ctx)

	// Repos
	catalogRepo := &catalog.Repo{DB: db}
	orderRepo := &orders.Repo{DB: db}
	userRepo := &users.Repo{DB: db}
	settingRepo := &settings.Repo{DB: db}
	adminRepo := &auth.AdminRepo{DB: db}

	hasher := auth.BcryptHasher{}
	if err := adminRepo.EnsureDefault(ctx, cfg.AdminUsername, cfg.AdminPassword, hasher); err != nil {
		log.Fatalf("seed admin: %v", err)
	}

	// Notification pipeline
	smtp := &mailer.SMTP{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SenderEmail,
		Password: cfg.SMTPPassword,
		From:     cfg.SenderEmail,
	}
	dispatcher := &notify.Dispatcher{
		Mail:       smtp,
		Orders:     orderRepo,
		AdminEmail: cfg.AdminEmail,
	}

	// Order engine
	cachedSettings := &settings.Cached{Repo: settingRepo, Redis: rdb}
	engine := &orders.Engine{
		Orders:   orderRepo,
		Products: catalogRepo,
		Users:    userRepo,
		Settings: cachedSettings,
		Stock:    &catalog.StockValidator{Products: catalogRepo},
		Hasher:   hasher,
		Notify:   dispatcher,
	}

	// Handlers
	tokens := &auth.TokenIssuer{Secret: []byte(cfg.JWTSecret)}
	ah := &httpx.AuthHandler{Admins: adminRepo, Users: userRepo, Hasher: hasher, Tokens: tokens}
	ch := &httpx.CatalogHandler{Repo: catalogRepo, Validator: engine.Stock, Redis: rdb}
	oh := &httpx.OrdersHandler{Engine: engine, Repo: orderRepo, Producer: prod, Redis: rdb, Service: cfg.ServiceName}
	sh := &httpx.SettingsHandler{Repo: settingRepo, Cache: cachedSettings}
	mh := &httpx.CMSHandler{
		Content: &cms.ContentRepo{DB: db},
		Contact: &cms.ContactRepo{DB: db},
		Recipes: &cms.RecipeRepo{DB: db},
	}
	fh := &httpx.FilesHandler{Repo: &files.Repo{DB: db}, MaxBytes: cfg.UploadMaxBytes}

	router := httpx.NewRouter()
	ah.Register(router)
	ch.Register(router)
	oh.Register(router)
	sh.Register(router)
	mh.Register(router)
	fh.Register(router)
	router.Route("/admin", func(r chi.Router) {
		r.Use(httpx.AdminOnly(tokens))
		ch.RegisterAdmin(r)
		oh.RegisterAdmin(r)
		sh.RegisterAdmin(r)
		mh.RegisterAdmin(r)
		fh.RegisterAdmin(r)
	})

	// HTTP server
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prod.Close()      // stop accepting -> flush & close writer
	cancel()          // stop producer loop
	prod.WaitClosed() // drain
}
