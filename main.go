package main

import (
	"flag"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"joydao/admin"
	"joydao/analytics"
	"joydao/auth"
	"joydao/blog"
	"joydao/common"
	"joydao/contact"
	"joydao/database"
	emailpkg "joydao/email"
	"joydao/newsletter"
	"joydao/store"
)

func main() {
	seed := flag.Bool("seed", false, "insert sample blog posts and exit")
	flag.Parse()

	// .env e opcional; as variaveis de ambiente tem prioridade
	_ = godotenv.Load()
	cfg := common.LoadConfig()

	var log *zap.Logger
	var err error
	if cfg.IsDev() || cfg.IsTest() {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Store selection: the live sqlite store when configured and reachable,
	// the in-memory fallback otherwise. Test env always forces the fallback.
	var dataStore store.Store
	var analyticsModule *analytics.AnalyticsModule
	if cfg.IsTest() {
		log.Info("test environment, using memory store")
		dataStore = store.NewMemoryStore()
	} else if db := common.ConnectDb(cfg, log); db != nil {
		if err := database.RunMigrations(db, log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
		dataStore = store.NewGormStore(db, log)
		analyticsModule = analytics.NewAnalyticsModule(db, log)
	} else {
		log.Warn("no live store available, falling back to memory store")
		dataStore = store.NewMemoryStore()
	}

	if *seed {
		if err := database.Seed(dataStore, log); err != nil {
			log.Fatal("seed failed", zap.Error(err))
		}
		log.Info("seed completed")
		return
	}

	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(common.RequestLogger(log))

	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowCredentials = !corsConfig.AllowAllOrigins
	corsConfig.AddAllowHeaders(auth.HeaderOpenID)
	router.Use(cors.New(corsConfig))

	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   false,
	})
	router.Use(sessions.Sessions("joydao-session", sessionStore))

	authModule := auth.NewAuthModule(dataStore, cfg, log)
	router.Use(authModule.Identify())
	authModule.RegisterRoutes(router)

	notifier := emailpkg.NewEmailService()
	contactModule := contact.NewContactModule(dataStore, notifier, log)
	contactModule.RegisterRoutes(router)

	newsletterModule := newsletter.NewNewsletterModule(dataStore)
	newsletterModule.RegisterRoutes(router)

	blogModule := blog.NewBlogModule(dataStore, analyticsModule)
	blogModule.RegisterRoutes(router)

	adminModule := admin.NewAdminModule(dataStore, analyticsModule, log)
	adminModule.RegisterRoutes(router, authModule)

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	addr := cfg.BindAddr + ":" + cfg.Port
	log.Info("starting server", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := router.Run(addr); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
