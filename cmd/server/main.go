package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"englisharcade/internal/ai"
	"englisharcade/internal/audio"
	"englisharcade/internal/config"
	"englisharcade/internal/database"
	"englisharcade/internal/handlers"
	"englisharcade/internal/images"
	"englisharcade/internal/repository"
	"englisharcade/internal/service"
	"englisharcade/internal/worksheet"

	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

func main() {
	// Load .env if present, then configuration from the environment
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env: %v", err)
	}
	cfg := config.Load()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations for the active dialect
	migrationsPath := filepath.Join(cfg.MigrationsPath, db.Dialect.MigrationsSubdir())
	if err := db.RunMigrations(migrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	worksheetRepo := repository.NewWorksheetRepository(db)
	recordsRepo := repository.NewRecordsRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.SessionDuration)
	worksheetService := service.NewWorksheetService(worksheetRepo)
	recordsService := service.NewRecordsService(recordsRepo)

	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL, cfg.Debug)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	// External integrations
	extractor := ai.NewExtractor(cfg.OpenAIProxyURL, cfg.OpenAIAPIKey)
	audioResolver := audio.NewResolver(cfg.AudioStorageBaseURL)
	pixabayClient := images.NewPixabayClient(cfg.PixabayAPIKey)

	audioDir := filepath.Join(cfg.StaticFilesPath, "audio")
	if err := os.MkdirAll(audioDir, 0o755); err != nil {
		log.Fatalf("Failed to create audio directory: %v", err)
	}
	ttsService := audio.NewTTSService(audioDir)

	// Worksheet editor state and PDF rendering
	editorSessions := worksheet.NewSessionStore(func() *images.Store {
		return images.NewStore(pixabayClient)
	})
	pdfGenerator := worksheet.NewPDFGenerator()
	defer pdfGenerator.Close()

	var googleConfig *oauth2.Config
	if cfg.GoogleClientID != "" && cfg.GoogleClientSecret != "" {
		googleConfig = &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Endpoint:     google.Endpoint,
			Scopes:       []string{"openid", "email", "profile"},
		}
	}

	// Initialize handlers
	middleware := handlers.NewMiddleware(authService)
	authHandler := handlers.NewAuthHandler(authService, emailService, googleConfig)
	worksheetHandler := handlers.NewWorksheetHandler(editorSessions, pdfGenerator, worksheetService, emailService, extractor)
	imageHandler := handlers.NewImageHandler(editorSessions, pixabayClient)
	arcadeHandler := handlers.NewArcadeHandler(cfg.LessonsPath)
	recordsHandler := handlers.NewRecordsHandler(recordsService)
	audioHandler := handlers.NewAudioHandler(audioResolver, ttsService)
	openAIProxy := handlers.NewOpenAIProxyHandler(cfg.OpenAIAPIKey)

	progressProxy, err := handlers.NewProgressSummaryProxy(cfg.ProgressSummaryURL)
	if err != nil {
		log.Fatalf("Failed to configure progress summary proxy: %v", err)
	}

	// Setup routes
	mux := http.NewServeMux()

	// Static files
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticFilesPath))))
	mux.Handle("GET /", http.FileServer(http.Dir(cfg.StaticFilesPath)))
	mux.HandleFunc("GET /login", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, filepath.Join(cfg.StaticFilesPath, "login.html"))
	})

	// Auth routes
	mux.HandleFunc("POST /register", middleware.RateLimit(authHandler.Register))
	mux.HandleFunc("POST /login", middleware.RateLimit(authHandler.Login))
	mux.HandleFunc("POST /logout", authHandler.Logout)
	mux.HandleFunc("GET /auth/google/start", authHandler.StartGoogle)
	mux.HandleFunc("GET /auth/google/callback", authHandler.GoogleCallback)

	// Worksheet editor routes
	mux.HandleFunc("POST /worksheet/preview", worksheetHandler.Preview)
	mux.HandleFunc("POST /worksheet/print", worksheetHandler.Print)
	mux.HandleFunc("POST /worksheet/pdf", worksheetHandler.PDF)
	mux.HandleFunc("POST /worksheet/extract", worksheetHandler.Extract)

	// Saved worksheet routes
	mux.HandleFunc("POST /worksheets", middleware.RequireAuth(worksheetHandler.Save))
	mux.HandleFunc("GET /worksheets", middleware.RequireAuth(worksheetHandler.List))
	mux.HandleFunc("GET /worksheets/{id}", middleware.RequireAuth(worksheetHandler.Load))
	mux.HandleFunc("PUT /worksheets/{id}", middleware.RequireAuth(worksheetHandler.Update))
	mux.HandleFunc("DELETE /worksheets/{id}", middleware.RequireAuth(worksheetHandler.Delete))
	mux.HandleFunc("POST /worksheets/{id}/share", middleware.RequireAuth(worksheetHandler.Share))

	// Worksheet image routes
	mux.HandleFunc("POST /images/cycle", imageHandler.Cycle)
	mux.HandleFunc("POST /images/upload", imageHandler.Upload)
	mux.HandleFunc("POST /images/more", imageHandler.More)
	mux.HandleFunc("POST /images/reset", imageHandler.Reset)
	mux.HandleFunc("POST /images/error", imageHandler.Error)

	// Function routes used by the browser front end
	mux.HandleFunc("GET /functions/pixabay", imageHandler.Pixabay)
	mux.HandleFunc("POST /functions/get_audio_urls", audioHandler.WordURLs)
	mux.HandleFunc("POST /functions/get_sentence_audio_urls", audioHandler.SentenceURLs)
	mux.HandleFunc("POST /functions/openai_proxy", openAIProxy.Proxy)
	mux.Handle("/functions/progress_summary", progressProxy)
	mux.Handle("/functions/progress_summary/", progressProxy)

	// Arcade game routes
	mux.HandleFunc("GET /arcade/lessons/{file}", arcadeHandler.Lesson)
	mux.HandleFunc("GET /arcade/round/{mode}", arcadeHandler.Round)

	// Game record routes (work anonymously, attribute when logged in)
	mux.HandleFunc("POST /records/session/start", middleware.OptionalAuth(recordsHandler.StartSession))
	mux.HandleFunc("POST /records/session/attempt", recordsHandler.Attempt)
	mux.HandleFunc("POST /records/session/end", recordsHandler.EndSession)

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start background session cleanup
	go cleanupExpiredSessions(authService)

	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

// cleanupExpiredSessions periodically removes expired sessions
func cleanupExpiredSessions(authService *service.AuthService) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := authService.CleanupExpiredSessions(); err != nil {
			log.Printf("Error cleaning up expired sessions: %v", err)
		} else {
			log.Println("Expired sessions cleaned up")
		}
	}
}
