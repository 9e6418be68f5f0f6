package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/sereneapp/serene/internal/config"
	"github.com/sereneapp/serene/internal/domain"
	"github.com/sereneapp/serene/internal/handlers"
	"github.com/sereneapp/serene/internal/middleware"
	"github.com/sereneapp/serene/internal/ratelimit"
	"github.com/sereneapp/serene/internal/repository/conversation"
	"github.com/sereneapp/serene/internal/repository/message"
	"github.com/sereneapp/serene/internal/repository/mood"
	"github.com/sereneapp/serene/internal/repository/user"
	"github.com/sereneapp/serene/internal/services"
	"github.com/sereneapp/serene/internal/services/user_services"
)

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	cfg := config.Load()
	logger := services.NewLogger("serene")

	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("DB Error: %v", err)
	}

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Conversation{},
		&domain.Message{},
		&domain.MoodEntry{},
	); err != nil {
		log.Fatalf("DB Migration Error: %v", err)
	}

	// --- Repositories ---
	userRepo := user.NewGormUserRepository(db)
	convRepo := conversation.NewConversationRepository(db)
	messageRepo := message.NewMessageRepository(db)
	moodRepo := mood.NewMoodRepository(db)

	// --- Services ---
	aiService, err := services.NewAIService(cfg.LLMAPIKey, cfg.LLMBaseURL, cfg.ChatModel)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize AI Service: %v", err)
	}

	userService := user_services.NewUserService(userRepo, cfg.JWTSecretKey, logger)

	chatService, err := services.NewChatService(convRepo, messageRepo, moodRepo, aiService, logger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize Chat Service: %v", err)
	}

	moodService, err := services.NewMoodService(moodRepo, logger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize Mood Service: %v", err)
	}

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(userService)
	chatHandler := handlers.NewChatHandler(chatService)
	moodHandler := handlers.NewMoodHandler(moodService)

	// --- Router Setup ---
	r := mux.NewRouter()
	authMiddleware := middleware.NewJWTMiddleware(userService.AuthService)

	authLimiter := ratelimit.NewMemoryRateLimiter(ratelimit.DefaultAuthConfig())
	defer authLimiter.Close()

	r.Use(corsMiddleware)
	r.Use(middleware.RecoverPanic)
	r.Use(middleware.LoggingMiddleware)

	// --- Public Routes ---
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods("GET")

	registerRoute := middleware.RateLimitMiddleware(authLimiter, "register")(http.HandlerFunc(authHandler.Register))
	loginRoute := middleware.RateLimitMiddleware(authLimiter, "login")(
		middleware.AuthSuccessMiddleware(authLimiter, "login")(http.HandlerFunc(authHandler.Login)),
	)
	r.Handle("/register", registerRoute).Methods("POST")
	r.Handle("/login", loginRoute).Methods("POST")
	r.HandleFunc("/logout", authHandler.Logout).Methods("GET")

	// --- Protected Routes ---
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authMiddleware)
	api.HandleFunc("/me", authHandler.Me).Methods("GET")
	api.HandleFunc("/chat", chatHandler.SendMessage).Methods("POST")
	api.HandleFunc("/conversations", chatHandler.GetConversations).Methods("GET")
	api.HandleFunc("/conversations", chatHandler.CreateConversation).Methods("POST")
	api.HandleFunc("/conversations/{id:[0-9]+}/messages", chatHandler.GetConversationMessages).Methods("GET")
	api.HandleFunc("/conversations/{id:[0-9]+}", chatHandler.RenameConversation).Methods("PATCH")
	api.HandleFunc("/conversations/{id:[0-9]+}", chatHandler.DeleteConversation).Methods("DELETE")
	api.HandleFunc("/moods", moodHandler.GetMoodEntries).Methods("GET")
	api.HandleFunc("/moods", moodHandler.LogMood).Methods("POST")
	api.HandleFunc("/moods/{id:[0-9]+}", moodHandler.DeleteMoodEntry).Methods("DELETE")

	// --- Server Configuration ---
	port := ":8080"
	if cfg.ServerPort != "" {
		port = ":" + cfg.ServerPort
	}
	srv := &http.Server{
		Addr:    port,
		Handler: r,
	}

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Serene companion server starting on port %s", port)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down server gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped gracefully")
}
