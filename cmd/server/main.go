package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reminisce-backend/internal/config"
	"reminisce-backend/internal/database"
	"reminisce-backend/internal/handlers"
	"reminisce-backend/internal/repository"
	"reminisce-backend/internal/router"
	"reminisce-backend/internal/services"
	"reminisce-backend/internal/websocket"
	"reminisce-backend/internal/worker"
)

func main() {
	log.Println("🚀 Starting Reminisce Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	// ──── Step 3: Initialize Redis Clients ────
	redisClients, err := database.NewRedisClients(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClients.Close()
	log.Println("✓ Redis connected")

	// ──── Step 4: Run Database Migrations ────
	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Initialize Repositories ────
	patientRepo := repository.NewPatientRepo(pool)
	memoryRepo := repository.NewMemoryRepo(pool)
	sessionRepo := repository.NewSessionRepo(pool)
	transcriptRepo := repository.NewTranscriptRepo(pool)
	jobRepo := repository.NewJobRepo(pool)

	// ──── Initialize Services ────
	tavusService := services.NewTavusService(services.TavusConfig{
		APIKey:    cfg.TavusAPIKey,
		ReplicaID: cfg.TavusReplicaID,
		PersonaID: cfg.TavusPersonaID,
		BaseURL:   cfg.TavusBaseURL,
	})
	log.Println("✓ Tavus client initialized")

	conversationService := services.NewConversationService(
		tavusService,
		patientRepo,
		memoryRepo,
		sessionRepo,
		jobRepo,
		redisClients.Queue,
		redisClients.PubSub,
	)

	quizRunner := services.NewQuizRunner(memoryRepo, sessionRepo, redisClients.PubSub, services.QuizRunnerConfig{
		TimeLimitSeconds: cfg.QuizTimeLimitSeconds,
		MaxQuestions:     cfg.QuizMaxQuestions,
	})

	// ──── Initialize Handlers ────
	patientHandler := handlers.NewPatientHandler(patientRepo)
	memoryHandler := handlers.NewMemoryHandler(memoryRepo, patientRepo)
	quizHandler := handlers.NewQuizHandler(quizRunner)
	conversationHandler := handlers.NewConversationHandler(conversationService)
	sessionHandler := handlers.NewSessionHandler(sessionRepo)
	transcriptHandler := handlers.NewTranscriptHandler(transcriptRepo)

	// ──── Step 5: Start Job Worker Pool ────
	workerPool := worker.NewPool(
		redisClients.Queue,
		redisClients.PubSub,
		tavusService,
		jobRepo,
		transcriptRepo,
		cfg.WorkerCount,
	)
	workerPool.Start()
	log.Printf("✓ Worker pool started (%d goroutines)", cfg.WorkerCount)

	// ──── Step 6: Start WebSocket Hub ────
	wsHub := websocket.NewHub(redisClients.PubSub)
	log.Println("✓ WebSocket hub started")

	// ──── Step 7: Start HTTP Server ────
	r := router.New(
		patientHandler,
		memoryHandler,
		quizHandler,
		conversationHandler,
		sessionHandler,
		transcriptHandler,
		wsHub,
		cfg.FrontendURL,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		workerPool.Stop()
		quizRunner.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Reminisce Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)
	log.Printf("  WS:  ws://localhost:%s/api/v1/ws", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
