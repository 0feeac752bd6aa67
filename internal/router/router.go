package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"reminisce-backend/internal/handlers"
	"reminisce-backend/internal/middleware"
	"reminisce-backend/internal/websocket"
)

func New(
	patientHandler *handlers.PatientHandler,
	memoryHandler *handlers.MemoryHandler,
	quizHandler *handlers.QuizHandler,
	conversationHandler *handlers.ConversationHandler,
	sessionHandler *handlers.SessionHandler,
	transcriptHandler *handlers.TranscriptHandler,
	wsHub *websocket.Hub,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Conversation creation is the expensive path (spins up a video call)
	conversationLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Patient Routes ────
		r.Route("/patients", func(r chi.Router) {
			r.Post("/", patientHandler.Create)
			r.Get("/", patientHandler.List)
			r.Get("/{id}", patientHandler.Get)
			r.Put("/{id}", patientHandler.Update)
			r.Delete("/{id}", patientHandler.Delete)
			r.Get("/{id}/stats", patientHandler.Stats)

			// Memories nested under their patient
			r.Post("/{id}/memories", memoryHandler.Create)
			r.Get("/{id}/memories", memoryHandler.ListByPatient)

			// Assemble a quiz from the patient's memories
			r.Get("/{id}/quiz", quizHandler.Build)

			r.Get("/{id}/sessions", sessionHandler.ListByPatient)
			r.Get("/{id}/transcripts", transcriptHandler.ListByPatient)
		})

		// ──── Memory Routes ────
		r.Route("/memories", func(r chi.Router) {
			r.Get("/{memoryID}", memoryHandler.Get)
			r.Put("/{memoryID}", memoryHandler.Update)
			r.Delete("/{memoryID}", memoryHandler.Delete)
		})

		// ──── Live Quiz Routes ────
		r.Route("/quiz-sessions", func(r chi.Router) {
			r.Post("/", quizHandler.Start)
			r.Get("/{sessionID}", quizHandler.Get)
			r.Post("/{sessionID}/answer", quizHandler.Answer)
			r.Post("/{sessionID}/next", quizHandler.Next)
			r.Post("/{sessionID}/restart", quizHandler.Restart)
			r.Delete("/{sessionID}", quizHandler.Abandon)
		})

		// ──── Conversation Routes ────
		r.Route("/conversations", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(conversationLimiter.Middleware)
				r.Post("/", conversationHandler.Start)
			})
			r.Post("/{sessionID}/activate", conversationHandler.Activate)
			r.Post("/{sessionID}/end", conversationHandler.End)

			// The video client only holds the Tavus conversation id
			r.Get("/by-conversation/{conversationID}", conversationHandler.Get)
		})

		// ──── Transcript Routes ────
		r.Route("/transcripts", func(r chi.Router) {
			r.Get("/by-conversation/{conversationID}", transcriptHandler.GetByConversation)
		})

		// ──── Session Routes ────
		r.Route("/sessions", func(r chi.Router) {
			r.Get("/{sessionID}", sessionHandler.Get)
			r.Get("/{sessionID}/transcripts", transcriptHandler.ListBySession)
		})

		// ──── WebSocket ────
		r.Get("/ws", wsHub.HandleWebSocket)
	})

	return r
}
