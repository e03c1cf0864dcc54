package main

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/royaisolutions/agency-api/internal/infra/database"
	"github.com/royaisolutions/agency-api/internal/infra/http/handlers"
	"github.com/royaisolutions/agency-api/internal/infra/http/middleware"
	"github.com/royaisolutions/agency-api/internal/infra/integration/llm"
	"github.com/royaisolutions/agency-api/internal/infra/integration/stripe"
	"github.com/royaisolutions/agency-api/internal/infra/integration/telegram"
	"github.com/royaisolutions/agency-api/internal/infra/mail"
	"github.com/royaisolutions/agency-api/internal/infra/queue"
	"github.com/royaisolutions/agency-api/internal/infra/ratelimit"
	"github.com/royaisolutions/agency-api/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(
		envOr("RABBITMQ_USER", "guest"),
		envOr("RABBITMQ_PASS", "guest"),
		envOr("RABBITMQ_HOST", "localhost"),
		envOr("RABBITMQ_PORT", "5672"),
	)
	if err != nil {
		log.Fatalf("rabbitmq connection failed: %v", err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositories
	leadRepo := database.NewLeadRepository(db)
	proposalRepo := database.NewProposalRepository(db)
	paymentRepo := database.NewPaymentRepository(db)

	// 2. Gateways and adapters
	gateway := stripe.NewClient(os.Getenv("STRIPE_SECRET_KEY"), os.Getenv("STRIPE_API_URL"))
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"),
		envIntOr("MAIL_PORT", 587),
		os.Getenv("MAIL_USER"),
		os.Getenv("MAIL_PASS"),
		envOr("MAIL_FROM", "RoyAISolutions <no-reply@royaisolutions.com>"),
		os.Getenv("ADMIN_EMAIL"),
	)
	botClient := telegram.NewClient(os.Getenv("TELEGRAM_BOT_TOKEN"), "")
	assistant := llm.NewClient(
		os.Getenv("LLM_API_KEY"),
		envOr("LLM_API_URL", "https://ai.gateway.lovable.dev/v1"),
		envOr("LLM_MODEL", "google/gemini-2.5-flash"),
	)

	// 3. Notification worker (consumes the queue and sends the emails)
	worker := queue.NewWorker(rabbitMQ.Ch, mailSender)
	go worker.Start(queue.QueueName)

	// 4. Rate limiter guarding the public lead form
	limiter := ratelimit.NewLimiter(
		ratelimit.NewMemoryStore(),
		envIntOr("RATE_LIMIT", ratelimit.DefaultLimit),
		time.Duration(envIntOr("RATE_WINDOW_MINUTES", 60))*time.Minute,
	)
	limiter.SetFailOpen(os.Getenv("RATE_LIMIT_FAIL_OPEN") == "true")
	limiter.StartSweeper(ratelimit.DefaultSweepInterval)
	defer limiter.Stop()

	// 5. UseCases
	submitLeadUC := usecase.NewSubmitLeadUseCase(leadRepo)
	submitProposalUC := usecase.NewSubmitProposalUseCase(proposalRepo, producer)
	getProposalUC := usecase.NewGetProposalUseCase(proposalRepo)
	createCheckoutUC := usecase.NewCreateCheckoutUseCase(proposalRepo, gateway)
	verifyPaymentUC := usecase.NewVerifyPaymentUseCase(paymentRepo, proposalRepo, gateway, producer)

	// 6. Handlers
	leadHandler := handlers.NewLeadHandler(submitLeadUC, limiter)
	proposalHandler := handlers.NewProposalHandler(submitProposalUC, getProposalUC)
	checkoutHandler := handlers.NewCheckoutHandler(createCheckoutUC)
	paymentHandler := handlers.NewPaymentHandler(verifyPaymentUC)
	telegramHandler := handlers.NewTelegramHandler(assistant, botClient)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// 7. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Client-Info"},
	}))

	r.Post("/api/leads", leadHandler.HandleSubmit)
	r.Post("/api/proposals", proposalHandler.HandleSubmit)
	r.Post("/api/proposals/get", proposalHandler.HandleGet)
	r.Post("/api/checkout", checkoutHandler.Handle)
	r.Post("/api/payments/verify", paymentHandler.HandleVerify)
	r.Post("/telegram/webhook", telegramHandler.Handle)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := ":" + envOr("PORT", "8080")
	log.Printf("agency API listening on %s", port)
	if err := http.ListenAndServe(port, r); err != nil {
		log.Fatal(err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}
