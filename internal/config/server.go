package config

import (
	"SovicoAssistant/database/postgres"
	bookingHandler "SovicoAssistant/internal/api/booking/handler"
	bookingRepository "SovicoAssistant/internal/api/booking/repository"
	bookingService "SovicoAssistant/internal/api/booking/service"
	catalogHandler "SovicoAssistant/internal/api/catalog/handler"
	catalogService "SovicoAssistant/internal/api/catalog/service"
	chatHandler "SovicoAssistant/internal/api/chat/handler"
	chatService "SovicoAssistant/internal/api/chat/service"
	intentService "SovicoAssistant/internal/api/intent/service"
	upsellHandler "SovicoAssistant/internal/api/upsell/handler"
	upsellService "SovicoAssistant/internal/api/upsell/service"
	verificationService "SovicoAssistant/internal/api/verification/service"
	"SovicoAssistant/internal/middleware"
	"SovicoAssistant/pkg/bcrypt"
	"SovicoAssistant/pkg/metrics"
	"SovicoAssistant/pkg/notify"
	"SovicoAssistant/pkg/redis"
	"SovicoAssistant/pkg/smtp"
	"SovicoAssistant/pkg/utils"
	"SovicoAssistant/pkg/whatsapp"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"os"
	"strconv"
	"time"
)

const historySize = 3

type ServerOption func(*Server) error

type Server struct {
	engine         *fiber.App
	db             *sqlx.DB
	log            *logrus.Logger
	middleware     middleware.Middleware
	validator      *validator.Validate
	utils          utils.IUtils
	bcryptUtils    bcrypt.IBcrypt
	handlers       []handler
	redisServer    redis.IRedis
	smtpMailer     smtp.ItfSmtp
	whatsappClient whatsapp.IWhatsappSender
	dispatcher     notify.IDispatcher
	registry       *prometheus.Registry
	metrics        *metrics.Metrics
	language       *LanguageModel
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if server.metrics == nil {
		return nil, fmt.Errorf("metrics are required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

// WithDatabase connects to postgres when CUSTOMER_STORE=postgres.
func WithDatabase() ServerOption {
	return func(s *Server) error {
		if os.Getenv("CUSTOMER_STORE") != "postgres" {
			return nil
		}
		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithSMTPMailer(smtpMailer smtp.ItfSmtp) ServerOption {
	return func(s *Server) error {
		s.smtpMailer = smtpMailer
		return nil
	}
}

func WithMetrics() ServerOption {
	return func(s *Server) error {
		s.registry = prometheus.NewRegistry()
		s.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		s.metrics = metrics.NewMetrics("sovico", s.registry)
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		if s.metrics == nil {
			return fmt.Errorf("metrics must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log, s.metrics)
		return nil
	}
}

func WithDispatcher(workers int) ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before dispatcher")
		}
		s.dispatcher = notify.NewDispatcher(s.log, workers, 30*time.Second)
		return nil
	}
}

// WithWhatsappClient pairs the WhatsApp sender when WHATSAPP_ENABLED is true.
// Codes are only logged otherwise.
func WithWhatsappClient() ServerOption {
	return func(s *Server) error {
		if enabled, _ := strconv.ParseBool(os.Getenv("WHATSAPP_ENABLED")); !enabled {
			return nil
		}
		client, err := whatsapp.New(context.Background(), s.log)
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize WhatsApp client: %v", err)
			}
			return fmt.Errorf("failed to create WhatsApp client: %w", err)
		}
		s.whatsappClient = client
		return nil
	}
}

func WithLanguageModel() ServerOption {
	return func(s *Server) error {
		if s.log == nil || s.metrics == nil {
			return fmt.Errorf("logger and metrics must be initialized before the language model")
		}
		model, err := NewLanguageModel(context.Background(), s.log, s.metrics, os.Getenv("LLM_PROVIDER"))
		if err != nil {
			s.log.Errorf("Failed to create language model: %v", err)
			return fmt.Errorf("failed to create language model: %w", err)
		}
		s.language = model
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func WithBcryptUtils() ServerOption {
	return func(s *Server) error {
		s.bcryptUtils = bcrypt.New()
		return nil
	}
}

func (s *Server) RegisterHandler() error {
	if s.dispatcher == nil {
		s.dispatcher = notify.Inline{}
	}

	// Verification
	var sender notify.MessageSender = notify.LogSender{Log: s.log}
	if s.whatsappClient != nil {
		sender = s.whatsappClient
	}
	verificationServices := verificationService.NewVerificationService(
		s.log,
		NewVerificationStore(s.redisServer),
		s.bcryptUtils,
		s.utils,
		s.dispatcher,
		sender,
		s.metrics,
	)

	// Catalog & Upsell
	catalogServices := catalogService.NewCatalogService(s.log)
	catalogHandlers := catalogHandler.New(s.log, s.validator, s.middleware, catalogServices)

	upsellServices := upsellService.NewUpsellService(s.log)
	upsellHandlers := upsellHandler.New(s.log, s.validator, s.middleware, upsellServices)

	// Booking Domain
	var customers bookingRepository.CustomerStore
	if s.db != nil {
		customers = bookingRepository.NewPostgresStore(bookingRepository.New(s.db, s.log), s.log)
	} else {
		customers = bookingRepository.NewMemoryStore(bookingRepository.SeedCustomers()...)
	}

	bookingOpts := []bookingService.Option{}
	if echo, err := strconv.ParseBool(os.Getenv("ECHO_TEST_CODES")); err == nil {
		bookingOpts = append(bookingOpts, bookingService.WithCodeEcho(echo))
	}
	if s.smtpMailer != nil {
		bookingOpts = append(bookingOpts, bookingService.WithMailer(s.smtpMailer))
	}
	bookingServices := bookingService.NewBookingService(
		s.log,
		customers,
		verificationServices,
		upsellServices,
		s.utils,
		s.dispatcher,
		s.metrics,
		bookingOpts...,
	)
	bookingHandlers := bookingHandler.New(s.log, s.middleware, bookingServices)

	// Chat Domain
	contextStore, err := NewContextStore(os.Getenv("CONTEXT_STORE"), s.redisServer, "")
	if err != nil {
		return fmt.Errorf("failed to create context store: %w", err)
	}

	chatOpts := []chatService.Option{}
	if s.language != nil {
		chatOpts = append(chatOpts,
			chatService.WithExtractor(s.language.Extractor),
			chatService.WithSynthesizer(s.language.Synthesizer),
		)
	}
	chatServices := chatService.NewChatService(
		s.log,
		contextStore,
		intentService.NewClassifierService(s.log, intentService.NewMemoryHistory(historySize)),
		bookingServices,
		catalogServices,
		upsellServices,
		s.metrics,
		chatOpts...,
	)
	chatHandlers := chatHandler.New(s.log, s.validator, s.middleware, chatServices)

	s.setupHealthCheck()
	s.setupMetrics()
	s.handlers = append(s.handlers, chatHandlers, bookingHandlers, catalogHandlers, upsellHandlers)

	return nil
}

func (s *Server) Run() error {
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(middleware.LoggerConfig())
	s.engine.Use(s.middleware.NewMetricsMiddleware)

	router := s.engine.Group("/api/v1")
	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

// Shutdown stops accepting requests, drains queued notifications and closes
// every connection the server opened.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.engine.ShutdownWithContext(ctx)

	if s.dispatcher != nil {
		s.dispatcher.Stop()
	}
	if s.whatsappClient != nil {
		if dErr := s.whatsappClient.Disconnect(); dErr != nil {
			s.log.Warnf("Failed to disconnect WhatsApp: %v", dErr)
		}
	}
	if s.language != nil {
		s.language.Close()
	}
	if s.redisServer != nil {
		_ = s.redisServer.Close()
	}
	if s.db != nil {
		_ = s.db.Close()
	}

	return err
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}

func (s *Server) setupMetrics() {
	s.engine.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))
}
