package main

import (
	bookingRepository "SovicoAssistant/internal/api/booking/repository"
	bookingService "SovicoAssistant/internal/api/booking/service"
	catalogService "SovicoAssistant/internal/api/catalog/service"
	chatService "SovicoAssistant/internal/api/chat/service"
	intentService "SovicoAssistant/internal/api/intent/service"
	upsellService "SovicoAssistant/internal/api/upsell/service"
	verificationRepository "SovicoAssistant/internal/api/verification/repository"
	verificationService "SovicoAssistant/internal/api/verification/service"
	"SovicoAssistant/internal/config"
	"SovicoAssistant/pkg/bcrypt"
	"SovicoAssistant/pkg/log"
	"SovicoAssistant/pkg/metrics"
	"SovicoAssistant/pkg/notify"
	"SovicoAssistant/pkg/utils"
	"bufio"
	"context"
	"errors"
	"fmt"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"os"
	"strings"
)

type options struct {
	User     string `short:"u" long:"user" default:"cli-user" description:"conversation user id"`
	StoreDir string `short:"d" long:"store-dir" default:"./storage/contexts" description:"directory for conversation files"`
	LLM      string `long:"llm" choice:"gemini" choice:"openai" description:"model provider for extraction and replies"`
	Reset    bool   `long:"reset" description:"forget the saved conversation before starting"`
	Verbose  bool   `short:"v" long:"verbose" description:"log to stderr"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}

	_ = godotenv.Load()

	logger := log.Discard()
	if opts.Verbose {
		logger = logrus.New()
		logger.SetOutput(os.Stderr)
		logger.SetLevel(logrus.DebugLevel)
	}

	if err := run(context.Background(), logger, opts); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *logrus.Logger, opts options) error {
	m := metrics.NewNoop()
	u := utils.New()

	store, err := config.NewContextStore("file", nil, opts.StoreDir)
	if err != nil {
		return err
	}

	verifier := verificationService.NewVerificationService(
		logger,
		verificationRepository.NewMemoryStore(),
		bcrypt.New(),
		u,
		notify.Inline{},
		notify.LogSender{Log: logger},
		m,
	)
	upsell := upsellService.NewUpsellService(logger)
	catalog := catalogService.NewCatalogService(logger)
	booking := bookingService.NewBookingService(
		logger,
		bookingRepository.NewMemoryStore(bookingRepository.SeedCustomers()...),
		verifier,
		upsell,
		u,
		notify.Inline{},
		m,
	)

	var chatOpts []chatService.Option
	if opts.LLM != "" {
		model, err := config.NewLanguageModel(ctx, logger, m, opts.LLM)
		if err != nil {
			return err
		}
		defer model.Close()
		chatOpts = append(chatOpts, chatService.WithExtractor(model.Extractor), chatService.WithSynthesizer(model.Synthesizer))
	}

	svc := chatService.NewChatService(
		logger,
		store,
		intentService.NewClassifierService(logger, intentService.NewMemoryHistory(3)),
		booking,
		catalog,
		upsell,
		m,
		chatOpts...,
	)

	if opts.Reset {
		if err := svc.ResetContext(ctx, opts.User); err != nil {
			return err
		}
	}

	fmt.Printf("SOVICO assistant, user %q. Ctrl+D to quit.\n\n", opts.User)

	scanner := bufio.NewScanner(os.Stdin)
	for fmt.Print("> "); scanner.Scan(); fmt.Print("> ") {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		res, err := svc.ProcessMessage(ctx, opts.User, line)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			continue
		}

		fmt.Printf("\n%s\n", res.Response)
		if len(res.Suggestions) > 0 {
			fmt.Printf("\n💡 %s\n", strings.Join(res.Suggestions, " | "))
		}
		fmt.Printf("[%s", res.Context.AgentType)
		if res.Context.Step != "" {
			fmt.Printf(" · %s", res.Context.Step.DisplayName())
		}
		fmt.Print("]\n\n")
	}

	return scanner.Err()
}
