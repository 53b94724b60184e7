package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sahayak-ai/sahayak/internal/observability"
	"github.com/sahayak-ai/sahayak/internal/profile"
	"github.com/sahayak-ai/sahayak/plugin/langdetect"
	"github.com/sahayak-ai/sahayak/plugin/llm"
	"github.com/sahayak-ai/sahayak/plugin/prompt"
	"github.com/sahayak-ai/sahayak/server"
	"github.com/sahayak-ai/sahayak/server/service/teacher"
	"github.com/sahayak-ai/sahayak/store"
)

const version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:     "sahayak",
	Short:   "Multilingual AI teacher service",
	Version: version,
	// Running the bare binary serves, same as the serve subcommand.
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		p, svc, sessions, err := bootstrap(ctx)
		if err != nil {
			return err
		}

		return server.NewServer(p, svc, sessions).Start(ctx)
	},
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Ask questions from the terminal",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		_, svc, _, err := bootstrap(ctx)
		if err != nil {
			return err
		}

		return runChat(ctx, svc)
	},
}

// bootstrap loads configuration and assembles the teaching pipeline.
func bootstrap(ctx context.Context) (*profile.Profile, *teacher.Service, *store.Store, error) {
	p := profile.FromEnv(version)
	if err := p.Validate(); err != nil {
		return nil, nil, nil, err
	}

	observability.SetupLogger(p.IsDev())

	client, err := llm.New(ctx, llm.Config{
		APIKey:         p.APIKey,
		BaseURL:        p.BaseURL,
		Model:          p.Model,
		MaxRetries:     p.MaxRetries,
		RetryBaseDelay: p.RetryBaseDelay,
	})
	if err != nil {
		return nil, nil, nil, err
	}

	sessions := store.New(p.MaxSessions, p.SessionTimeout)
	svc := teacher.NewService(langdetect.New(), prompt.NewBuilder(), client, sessions, teacher.Options{
		ConfidenceThreshold: p.ConfidenceThreshold,
		ContextWindow:       p.ContextWindow,
		MaxInputLength:      p.MaxInputLength,
	})

	slog.Info("sahayak ready", "model", client.Model(), "mode", p.Mode)
	return p, svc, sessions, nil
}

// runChat is a small terminal loop over the same pipeline the API serves.
func runChat(ctx context.Context, svc *teacher.Service) error {
	fmt.Println(svc.Greet(langdetect.DefaultLanguage))
	fmt.Println("Type your question, or /clear, /stats, /quit.")

	scanner := bufio.NewScanner(os.Stdin)
	sessionID := ""

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		switch line {
		case "":
			continue
		case "/quit", "/exit", "quit", "exit":
			return nil
		case "/clear":
			if sessionID != "" && svc.Sessions().Clear(sessionID) {
				fmt.Println("Conversation cleared.")
			} else {
				fmt.Println("Nothing to clear yet.")
			}
			continue
		case "/stats":
			stats := svc.Sessions().Stats()
			fmt.Printf("Sessions: %d, messages: %d, languages: %s\n",
				stats.TotalSessions, stats.TotalMessages, strings.Join(stats.LanguagesUsed, ", "))
			continue
		}

		resp := svc.HandleQuestion(ctx, teacher.Request{Text: line, SessionID: sessionID})
		sessionID = resp.SessionID

		if text := teacher.FormatForDisplay(resp); text != "" {
			fmt.Println(text)
		} else {
			fmt.Println(resp.Text)
		}
		fmt.Println()
	}
}

func main() {
	rootCmd.AddCommand(serveCmd, chatCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
