// Package main is a terminal front end for the portfolio chat assistant.
//
// Usage:
//
//	GEMINI_API_KEY=... go run ./cmd/chat [--config path] [--model name] [--verbose]
//
// Type a message and press Enter. /reset clears the conversation, /quit exits.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/decker502/scrollreel/pkg/chat"
	"github.com/decker502/scrollreel/pkg/config"
	"github.com/decker502/scrollreel/pkg/embedded"
)

var (
	configFlag  = flag.String("config", "", "Path to YAML config (empty uses data/scrollreel.yaml)")
	modelFlag   = flag.String("model", "", "Override chat.model")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging")
)

func main() {
	flag.Parse()
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	embedded.Init(os.DirFS("."))
	cfg, err := config.LoadConfig(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *modelFlag != "" {
		cfg.Chat.Model = *modelFlag
	}

	prompt, err := cfg.Chat.LoadPrompt()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	model, err := chat.NewGeminiModel(ctx, cfg.Chat.ResolveAPIKey(), cfg.Chat.Model)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v (set %s or chat.apiKey)\n", err, config.APIKeyEnv)
		os.Exit(1)
	}

	fmt.Printf("Chatting with %s. /reset clears history, /quit exits.\n", model.Name())
	run(ctx, chat.NewSession(model, prompt), os.Stdin, os.Stdout)
}

// run reads one message per line until EOF, /quit or ctx is done.
func run(ctx context.Context, session *chat.Session, in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() || ctx.Err() != nil {
			fmt.Fprintln(out)
			return
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "/quit", "/exit":
			return
		case "/reset":
			session.Reset()
			fmt.Fprintln(out, "(history cleared)")
			continue
		}

		if reply, ok := session.Send(ctx, line); ok {
			fmt.Fprintf(out, "%s\n\n", reply)
		}
	}
}
