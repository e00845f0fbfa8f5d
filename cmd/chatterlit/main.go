package main

import (
	"bufio"
	"context"
	"encoding/base64"
	"flag"
	"fmt"
	"mime"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"github.com/etesami/chatterlit/internal/archive"
	"github.com/etesami/chatterlit/internal/catalog"
	"github.com/etesami/chatterlit/internal/chat"
	"github.com/etesami/chatterlit/internal/config"
	"github.com/etesami/chatterlit/internal/content"
	"github.com/etesami/chatterlit/internal/engine"
	"github.com/etesami/chatterlit/internal/llm"
	"github.com/etesami/chatterlit/internal/logger"
	"github.com/etesami/chatterlit/internal/prompt"
)

func init() {
	godotenv.Load()
}

type app struct {
	eng     *engine.Engine
	catalog *catalog.Catalog
	model   string
	mods    prompt.Set
	pending []content.Attachment
}

func main() {
	modelFlag := flag.String("model", "", "model name (overrides CHATTERLIT_MODEL)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", "error", err)
	}

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		logger.Fatal("failed to load model catalog", "error", err)
	}

	model := cfg.DefaultModel
	if *modelFlag != "" {
		model = *modelFlag
	}
	if _, ok := cat.Lookup(model); !ok {
		logger.Fatal("model not in catalog", "model", model)
	}

	opts := []engine.Option{engine.WithImageSize(cfg.ImageSize)}
	if cfg.Archive.Enabled() {
		store, err := archive.New(archive.Config{
			Endpoint:  cfg.Archive.Endpoint,
			AccessKey: cfg.Archive.AccessKey,
			SecretKey: cfg.Archive.SecretKey,
			UseSSL:    cfg.Archive.UseSSL,
			Bucket:    cfg.Archive.Bucket,
		})
		if err != nil {
			logger.Fatal("failed to create image archive", "error", err)
		}
		if err := store.Init(context.Background()); err != nil {
			logger.Warn("image archive unavailable", "error", err)
		} else {
			opts = append(opts, engine.WithArchive(store))
		}
	}

	eng := engine.New(chat.NewStore(), llm.NewRouter(cfg.RequestTimeout), cat, opts...)
	eng.NewSession()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigc
		fmt.Println("\nShutting down...")
		cancel()
		os.Exit(0)
	}()

	a := &app{eng: eng, catalog: cat, model: model, mods: prompt.NewSet()}
	a.run(ctx)
}

func (a *app) run(ctx context.Context) {
	boldGreen := color.New(color.FgGreen, color.Bold).SprintFunc()
	boldCyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	fmt.Println(boldGreen("Chatterlit"))
	fmt.Printf("Model: %s\n", boldCyan(a.model))
	fmt.Println("Type a message, /help for commands, 'exit' to quit.")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Print(boldGreen("You: "))
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "exit") {
			break
		}
		if strings.HasPrefix(line, "/") {
			a.command(line)
			continue
		}

		sessionID := a.eng.ActiveSession()
		reply, err := a.eng.ProcessTurn(ctx, engine.TurnRequest{
			SessionID:      sessionID,
			Input:          line,
			Attachments:    a.pending,
			Modifiers:      a.mods,
			Model:          a.model,
			IncludeHistory: true,
		})
		a.pending = nil

		if err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", red("Error:"), err)
			continue
		}

		if reply.IsImage {
			path, err := saveImage(reply)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s %v\n", red("Error:"), err)
				continue
			}
			fmt.Printf("%s image written to %s\n", boldCyan("Assistant:"), path)
		} else {
			fmt.Printf("%s %s\n", boldCyan("Assistant:"), reply.Text())
		}

		if _, counts, total, err := a.eng.HistoryWithTokens(sessionID, a.model); err == nil && len(counts) > 0 {
			fmt.Println(dim(fmt.Sprintf("(%d tokens this reply, %d total)", counts[len(counts)-1], total)))
		}
		fmt.Println()
	}
}

func (a *app) command(line string) {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "/help":
		fmt.Println(`Commands:
  /new                start a new session
  /sessions           list sessions, most recent first
  /switch <id...>     switch to a session (id may contain spaces)
  /models             list available models
  /model <name>       select a model
  /mod <name>         toggle a modifier: short, interactive, jobs, code_block, infographic
  /attach <path>      attach a file to the next message
  /history            show the active session`)

	case "/new":
		id := a.eng.NewSession()
		fmt.Printf("new session %s\n", id)

	case "/sessions":
		active := a.eng.ActiveSession()
		for _, id := range a.eng.Sessions() {
			marker := "  "
			if id == active {
				marker = "* "
			}
			fmt.Println(marker + a.eng.Describe(id))
		}

	case "/switch":
		id := strings.Join(args, " ")
		if _, err := a.eng.Switch(id); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		fmt.Printf("switched to %s\n", id)

	case "/models":
		for _, e := range a.catalog.Entries() {
			kind := "text"
			if e.ImageCapable {
				kind = "image"
			}
			fmt.Printf("  %-28s [%s] %s\n", e.Name, kind, e.Description)
		}

	case "/model":
		if len(args) != 1 {
			fmt.Println("usage: /model <name>")
			return
		}
		if _, ok := a.catalog.Lookup(args[0]); !ok {
			fmt.Fprintf(os.Stderr, "Error: model %q not in catalog\n", args[0])
			return
		}
		a.model = args[0]
		fmt.Printf("model set to %s\n", a.model)

	case "/mod":
		if len(args) != 1 {
			fmt.Println("usage: /mod <short|interactive|jobs|code_block|infographic>")
			return
		}
		m := prompt.Modifier(args[0])
		switch m {
		case prompt.Short, prompt.Interactive, prompt.Jobs, prompt.CodeBlock, prompt.Infographic:
			if a.mods.Toggle(m) {
				fmt.Printf("%s on\n", m)
			} else {
				fmt.Printf("%s off\n", m)
			}
		default:
			fmt.Fprintf(os.Stderr, "Error: unknown modifier %q\n", args[0])
		}

	case "/attach":
		if len(args) == 0 {
			fmt.Println("usage: /attach <path>")
			return
		}
		path := strings.Join(args, " ")
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		a.pending = append(a.pending, content.Attachment{
			Name:     filepath.Base(path),
			MimeType: mime.TypeByExtension(filepath.Ext(path)),
			Data:     data,
		})
		fmt.Printf("attached %s (%d bytes)\n", filepath.Base(path), len(data))

	case "/history":
		id := a.eng.ActiveSession()
		msgs, counts, total, err := a.eng.HistoryWithTokens(id, a.model)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		running := 0
		for i, msg := range msgs {
			running += counts[i]
			body := chat.Truncate(msg.Text(), 200)
			if msg.IsImage {
				body = "[image]"
			}
			fmt.Printf("%3d %-9s (%d tokens, running %d) %s\n", msg.Seq, msg.Role, counts[i], running, body)
		}
		fmt.Printf("total: %d tokens\n", total)

	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %s\n", cmd)
	}
}

func saveImage(msg chat.Message) (string, error) {
	if len(msg.Content) == 0 {
		return "", fmt.Errorf("empty image message")
	}

	data, err := base64.StdEncoding.DecodeString(msg.Content[0].Base64Data)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	path := fmt.Sprintf("chatterlit-%s.png", msg.ID[:8])
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
