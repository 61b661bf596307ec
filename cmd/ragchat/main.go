package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"syscall"
	"time"

	// earlyinit must be listed before bubbletea so its init() runs first and
	// pre-sets lipgloss.SetHasDarkBackground, preventing bubbletea's init()
	// from sending an OSC 11 terminal colour query that leaks into stdin on WSL2.
	_ "github.com/hkapoor246/rag-ai-app/internal/earlyinit"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/hkapoor246/rag-ai-app/internal/api"
	"github.com/hkapoor246/rag-ai-app/internal/chat"
	"github.com/hkapoor246/rag-ai-app/internal/config"
	"github.com/hkapoor246/rag-ai-app/internal/tui"
	"github.com/hkapoor246/rag-ai-app/internal/tui/components"
)

var (
	version = "1.0.0"
	commit  = "dev"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ragchat",
		Short: "Chat with your documents from the terminal",
		Long: `ragchat is a terminal client for a retrieval-augmented chat backend.
Upload documents, ask questions about them, and inspect which passages
each answer was grounded on.`,
		RunE:          runTUI,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Flags
	rootCmd.PersistentFlags().StringP("server", "s", "", "Backend server URL (default http://localhost:8000)")
	rootCmd.PersistentFlags().StringP("model", "m", "", "Model to use (gpt-4o, gpt-4o-mini, gpt-3.5-turbo)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	// Sub-commands
	rootCmd.AddCommand(
		askCmd(),
		uploadCmd(),
		docsCmd(),
		visualizeCmd(),
		modelsCmd(),
		configCmd(),
		completionCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// filterOSCSequences removes OSC (Operating System Command) sequences from messages.
// This prevents terminal responses like OSC 11 (background color query) from appearing
// as garbage text in the input area.
func filterOSCSequences(_ tea.Model, msg tea.Msg) tea.Msg {
	switch v := msg.(type) {
	case tea.KeyMsg:
		str := v.String()

		// OSC 11 responses look like: ]11;rgb:0000/0000/0000 or fragments
		// of it once the escape character has been consumed.
		if matched, _ := regexp.MatchString(`\d{1,4}/\d{4}/\d{4}`, str); matched {
			return nil
		}
		if strings.HasPrefix(str, "]11;") ||
			strings.HasPrefix(str, "rgb:") ||
			strings.Contains(str, ";rgb:") {
			return nil
		}
	}
	return msg
}

// applyFlags lets command-line flags override whatever the config file and
// environment resolved to.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	if server, _ := cmd.Flags().GetString("server"); server != "" {
		cfg.ServerURL = server
	}
	if model, _ := cmd.Flags().GetString("model"); model != "" {
		if !chat.IsSupportedModel(model) {
			return fmt.Errorf("unsupported model %q (supported: %s)", model, strings.Join(chat.SupportedModels(), ", "))
		}
		cfg.Model = model
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.Verbose = true
	}
	return nil
}

// newSession builds the session, orchestrator, and API client shared by the
// TUI and the non-interactive commands.
func newSession(cfg *config.Config) (*chat.Session, *chat.Orchestrator, *api.Client, error) {
	client := api.NewClient(cfg.ServerURL, cfg.Timeout)
	session := chat.NewSession()
	if cfg.Model != "" {
		if err := session.Models.Select(cfg.Model); err != nil {
			return nil, nil, nil, err
		}
	}
	return session, chat.NewOrchestrator(session, client), client, nil
}

// runTUI is the default command - starts the TUI
func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}

	session, orch, client, err := newSession(cfg)
	if err != nil {
		return err
	}

	model := tui.New(session, orch, client, cfg)

	// WithFilter strips OSC sequences that can leak into the input buffer.
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithFilter(filterOSCSequences),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

// ---------------------------------------------------------------------------
// ask command
// ---------------------------------------------------------------------------

func askCmd() *cobra.Command {
	var showSources bool

	cmd := &cobra.Command{
		Use:   "ask [question...]",
		Short: "Ask a single question without the TUI",
		Long:  "Send one question to the backend and print the answer. Useful for scripting.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := applyFlags(cmd, cfg); err != nil {
				return err
			}

			session, orch, _, err := newSession(cfg)
			if err != nil {
				return err
			}

			question := strings.Join(args, " ")
			turn, ok := orch.Submit(question)
			if !ok {
				return fmt.Errorf("empty question")
			}

			ctx, cancel := signalContext()
			defer cancel()

			if err := turn.Exchange(ctx); err != nil {
				return fmt.Errorf("exchange failed: %w", err)
			}

			msgs := session.Log.Snapshot()
			answer := msgs[len(msgs)-1]

			if term.IsTerminal(int(os.Stdout.Fd())) {
				width, _, err := term.GetSize(int(os.Stdout.Fd()))
				if err != nil || width <= 0 {
					width = 80
				}
				if md, err := components.NewMarkdownRenderer(width-2, cfg.Theme); err == nil {
					fmt.Print(md.Render(answer.Text))
				} else {
					fmt.Println(answer.Text)
				}
			} else {
				fmt.Println(answer.Text)
			}

			if showSources && answer.HasSources() {
				fmt.Println("\nSources:")
				for _, src := range answer.Sources {
					fmt.Printf("  - %s\n", src.Origin)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showSources, "sources", false, "Print source documents after the answer")
	return cmd
}

// signalContext returns a context cancelled on SIGINT/SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()
	return ctx, cancel
}

// ---------------------------------------------------------------------------
// upload command
// ---------------------------------------------------------------------------

func uploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload [file...]",
		Short: "Upload documents to the backend index",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := applyFlags(cmd, cfg); err != nil {
				return err
			}
			client := api.NewClient(cfg.ServerURL, cfg.Timeout)

			ctx, cancel := signalContext()
			defer cancel()

			var failed int
			for _, path := range args {
				start := time.Now()
				res, err := client.Upload(ctx, path)
				if err != nil {
					fmt.Fprintf(os.Stderr, "  ✗ %s: %v\n", path, err)
					failed++
					continue
				}
				name := res.Filename
				if name == "" {
					name = filepath.Base(path)
				}
				fmt.Printf("  ✓ %s (%d chunks, %s)\n", name, res.ChunksCount, time.Since(start).Round(time.Millisecond))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d upload(s) failed", failed, len(args))
			}
			return nil
		},
	}
}

// ---------------------------------------------------------------------------
// docs command
// ---------------------------------------------------------------------------

func docsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "docs",
		Aliases: []string{"list"},
		Short:   "List documents indexed on the backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := applyFlags(cmd, cfg); err != nil {
				return err
			}
			client := api.NewClient(cfg.ServerURL, cfg.Timeout)

			ctx, cancel := signalContext()
			defer cancel()

			names, err := client.ListDocuments(ctx)
			if err != nil {
				return err
			}
			if len(names) == 0 {
				fmt.Println("No documents indexed.")
				return nil
			}
			for _, name := range names {
				fmt.Printf("  %s\n", name)
			}
			return nil
		},
	}
}

// ---------------------------------------------------------------------------
// visualize command
// ---------------------------------------------------------------------------

func visualizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "visualize",
		Aliases: []string{"map"},
		Short:   "Render the document embedding map",
		Long:    "Fetch the 2D embedding projection and draw it as a terminal scatter plot.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := applyFlags(cmd, cfg); err != nil {
				return err
			}
			client := api.NewClient(cfg.ServerURL, cfg.Timeout)

			ctx, cancel := signalContext()
			defer cancel()

			points, err := client.Visualize(ctx)
			if err != nil {
				return err
			}
			if len(points) == 0 {
				fmt.Println("Nothing to plot. Upload a document first.")
				return nil
			}

			width, height := 80, 24
			if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
				width, height = w, h
			}
			plot := components.NewScatterPlot(width-2, height-6)
			fmt.Println(plot.Render(points))
			return nil
		},
	}
}

// ---------------------------------------------------------------------------
// models command
// ---------------------------------------------------------------------------

func modelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List supported models",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, _ := config.Load()
			active := chat.DefaultModel
			if cfg != nil && cfg.Model != "" {
				active = cfg.Model
			}
			for _, id := range chat.SupportedModels() {
				marker := " "
				if id == active {
					marker = "*"
				}
				fmt.Printf("  %s %s\n", marker, id)
			}
		},
	}
}

// ---------------------------------------------------------------------------
// config command
// ---------------------------------------------------------------------------

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or update configuration",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show current configuration",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				data, _ := json.MarshalIndent(map[string]interface{}{
					"server_url": cfg.ServerURL,
					"model":      cfg.Model,
					"theme":      cfg.Theme,
					"timeout":    cfg.Timeout.String(),
					"config_dir": config.GetConfigDir(),
				}, "", "  ")
				fmt.Println(string(data))
				return nil
			},
		},
		&cobra.Command{
			Use:   "set [key] [value]",
			Short: "Set a configuration value",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				switch args[0] {
				case "server", "server_url":
					cfg.ServerURL = args[1]
				case "model":
					if !chat.IsSupportedModel(args[1]) {
						return fmt.Errorf("unsupported model %q (supported: %s)", args[1], strings.Join(chat.SupportedModels(), ", "))
					}
					cfg.Model = args[1]
				case "theme":
					cfg.Theme = args[1]
				case "timeout":
					d, err := time.ParseDuration(args[1])
					if err != nil {
						return fmt.Errorf("invalid timeout: %w", err)
					}
					cfg.Timeout = d
				default:
					return fmt.Errorf("unknown config key: %s\nSupported keys: server_url, model, theme, timeout", args[0])
				}
				return cfg.SaveConfig(filepath.Join(config.GetConfigDir(), "ragchat.json"))
			},
		},
	)

	// Default to show
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return cmd.Commands()[0].RunE(cmd, args)
	}

	return cmd
}

// ---------------------------------------------------------------------------
// completion / version
// ---------------------------------------------------------------------------

func completionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rootCmd := cmd.Root()
			switch args[0] {
			case "bash":
				return rootCmd.GenBashCompletion(os.Stdout)
			case "zsh":
				return rootCmd.GenZshCompletion(os.Stdout)
			case "fish":
				return rootCmd.GenFishCompletion(os.Stdout, true)
			case "powershell":
				return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
			default:
				return fmt.Errorf("unsupported shell: %s (supported: bash, zsh, fish, powershell)", args[0])
			}
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("ragchat version %s (%s)\n", version, commit)
			fmt.Printf("go version %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}
