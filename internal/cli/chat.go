package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ppiankov/wikichat/internal/cache"
	"github.com/ppiankov/wikichat/internal/chat"
	"github.com/ppiankov/wikichat/internal/kb"
	"github.com/ppiankov/wikichat/internal/llm"
	"github.com/ppiankov/wikichat/internal/model"
	"github.com/ppiankov/wikichat/internal/nlp"
	"github.com/ppiankov/wikichat/internal/rank"
	"github.com/spf13/cobra"
)

var (
	useLargeModel bool
	useWikidata   bool
	llmProvider   string
	llmModel      string
	httpTimeout   time.Duration
	userAgent     string
	noCache       bool
	cacheDir      string
	stopwordsFile string
	extractorName string
	topSentences  int
	language      string
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive knowledge-grounded chat session",
	Long: `Chat reads queries line by line and replies through the configured
language model.

With --wikidata, each query is augmented with knowledge: named entities
are extracted, looked up in Wikidata and Wikipedia, and the summary
sentences most similar to the query are handed to the model as context.

Example:
  wikichat chat
  wikichat chat --wikidata --verbose
  wikichat chat --wikidata --large --provider anthropic`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().BoolVar(&useWikidata, "wikidata", false, "augment replies with Wikidata/Wikipedia knowledge")
	addSessionFlags(chatCmd)
}

// addSessionFlags registers the flags shared by session-building commands
func addSessionFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&useLargeModel, "large", false, "use the provider's large model")

	// LLM flags
	cmd.Flags().StringVar(&llmProvider, "provider", "openai", "LLM provider (openai, anthropic, ollama)")
	cmd.Flags().StringVar(&llmModel, "model", "", "LLM model name (default: provider default)")

	// HTTP flags
	cmd.Flags().DurationVar(&httpTimeout, "timeout", 15*time.Second, "knowledge-base request timeout")
	cmd.Flags().StringVar(&userAgent, "ua", "Wikichat/0.1 (+https://github.com/ppiankov/wikichat)", "HTTP User-Agent")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetches)")
	cmd.Flags().StringVar(&cacheDir, "cache-dir", "", "disk cache directory (default: memory only)")

	// Knowledge flags
	cmd.Flags().StringVar(&stopwordsFile, "stopwords", "", "stopword list file (default: built-in)")
	cmd.Flags().StringVar(&extractorName, "extractor", "heuristic", "entity extractor (heuristic, llm)")
	cmd.Flags().IntVar(&topSentences, "top-sentences", 10, "ranked sentences kept per entity")
	cmd.Flags().StringVar(&language, "language", "en", "Wikidata/Wikipedia language code")
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg := configFromFlags()

	session, err := buildSession(cfg)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Provider: %s\n", cfg.LLM.Provider)
		if cfg.LLM.Model != "" {
			fmt.Fprintf(os.Stderr, "Model: %s\n", cfg.LLM.Model)
		}
		fmt.Fprintf(os.Stderr, "Knowledge: %v\n", useWikidata)
		fmt.Fprintln(os.Stderr)
	}

	return session.Run(context.Background(), os.Stdin)
}

// configFromFlags builds the configuration from defaults plus CLI flags
func configFromFlags() *model.Config {
	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = httpTimeout
	cfg.HTTP.UserAgent = userAgent
	cfg.Cache.Enabled = !noCache
	cfg.Cache.Dir = cacheDir
	cfg.Knowledge.Language = language
	cfg.Knowledge.TopSentences = topSentences
	cfg.Knowledge.Extractor = extractorName
	cfg.Knowledge.StopwordsFile = stopwordsFile
	cfg.LLM.Provider = llmProvider
	cfg.LLM.Model = llmModel
	if useLargeModel {
		cfg.LLM.Model = cfg.LLM.LargeModel
		if cfg.LLM.Model == "" {
			cfg.LLM.Model = llm.LargeModelFor(cfg.LLM.Provider)
		}
	}
	return cfg
}

// resolveCredentials pulls provider credentials from the environment
func resolveCredentials(cfg *model.Config) error {
	switch cfg.LLM.Provider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}

	// Sentence ranking always embeds through OpenAI
	cfg.Embedding.APIKey = os.Getenv("OPENAI_API_KEY")
	return nil
}

// buildStore creates the response cache configured by flags
func buildStore(cfg *model.Config) cache.Cache {
	if !cfg.Cache.Enabled {
		return nil
	}
	if cfg.Cache.Dir != "" {
		return cache.NewLayeredCache(cfg.Cache.TTL, cfg.Cache.Dir, 24*time.Hour)
	}
	return cache.NewMemoryCache(cfg.Cache.TTL, 10*time.Minute)
}

// buildSession wires the session collaborators from configuration
func buildSession(cfg *model.Config) (*chat.Session, error) {
	if err := resolveCredentials(cfg); err != nil {
		return nil, err
	}

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, fmt.Errorf("create provider: %w", err)
	}

	deps := chat.Deps{Provider: provider}
	if useWikidata {
		if cfg.Embedding.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set (required for sentence ranking)")
		}

		client := kb.NewClient(cfg, buildStore(cfg))

		embedder, err := rank.NewOpenAIEmbedder(cfg.Embedding)
		if err != nil {
			return nil, fmt.Errorf("create embedder: %w", err)
		}

		extractor, err := buildExtractor(cfg, provider)
		if err != nil {
			return nil, err
		}

		deps.KB = client
		deps.Ranker = rank.NewRanker(embedder)
		deps.Extractor = extractor
	}

	return chat.NewSession(cfg, deps, verbose, os.Stdout, os.Stderr), nil
}

// buildExtractor creates the entity extractor configured by flags
func buildExtractor(cfg *model.Config, provider llm.Provider) (nlp.Extractor, error) {
	switch cfg.Knowledge.Extractor {
	case "", "heuristic":
		stopwords, err := nlp.LoadStopwords(cfg.Knowledge.StopwordsFile)
		if err != nil {
			return nil, fmt.Errorf("load stopwords: %w", err)
		}
		return nlp.NewHeuristicExtractor(stopwords), nil
	case "llm":
		generate := func(ctx context.Context, prompt string) (string, error) {
			resp, err := provider.Generate(ctx, llm.GenerateRequest{
				Prompt:    prompt,
				MaxTokens: cfg.LLM.MaxTokens,
				TopP:      cfg.LLM.TopP,
			})
			if err != nil {
				return "", err
			}
			return resp.Reply, nil
		}
		return nlp.NewLLMExtractor(generate), nil
	default:
		return nil, fmt.Errorf("unknown extractor: %s (supported: heuristic, llm)", cfg.Knowledge.Extractor)
	}
}
