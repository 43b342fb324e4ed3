// Package cli implements the docmcp command line interface.
package cli

import (
	"fmt"
	"os"

	gh "github.com/google/go-github/v80/github"
	"github.com/spf13/cobra"

	configfile "github.com/custodia-labs/docmcp/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docmcp/internal/adapters/driven/embedding/ollama"
	"github.com/custodia-labs/docmcp/internal/adapters/driven/embedding/openai"
	"github.com/custodia-labs/docmcp/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/docmcp/internal/core/ports/driven"
	"github.com/custodia-labs/docmcp/internal/core/ports/driving"
	"github.com/custodia-labs/docmcp/internal/core/services"
	"github.com/custodia-labs/docmcp/internal/fetchers/github"
	"github.com/custodia-labs/docmcp/internal/fetchers/local"
	"github.com/custodia-labs/docmcp/internal/logger"
	"github.com/custodia-labs/docmcp/internal/parsers"
	"github.com/custodia-labs/docmcp/internal/postprocessors/chunker"
)

// version is the CLI version, overridable at build time.
var version = "0.1.0"

// Persistent flags.
var (
	flagVerbose   bool
	flagConfigDir string
	flagDataDir   string
)

// Wired services, populated by initServices before commands run.
// Commands guard against nil services so unit tests can inject mocks.
var (
	configStore      driven.ConfigStore
	store            *sqlite.Store
	embeddingService driven.EmbeddingService
	libraryService   driving.LibraryService
	syncOrchestrator driving.SyncOrchestrator
	searchService    driving.SearchService
	documentService  driving.DocumentService
)

var rootCmd = &cobra.Command{
	Use:   "docmcp",
	Short: "Versioned library documentation for AI assistants",
	Long: `docmcp syncs documentation of software libraries from GitHub or local
directories, indexes it per version, and serves it to AI assistants over
the Model Context Protocol. Keyword and semantic search are available
from the command line as well.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(flagVerbose)
		return initServices(cmd)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "verbose logging to stderr")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "config directory (default ~/.docmcp)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default ~/.docmcp/data)")
}

// Execute runs the root command.
func Execute() error {
	defer closeServices()
	return rootCmd.Execute()
}

// initServices wires adapters and core services. Tests pre-populate the
// service variables; wiring is skipped when that happened.
func initServices(_ *cobra.Command) error {
	if libraryService != nil {
		return nil
	}

	var err error
	configStore, err = configfile.NewConfigStore(flagConfigDir)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	store, err = sqlite.NewStore(flagDataDir)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	embeddingService, err = newEmbeddingService(configStore)
	if err != nil {
		return fmt.Errorf("configuring embeddings: %w", err)
	}
	if embeddingService == nil {
		logger.Debug("no embedding provider configured, semantic search disabled")
	}

	libraryService = services.NewLibraryService(store.LibraryStore(), store.VersionStore())
	syncOrchestrator = services.NewSyncOrchestrator(
		libraryService,
		newFetchChain(configStore),
		local.NewSource(),
		parsers.Default(),
		newChunker(configStore),
		embeddingService,
		store.DocumentStore(),
		store.SyncHistoryStore(),
	)
	searchService = services.NewSearchService(
		libraryService,
		store.LexicalIndex(),
		store.VectorIndex(),
		embeddingService,
	)
	documentService = services.NewDocumentService(libraryService, store.DocumentStore())

	return nil
}

// closeServices releases wired resources after command execution.
func closeServices() {
	if embeddingService != nil {
		embeddingService.Close() //nolint:errcheck
	}
	if store != nil {
		store.Close() //nolint:errcheck
	}
}

// newFetchChain builds the GitHub fetch strategy chain.
// A token from config or GITHUB_TOKEN raises the API quota; anonymous
// access still works for public repositories.
func newFetchChain(cfg driven.ConfigStore) driven.ContentFetcher {
	client := gh.NewClient(nil)

	token := cfg.GetString("github.token")
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}
	if token != "" {
		client = client.WithAuthToken(token)
	}

	return github.NewChain(
		github.NewArchiveStrategy(nil),
		github.NewContentsStrategy(client),
	)
}

// newChunker builds the chunker with configured sizes.
func newChunker(cfg driven.ConfigStore) driven.DocumentChunker {
	var opts []chunker.Option
	if size := cfg.GetInt("chunking.size"); size > 0 {
		opts = append(opts, chunker.WithChunkSize(size))
	}
	if overlap := cfg.GetInt("chunking.overlap"); overlap > 0 {
		opts = append(opts, chunker.WithOverlap(overlap))
	}
	return chunker.New(opts...)
}

// newEmbeddingService builds the configured embedding provider.
// Returns nil when no provider is configured; sync then stores chunks
// without vectors and semantic search reports itself unavailable.
func newEmbeddingService(cfg driven.ConfigStore) (driven.EmbeddingService, error) {
	provider := cfg.GetString("embedding.provider")
	switch provider {
	case "":
		return nil, nil
	case "openai":
		apiKey := cfg.GetString("embedding.api_key")
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
		return openai.NewEmbeddingService(openai.Config{
			APIKey:     apiKey,
			BaseURL:    cfg.GetString("embedding.base_url"),
			Model:      cfg.GetString("embedding.model"),
			Dimensions: cfg.GetInt("embedding.dimensions"),
		})
	case "ollama":
		return ollama.NewEmbeddingService(ollama.Config{
			BaseURL:    cfg.GetString("embedding.base_url"),
			Model:      cfg.GetString("embedding.model"),
			Dimensions: cfg.GetInt("embedding.dimensions"),
		}), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", provider)
	}
}
