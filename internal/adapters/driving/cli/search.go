package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docmcp/internal/core/domain"
)

var (
	searchVersion   string
	searchLimit     int
	searchJSON      bool
	searchSemantic  bool
	searchThreshold float64
)

var searchCmd = &cobra.Command{
	Use:   "search [library] [query]",
	Short: "Search synced documentation",
	Long: `Search the documentation of a library version. The default is keyword
search over whole documents; --semantic switches to vector search over
chunks and requires a configured embedding provider.`,
	Args: cobra.ExactArgs(2),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchVersion, "version", "", "library version (default latest)")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output as JSON")
	searchCmd.Flags().BoolVar(&searchSemantic, "semantic", false, "semantic search over chunks")
	searchCmd.Flags().Float64Var(&searchThreshold, "threshold", 0, "minimum similarity score (semantic only)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	library, query := args[0], args[1]

	var (
		results []domain.SearchResult
		err     error
	)
	if searchSemantic {
		results, err = searchService.Semantic(cmd.Context(), library, searchVersion, query, searchLimit, searchThreshold)
	} else {
		results, err = searchService.FullText(cmd.Context(), library, searchVersion, query, searchLimit)
	}
	if err != nil {
		if errors.Is(err, domain.ErrEmbeddingUnavailable) {
			return errors.New("semantic search requires an embedding provider, set embedding.provider in the config")
		}
		return err
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	return outputSearchText(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchText(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	for i, r := range results {
		cmd.Printf("%d. %s (%.2f)\n", i+1, r.Title, r.Score)
		cmd.Printf("   %s", r.Path)
		if r.ChunkIndex >= 0 {
			cmd.Printf("#chunk-%d", r.ChunkIndex)
		}
		cmd.Println()
		if r.Snippet != "" {
			cmd.Printf("   %s\n", r.Snippet)
		}
		cmd.Println()
	}
	cmd.Printf("%d result(s)\n", len(results))
	return nil
}
