package cli

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"
)

var (
	docsVersion          string
	docsListJSON         bool
	docsExamplesLanguage string
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Browse synced documents",
}

var docsListCmd = &cobra.Command{
	Use:   "list [library]",
	Short: "List documents of a library version",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocsList,
}

var docsGetCmd = &cobra.Command{
	Use:   "get [library] [path]",
	Short: "Print a document's content",
	Args:  cobra.ExactArgs(2),
	RunE:  runDocsGet,
}

var docsExamplesCmd = &cobra.Command{
	Use:   "examples [library] [path]",
	Short: "List code examples extracted from a document",
	Args:  cobra.ExactArgs(2),
	RunE:  runDocsExamples,
}

func init() {
	docsCmd.PersistentFlags().StringVar(&docsVersion, "version", "", "library version (default latest)")
	docsListCmd.Flags().BoolVar(&docsListJSON, "json", false, "output as JSON")
	docsExamplesCmd.Flags().StringVar(&docsExamplesLanguage, "language", "", "filter by language")

	docsCmd.AddCommand(docsListCmd)
	docsCmd.AddCommand(docsGetCmd)
	docsCmd.AddCommand(docsExamplesCmd)
	rootCmd.AddCommand(docsCmd)
}

func runDocsList(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docs, err := documentService.List(cmd.Context(), args[0], docsVersion)
	if err != nil {
		return err
	}

	if docsListJSON {
		data, err := json.MarshalIndent(docs, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(data))
		return nil
	}

	if len(docs) == 0 {
		cmd.Println("No documents synced.")
		return nil
	}

	for _, doc := range docs {
		cmd.Printf("%s  %s\n", doc.Path, doc.Title)
	}
	return nil
}

func runDocsGet(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	doc, err := documentService.GetContent(cmd.Context(), args[0], docsVersion, args[1])
	if err != nil {
		return err
	}

	cmd.Println(doc.Content)
	return nil
}

func runDocsExamples(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	examples, err := documentService.CodeExamples(cmd.Context(), args[0], docsVersion, args[1], docsExamplesLanguage)
	if err != nil {
		return err
	}

	if len(examples) == 0 {
		cmd.Println("No code examples found.")
		return nil
	}

	for i, ex := range examples {
		cmd.Printf("--- example %d (%s) ---\n", i+1, ex.Language)
		if ex.Description != "" {
			cmd.Printf("%s\n", ex.Description)
		}
		cmd.Println(ex.Code)
	}
	return nil
}
