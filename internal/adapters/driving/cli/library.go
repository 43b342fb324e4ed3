package cli

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docmcp/internal/core/domain"
)

var (
	libraryAddDisplayName string
	libraryAddDescription string
	libraryAddCategory    string
	libraryAddTags        []string
	libraryListCategory   string
	libraryListJSON       bool
	versionAddLatest      bool
	versionAddDocsPath    string
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage the library registry",
}

var libraryAddCmd = &cobra.Command{
	Use:   "add [name] [source-url]",
	Short: "Register a new library",
	Long: `Register a new library with a documentation source. The source URL is
typically a GitHub repository, e.g. https://github.com/facebook/react.`,
	Args: cobra.ExactArgs(2),
	RunE: runLibraryAdd,
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered libraries",
	Args:  cobra.NoArgs,
	RunE:  runLibraryList,
}

var libraryVersionsCmd = &cobra.Command{
	Use:   "versions [name]",
	Short: "List versions of a library, newest first",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibraryVersions,
}

var libraryAddVersionCmd = &cobra.Command{
	Use:   "add-version [name] [version]",
	Short: "Register a new version of a library",
	Args:  cobra.ExactArgs(2),
	RunE:  runLibraryAddVersion,
}

func init() {
	libraryAddCmd.Flags().StringVar(&libraryAddDisplayName, "display-name", "", "human-readable name")
	libraryAddCmd.Flags().StringVar(&libraryAddDescription, "description", "", "short description")
	libraryAddCmd.Flags().StringVar(&libraryAddCategory, "category", "", "category (e.g. frontend)")
	libraryAddCmd.Flags().StringSliceVar(&libraryAddTags, "tag", nil, "tag (repeatable)")
	libraryListCmd.Flags().StringVar(&libraryListCategory, "category", "", "filter by category")
	libraryListCmd.Flags().BoolVar(&libraryListJSON, "json", false, "output as JSON")
	libraryAddVersionCmd.Flags().BoolVar(&versionAddLatest, "latest", false, "mark as the latest version")
	libraryAddVersionCmd.Flags().StringVar(&versionAddDocsPath, "docs-path", "", "docs directory within the source (default docs)")

	libraryCmd.AddCommand(libraryAddCmd)
	libraryCmd.AddCommand(libraryListCmd)
	libraryCmd.AddCommand(libraryVersionsCmd)
	libraryCmd.AddCommand(libraryAddVersionCmd)
	rootCmd.AddCommand(libraryCmd)
}

func runLibraryAdd(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	lib, err := libraryService.CreateLibrary(cmd.Context(), domain.Library{
		Name:        args[0],
		DisplayName: libraryAddDisplayName,
		Description: libraryAddDescription,
		SourceType:  domain.SourceGitHub,
		SourceURL:   args[1],
		Category:    libraryAddCategory,
		Tags:        libraryAddTags,
	})
	if err != nil {
		return err
	}

	cmd.Printf("Registered library %s (%s)\n", lib.Name, lib.ID)
	return nil
}

func runLibraryList(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	libs, err := libraryService.List(cmd.Context(), libraryListCategory)
	if err != nil {
		return err
	}

	if libraryListJSON {
		data, err := json.MarshalIndent(libs, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(data))
		return nil
	}

	if len(libs) == 0 {
		cmd.Println("No libraries registered.")
		return nil
	}

	for _, lib := range libs {
		line := lib.Name
		if lib.DisplayName != "" && lib.DisplayName != lib.Name {
			line += " (" + lib.DisplayName + ")"
		}
		if lib.Category != "" {
			line += "  [" + lib.Category + "]"
		}
		if len(lib.Tags) > 0 {
			line += "  " + strings.Join(lib.Tags, ", ")
		}
		cmd.Println(line)
	}
	return nil
}

func runLibraryVersions(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	versions, err := libraryService.Versions(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if len(versions) == 0 {
		cmd.Println("No versions registered.")
		return nil
	}

	for _, v := range versions {
		line := v.Version
		if v.IsLatest {
			line += "  (latest)"
		}
		if v.Status != domain.VersionActive {
			line += "  " + string(v.Status)
		}
		cmd.Println(line)
	}
	return nil
}

func runLibraryAddVersion(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	v, err := libraryService.CreateVersion(cmd.Context(), args[0], domain.LibraryVersion{
		Version:  args[1],
		IsLatest: versionAddLatest,
		DocsPath: versionAddDocsPath,
	})
	if err != nil {
		return err
	}

	cmd.Printf("Registered version %s of %s\n", v.Version, args[0])
	return nil
}
