package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/metaforge-io/metaforge/pkg/logger"
	"github.com/metaforge-io/metaforge/pkg/parser"
	"github.com/metaforge-io/metaforge/pkg/stringutil"
)

var completionsLog = logger.New("cli:completions")

// getDocumentDescription extracts the description field from a markdown
// document's frontmatter. Returns empty string if the description is not
// found or if there's an error reading the file.
func getDocumentDescription(filePath string) string {
	cleanPath := filepath.Clean(filePath)

	content, err := os.ReadFile(cleanPath)
	if err != nil {
		completionsLog.Printf("Failed to read document %s: %v", cleanPath, err)
		return ""
	}

	doc, err := parser.ExtractFrontmatter(string(content))
	if err != nil {
		completionsLog.Printf("Failed to parse frontmatter from %s: %v", filePath, err)
		return ""
	}

	desc := doc.StringField("description")
	if desc == "" {
		desc = doc.StringField("title")
	}
	return stringutil.Truncate(desc, 60)
}

// CompleteMarkdownDocuments provides shell completion for markdown command
// documents in the current directory, with tab-separated descriptions for
// Cobra's CompletionWithDesc support.
func CompleteMarkdownDocuments(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	completionsLog.Printf("Completing markdown documents with prefix: %s", toComplete)

	dir := filepath.Dir(toComplete)
	if dir == "" {
		dir = "."
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, cobra.ShellCompDirectiveDefault
	}

	var docs []string
	for _, entry := range entries {
		if entry.IsDir() || !stringutil.IsMarkdownFile(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if toComplete != "" && !strings.HasPrefix(path, toComplete) {
			continue
		}
		if desc := getDocumentDescription(path); desc != "" {
			docs = append(docs, path+"\t"+desc)
		} else {
			docs = append(docs, path)
		}
	}

	completionsLog.Printf("Found %d matching documents", len(docs))
	return docs, cobra.ShellCompDirectiveNoFileComp
}

// CompleteTermStatuses provides shell completion for term lifecycle statuses.
func CompleteTermStatuses(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	statuses := []string{"DRAFT", "ACTIVE", "DEPRECATED", "OBSOLETE"}

	var filtered []string
	for _, status := range statuses {
		if toComplete == "" || strings.HasPrefix(status, strings.ToUpper(toComplete)) {
			filtered = append(filtered, status)
		}
	}
	return filtered, cobra.ShellCompDirectiveNoFileComp
}

// CompleteDirectories provides shell completion for directory paths.
func CompleteDirectories(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return nil, cobra.ShellCompDirectiveFilterDirs
}
