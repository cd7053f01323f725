package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	storefile "github.com/BASILR00T/kawnhub-sub000/internal/adapters/driven/storage/file"
	"github.com/BASILR00T/kawnhub-sub000/internal/core/domain"
	"github.com/BASILR00T/kawnhub-sub000/internal/normalisers/markdown"
)

var (
	topicsJSON     bool
	importMaterial string
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Manage topics",
	Long:  `List, show, import and delete the topics KawnHub searches.`,
}

var topicsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all topics",
	Args:  cobra.NoArgs,
	RunE:  runTopicsList,
}

var topicsShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a topic and its content blocks",
	Args:  cobra.ExactArgs(1),
	RunE:  runTopicsShow,
}

var topicsImportCmd = &cobra.Command{
	Use:   "import [file...]",
	Short: "Import topics from YAML, JSON or Markdown files",
	Long: `Import topics from YAML (.yaml, .yml), JSON (.json) or Markdown (.md) files.

YAML files use the topics file layout:

  topics:
    - id: t1
      title: Intro to Routing
      materialSlug: networking
      content:
        - type: paragraph
          data:
            primaryText: Static routes are manual.

JSON files hold either an array of topics or an object with a "topics" array.

A Markdown file becomes one topic of the --material material. Its first H1 is
the title and its id is the file name, so re-importing a note replaces it.

Topics without an id get a new one. Existing ids are replaced.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTopicsImport,
}

var topicsDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a topic",
	Args:  cobra.ExactArgs(1),
	RunE:  runTopicsDelete,
}

func init() {
	topicsListCmd.Flags().BoolVar(&topicsJSON, "json", false, "output as JSON")
	topicsShowCmd.Flags().BoolVar(&topicsJSON, "json", false, "output as JSON")
	topicsImportCmd.Flags().StringVarP(&importMaterial, "material", "m", "", "material slug for Markdown files")
	topicsCmd.AddCommand(topicsListCmd)
	topicsCmd.AddCommand(topicsShowCmd)
	topicsCmd.AddCommand(topicsImportCmd)
	topicsCmd.AddCommand(topicsDeleteCmd)
	rootCmd.AddCommand(topicsCmd)
}

func requireTopicService() error {
	if topicService == nil {
		return errors.New("topic service not configured")
	}
	return nil
}

func runTopicsList(cmd *cobra.Command, _ []string) error {
	if err := requireTopicService(); err != nil {
		return err
	}

	topics, err := topicService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list topics: %w", err)
	}

	if topicsJSON {
		return printJSON(cmd, topics)
	}

	if len(topics) == 0 {
		cmd.Println("No topics. Import some with: kawnhub topics import <file>")
		return nil
	}

	cmd.Printf("Topics (%d):\n\n", len(topics))
	for i := range topics {
		t := &topics[i]
		cmd.Printf("  %s  %s  (%s, %d blocks)\n", t.ID, t.Title, t.MaterialSlug, t.BlockCount())
	}
	return nil
}

func runTopicsShow(cmd *cobra.Command, args []string) error {
	if err := requireTopicService(); err != nil {
		return err
	}

	topic, err := topicService.Get(cmd.Context(), args[0])
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("topic %q not found", args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to get topic: %w", err)
	}

	if topicsJSON {
		return printJSON(cmd, topic)
	}

	cmd.Println(topic.Title)
	cmd.Println(strings.Repeat("=", len([]rune(topic.Title))))
	cmd.Printf("ID:       %s\n", topic.ID)
	cmd.Printf("Material: %s\n", topic.MaterialSlug)
	cmd.Printf("Path:     %s\n", domain.NavigationTarget{
		MaterialSlug: topic.MaterialSlug,
		TopicID:      topic.ID,
		BlockIndex:   domain.NoBlock,
	}.Path())
	cmd.Println()

	for i, block := range topic.Content {
		text := block.SearchText()
		if _, bad := block.Data.(domain.MalformedPayload); bad {
			text = "(unreadable block)"
		}
		cmd.Printf("  [%d] %-10s %s\n", i, block.Type, text)
	}
	return nil
}

func runTopicsImport(cmd *cobra.Command, args []string) error {
	if err := requireTopicService(); err != nil {
		return err
	}

	var topics []domain.Topic
	for _, path := range args {
		read, err := readTopicsFile(cmd.Context(), path)
		if err != nil {
			return err
		}
		topics = append(topics, read...)
	}

	saved, err := topicService.Import(cmd.Context(), topics)
	cmd.Printf("Imported %d of %d topics.\n", saved, len(topics))
	if err != nil {
		return fmt.Errorf("import incomplete: %w", err)
	}
	return nil
}

func runTopicsDelete(cmd *cobra.Command, args []string) error {
	if err := requireTopicService(); err != nil {
		return err
	}

	err := topicService.Delete(cmd.Context(), args[0])
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("topic %q not found", args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to delete topic: %w", err)
	}

	cmd.Printf("Deleted topic %s.\n", args[0])
	return nil
}

// readTopicsFile decodes topics from a YAML, JSON or Markdown file, chosen by extension.
func readTopicsFile(ctx context.Context, path string) ([]domain.Topic, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		store, err := storefile.NewTopicStore(path)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return store.List(ctx)

	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		return decodeTopicsJSON(data)

	case ".md", ".markdown":
		if importMaterial == "" {
			return nil, fmt.Errorf("%w: --material is required for Markdown file %s", domain.ErrInvalidInput, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		topic, err := markdown.New().Normalise(path, data, importMaterial)
		if err != nil {
			return nil, fmt.Errorf("converting %s: %w", path, err)
		}
		return []domain.Topic{*topic}, nil

	default:
		return nil, fmt.Errorf("%w: %s (want .yaml, .yml, .json or .md)", domain.ErrUnsupportedType, filepath.Ext(path))
	}
}

// decodeTopicsJSON accepts a bare array or an object with a topics array.
func decodeTopicsJSON(data []byte) ([]domain.Topic, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var topics []domain.Topic
		if err := json.Unmarshal(trimmed, &topics); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		return topics, nil
	}

	var doc struct {
		Topics []domain.Topic `json:"topics"`
	}
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return doc.Topics, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
