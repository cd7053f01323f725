package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BASILR00T/kawnhub-sub000/internal/core/domain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestTopicsCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0)
	for _, c := range topicsCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"list", "show", "import", "delete"}, names)
}

func TestTopicsList(t *testing.T) {
	setupTestServices(t, routingTopics()...)

	out, err := execute(t, "topics", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "Topics (2):")
	assert.Contains(t, out, "t1  Intro to Routing  (networking, 2 blocks)")
	assert.Contains(t, out, "t2  VLAN Basics  (networking, 1 blocks)")
}

func TestTopicsList_Empty(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "topics", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "No topics.")
}

func TestTopicsList_JSON(t *testing.T) {
	setupTestServices(t, routingTopics()...)

	out, err := execute(t, "topics", "list", "--json")

	require.NoError(t, err)
	assert.Contains(t, out, `"id": "t1"`)
	assert.Contains(t, out, `"primaryText": "Static routes are manual."`)
}

func TestTopicsShow(t *testing.T) {
	setupTestServices(t, routingTopics()...)

	out, err := execute(t, "topics", "show", "t1")

	require.NoError(t, err)
	assert.Contains(t, out, "Intro to Routing\n================\n")
	assert.Contains(t, out, "Material: networking")
	assert.Contains(t, out, "Path:     /materials/networking/t1\n")
	assert.Contains(t, out, "[0] heading    Overview")
	assert.Contains(t, out, "[1] paragraph  Static routes are manual.")
}

func TestTopicsShow_NotFound(t *testing.T) {
	setupTestServices(t, routingTopics()...)

	_, err := execute(t, "topics", "show", "missing")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `topic "missing" not found`)
}

func TestTopicsShow_RequiresID(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "topics", "show")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestTopicsImport_YAML(t *testing.T) {
	ts := setupTestServices(t)
	path := writeFile(t, "topics.yaml", `topics:
  - id: ospf
    title: OSPF Areas
    materialSlug: networking
    content:
      - type: paragraph
        data:
          primaryText: Area zero is the backbone.
      - type: list
        data:
          - primaryText: Stub area
          - primaryText: Totally stubby area
`)

	out, err := execute(t, "topics", "import", path)

	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 of 1 topics.")

	got, err := ts.store.Get(context.Background(), "ospf")
	require.NoError(t, err)
	require.Len(t, got.Content, 2)
	assert.Equal(t, domain.BilingualPayload{Primary: "Area zero is the backbone."}, got.Content[0].Data)
	assert.Equal(t, domain.ListPayload{Items: []domain.BilingualText{
		{Primary: "Stub area"}, {Primary: "Totally stubby area"},
	}}, got.Content[1].Data)
}

func TestTopicsImport_InvalidatesCorpus(t *testing.T) {
	setupTestServices(t, routingTopics()...)

	out, err := execute(t, "search", "backbone")
	require.NoError(t, err)
	require.Contains(t, out, "No matches")

	path := writeFile(t, "topics.json", `[{"id":"ospf","title":"OSPF Areas","materialSlug":"networking",
		"content":[{"type":"paragraph","data":{"primaryText":"Area zero is the backbone."}}]}]`)
	_, err = execute(t, "topics", "import", path)
	require.NoError(t, err)

	out, err = execute(t, "search", "backbone")
	require.NoError(t, err)
	assert.Contains(t, out, "OSPF Areas")
	assert.Contains(t, out, "/materials/networking/ospf#block-0")
}

func TestTopicsImport_JSONObject(t *testing.T) {
	ts := setupTestServices(t)
	path := writeFile(t, "topics.JSON", `{"topics":[{"title":"No ID yet","materialSlug":"networking"}]}`)

	out, err := execute(t, "topics", "import", path)

	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 of 1 topics.")
	topics, err := ts.store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, topics, 1)
	assert.NotEmpty(t, topics[0].ID)
}

func TestTopicsImport_Markdown(t *testing.T) {
	ts := setupTestServices(t)
	path := writeFile(t, "ospf_basics.md", "# OSPF Basics\n\nLink-state routing floods **LSAs**.\n\n- Area 0 is the backbone\n")

	out, err := execute(t, "topics", "import", "--material", "networking", path)

	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 of 1 topics.")
	topic, err := ts.store.Get(context.Background(), "ospf-basics")
	require.NoError(t, err)
	assert.Equal(t, "OSPF Basics", topic.Title)
	assert.Equal(t, "networking", topic.MaterialSlug)
	require.Len(t, topic.Content, 2)
	assert.Equal(t, "Link-state routing floods LSAs.", topic.Content[0].SearchText())
	assert.Equal(t, domain.BlockList, topic.Content[1].Type)
}

func TestTopicsImport_MarkdownNeedsMaterial(t *testing.T) {
	ts := setupTestServices(t)
	path := writeFile(t, "notes.md", "# Notes\n\nText.\n")

	_, err := execute(t, "topics", "import", path)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "--material")
	topics, err := ts.store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, topics)
}

func TestTopicsImport_MultipleFiles(t *testing.T) {
	ts := setupTestServices(t)
	jsonPath := writeFile(t, "topics.json", `[{"id":"vlan","title":"VLAN Basics","materialSlug":"networking"}]`)
	mdPath := writeFile(t, "stp.md", "# Spanning Tree\n\nBlocks loops.\n")

	out, err := execute(t, "topics", "import", "-m", "networking", jsonPath, mdPath)

	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 of 2 topics.")
	topics, err := ts.store.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, topics, 2)
}

func TestTopicsImport_PartialFailure(t *testing.T) {
	ts := setupTestServices(t)
	path := writeFile(t, "topics.json", `[
		{"id":"ok","title":"Valid","materialSlug":"networking"},
		{"id":"bad","title":"","materialSlug":"networking"}
	]`)

	out, err := execute(t, "topics", "import", path)

	require.Error(t, err)
	assert.Contains(t, out, "Imported 1 of 2 topics.")
	assert.Contains(t, err.Error(), "import incomplete")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = ts.store.Get(context.Background(), "ok")
	assert.NoError(t, err)
	_, err = ts.store.Get(context.Background(), "bad")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTopicsImport_Errors(t *testing.T) {
	setupTestServices(t)

	t.Run("unsupported extension", func(t *testing.T) {
		path := writeFile(t, "topics.csv", "id,title\n")
		_, err := execute(t, "topics", "import", path)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrUnsupportedType)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := execute(t, "topics", "import", filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed json", func(t *testing.T) {
		path := writeFile(t, "topics.json", `[{"title":`)
		_, err := execute(t, "topics", "import", path)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestTopicsDelete(t *testing.T) {
	ts := setupTestServices(t, routingTopics()...)

	out, err := execute(t, "topics", "delete", "t1")

	require.NoError(t, err)
	assert.Contains(t, out, "Deleted topic t1.")
	_, err = ts.store.Get(context.Background(), "t1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = execute(t, "topics", "delete", "t1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `topic "t1" not found`)
}

func TestTopics_ServiceNotConfigured(t *testing.T) {
	clearServices(t)

	for _, args := range [][]string{
		{"topics", "list"},
		{"topics", "show", "t1"},
		{"topics", "import", "x.yaml"},
		{"topics", "delete", "t1"},
	} {
		_, err := execute(t, args...)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "topic service not configured")
	}
}

func TestDecodeTopicsJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "array", input: `[{"id":"a"},{"id":"b"}]`, want: 2},
		{name: "object", input: `{"topics":[{"id":"a"}]}`, want: 1},
		{name: "leading whitespace", input: "\n  [{\"id\":\"a\"}]", want: 1},
		{name: "empty object", input: `{}`, want: 0},
		{name: "garbage", input: `topics`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeTopicsJSON([]byte(tt.input))
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}
