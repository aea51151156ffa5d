package docs

import (
	"bufio"
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/etnz/perfsheet/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

// readmeTopics returns the topics listed in readme.md.
func readmeTopics(t *testing.T) []string {
	t.Helper()
	file, err := os.Open("readme.md")
	require.NoError(t, err)
	defer file.Close()

	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)
	var topics []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if m := topicRegex.FindStringSubmatch(scanner.Text()); len(m) > 1 {
			topics = append(topics, strings.TrimSpace(m[1]))
		}
	}
	require.NoError(t, scanner.Err())
	return topics
}

func TestTopics(t *testing.T) {
	listed := readmeTopics(t)
	all, err := Topics()
	require.NoError(t, err)
	assert.ElementsMatch(t, all, listed, "readme.md must list every topic")

	for _, topic := range listed {
		_, err := Topic(topic)
		assert.NoError(t, err, topic)
	}

	_, err = Topic("nope")
	assert.Error(t, err)
}

func TestConcat(t *testing.T) {
	every, err := Topic("*")
	require.NoError(t, err)
	both, err := Concat("configuration", "stages")
	require.NoError(t, err)
	assert.Contains(t, every, both)
}

// codeBlocks returns the fenced code blocks of source with the given info.
func codeBlocks(source []byte, info string) []string {
	doc := goldmark.New().Parser().Parse(text.NewReader(source))
	var blocks []string
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if fcb, ok := n.(*ast.FencedCodeBlock); ok && string(fcb.Language(source)) == info {
			var b strings.Builder
			lines := fcb.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				b.Write(seg.Value(source))
			}
			blocks = append(blocks, b.String())
		}
		return ast.WalkContinue, nil
	})
	return blocks
}

func TestTopicHeadings(t *testing.T) {
	all, err := Topics()
	require.NoError(t, err)
	for _, topic := range append(all, "readme") {
		content, err := Topic(topic)
		require.NoError(t, err)
		source := []byte(content)
		doc := goldmark.New().Parser().Parse(text.NewReader(source))
		h, ok := doc.FirstChild().(*ast.Heading)
		require.True(t, ok, "topic %q must start with a heading", topic)
		assert.Equal(t, 1, h.Level, topic)
	}
}

func TestConfigurationExample(t *testing.T) {
	content, err := Topic("configuration")
	require.NoError(t, err)
	blocks := codeBlocks([]byte(content), "yaml")
	require.Len(t, blocks, 1)

	cfg := config.Default()
	dec := yaml.NewDecoder(strings.NewReader(blocks[0]))
	dec.KnownFields(true)
	require.NoError(t, dec.Decode(cfg))
	assert.Equal(t, "/data/perfsheet", cfg.BaseDir)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.NoError(t, cfg.Validate())
}
