package cms

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeContent(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	return dir
}

func TestGetPageRendersMarkdown(t *testing.T) {
	dir := writeContent(t, map[string]string{
		"pages/why.md": "---\ntitle: Why us\nsummary: Short\nupdated_at: 2024-05-01\nseo:\n  description: Meta\n---\n## Heading\n\n| a | b |\n|---|---|\n| 1 | 2 |\n\n<script>alert(1)</script>\n",
	})
	c := NewClient(dir)

	page, err := c.GetPage("why")
	require.NoError(t, err)
	assert.Equal(t, "Why us", page.Title)
	assert.Equal(t, "Short", page.Summary)
	assert.Equal(t, "Meta", page.SEO.Description)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), page.UpdatedAt)

	body := string(page.Body)
	assert.Contains(t, body, "<h2")
	assert.Contains(t, body, "<table>")
	assert.NotContains(t, body, "<script")
}

func TestGetPageDefaultsTitleFromSlug(t *testing.T) {
	dir := writeContent(t, map[string]string{
		"pages/platform-overview.md": "Plain body without front matter.\n",
	})
	page, err := NewClient(dir).GetPage("platform-overview")
	require.NoError(t, err)
	assert.Equal(t, "Platform Overview", page.Title)
	assert.False(t, page.UpdatedAt.IsZero())
}

func TestGetPageNotFound(t *testing.T) {
	c := NewClient(t.TempDir())
	for _, slug := range []string{"missing", "", "../secrets", "a/b"} {
		_, err := c.GetPage(slug)
		assert.ErrorIs(t, err, ErrNotFound, "slug %q", slug)
	}
}

func TestGetPageBadFrontMatter(t *testing.T) {
	dir := writeContent(t, map[string]string{
		"pages/bad.md": "---\ntitle: [unterminated\n---\nbody\n",
	})
	_, err := NewClient(dir).GetPage("bad")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestGetPageCachesUntilTTL(t *testing.T) {
	dir := writeContent(t, map[string]string{"pages/why.md": "---\ntitle: One\n---\nx\n"})
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewClient(dir, WithCacheTTL(time.Minute))
	c.now = func() time.Time { return now }

	page, err := c.GetPage("why")
	require.NoError(t, err)
	assert.Equal(t, "One", page.Title)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "pages", "why.md"), []byte("---\ntitle: Two\n---\nx\n"), 0o644))
	page, _ = c.GetPage("why")
	assert.Equal(t, "One", page.Title)

	now = now.Add(2 * time.Minute)
	page, _ = c.GetPage("why")
	assert.Equal(t, "Two", page.Title)
}

func TestSplitFrontMatter(t *testing.T) {
	fm, body := splitFrontMatter("\ufeff---\na: 1\n---\n\nbody")
	assert.Equal(t, "a: 1", fm)
	assert.Equal(t, "body", body)

	fm, body = splitFrontMatter("---\nno closing")
	assert.Empty(t, fm)
	assert.True(t, strings.HasPrefix(body, "---"))
}

func TestSiteContentParses(t *testing.T) {
	c := NewClient(filepath.Join("..", "..", "content"))
	for _, slug := range []string{"why", "platform", "resources"} {
		page, err := c.GetPage(slug)
		require.NoError(t, err, slug)
		assert.NotEmpty(t, page.Body, slug)
	}
	items, err := c.ListResources(ListResourcesOptions{})
	require.NoError(t, err)
	assert.Len(t, items, 6)
}
