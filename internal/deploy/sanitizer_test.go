package deploy

import (
	"os"
	"path"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func fixedSanitizer(suffix string) *Sanitizer {
	return NewSanitizer(
		func() time.Time { return time.UnixMilli(1700000000000) },
		func() string { return suffix },
		nil,
	)
}

// TestSanitizerIsUnsafe verifies the unsafe character classes.
func TestSanitizerIsUnsafe(t *testing.T) {
	s := NewSanitizer(nil, nil, nil)

	for _, name := range []string{"가.html", "한글 파일.png", "my file.css", "a(1).js", "x#y.html", "q?.txt", "tab\t.md", "back`tick.js", "ü.html"} {
		require.True(t, s.IsUnsafe(name), name)
	}
	for _, name := range []string{"index.html", "main-1.2_final.js", "A.PNG", "font.woff2"} {
		require.False(t, s.IsUnsafe(name), name)
	}
}

// TestSanitizeKeepsExtension verifies only a safe extension of the old name survives.
func TestSanitizeKeepsExtension(t *testing.T) {
	s := fixedSanitizer("abc123")
	require.Equal(t, "1700000000000abc123.html", s.Sanitize("가.html"))
	require.Equal(t, "1700000000000abc123.PNG", s.Sanitize("my photo.PNG"))
	require.Equal(t, "1700000000000abc123", s.Sanitize("no extension"))

	require.Equal(t, "1700000000000abc123", s.Sanitize("x.한"))
	require.Equal(t, "1700000000000abc123", s.Sanitize("page.ht ml"))

	random := NewSanitizer(nil, nil, nil)
	first := random.Sanitize("a b.css")
	second := random.Sanitize("c d.css")
	require.Equal(t, ".css", path.Ext(first))
	require.Equal(t, ".css", path.Ext(second))
	require.NotEqual(t, first, second)
	require.False(t, random.IsUnsafe(first))
}

// TestSanitizerScanKeepsDirectories verifies plans stay in the original directory and never collide.
func TestSanitizerScanKeepsDirectories(t *testing.T) {
	s := fixedSanitizer("zzzzzz")
	files := []DeployableFile{
		{RelativePath: "index.html"},
		{RelativePath: "img/사진 1.png"},
		{RelativePath: "img/사진 2.png"},
	}

	plans := s.Scan(files)
	require.Len(t, plans, 2)
	require.Equal(t, "img/사진 1.png", plans[0].OriginalRelativePath)
	require.Equal(t, "img/1700000000000zzzzzz.png", plans[0].SanitizedRelativePath)
	require.Equal(t, "img/1700000000000zzzzzz1.png", plans[1].SanitizedRelativePath)
}

// TestSanitizeScenarioUnsafeFileRenamed verifies an unsafe file is moved on disk and collected under its new name.
func TestSanitizeScenarioUnsafeFileRenamed(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"index.html": "i",
		"a.html":     "a",
		"가.html":     "ga",
	})
	collector := newTestCollector(t, Settings{})
	s := NewSanitizer(nil, nil, nil)

	collection, err := collector.Collect(root)
	require.NoError(t, err)

	plans := s.Scan(collection.Files)
	require.Len(t, plans, 1)
	require.Equal(t, "가.html", plans[0].OriginalRelativePath)

	applied, err := s.Apply(root, plans)
	require.NoError(t, err)
	require.Equal(t, 1, applied)

	collection, err = collector.Collect(root)
	require.NoError(t, err)
	require.Len(t, collection.Files, 3)
	for _, f := range collection.Files {
		require.NotEqual(t, "가.html", f.RelativePath)
		require.False(t, s.IsUnsafe(f.RelativePath), f.RelativePath)
	}
	require.Empty(t, s.Scan(collection.Files))

	content, err := os.ReadFile(filepath.Join(root, plans[0].SanitizedRelativePath))
	require.NoError(t, err)
	require.Equal(t, "ga", string(content))
}

// TestSanitizerApplyStopsAtFirstFailure verifies partial application is reported.
func TestSanitizerApplyStopsAtFirstFailure(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"x y.html":   "1",
		"taken.html": "2",
	})
	s := NewSanitizer(nil, nil, nil)

	applied, err := s.Apply(root, []RenamePlan{
		{OriginalRelativePath: "x y.html", SanitizedRelativePath: "moved/ok.html"},
		{OriginalRelativePath: "missing.html", SanitizedRelativePath: "other.html"},
		{OriginalRelativePath: "taken.html", SanitizedRelativePath: "moved/ok.html"},
	})
	require.Error(t, err)
	require.True(t, IsCode(err, ErrCodeRenameFailed))
	require.Equal(t, 1, applied)
	require.FileExists(t, filepath.Join(root, "moved", "ok.html"))
	require.FileExists(t, filepath.Join(root, "taken.html"))

	_, err = s.Apply(root, []RenamePlan{{OriginalRelativePath: "taken.html", SanitizedRelativePath: "moved/ok.html"}})
	require.True(t, IsCode(err, ErrCodeRenameFailed))
	require.FileExists(t, filepath.Join(root, "taken.html"))
}
