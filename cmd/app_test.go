package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Laisky/miridev-mcp/internal/deploy"
)

// TestResolveWorkdir verifies empty workdirs fall back to the process directory and relative ones become absolute.
func TestResolveWorkdir(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	got, err := resolveWorkdir("")
	require.NoError(t, err)
	require.Equal(t, wd, got)

	got, err = resolveWorkdir("site")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(wd, "site"), got)

	abs := t.TempDir()
	got, err = resolveWorkdir(abs)
	require.NoError(t, err)
	require.Equal(t, abs, got)
}

// TestSummarizeDeployment verifies renamed and skipped files are listed after the site fields.
func TestSummarizeDeployment(t *testing.T) {
	summary := summarizeDeployment(&deploy.Result{
		Success:   true,
		URL:       "https://abc.miri.dev",
		SiteID:    "abc",
		Title:     "Demo",
		FileCount: 3,
		Renamed: []deploy.RenamePlan{{
			OriginalRelativePath:  "img/my photo.png",
			SanitizedRelativePath: "img/1700000000000abcdef.png",
		}},
		Skipped: []deploy.SkippedFile{{RelativePath: "video.mp4", SizeBytes: 30 << 20}},
	})

	require.Contains(t, summary, "URL:     https://abc.miri.dev")
	require.Contains(t, summary, "Files:   3")
	require.Contains(t, summary, "renamed img/my photo.png -> img/1700000000000abcdef.png")
	require.Contains(t, summary, "skipped video.mp4 (31457280 bytes, over size limit)")
}
