package deploy

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type recorderStub struct {
	results []*Result
}

func (r *recorderStub) Record(_ context.Context, result *Result) {
	r.results = append(r.results, result)
}

func newTestService(t *testing.T, baseDir string, handler http.HandlerFunc) (*Service, *recorderStub) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	recorder := new(recorderStub)
	svc, err := NewService(ServiceOptions{
		Settings: Settings{APIBaseURL: srv.URL},
		BaseDir:  baseDir,
		Recorder: recorder,
	})
	require.NoError(t, err)
	return svc, recorder
}

// TestServiceDeployRenamesAndRecords verifies the full pipeline on a relative project path.
func TestServiceDeployRenamesAndRecords(t *testing.T) {
	base := t.TempDir()
	writeTree(t, base, map[string]string{
		"dist/index.html":   "i",
		"dist/my page.html": "p",
	})

	var uploaded capturedUpload
	svc, recorder := newTestService(t, base, func(w http.ResponseWriter, r *http.Request) {
		uploaded = captureUpload(t, r)
		_, _ = io.WriteString(w, `{"site":{"url":"https://d.miri.dev","id":"d1"}}`)
	})

	result, err := svc.Deploy(context.Background(), Request{ProjectPath: "dist", SiteName: "docs"})
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Equal(t, 2, result.FileCount)
	require.Equal(t, DefaultSiteTitle, result.Title)
	require.Len(t, result.Renamed, 1)
	require.Equal(t, "my page.html", result.Renamed[0].OriginalRelativePath)

	require.NoFileExists(t, filepath.Join(base, "dist", "my page.html"))
	require.FileExists(t, filepath.Join(base, "dist", result.Renamed[0].SanitizedRelativePath))
	require.Contains(t, uploaded.fileNames, result.Renamed[0].SanitizedRelativePath)
	require.Equal(t, "docs", uploaded.fields["siteName"])

	require.Len(t, recorder.results, 1)
	require.Equal(t, "d1", recorder.results[0].SiteID)
}

// TestServiceDeployFailureNotRecorded verifies rejected uploads are returned and not recorded.
func TestServiceDeployFailureNotRecorded(t *testing.T) {
	base := t.TempDir()
	writeTree(t, base, map[string]string{"index.html": "i"})

	svc, recorder := newTestService(t, base, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"error":"quota exceeded"}`)
	})

	result, err := svc.Deploy(context.Background(), Request{})
	require.NoError(t, err)
	require.False(t, result.Success)
	require.Equal(t, "quota exceeded", result.Error)
	require.Empty(t, recorder.results)
}

// TestServiceDeployMissingEntryPoint verifies collection errors surface before any upload.
func TestServiceDeployMissingEntryPoint(t *testing.T) {
	base := t.TempDir()
	svc, _ := newTestService(t, base, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("upload must not be attempted")
	})

	_, err := svc.Deploy(context.Background(), Request{ProjectPath: base})
	require.True(t, IsCode(err, ErrCodeMissingEntryPoint))
}

// TestServiceResolvePath verifies relative paths resolve against the base directory.
func TestServiceResolvePath(t *testing.T) {
	svc, _ := newTestService(t, "/srv/work", func(http.ResponseWriter, *http.Request) {})

	require.Equal(t, filepath.Clean("/srv/work"), svc.ResolvePath(""))
	require.Equal(t, filepath.Join("/srv/work", "site"), svc.ResolvePath("site"))
	require.Equal(t, filepath.Clean("/tmp/site"), svc.ResolvePath("/tmp/site/"))

	_, err := NewService(ServiceOptions{})
	require.Error(t, err)
}

// TestServiceDeployHTML verifies html artifacts deploy under their document title.
func TestServiceDeployHTML(t *testing.T) {
	var uploaded capturedUpload
	svc, recorder := newTestService(t, t.TempDir(), func(w http.ResponseWriter, r *http.Request) {
		uploaded = captureUpload(t, r)
		_, _ = io.WriteString(w, `{"url":"https://h.miri.dev","siteId":"h1","title":"Hello"}`)
	})

	html := "<html><head><title> Hello Page </title></head><body>x</body></html>"
	result, err := svc.DeployHTML(context.Background(), HTMLRequest{ArtifactID: "art-1", HTMLContent: html})
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Equal(t, "Hello Page", uploaded.fields["siteName"])
	require.Equal(t, []string{"index.html"}, uploaded.fileNames)
	require.Equal(t, html, uploaded.contents[0])
	require.Len(t, recorder.results, 1)
}

// TestServiceDeployHTMLRequiresArguments verifies missing artifact fields are rejected.
func TestServiceDeployHTMLRequiresArguments(t *testing.T) {
	svc, _ := newTestService(t, t.TempDir(), func(http.ResponseWriter, *http.Request) {})

	_, err := svc.DeployHTML(context.Background(), HTMLRequest{HTMLContent: "<html></html>"})
	require.True(t, IsCode(err, ErrCodeInvalidArgument))

	_, err = svc.DeployHTML(context.Background(), HTMLRequest{ArtifactID: "a"})
	require.True(t, IsCode(err, ErrCodeInvalidArgument))
}

// TestDocumentTitle verifies title extraction.
func TestDocumentTitle(t *testing.T) {
	require.Equal(t, "Demo", DocumentTitle("<title>Demo</title><p>x</p>"))
	require.Empty(t, DocumentTitle("<p>no title</p>"))
}
