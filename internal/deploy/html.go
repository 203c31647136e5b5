package deploy

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	errors "github.com/Laisky/errors/v2"
	"github.com/Laisky/zap"
	"github.com/PuerkitoBio/goquery"
)

// DeployHTML publishes a single HTML document as a one-page site.
//
// The document is written to a temporary folder as index.html and removed
// after the upload. An empty SiteName falls back to the document title.
func (s *Service) DeployHTML(ctx context.Context, req HTMLRequest) (*Result, error) {
	artifactID := strings.TrimSpace(req.ArtifactID)
	if artifactID == "" {
		return nil, NewError(ErrCodeInvalidArgument, "artifactId is required", false)
	}
	if strings.TrimSpace(req.HTMLContent) == "" {
		return nil, NewError(ErrCodeInvalidArgument, "htmlContent is required", false)
	}

	dir, err := os.MkdirTemp("", "miridev-html-*")
	if err != nil {
		return nil, errors.Wrap(err, "create temp dir")
	}
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			s.logger.Warn("remove temp dir", zap.String("dir", dir), zap.Error(err))
		}
	}()

	if err := os.WriteFile(filepath.Join(dir, EntryPoint), []byte(req.HTMLContent), 0o600); err != nil {
		return nil, errors.Wrap(err, "write index.html")
	}

	siteName := strings.TrimSpace(req.SiteName)
	if siteName == "" {
		siteName = DocumentTitle(req.HTMLContent)
	}

	s.logger.Info("deploying html artifact", zap.String("artifact_id", artifactID))
	return s.deployRoot(ctx, dir, siteName)
}

// DocumentTitle returns the trimmed <title> text of an HTML document, if any.
func DocumentTitle(content string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}
