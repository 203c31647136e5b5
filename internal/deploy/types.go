// Package deploy collects, sanitizes and uploads static sites to miri.dev.
package deploy

import "context"

// DefaultSiteTitle is reported when the deploy service omits a title.
const DefaultSiteTitle = "Untitled Site"

// DeployableFile is one file of a deployment batch.
type DeployableFile struct {
	// RelativePath is slash separated and relative to the collection root.
	RelativePath string
	AbsolutePath string
	SizeBytes    int64
	MimeType     string
}

// SkippedFile is a file left out of the batch because it exceeds the size cap.
type SkippedFile struct {
	RelativePath string
	SizeBytes    int64
}

// Collection is the ordered result of Collect.
type Collection struct {
	Root    string
	Files   []DeployableFile
	Skipped []SkippedFile
}

// RenamePlan moves an unsafe file name to a sanitized one.
type RenamePlan struct {
	OriginalRelativePath  string
	SanitizedRelativePath string
}

// Result is the outcome of one deploy attempt.
type Result struct {
	Success   bool          `json:"success"`
	URL       string        `json:"url,omitempty"`
	SiteID    string        `json:"siteId,omitempty"`
	Title     string        `json:"title,omitempty"`
	FileCount int           `json:"fileCount,omitempty"`
	Error     string        `json:"error,omitempty"`
	Renamed   []RenamePlan  `json:"-"`
	Skipped   []SkippedFile `json:"-"`
}

// Request describes a folder deployment.
type Request struct {
	// ProjectPath is resolved against the service base directory when relative.
	ProjectPath string
	SiteName    string
}

// HTMLRequest describes a single-document deployment.
type HTMLRequest struct {
	ArtifactID  string
	HTMLContent string
	SiteName    string
}

// StatusRecorder receives successful deployments.
type StatusRecorder interface {
	Record(ctx context.Context, result *Result)
}
