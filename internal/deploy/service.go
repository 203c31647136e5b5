package deploy

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"

	errors "github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"

	"github.com/Laisky/miridev-mcp/library/log"
)

// ServiceOptions wires the deploy pipeline.
type ServiceOptions struct {
	Settings Settings
	// BaseDir resolves relative project paths.
	BaseDir    string
	HTTPClient *http.Client
	Sanitizer  *Sanitizer
	Recorder   StatusRecorder
	Logger     logSDK.Logger
}

// Service runs collect, sanitize and upload as one deployment.
type Service struct {
	baseDir   string
	collector *Collector
	sanitizer *Sanitizer
	uploader  *Uploader
	recorder  StatusRecorder
	logger    logSDK.Logger
}

// NewService constructs a deploy service.
func NewService(opts ServiceOptions) (*Service, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Logger.Named("deploy")
	}
	if strings.TrimSpace(opts.BaseDir) == "" {
		return nil, errors.New("base directory is required")
	}

	collector, err := NewCollector(opts.Settings, logger.Named("collector"))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	sanitizer := opts.Sanitizer
	if sanitizer == nil {
		sanitizer = NewSanitizer(nil, nil, logger.Named("sanitizer"))
	}

	return &Service{
		baseDir:   opts.BaseDir,
		collector: collector,
		sanitizer: sanitizer,
		uploader:  NewUploader(opts.Settings, opts.HTTPClient, logger.Named("uploader")),
		recorder:  opts.Recorder,
		logger:    logger,
	}, nil
}

// ResolvePath resolves projectPath against the base directory.
func (s *Service) ResolvePath(projectPath string) string {
	projectPath = strings.TrimSpace(projectPath)
	if projectPath == "" {
		projectPath = "."
	}
	if filepath.IsAbs(projectPath) {
		return filepath.Clean(projectPath)
	}
	return filepath.Join(s.baseDir, projectPath)
}

// Deploy uploads the folder at req.ProjectPath.
//
// Unsafe file names are renamed on disk before upload. Successful deployments
// with a url and site id are handed to the status recorder.
func (s *Service) Deploy(ctx context.Context, req Request) (*Result, error) {
	root := s.ResolvePath(req.ProjectPath)
	return s.deployRoot(ctx, root, req.SiteName)
}

func (s *Service) deployRoot(ctx context.Context, root, siteName string) (*Result, error) {
	logger := s.logger.With(zap.String("root", root))

	collection, err := s.collector.Collect(root)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	plans := s.sanitizer.Scan(collection.Files)
	if len(plans) > 0 {
		applied, err := s.sanitizer.Apply(root, plans)
		if err != nil {
			logger.Warn("rename unsafe files", zap.Int("applied", applied), zap.Error(err))
			return nil, errors.WithStack(err)
		}
		if collection, err = s.collector.Collect(root); err != nil {
			return nil, errors.WithStack(err)
		}
	}

	logger.Info("deploying",
		zap.Int("files", len(collection.Files)),
		zap.Int("renamed", len(plans)),
		zap.Int("skipped", len(collection.Skipped)))
	result, err := s.uploader.Upload(ctx, collection.Files, siteName)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	result.Renamed = plans
	result.Skipped = collection.Skipped

	if !result.Success {
		logger.Warn("deploy rejected", zap.String("error", result.Error))
		return result, nil
	}

	logger.Info("deployed", zap.String("url", result.URL), zap.String("site_id", result.SiteID))
	if s.recorder != nil && result.URL != "" && result.SiteID != "" {
		s.recorder.Record(ctx, result)
	}

	return result, nil
}
