package deploy

import (
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"

	errors "github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/gabriel-vasile/mimetype"

	"github.com/Laisky/miridev-mcp/library/log"
)

// EntryPoint is the file that marks a folder as deployable.
const EntryPoint = "index.html"

const defaultMimeType = "application/octet-stream"

// Collector enumerates the deployable files under a root folder.
type Collector struct {
	pattern      string
	excludes     []string
	maxFileBytes int64
	logger       logSDK.Logger
}

// NewCollector builds a collector from settings.
func NewCollector(settings Settings, logger logSDK.Logger) (*Collector, error) {
	settings = settings.withDefaults()
	if logger == nil {
		logger = log.Logger.Named("deploy_collector")
	}

	exts := make([]string, 0, len(settings.Extensions))
	for _, ext := range settings.Extensions {
		ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
		if ext != "" {
			exts = append(exts, ext)
		}
	}
	if len(exts) == 0 {
		return nil, errors.New("at least one deployable extension is required")
	}
	pattern := "**/*." + exts[0]
	if len(exts) > 1 {
		pattern = "**/*.{" + strings.Join(exts, ",") + "}"
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, errors.Errorf("invalid extension pattern %q", pattern)
	}
	for _, exclude := range settings.Excludes {
		if !doublestar.ValidatePattern(exclude) {
			return nil, errors.Errorf("invalid exclude pattern %q", exclude)
		}
	}

	return &Collector{
		pattern:      pattern,
		excludes:     settings.Excludes,
		maxFileBytes: settings.MaxFileBytes,
		logger:       logger,
	}, nil
}

// Collect returns the deployable files under root sorted by relative path.
//
// Files larger than the size cap are left out and reported in Skipped.
// Symlinked directories are not descended into.
func (c *Collector) Collect(root string) (*Collection, error) {
	root = filepath.Clean(root)
	entry, err := os.Stat(filepath.Join(root, EntryPoint))
	if err != nil || !entry.Mode().IsRegular() {
		return nil, NewError(ErrCodeMissingEntryPoint,
			"no index.html found in "+root+"; point projectPath at the built site folder", false)
	}

	collection := &Collection{Root: root}
	err = doublestar.GlobWalk(os.DirFS(root), c.pattern, func(relPath string, d fs.DirEntry) error {
		if d.IsDir() || c.excluded(relPath) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			c.logger.Warn("stat file", zap.String("path", relPath), zap.Error(err))
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		if info.Size() > c.maxFileBytes {
			c.logger.Warn("skip oversized file",
				zap.String("path", relPath),
				zap.Int64("size", info.Size()),
				zap.Int64("max", c.maxFileBytes))
			collection.Skipped = append(collection.Skipped, SkippedFile{RelativePath: relPath, SizeBytes: info.Size()})
			return nil
		}

		abs := filepath.Join(root, filepath.FromSlash(relPath))
		collection.Files = append(collection.Files, DeployableFile{
			RelativePath: relPath,
			AbsolutePath: abs,
			SizeBytes:    info.Size(),
			MimeType:     detectMimeType(abs),
		})
		return nil
	}, doublestar.WithNoFollow())
	if err != nil {
		return nil, errors.Wrapf(err, "walk %s", root)
	}

	if len(collection.Files) == 0 {
		return nil, NewError(ErrCodeEmptyDeployment, "no deployable files found in "+root, false)
	}

	sort.Slice(collection.Files, func(i, j int) bool {
		return collection.Files[i].RelativePath < collection.Files[j].RelativePath
	})
	sort.Slice(collection.Skipped, func(i, j int) bool {
		return collection.Skipped[i].RelativePath < collection.Skipped[j].RelativePath
	})

	c.logger.Debug("collected files",
		zap.String("root", root),
		zap.Int("files", len(collection.Files)),
		zap.Int("skipped", len(collection.Skipped)))
	return collection, nil
}

func (c *Collector) excluded(relPath string) bool {
	for _, pattern := range c.excludes {
		if ok, _ := doublestar.Match(pattern, relPath); ok {
			return true
		}
	}
	return false
}

// detectMimeType resolves by extension first and sniffs content otherwise.
func detectMimeType(absPath string) string {
	if byExt := mime.TypeByExtension(filepath.Ext(absPath)); byExt != "" {
		return byExt
	}
	if sniffed, err := mimetype.DetectFile(absPath); err == nil {
		return sniffed.String()
	}
	return defaultMimeType
}
