package deploy

import (
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	errors "github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	"github.com/google/uuid"

	"github.com/Laisky/miridev-mcp/library/log"
)

// unsafeChars are rejected in file names besides non-ASCII and whitespace.
const unsafeChars = "[](){}!@#$%^&*+=|\\:;\"'<>,?~`"

const suffixLen = 6

// Sanitizer detects and rewrites file names the deploy service cannot serve.
type Sanitizer struct {
	clock  func() time.Time
	suffix func() string
	logger logSDK.Logger
}

// NewSanitizer builds a sanitizer. Nil clock and suffix use wall time and uuid randomness.
func NewSanitizer(clock func() time.Time, suffix func() string, logger logSDK.Logger) *Sanitizer {
	if clock == nil {
		clock = time.Now
	}
	if suffix == nil {
		suffix = randomSuffix
	}
	if logger == nil {
		logger = log.Logger.Named("deploy_sanitizer")
	}

	return &Sanitizer{clock: clock, suffix: suffix, logger: logger}
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:suffixLen]
}

// IsUnsafe reports whether base name contains non-ASCII, whitespace or shell/HTML metacharacters.
func (s *Sanitizer) IsUnsafe(name string) bool {
	for _, r := range name {
		if r > unicode.MaxASCII || unicode.IsSpace(r) || unicode.IsControl(r) {
			return true
		}
		if strings.ContainsRune(unsafeChars, r) {
			return true
		}
	}
	return false
}

// Sanitize returns a fresh name keeping only the extension of name.
// An extension that is itself unsafe is dropped.
func (s *Sanitizer) Sanitize(name string) string {
	ext := path.Ext(name)
	if s.IsUnsafe(ext) {
		ext = ""
	}
	return strconv.FormatInt(s.clock().UnixMilli(), 10) + s.suffix() + ext
}

// Scan returns a rename plan for every file whose base name is unsafe.
func (s *Sanitizer) Scan(files []DeployableFile) []RenamePlan {
	taken := make(map[string]struct{}, len(files))
	for _, f := range files {
		taken[f.RelativePath] = struct{}{}
	}

	var plans []RenamePlan
	for _, f := range files {
		dir, base := path.Split(f.RelativePath)
		if !s.IsUnsafe(base) {
			continue
		}

		target := dir + s.Sanitize(base)
		for n := 1; ; n++ {
			if _, dup := taken[target]; !dup {
				break
			}
			name := s.Sanitize(base)
			ext := path.Ext(name)
			target = dir + strings.TrimSuffix(name, ext) + strconv.Itoa(n) + ext
		}
		taken[target] = struct{}{}

		plans = append(plans, RenamePlan{
			OriginalRelativePath:  f.RelativePath,
			SanitizedRelativePath: target,
		})
	}

	return plans
}

// Apply moves each planned file under root and returns how many were moved.
//
// Each move is a single rename. The batch stops at the first failure and
// files already moved stay moved, so callers must collect again before retrying.
func (s *Sanitizer) Apply(root string, plans []RenamePlan) (int, error) {
	applied := 0
	for _, plan := range plans {
		from := filepath.Join(root, filepath.FromSlash(plan.OriginalRelativePath))
		to := filepath.Join(root, filepath.FromSlash(plan.SanitizedRelativePath))

		if err := renameFile(from, to); err != nil {
			return applied, &Error{
				Code:    ErrCodeRenameFailed,
				Message: "rename " + plan.OriginalRelativePath + " -> " + plan.SanitizedRelativePath + ": " + err.Error(),
			}
		}

		applied++
		s.logger.Info("renamed unsafe file",
			zap.String("from", plan.OriginalRelativePath),
			zap.String("to", plan.SanitizedRelativePath))
	}

	return applied, nil
}

func renameFile(from, to string) error {
	if err := os.MkdirAll(filepath.Dir(to), 0o755); err != nil {
		return errors.Wrap(err, "create target directory")
	}
	if _, err := os.Lstat(to); err == nil {
		return errors.Errorf("target %s already exists", to)
	} else if !os.IsNotExist(err) {
		return errors.Wrap(err, "stat target")
	}
	if err := os.Rename(from, to); err != nil {
		return errors.Wrap(err, "move file")
	}

	return nil
}
