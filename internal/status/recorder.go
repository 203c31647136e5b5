// Package status remembers the last deployment and reports service health.
package status

import (
	"context"
	"encoding/json"
	"time"

	errors "github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	"github.com/jinzhu/copier"

	"github.com/Laisky/miridev-mcp/internal/deploy"
	"github.com/Laisky/miridev-mcp/internal/store"
	"github.com/Laisky/miridev-mcp/library/log"
)

const recordKey = "deployment"

// Record is the persisted last successful deployment.
type Record struct {
	URL        string    `json:"url"`
	SiteID     string    `json:"siteId"`
	Title      string    `json:"title,omitempty"`
	FileCount  int       `json:"fileCount"`
	DeployedAt time.Time `json:"deployedAt"`
}

// Recorder keeps a single deployment record, overwritten on every success.
type Recorder struct {
	records store.RecordStore
	clock   func() time.Time
	logger  logSDK.Logger
}

// NewRecorder constructs a recorder over records.
func NewRecorder(records store.RecordStore, clock func() time.Time, logger logSDK.Logger) (*Recorder, error) {
	if records == nil {
		return nil, errors.New("record store is required")
	}
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	if logger == nil {
		logger = log.Logger.Named("status_recorder")
	}

	return &Recorder{records: records, clock: clock, logger: logger}, nil
}

// Record stores result as the last deployment. Failures are logged only.
func (r *Recorder) Record(ctx context.Context, result *deploy.Result) {
	if result == nil {
		return
	}

	record := new(Record)
	if err := copier.Copy(record, result); err != nil {
		r.logger.Warn("project deployment record", zap.Error(err))
		return
	}
	record.DeployedAt = r.clock()

	payload, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		r.logger.Warn("marshal deployment record", zap.Error(err))
		return
	}
	if err := r.records.Put(ctx, recordKey, payload, 0); err != nil {
		r.logger.Warn("save deployment record", zap.Error(err))
		return
	}

	r.logger.Debug("recorded deployment", zap.String("site_id", record.SiteID))
}

// LastDeployment returns the stored record, or false when none is readable.
func (r *Recorder) LastDeployment(ctx context.Context) (*Record, bool) {
	payload, err := r.records.Get(ctx, recordKey)
	if err != nil {
		if !store.IsNotFound(err) {
			r.logger.Warn("read deployment record", zap.Error(err))
		}
		return nil, false
	}

	record := new(Record)
	if err := json.Unmarshal(payload, record); err != nil {
		r.logger.Warn("parse deployment record", zap.Error(err))
		return nil, false
	}

	return record, true
}

// Clear removes the stored record. It is a no-op when none exists.
func (r *Recorder) Clear(ctx context.Context) error {
	if err := r.records.Delete(ctx, recordKey); err != nil {
		return errors.Wrap(err, "clear deployment record")
	}
	return nil
}
