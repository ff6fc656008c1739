package baseline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/joshuapare/propkit/propstore"
)

// ErrNoBaseline is returned when no snapshot exists for a path.
var ErrNoBaseline = errors.New("no baseline snapshot")

type Repository interface {
	Save(ctx context.Context, path string, s *propstore.Store) (*Snapshot, error)
	Latest(ctx context.Context, path string) (*Snapshot, error)
	Get(ctx context.Context, id string) (*Snapshot, error)
	List(ctx context.Context, limit int) ([]*Snapshot, error)
}

type snapshotRepo struct {
	db     *gorm.DB
	logger logrus.FieldLogger
	now    func() time.Time
}

func NewRepository(db *gorm.DB, logger logrus.FieldLogger) Repository {
	return &snapshotRepo{
		db:     db,
		logger: logger.WithField("component", "baseline"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Save records every property of s. Saving an unparsed store is refused.
func (r *snapshotRepo) Save(ctx context.Context, path string, s *propstore.Store) (*Snapshot, error) {
	if !s.Parsed() {
		return nil, fmt.Errorf("save baseline for %s: %w", path, propstore.ErrNoProperties)
	}
	snap := &Snapshot{
		ID:            uuid.New().String(),
		Path:          path,
		Fingerprint:   s.Fingerprint(),
		Strategy:      s.Strategy().String(),
		PropertyCount: s.Len(),
		CapturedAt:    r.now(),
	}
	for _, e := range s.Entries() {
		snap.Properties = append(snap.Properties, SnapshotProperty{SnapshotID: snap.ID, Key: e.Key, Value: e.Value})
	}

	// Properties are inserted through the association.
	if err := r.db.WithContext(ctx).Create(snap).Error; err != nil {
		return nil, fmt.Errorf("save baseline: %w", err)
	}
	r.logger.WithFields(logrus.Fields{
		"id":          snap.ID,
		"path":        path,
		"fingerprint": snap.Fingerprint,
		"properties":  snap.PropertyCount,
	}).Info("baseline saved")
	return snap, nil
}

func (r *snapshotRepo) Latest(ctx context.Context, path string) (*Snapshot, error) {
	var snap Snapshot
	err := r.db.WithContext(ctx).
		Preload("Properties").
		Where("path = ?", path).
		Order("captured_at DESC").
		First(&snap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%s: %w", path, ErrNoBaseline)
	}
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

func (r *snapshotRepo) Get(ctx context.Context, id string) (*Snapshot, error) {
	var snap Snapshot
	err := r.db.WithContext(ctx).Preload("Properties").First(&snap, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("snapshot %s: %w", id, ErrNoBaseline)
	}
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// List returns snapshot headers, newest first, without their properties.
func (r *snapshotRepo) List(ctx context.Context, limit int) ([]*Snapshot, error) {
	var snaps []*Snapshot
	q := r.db.WithContext(ctx).Order("captured_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&snaps).Error; err != nil {
		return nil, err
	}
	return snaps, nil
}
