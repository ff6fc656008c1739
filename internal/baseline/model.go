// Package baseline records property snapshots in a SQL database and
// compares live stores against them.
package baseline

import "time"

// Snapshot is one recorded parse of a property file.
type Snapshot struct {
	ID            string             `gorm:"type:varchar(36);primaryKey" json:"id"`
	Path          string             `gorm:"type:varchar(512);not null;index:idx_path_captured" json:"path"`
	Fingerprint   string             `gorm:"type:varchar(16);not null" json:"fingerprint"`
	Strategy      string             `gorm:"type:varchar(20);not null" json:"strategy"`
	PropertyCount int                `gorm:"not null" json:"property_count"`
	CapturedAt    time.Time          `gorm:"not null;index:idx_path_captured" json:"captured_at"`
	Properties    []SnapshotProperty `gorm:"foreignKey:SnapshotID;constraint:OnDelete:CASCADE" json:"properties,omitempty"`
}

// SnapshotProperty is one key/value of a snapshot.
type SnapshotProperty struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	SnapshotID string `gorm:"type:varchar(36);not null;index" json:"-"`
	Key        string `gorm:"column:prop_key;type:varchar(255);not null" json:"key"`
	Value      string `gorm:"column:prop_value;type:text" json:"value"`
}

// Map returns the snapshot's properties keyed by name.
func (s *Snapshot) Map() map[string]string {
	m := make(map[string]string, len(s.Properties))
	for _, p := range s.Properties {
		m[p.Key] = p.Value
	}
	return m
}
