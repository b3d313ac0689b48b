package store

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dbehnke/ccsds-fec/pkg/harness"
)

// Repository writes harness sweep results into the ledger database.
type Repository struct {
	db *DB
}

// NewRepository wraps an open DB as a Repository.
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// SaveSweepPoint persists one harness.Point as a SweepRun row and returns
// its generated ID for linking FrameRecords.
func (r *Repository) SaveSweepPoint(p harness.Point) (uint, error) {
	row := SweepRun{
		EbN0DB:           p.EbN0dB,
		BitErrors:        p.BitErrors,
		BitsCompared:     p.BitsCompared,
		BER:              p.BER,
		FramesReceived:   p.FramesReceived,
		FramesDecoded:    p.FramesDecoded,
		SubframesDecoded: p.SubframesDecoded,
		SubframesTotal:   p.SubframesTotal,
		CreatedAt:        time.Now(),
	}
	if err := r.db.GetDB().Create(&row).Error; err != nil {
		return 0, fmt.Errorf("store: save sweep point: %w", err)
	}
	return row.ID, nil
}

// SaveFrameRecord persists one decoded frame's outcome under a SweepRun.
func (r *Repository) SaveFrameRecord(sweepRunID uint, frameIndex int, locked, inverted, success bool, blockErrors []int) error {
	strs := make([]string, len(blockErrors))
	for i, e := range blockErrors {
		strs[i] = strconv.Itoa(e)
	}
	row := FrameRecord{
		SweepRunID:  sweepRunID,
		FrameIndex:  frameIndex,
		Locked:      locked,
		Inverted:    inverted,
		BlockErrors: strings.Join(strs, ","),
		Success:     success,
		CreatedAt:   time.Now(),
	}
	if err := r.db.GetDB().Create(&row).Error; err != nil {
		return fmt.Errorf("store: save frame record: %w", err)
	}
	return nil
}

// RecentSweepRuns returns the most recent n SweepRun rows, newest first.
func (r *Repository) RecentSweepRuns(n int) ([]SweepRun, error) {
	var rows []SweepRun
	if err := r.db.GetDB().Order("created_at desc").Limit(n).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("store: query sweep runs: %w", err)
	}
	return rows, nil
}
