package store

import (
	"os"
	"testing"

	"github.com/dbehnke/ccsds-fec/pkg/harness"
	"github.com/dbehnke/ccsds-fec/pkg/logger"
)

func openTestRepo(t *testing.T, path string) (*Repository, func()) {
	t.Helper()
	log := logger.New(logger.Config{Level: "error"})
	db, err := NewDB(Config{Path: path}, log)
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	return NewRepository(db), func() {
		_ = db.Close()
		_ = os.Remove(path)
	}
}

func TestRepository_SaveSweepPoint(t *testing.T) {
	repo, cleanup := openTestRepo(t, "/tmp/test_repo_sweep.db")
	defer cleanup()

	pt := harness.Point{
		EbN0dB:           3.0,
		BitErrors:        12,
		BitsCompared:     1000,
		BER:              0.012,
		FramesReceived:   5,
		FramesDecoded:    4,
		SubframesDecoded: 3,
		SubframesTotal:   4,
	}
	id, err := repo.SaveSweepPoint(pt)
	if err != nil {
		t.Fatalf("SaveSweepPoint: %v", err)
	}
	if id == 0 {
		t.Error("expected nonzero ID after save")
	}

	rows, err := repo.RecentSweepRuns(10)
	if err != nil {
		t.Fatalf("RecentSweepRuns: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	if rows[0].EbN0DB != pt.EbN0dB || rows[0].BER != pt.BER {
		t.Errorf("saved row = %+v, want fields matching %+v", rows[0], pt)
	}
}

func TestRepository_SaveFrameRecord(t *testing.T) {
	repo, cleanup := openTestRepo(t, "/tmp/test_repo_frame.db")
	defer cleanup()

	id, err := repo.SaveSweepPoint(harness.Point{EbN0dB: 1.0})
	if err != nil {
		t.Fatalf("SaveSweepPoint: %v", err)
	}

	if err := repo.SaveFrameRecord(id, 0, true, false, true, []int{0, 2, 0}); err != nil {
		t.Fatalf("SaveFrameRecord: %v", err)
	}

	var rows []FrameRecord
	if err := repo.db.GetDB().Find(&rows).Error; err != nil {
		t.Fatalf("query FrameRecord: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	if rows[0].SweepRunID != id {
		t.Errorf("SweepRunID = %d, want %d", rows[0].SweepRunID, id)
	}
	if rows[0].BlockErrors != "0,2,0" {
		t.Errorf("BlockErrors = %q, want %q", rows[0].BlockErrors, "0,2,0")
	}
	if !rows[0].Success || !rows[0].Locked || rows[0].Inverted {
		t.Errorf("unexpected flags on saved row: %+v", rows[0])
	}
}

func TestRepository_RecentSweepRunsOrdering(t *testing.T) {
	repo, cleanup := openTestRepo(t, "/tmp/test_repo_recent.db")
	defer cleanup()

	for i := 0; i < 5; i++ {
		if _, err := repo.SaveSweepPoint(harness.Point{EbN0dB: float64(i)}); err != nil {
			t.Fatalf("SaveSweepPoint %d: %v", i, err)
		}
	}

	rows, err := repo.RecentSweepRuns(3)
	if err != nil {
		t.Fatalf("RecentSweepRuns: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want 3", len(rows))
	}
}
