package store

import "time"

// SweepRun persists one Eb/N0 point's aggregate harness.Point result.
type SweepRun struct {
	ID               uint `gorm:"primaryKey"`
	EbN0DB           float64
	BitErrors        uint64
	BitsCompared     uint64
	BER              float64
	FramesReceived   int
	FramesDecoded    int
	SubframesDecoded int
	SubframesTotal   int
	CreatedAt        time.Time
}

// FrameRecord persists one decoded frame's RS per-block error counts,
// linked to the SweepRun point it was produced under.
type FrameRecord struct {
	ID          uint `gorm:"primaryKey"`
	SweepRunID  uint `gorm:"index"`
	FrameIndex  int
	Locked      bool
	Inverted    bool
	BlockErrors string // comma-separated per-block error counts
	Success     bool
	CreatedAt   time.Time
}
