package store

import (
	"os"
	"testing"

	"github.com/dbehnke/ccsds-fec/pkg/logger"
)

func TestNewDB(t *testing.T) {
	log := logger.New(logger.Config{Level: "error"})
	dbPath := "/tmp/test_ccsds_fec.db"
	defer func() { _ = os.Remove(dbPath) }()

	cfg := Config{Path: dbPath}
	db, err := NewDB(cfg, log)
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	defer func() { _ = db.Close() }()

	if db.db == nil {
		t.Error("Expected non-nil database connection")
	}
}

func TestNewDB_DefaultPath(t *testing.T) {
	log := logger.New(logger.Config{Level: "error"})
	defer func() { _ = os.Remove("ccsds-fec.db") }()

	cfg := Config{}
	db, err := NewDB(cfg, log)
	if err != nil {
		t.Fatalf("Failed to create database with default path: %v", err)
	}
	defer func() { _ = db.Close() }()

	if db.db == nil {
		t.Error("Expected non-nil database connection")
	}
}

func TestDB_AutoMigratesTables(t *testing.T) {
	log := logger.New(logger.Config{Level: "error"})
	dbPath := "/tmp/test_ccsds_fec_migrate.db"
	defer func() { _ = os.Remove(dbPath) }()

	db, err := NewDB(Config{Path: dbPath}, log)
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	defer func() { _ = db.Close() }()

	if !db.GetDB().Migrator().HasTable(&SweepRun{}) {
		t.Error("expected SweepRun table to be migrated")
	}
	if !db.GetDB().Migrator().HasTable(&FrameRecord{}) {
		t.Error("expected FrameRecord table to be migrated")
	}
}
