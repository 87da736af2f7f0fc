package store

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type implStore struct {
	db *gorm.DB
}

// Open opens (creating if needed) the sqlite database at path and migrates
// the meetings table.
func Open(path string) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(&Meeting{}); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return db, nil
}

// New creates a Store backed by an open gorm handle.
func New(db *gorm.DB) Store {
	return &implStore{db: db}
}

type implFactory struct {
	db *gorm.DB
}

// NewFactory creates a Factory whose Acquire returns a Store bound to a
// fresh gorm session. The underlying connection pool is owned by gorm, so
// release only marks the end of the unit of work.
func NewFactory(db *gorm.DB) Factory {
	return &implFactory{db: db}
}

func (f *implFactory) Acquire() (Store, func()) {
	session := f.db.Session(&gorm.Session{NewDB: true})
	return &implStore{db: session}, func() {}
}
