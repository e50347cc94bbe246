package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	bolt "go.etcd.io/bbolt"

	"github.com/rohankatakam/gitclock/internal/models"
)

const reportsBucket = "reports"

// BoltStore implements storage as an embedded key/value file, one JSON value per report
type BoltStore struct {
	db     *bolt.DB
	logger *logrus.Logger
}

// NewBoltStore opens (or creates) a bbolt database at path
func NewBoltStore(path string, logger *logrus.Logger) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(reportsBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create bucket: %w", err)
	}

	return &BoltStore{db: db, logger: logger}, nil
}

func (s *BoltStore) SaveReport(ctx context.Context, report *models.Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(reportsBucket)).Put([]byte(report.ID), data)
	})
	if err != nil {
		return fmt.Errorf("put report: %w", err)
	}

	s.logger.WithField("id", report.ID).Debug("Saved report")
	return nil
}

func (s *BoltStore) ListReports(ctx context.Context, limit int) ([]*models.Report, error) {
	var reports []*models.Report
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(reportsBucket)).ForEach(func(_, v []byte) error {
			var report models.Report
			if err := json.Unmarshal(v, &report); err != nil {
				return err
			}
			report.Estimates = nil
			reports = append(reports, &report)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}

	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].CreatedAt.After(reports[j].CreatedAt)
	})
	if limit > 0 && len(reports) > limit {
		reports = reports[:limit]
	}
	return reports, nil
}

func (s *BoltStore) GetReport(ctx context.Context, id string) (*models.Report, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket([]byte(reportsBucket)).Get([]byte(id)); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}
	if data == nil {
		return nil, ErrNotFound
	}

	var report models.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("unmarshal report: %w", err)
	}
	return &report, nil
}

// Close closes the database file
func (s *BoltStore) Close() error {
	return s.db.Close()
}
