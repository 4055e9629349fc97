// Package pricestore persists the synthetic mandi price dataset as an
// Agmarknet-style CSV and serves it to the advisory engines.
package pricestore

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/agrichain/advisory-service/internal/domain"
	"github.com/agrichain/advisory-service/internal/observability"
)

// dateLayout matches Agmarknet's DD/MM/YYYY arrival dates.
const dateLayout = "02/01/2006"

var header = []string{"State", "District", "Market", "Commodity", "Arrival_Date", "Min_Price", "Max_Price", "Modal_Price"}

// Store lazily materializes and caches the price dataset. The first Series
// call generates the CSV if it is missing, then every caller shares one
// in-memory copy.
type Store struct {
	path    string
	seed    int64
	logger  *slog.Logger
	metrics *observability.Metrics

	once   sync.Once
	series []domain.PriceRecord
	err    error
}

// New creates a Store backed by the CSV at path.
func New(path string, logger *slog.Logger, metrics *observability.Metrics) *Store {
	return &Store{
		path:    path,
		seed:    domain.DefaultSeed,
		logger:  logger,
		metrics: metrics,
	}
}

// Series returns the full price dataset, generating the backing CSV on first
// use if it does not exist yet.
func (s *Store) Series() ([]domain.PriceRecord, error) {
	s.once.Do(func() {
		s.series, s.err = s.loadOrGenerate()
		if s.err == nil {
			s.metrics.PriceRecordsLoaded.Set(float64(len(s.series)))
		}
	})
	return s.series, s.err
}

func (s *Store) loadOrGenerate() ([]domain.PriceRecord, error) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		s.logger.Info("price dataset missing, generating", "path", s.path, "seed", s.seed)
		if err := WriteDataset(s.path, domain.GenerateSyntheticSeries(s.seed)); err != nil {
			return nil, fmt.Errorf("generate price dataset: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("stat price dataset: %w", err)
	}

	records, err := ReadDataset(s.path)
	if err != nil {
		return nil, err
	}
	s.logger.Info("price dataset loaded", "path", s.path, "records", len(records))
	return records, nil
}

// WriteDataset writes records to path as CSV, creating parent directories.
func WriteDataset(path string, records []domain.PriceRecord) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dataset dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dataset file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.State,
			r.District,
			r.Market,
			r.Commodity,
			r.Date.Format(dateLayout),
			strconv.Itoa(r.MinPrice),
			strconv.Itoa(r.MaxPrice),
			strconv.Itoa(r.ModalPrice),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush dataset: %w", err)
	}
	return f.Close()
}

// ReadDataset parses a price CSV back into records.
func ReadDataset(path string) ([]domain.PriceRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open price dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read price dataset: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("price dataset %s is empty", path)
	}

	records := make([]domain.PriceRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRow(row []string) (domain.PriceRecord, error) {
	if len(row) != len(header) {
		return domain.PriceRecord{}, fmt.Errorf("expected %d columns, got %d", len(header), len(row))
	}

	date, err := time.Parse(dateLayout, row[4])
	if err != nil {
		return domain.PriceRecord{}, fmt.Errorf("parse arrival date %q: %w", row[4], err)
	}

	prices := make([]int, 3)
	for i, col := range row[5:8] {
		n, err := strconv.Atoi(col)
		if err != nil {
			return domain.PriceRecord{}, fmt.Errorf("parse price %q: %w", col, err)
		}
		prices[i] = n
	}

	return domain.PriceRecord{
		State:      row[0],
		District:   row[1],
		Market:     row[2],
		Commodity:  row[3],
		Date:       date,
		MinPrice:   prices[0],
		MaxPrice:   prices[1],
		ModalPrice: prices[2],
	}, nil
}
