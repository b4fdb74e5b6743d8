package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

// AllEntriesLister returns the full statistics dataset.
type AllEntriesLister interface {
	ListAllEntries(ctx context.Context) ([]*StatsRow, error)
}

// ObjectUploader stores a named object in a bucket.
type ObjectUploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) error
}

// ExportService renders the search log as CSV and ships it to object
// storage.
type ExportService struct {
	logs     AllEntriesLister
	uploader ObjectUploader
	now      func() time.Time
}

func NewExportService(logs AllEntriesLister, uploader ObjectUploader) *ExportService {
	return &ExportService{
		logs:     logs,
		uploader: uploader,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WriteCSV streams the full log as CSV.
func (s *ExportService) WriteCSV(ctx context.Context, w io.Writer) error {
	rows, err := s.logs.ListAllEntries(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"tenant", "search_term", "search_count", "first_searched", "last_searched", "search_url"}); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.TenantDisplay(),
			row.SearchTerm,
			strconv.Itoa(row.SearchCount),
			row.FirstSearched.UTC().Format(time.RFC3339),
			row.LastSearched.UTC().Format(time.RFC3339),
			row.SearchURL,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportToBucket writes the CSV to object storage under a timestamped
// key and returns the key.
func (s *ExportService) ExportToBucket(ctx context.Context) (string, error) {
	if s.uploader == nil {
		return "", fmt.Errorf("object storage is not configured")
	}

	var buf bytes.Buffer
	if err := s.WriteCSV(ctx, &buf); err != nil {
		return "", err
	}

	key := fmt.Sprintf("search-logs/%s.csv", s.now().Format("20060102-150405"))
	if err := s.uploader.Upload(ctx, key, "text/csv", &buf); err != nil {
		return "", fmt.Errorf("failed to upload export: %w", err)
	}
	return key, nil
}
