package database

import (
	"context"
	"fmt"

	"cloud.google.com/go/datastore"

	"github.com/locvowork/skilltrack/internal/apperrors"
	"github.com/locvowork/skilltrack/internal/domain"
)

const importRunKind = "ImportRun"

// DatastoreClient wraps the cloud datastore client
type DatastoreClient struct {
	client *datastore.Client
}

// NewDatastoreClient connects to the project's datastore.
func NewDatastoreClient(ctx context.Context, projectID string) (*DatastoreClient, error) {
	client, err := datastore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create datastore client: %w", err)
	}
	return &DatastoreClient{client: client}, nil
}

// Close releases the underlying connection. Safe on a nil client.
func (dc *DatastoreClient) Close() error {
	if dc == nil || dc.client == nil {
		return nil
	}
	return dc.client.Close()
}

// SaveImportReport stores one import run keyed by its run id.
func (dc *DatastoreClient) SaveImportReport(ctx context.Context, r *domain.ImportReport) error {
	if dc == nil || dc.client == nil {
		return apperrors.ErrNotConfigured
	}

	key := datastore.NameKey(importRunKind, r.RunID, nil)
	if _, err := dc.client.Put(ctx, key, r); err != nil {
		return fmt.Errorf("failed to save import run %s: %w", r.RunID, err)
	}
	return nil
}

// ListImportReports returns the latest import runs, newest first.
func (dc *DatastoreClient) ListImportReports(ctx context.Context, limit int) ([]domain.ImportReport, error) {
	if dc == nil || dc.client == nil {
		return nil, apperrors.ErrNotConfigured
	}

	q := datastore.NewQuery(importRunKind).Order("-StartedAt")
	if limit > 0 {
		q = q.Limit(limit)
	}

	result := []domain.ImportReport{}
	if _, err := dc.client.GetAll(ctx, q, &result); err != nil {
		return nil, fmt.Errorf("failed to list import runs: %w", err)
	}
	return result, nil
}
