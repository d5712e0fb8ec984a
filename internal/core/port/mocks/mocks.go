// Package mocks provides testify-backed mocks for the outbound ports, used
// by the usecase tests.
package mocks

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"adpilot/internal/core/domain"
	"adpilot/internal/core/port"
)

// MockAdsPlatform mocks port.AdsPlatform.
type MockAdsPlatform struct {
	mock.Mock
}

func (m *MockAdsPlatform) CampaignPerformance(ctx context.Context) ([]domain.PerformanceRecord, error) {
	args := m.Called(ctx)
	var records []domain.PerformanceRecord
	if v := args.Get(0); v != nil {
		records = v.([]domain.PerformanceRecord)
	}
	return records, args.Error(1)
}

func (m *MockAdsPlatform) UpdateBudget(ctx context.Context, campaignID string, newBudget float64) (json.RawMessage, error) {
	args := m.Called(ctx, campaignID, newBudget)
	var ack json.RawMessage
	if v := args.Get(0); v != nil {
		ack = v.(json.RawMessage)
	}
	return ack, args.Error(1)
}

// MockSpreadsheet mocks port.Spreadsheet.
type MockSpreadsheet struct {
	mock.Mock
}

func (m *MockSpreadsheet) AppendPerformance(ctx context.Context, day string, records []domain.PerformanceRecord) error {
	return m.Called(ctx, day, records).Error(0)
}

func (m *MockSpreadsheet) AppendBudgetChanges(ctx context.Context, day string, changes []port.BudgetChange) error {
	return m.Called(ctx, day, changes).Error(0)
}

func (m *MockSpreadsheet) AppendAlerts(ctx context.Context, day string, issues []domain.Issue) error {
	return m.Called(ctx, day, issues).Error(0)
}

// MockWarehouse mocks port.Warehouse.
type MockWarehouse struct {
	mock.Mock
}

func (m *MockWarehouse) InsertPerformance(ctx context.Context, day string, records []domain.PerformanceRecord) error {
	return m.Called(ctx, day, records).Error(0)
}

func (m *MockWarehouse) InsertBudgetChanges(ctx context.Context, day string, changes []port.BudgetChange) error {
	return m.Called(ctx, day, changes).Error(0)
}

// MockNotifier mocks port.Notifier.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendIssues(ctx context.Context, issues []domain.Issue) error {
	return m.Called(ctx, issues).Error(0)
}

func (m *MockNotifier) SendError(ctx context.Context, runErr error) error {
	return m.Called(ctx, runErr).Error(0)
}
