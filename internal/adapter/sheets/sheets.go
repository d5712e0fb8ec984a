// Package sheets implements the spreadsheet port on the Google Sheets API.
// Each tab gets a header row on first write, then plain appends.
package sheets

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"adpilot/internal/config/configs"
	"adpilot/internal/core/domain"
	"adpilot/internal/core/port"
)

var headers = map[string][]interface{}{
	"performance": {"Date", "Campaign", "Status", "Daily Budget ($)", "Spend 30d ($)",
		"Sales 30d ($)", "Units 30d", "ACOS 30d", "Clicks", "Impressions"},
	"budget": {"Date", "Campaign", "Old Budget ($)", "New Budget ($)", "Change ($)", "Direction", "Applied", "Reason"},
	"alerts": {"Date", "Level", "Detail"},
}

// Sink implements port.Spreadsheet.
type Sink struct {
	svc *sheets.Service
	cfg configs.Sheets
}

// NewSink builds the Sheets client. With no credentials file configured it
// falls back to application default credentials, which is how the sink runs
// inside a cloud scheduler environment.
func NewSink(ctx context.Context, cfg configs.Sheets) (*Sink, error) {
	opts := []option.ClientOption{option.WithScopes(sheets.SpreadsheetsScope)}
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets: create service: %w", err)
	}
	return &Sink{svc: svc, cfg: cfg}, nil
}

// AppendPerformance appends one row per campaign to the performance tab.
func (s *Sink) AppendPerformance(ctx context.Context, day string, records []domain.PerformanceRecord) error {
	rows := make([][]interface{}, 0, len(records))
	for _, r := range records {
		rows = append(rows, []interface{}{
			day, r.CampaignName, string(r.Status), r.CurrentBudget, r.Spend30d,
			r.Sales30d, r.Units30d, r.ACOSPercent(), r.Clicks, r.Impressions,
		})
	}
	return s.append(ctx, s.cfg.PerformanceTab, headers["performance"], rows)
}

// AppendBudgetChanges appends one row per actionable change to the change
// tab. Rejected changes are logged too, flagged NO in the Applied column.
func (s *Sink) AppendBudgetChanges(ctx context.Context, day string, changes []port.BudgetChange) error {
	rows := make([][]interface{}, 0, len(changes))
	for _, c := range changes {
		applied := "YES"
		if !c.Applied {
			applied = "NO"
		}
		rows = append(rows, []interface{}{
			day, c.CampaignName, c.OldBudget, c.NewBudget, c.Delta,
			strings.ToUpper(string(c.Direction)), applied, c.Reason,
		})
	}
	return s.append(ctx, s.cfg.BudgetTab, headers["budget"], rows)
}

// AppendAlerts appends one row per issue to the alerts tab.
func (s *Sink) AppendAlerts(ctx context.Context, day string, issues []domain.Issue) error {
	rows := make([][]interface{}, 0, len(issues))
	for _, i := range issues {
		rows = append(rows, []interface{}{day, string(i.Level), i.Message})
	}
	return s.append(ctx, s.cfg.AlertsTab, headers["alerts"], rows)
}

// append writes the header when A1 is empty, then appends rows. An empty row
// set is a no-op so single tabs can stay untouched on quiet runs.
func (s *Sink) append(ctx context.Context, tab string, header []interface{}, rows [][]interface{}) error {
	if len(rows) == 0 {
		return nil
	}

	probe, err := s.svc.Spreadsheets.Values.
		Get(s.cfg.SpreadsheetID, fmt.Sprintf("%s!A1:A1", tab)).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: probe %s header: %w", tab, err)
	}
	if len(probe.Values) == 0 {
		_, err = s.svc.Spreadsheets.Values.
			Update(s.cfg.SpreadsheetID, fmt.Sprintf("%s!A1", tab),
				&sheets.ValueRange{Values: [][]interface{}{header}}).
			ValueInputOption("USER_ENTERED").
			Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("sheets: write %s header: %w", tab, err)
		}
	}

	_, err = s.svc.Spreadsheets.Values.
		Append(s.cfg.SpreadsheetID, fmt.Sprintf("%s!A:Z", tab),
			&sheets.ValueRange{Values: rows}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: append to %s: %w", tab, err)
	}
	return nil
}
