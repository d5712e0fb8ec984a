package amazon

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"adpilot/internal/core/domain"
)

// reportMetrics is the column list requested from the Sponsored Products
// campaign report.
const reportMetrics = "campaignName,campaignId,campaignStatus,campaignBudget," +
	"impressions,clicks,cost,attributedSales30d," +
	"attributedUnitsOrdered30d,acos30d"

// reportRow is the raw shape of one campaign row in the downloaded report.
type reportRow struct {
	CampaignID   json.Number `json:"campaignId"`
	CampaignName string      `json:"campaignName"`
	Status       string      `json:"campaignStatus"`
	Budget       float64     `json:"campaignBudget"`
	Cost         float64     `json:"cost"`
	Sales        float64     `json:"attributedSales30d"`
	Units        int64       `json:"attributedUnitsOrdered30d"`
	Clicks       int64       `json:"clicks"`
	Impressions  int64       `json:"impressions"`
}

// CampaignPerformance requests a trailing-30-day Sponsored Products report,
// polls until Amazon has generated it, downloads the gzipped result and
// normalises the rows. The context bounds the whole flow including polling.
func (c *Client) CampaignPerformance(ctx context.Context) ([]domain.PerformanceRecord, error) {
	now := time.Now()
	payload, err := json.Marshal(map[string]string{
		"reportDate": now.Format("20060102"),
		"startDate":  now.AddDate(0, 0, -30).Format("20060102"),
		"endDate":    now.Format("20060102"),
		"metrics":    reportMetrics,
	})
	if err != nil {
		return nil, fmt.Errorf("amazon: marshal report request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/v2/sp/campaigns/report", payload)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("amazon: request report: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("amazon: report request returned %d: %s", resp.StatusCode, body)
	}
	var created struct {
		ReportID string `json:"reportId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("amazon: parse report request response: %w", err)
	}
	if created.ReportID == "" {
		return nil, fmt.Errorf("amazon: report request returned no reportId")
	}
	c.logger.Debug("report requested", slog.String("report_id", created.ReportID))

	location, err := c.pollReport(ctx, created.ReportID)
	if err != nil {
		return nil, err
	}
	rows, err := c.downloadReport(ctx, location)
	if err != nil {
		return nil, err
	}

	records := make([]domain.PerformanceRecord, 0, len(rows))
	pulledAt := time.Now()
	for _, row := range rows {
		var acos *float64
		if row.Sales > 0 {
			v := row.Cost / row.Sales
			acos = &v
		}
		records = append(records, domain.PerformanceRecord{
			CampaignID:    row.CampaignID.String(),
			CampaignName:  row.CampaignName,
			Status:        domain.ParseStatus(row.Status),
			CurrentBudget: row.Budget,
			Spend30d:      row.Cost,
			Sales30d:      row.Sales,
			Units30d:      row.Units,
			Clicks:        row.Clicks,
			Impressions:   row.Impressions,
			ACOS30d:       acos,
			PulledAt:      pulledAt,
		})
	}
	return records, nil
}

// pollReport waits for report generation, typically 30-60 seconds. It gives
// up after maxPolls attempts or when the context is cancelled.
func (c *Client) pollReport(ctx context.Context, reportID string) (string, error) {
	for attempt := 0; attempt < c.maxPolls; attempt++ {
		req, err := c.newRequest(ctx, http.MethodGet, "/v2/reports/"+reportID, nil)
		if err != nil {
			return "", err
		}
		resp, err := c.client.Do(req)
		if err != nil {
			return "", fmt.Errorf("amazon: poll report: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return "", fmt.Errorf("amazon: report status returned %d: %s", resp.StatusCode, body)
		}
		var status struct {
			Status   string `json:"status"`
			Location string `json:"location"`
		}
		err = json.NewDecoder(resp.Body).Decode(&status)
		resp.Body.Close()
		if err != nil {
			return "", fmt.Errorf("amazon: parse report status: %w", err)
		}

		switch status.Status {
		case "SUCCESS":
			return status.Location, nil
		case "FAILURE":
			return "", fmt.Errorf("amazon: report %s failed on the platform", reportID)
		}
		c.logger.Debug("report not ready", slog.String("status", status.Status), slog.Int("attempt", attempt+1))

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(c.pollInterval):
		}
	}
	return "", fmt.Errorf("amazon: report %s timed out after %d polls", reportID, c.maxPolls)
}

func (c *Client) downloadReport(ctx context.Context, location string) ([]reportRow, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("amazon: build download request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Amazon-Advertising-API-ClientId", c.cfg.ClientID)
	req.Header.Set("Amazon-Advertising-API-Scope", c.cfg.ProfileID)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("amazon: download report: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("amazon: report download returned %d", resp.StatusCode)
	}

	gz, err := gzip.NewReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("amazon: open gzipped report: %w", err)
	}
	defer gz.Close()

	var rows []reportRow
	if err := json.NewDecoder(gz).Decode(&rows); err != nil {
		return nil, fmt.Errorf("amazon: parse report rows: %w", err)
	}
	return rows, nil
}
