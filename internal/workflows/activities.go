package workflows

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/repcheck/repcheck-api/internal/core/ports"
	"github.com/repcheck/repcheck-api/internal/pkg/metrics"
)

// SummaryCandidate is the slice of a bill the summarizer needs.
type SummaryCandidate struct {
	BillID string
	Title  string
}

// SummaryActivities holds the activity implementations for the summary
// backfill workflow.
type SummaryActivities struct {
	Bills      ports.BillRepository
	Summarizer ports.Summarizer
	Publisher  ports.EventPublisher
}

// FetchBillsMissingSummary returns up to limit bills that still lack an
// AI summary.
func (a *SummaryActivities) FetchBillsMissingSummary(ctx context.Context, limit int) ([]SummaryCandidate, error) {
	bills, err := a.Bills.BillsMissingSummary(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch bills missing summary: %w", err)
	}

	out := make([]SummaryCandidate, 0, len(bills))
	for _, b := range bills {
		out = append(out, SummaryCandidate{BillID: b.ID, Title: b.Title})
	}
	return out, nil
}

// GenerateSummary produces a plain-language summary for one bill.
func (a *SummaryActivities) GenerateSummary(ctx context.Context, bill SummaryCandidate) (string, error) {
	summary, err := a.Summarizer.Summarize(ctx, bill.BillID, bill.Title)
	if err != nil {
		metrics.SummaryFailures.Inc()
		return "", fmt.Errorf("summarize bill %s: %w", bill.BillID, err)
	}
	return summary, nil
}

// StoreSummary persists the summary on the bill record.
func (a *SummaryActivities) StoreSummary(ctx context.Context, billID, summary string) error {
	if err := a.Bills.UpdateSummary(ctx, billID, summary); err != nil {
		return fmt.Errorf("store summary for bill %s: %w", billID, err)
	}
	metrics.SummariesGenerated.Inc()
	return nil
}

// AnnounceBillUpdated publishes the change so API caches invalidate.
func (a *SummaryActivities) AnnounceBillUpdated(ctx context.Context, billID string) error {
	if a.Publisher == nil {
		slog.Debug("no publisher configured, skipping announce", "bill_id", billID)
		return nil
	}
	return a.Publisher.PublishBillUpdated(ctx, billID)
}
