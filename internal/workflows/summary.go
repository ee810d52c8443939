package workflows

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

// SummaryBackfillInput is the input for the summary backfill workflow.
type SummaryBackfillInput struct {
	BatchSize int
}

// SummaryBackfillResult reports one batch run.
type SummaryBackfillResult struct {
	Processed int
	Failed    int
}

// SummaryBackfillWorkflow fetches a batch of bills missing an AI summary,
// generates a summary for each, and stores it. Per-bill failures are
// recorded and skipped; the batch keeps going. The stored summary is
// announced on the broker so caches invalidate.
func SummaryBackfillWorkflow(ctx workflow.Context, input SummaryBackfillInput) (SummaryBackfillResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting summary backfill", "batchSize", input.BatchSize)

	var result SummaryBackfillResult

	actOpts := workflow.ActivityOptions{
		StartToCloseTimeout: 60 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, actOpts)

	// Step 1: fetch the batch of bills still missing a summary
	var batch []SummaryCandidate
	if err := workflow.ExecuteActivity(ctx, "FetchBillsMissingSummary", input.BatchSize).Get(ctx, &batch); err != nil {
		return result, err
	}
	if len(batch) == 0 {
		logger.Info("No bills missing summaries")
		return result, nil
	}

	// Step 2: summarize and store, one bill at a time
	for _, bill := range batch {
		var summary string
		if err := workflow.ExecuteActivity(ctx, "GenerateSummary", bill).Get(ctx, &summary); err != nil {
			logger.Warn("summary generation failed", "billID", bill.BillID, "error", err)
			result.Failed++
			continue
		}

		if err := workflow.ExecuteActivity(ctx, "StoreSummary", bill.BillID, summary).Get(ctx, nil); err != nil {
			logger.Warn("summary store failed", "billID", bill.BillID, "error", err)
			result.Failed++
			continue
		}

		// Step 3: announce the change; best effort
		_ = workflow.ExecuteActivity(ctx, "AnnounceBillUpdated", bill.BillID).Get(ctx, nil)
		result.Processed++
	}

	logger.Info("Summary backfill finished", "processed", result.Processed, "failed", result.Failed)
	return result, nil
}
