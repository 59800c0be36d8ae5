package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"printflow/internal/core/application/usecases/queries"
	"printflow/internal/pkg/logging"

	"github.com/robfig/cron/v3"
)

// DefaultOverdueSchedule runs the overdue report every 15 minutes.
const DefaultOverdueSchedule = "*/15 * * * *"

// OverdueOrdersLister is satisfied by queries.ListOverdueOrdersQueryHandler.
type OverdueOrdersLister interface {
	Handle(ctx context.Context, query queries.ListOverdueOrdersQuery) ([]queries.OrderSummary, error)
}

// OverdueOrdersJob periodically logs every open order whose ship-by date has
// passed. It only reports; nothing is changed.
type OverdueOrdersJob struct {
	lister   OverdueOrdersLister
	schedule string
	now      func() time.Time
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOverdueOrdersJob creates the job. schedule is a standard five-field cron
// expression; an empty schedule means DefaultOverdueSchedule.
func NewOverdueOrdersJob(
	lister OverdueOrdersLister,
	schedule string,
	now func() time.Time,
	logger *slog.Logger,
) (*OverdueOrdersJob, error) {
	if schedule == "" {
		schedule = DefaultOverdueSchedule
	}
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("invalid overdue report schedule %q: %w", schedule, err)
	}

	return &OverdueOrdersJob{
		lister:   lister,
		schedule: schedule,
		now:      now,
		cron:     cron.New(),
		logger:   logging.NewComponentLogger(logger, "overdue_orders_job"),
	}, nil
}

// Start registers the report with the scheduler and starts it.
func (j *OverdueOrdersJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		if _, err := j.Run(context.Background()); err != nil {
			j.logger.Error("Overdue orders report failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Overdue orders job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running report to finish.
func (j *OverdueOrdersJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Overdue orders job stopped")
}

// Run produces one report and returns the number of overdue orders.
func (j *OverdueOrdersJob) Run(ctx context.Context) (int, error) {
	now := j.now().UTC()
	query, err := queries.NewListOverdueOrdersQuery(now)
	if err != nil {
		return 0, err
	}

	orders, err := j.lister.Handle(ctx, query)
	if err != nil {
		return 0, err
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	for _, o := range orders {
		daysLate := 0
		if o.ShipByDate != nil {
			daysLate = int(today.Sub(*o.ShipByDate).Hours() / 24)
		}
		j.logger.WarnContext(ctx, "Order is overdue",
			"order_number", o.Number,
			"customer", o.CustomerName,
			"ship_by_date", o.ShipByDate,
			"days_late", daysLate,
			"express", o.IsExpress,
			"items", o.ItemCount,
		)
	}
	if len(orders) == 0 {
		j.logger.DebugContext(ctx, "No overdue orders")
	}
	return len(orders), nil
}
