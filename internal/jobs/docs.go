// Package jobs provides scheduled background tasks for the print shop.
//
// Jobs are built on github.com/robfig/cron/v3 and log through log/slog with a
// component attribute.
//
// # Available Jobs
//
// OverdueOrdersJob - logs every open order whose ship-by date is before today.
// The schedule is a standard five-field cron expression taken from
// OVERDUE_REPORT_SCHEDULE; the default is every 15 minutes.
//
// # Usage
//
//	overdue, err := jobs.NewOverdueOrdersJob(listOverdueHandler, cfg.OverdueReportSchedule, time.Now, logger)
//	if err != nil {
//		return err
//	}
//	jobManager := jobs.NewJobManager(overdue)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed run is logged and the job keeps its schedule. A failed start stops any
// job that was already running.
package jobs
