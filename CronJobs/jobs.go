package CronJobs

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"StockPilot/Reports"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// LowStockChecker is a scheduled scan for items at or below their reorder
// point. Findings are logged and written to an Excel report under reports/.
type LowStockChecker struct {
	cronScheduler  *cron.Cron
	db             *gorm.DB
	reportDir      string
	runImmediately bool
	jobID          cron.EntryID
}

// NewLowStockChecker creates a new low-stock checker.
func NewLowStockChecker(db *gorm.DB, runImmediately bool) *LowStockChecker {
	return &LowStockChecker{
		cronScheduler:  cron.New(cron.WithSeconds()),
		db:             db,
		reportDir:      "reports",
		runImmediately: runImmediately,
	}
}

// Start schedules the daily check at 7:00 AM.
func (s *LowStockChecker) Start() error {
	var err error
	s.jobID, err = s.cronScheduler.AddFunc("0 0 7 * * *", func() {
		log.Println("Running scheduled daily low-stock check")
		s.runCheck()
	})
	if err != nil {
		return fmt.Errorf("error scheduling cron job: %w", err)
	}

	s.cronScheduler.Start()
	log.Println("Low-stock scheduler started - will run daily at 7:00 AM")

	if s.runImmediately {
		log.Println("Running initial low-stock check")
		s.runCheck()
	}

	return nil
}

// Stop terminates the checker.
func (s *LowStockChecker) Stop() {
	if s.cronScheduler != nil {
		s.cronScheduler.Stop()
		log.Println("Low-stock scheduler stopped")
	}
}

// UpdateSchedule changes the schedule of the checker.
// Format: "0 0 7 * * *" = at 07:00:00 AM every day.
func (s *LowStockChecker) UpdateSchedule(schedule string) error {
	s.cronScheduler.Remove(s.jobID)

	var err error
	s.jobID, err = s.cronScheduler.AddFunc(schedule, func() {
		log.Println("Running scheduled low-stock check")
		s.runCheck()
	})
	if err != nil {
		return fmt.Errorf("error rescheduling cron job: %w", err)
	}
	return nil
}

func (s *LowStockChecker) runCheck() {
	f, count, err := Reports.BuildLowStockWorkbook(s.db)
	if err != nil {
		log.Printf("Low-stock check failed: %v", err)
		return
	}

	if count == 0 {
		log.Println("Low-stock check: all items above their reorder points")
		return
	}

	if err := os.MkdirAll(s.reportDir, 0755); err != nil {
		log.Printf("Error creating reports directory: %v", err)
		return
	}

	path := filepath.Join(s.reportDir, fmt.Sprintf("low-stock-%s.xlsx", time.Now().Format("2006-01-02")))
	if err := f.SaveAs(path); err != nil {
		log.Printf("Error saving low-stock report: %v", err)
		return
	}

	log.Printf("Low-stock check: %d item(s) need attention, report written to %s", count, path)
}
