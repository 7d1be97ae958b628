package app

import (
	"context"
	"time"

	"healthhub/internal/task"
)

// ScanMessage is the result of every barcode scan.
const ScanMessage = "Barcode scanning is not available yet"

// ScanResult reports the outcome of a barcode scan.
type ScanResult struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
}

// ScanService runs the placeholder barcode scan.
type ScanService struct {
	runner *task.Runner
	delay  time.Duration
}

// NewScanService creates a ScanService whose scans take delay.
func NewScanService(runner *task.Runner, delay time.Duration) *ScanService {
	return &ScanService{runner: runner, delay: delay}
}

// Start begins a scan task for the user in ctx.
func (s *ScanService) Start(ctx context.Context) (*task.Handle, error) {
	user, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.runner.Start(KindScan, user.ID, func(ctx context.Context) (any, error) {
		if err := task.Sleep(ctx, s.delay); err != nil {
			return nil, err
		}
		return ScanResult{Message: ScanMessage}, nil
	})
}
