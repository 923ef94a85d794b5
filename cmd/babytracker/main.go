// Command babytracker records feedings, dejections and weights of babies and prints
// timelines, summaries and day reports as JSON.
//
// Usage:
//
//	babytracker add-feeding -baby Emma -type bottle -amount 120
//	babytracker add-dejection -baby Emma -type poop
//	babytracker add-weight -baby Emma -kg 3.5
//	babytracker update-feeding -id 1 -type breast-left -duration 15 -time 2026-02-15T08:30
//	babytracker delete -kind feeding 1
//	babytracker list -baby Emma -limit 10
//	babytracker timeline -baby Emma -date 2026-02-15
//	babytracker summary -baby Emma -date 2026-02-15
//	babytracker summary -baby Emma -since 2026-02-01 -until 2026-02-15T12:00
//	babytracker report -baby Emma -from 2026-02-09 -to 2026-02-16
//	babytracker export
//
// The storage backend is selected with BABYTRACKER_BACKEND (json, sqlite or postgres).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/babytracker/babytracker/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cfg, err := config.Load()
	if err != nil {
		stop()
		_, _ = fmt.Fprintln(os.Stderr, "babytracker:", err)
		os.Exit(exitUsage)
	}

	code := run(ctx, cfg, os.Args[1:], os.Stdout, os.Stderr, time.Now)
	stop()
	os.Exit(code)
}
