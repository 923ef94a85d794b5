package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/babytracker/babytracker/config"
	"github.com/babytracker/babytracker/events"
	"github.com/babytracker/babytracker/tracker"
)

const (
	exitOK       = 0
	exitFailure  = 1
	exitUsage    = 2
	exitNotFound = 3

	timeFlagLayout    = "2006-01-02T15:04:05"
	defaultListLimit  = 10
	defaultReportDays = 7
)

var (
	errUsage    = errors.New("usage error")
	errNotFound = errors.New("no event with this id")
)

var outputJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// invocation carries what a command needs besides its own flags.
type invocation struct {
	ctx     context.Context
	tracker *tracker.Tracker
	stdout  io.Writer
	stderr  io.Writer
	now     func() time.Time
}

type command struct {
	mutates bool
	run     func(inv invocation, args []string) error
}

var commands = map[string]command{
	"add-feeding":      {mutates: true, run: addFeeding},
	"add-dejection":    {mutates: true, run: addDejection},
	"add-weight":       {mutates: true, run: addWeight},
	"update-feeding":   {mutates: true, run: updateFeeding},
	"update-dejection": {mutates: true, run: updateDejection},
	"update-weight":    {mutates: true, run: updateWeight},
	"delete":           {mutates: true, run: deleteEvent},
	"list":             {run: listFeedings},
	"timeline":         {run: timeline},
	"summary":          {run: summary},
	"report":           {run: report},
	"export":           {run: export},
}

// usages is separate from commands, newFlagSet reads it and would otherwise form an initialization cycle.
var usages = map[string]string{
	"add-feeding":      "-baby NAME -type TYPE [-amount ML] [-duration MIN] [-notes TEXT] [-time TS]",
	"add-dejection":    "-baby NAME -type TYPE [-notes TEXT] [-time TS]",
	"add-weight":       "-baby NAME -kg KG [-notes TEXT] [-time TS]",
	"update-feeding":   "-id ID -type TYPE -time TS [-amount ML] [-duration MIN] [-notes TEXT]",
	"update-dejection": "-id ID -type TYPE -time TS [-notes TEXT]",
	"update-weight":    "-id ID -kg KG -time TS [-notes TEXT]",
	"delete":           "-kind KIND ID",
	"list":             "[-baby NAME] [-limit N]",
	"timeline":         "[-baby NAME] [-date YYYY-MM-DD]",
	"summary":          "[-baby NAME] [-date YYYY-MM-DD | -since TS -until TS]",
	"report":           "[-baby NAME] [-from YYYY-MM-DD] [-to YYYY-MM-DD]",
	"export":           "",
}

func run(ctx context.Context, cfg config.Config, args []string, stdout, stderr io.Writer, now func() time.Time) int {
	if len(args) == 0 {
		printUsage(stderr)
		return exitUsage
	}

	cmd, ok := commands[args[0]]
	if !ok {
		_, _ = fmt.Fprintf(stderr, "babytracker: unknown command %q\n", args[0])
		printUsage(stderr)
		return exitUsage
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	b, err := openBackend(ctx, cfg, logger)
	if err != nil {
		logger.Error("opening the storage backend failed", "backend", cfg.Backend, "error", err.Error())
		return exitFailure
	}
	defer b.close()

	inv := invocation{ctx: ctx, tracker: b.tracker, stdout: stdout, stderr: stderr, now: now}

	if err := cmd.run(inv, args[1:]); err != nil {
		return reportError(stderr, args[0], err)
	}

	if cmd.mutates {
		if err := b.persist(); err != nil {
			logger.Error("saving the store failed", "error", err.Error())
			return exitFailure
		}
	}

	return exitOK
}

func reportError(stderr io.Writer, name string, err error) int {
	switch {
	case errors.Is(err, flag.ErrHelp), errors.Is(err, errFlags):
		return exitUsage
	case errors.Is(err, errUsage):
		_, _ = fmt.Fprintf(stderr, "babytracker %s: %v\nusage: babytracker %s %s\n", name, err, name, usages[name])
		return exitUsage
	case errors.Is(err, errNotFound):
		_, _ = fmt.Fprintf(stderr, "babytracker %s: %v\n", name, err)
		return exitNotFound
	default:
		_, _ = fmt.Fprintf(stderr, "babytracker %s: %v\n", name, err)
		return exitFailure
	}
}

func printUsage(w io.Writer) {
	names := make([]string, 0, len(usages))
	for name := range usages {
		names = append(names, name)
	}
	sort.Strings(names)

	_, _ = fmt.Fprintln(w, "usage: babytracker <command> [flags]")
	for _, name := range names {
		_, _ = fmt.Fprintf(w, "  %-17s %s\n", name, usages[name])
	}
}

/***** mutations *****/

func addFeeding(inv invocation, args []string) error {
	fs, opt := newFlagSet("add-feeding", inv.stderr)
	baby := fs.String("baby", "", "baby name")
	feedingType := fs.String("type", "", "breast-left (bl), breast-right (br), bottle (b), solid (s)")
	amount := opt.float("amount", "amount in ml")
	duration := opt.uint32("duration", "duration in minutes")
	notes := opt.string("notes", "free text")
	ts := fs.String("time", "", "timestamp, defaults to now")

	if err := parse(fs, args, "baby", "type"); err != nil {
		return err
	}

	id, err := inv.tracker.AddFeeding(inv.ctx, *baby, *feedingType, amount(), duration(), notes(), inv.timestamp(*ts))
	if err != nil {
		return err
	}

	return inv.printJSON(idResult{ID: id})
}

func addDejection(inv invocation, args []string) error {
	fs, opt := newFlagSet("add-dejection", inv.stderr)
	baby := fs.String("baby", "", "baby name")
	dejectionType := fs.String("type", "", "urine (pee, u), poop (p)")
	notes := opt.string("notes", "free text")
	ts := fs.String("time", "", "timestamp, defaults to now")

	if err := parse(fs, args, "baby", "type"); err != nil {
		return err
	}

	id, err := inv.tracker.AddDejection(inv.ctx, *baby, *dejectionType, notes(), inv.timestamp(*ts))
	if err != nil {
		return err
	}

	return inv.printJSON(idResult{ID: id})
}

func addWeight(inv invocation, args []string) error {
	fs, opt := newFlagSet("add-weight", inv.stderr)
	baby := fs.String("baby", "", "baby name")
	kg := fs.Float64("kg", 0, "weight in kg")
	notes := opt.string("notes", "free text")
	ts := fs.String("time", "", "timestamp, defaults to now")

	if err := parse(fs, args, "baby", "kg"); err != nil {
		return err
	}

	id, err := inv.tracker.AddWeight(inv.ctx, *baby, *kg, notes(), inv.timestamp(*ts))
	if err != nil {
		return err
	}

	return inv.printJSON(idResult{ID: id})
}

func updateFeeding(inv invocation, args []string) error {
	fs, opt := newFlagSet("update-feeding", inv.stderr)
	id := fs.Uint64("id", 0, "feeding id")
	feedingType := fs.String("type", "", "breast-left (bl), breast-right (br), bottle (b), solid (s)")
	amount := opt.float("amount", "amount in ml")
	duration := opt.uint32("duration", "duration in minutes")
	notes := opt.string("notes", "free text")
	ts := fs.String("time", "", "timestamp")

	if err := parse(fs, args, "id", "type", "time"); err != nil {
		return err
	}

	found, err := inv.tracker.UpdateFeeding(inv.ctx, *id, *feedingType, amount(), duration(), notes(), *ts)

	return inv.printFound(*id, found, err)
}

func updateDejection(inv invocation, args []string) error {
	fs, opt := newFlagSet("update-dejection", inv.stderr)
	id := fs.Uint64("id", 0, "dejection id")
	dejectionType := fs.String("type", "", "urine (pee, u), poop (p)")
	notes := opt.string("notes", "free text")
	ts := fs.String("time", "", "timestamp")

	if err := parse(fs, args, "id", "type", "time"); err != nil {
		return err
	}

	found, err := inv.tracker.UpdateDejection(inv.ctx, *id, *dejectionType, notes(), *ts)

	return inv.printFound(*id, found, err)
}

func updateWeight(inv invocation, args []string) error {
	fs, opt := newFlagSet("update-weight", inv.stderr)
	id := fs.Uint64("id", 0, "weight id")
	kg := fs.Float64("kg", 0, "weight in kg")
	notes := opt.string("notes", "free text")
	ts := fs.String("time", "", "timestamp")

	if err := parse(fs, args, "id", "kg", "time"); err != nil {
		return err
	}

	found, err := inv.tracker.UpdateWeight(inv.ctx, *id, *kg, notes(), *ts)

	return inv.printFound(*id, found, err)
}

func deleteEvent(inv invocation, args []string) error {
	fs, _ := newFlagSet("delete", inv.stderr)
	kindFlag := fs.String("kind", "", "feeding, dejection or weight")

	if err := parse(fs, args, "kind"); err != nil {
		return err
	}

	if fs.NArg() != 1 {
		return fmt.Errorf("%w: exactly one id is required", errUsage)
	}

	id, err := strconv.ParseUint(fs.Arg(0), 10, 64)
	if err != nil {
		return fmt.Errorf("%w: invalid id %q", errUsage, fs.Arg(0))
	}

	kind, err := events.ParseKind(*kindFlag)
	if err != nil {
		return err
	}

	found, err := inv.tracker.Delete(inv.ctx, kind, id)

	return inv.printFound(id, found, err)
}

/***** queries *****/

func listFeedings(inv invocation, args []string) error {
	fs, _ := newFlagSet("list", inv.stderr)
	baby := fs.String("baby", "", "baby name, all babies if empty")
	limit := fs.Int("limit", defaultListLimit, "maximum number of feedings")

	if err := parse(fs, args); err != nil {
		return err
	}

	return inv.printResult(inv.tracker.ListFeedings(inv.ctx, *baby, *limit))
}

func timeline(inv invocation, args []string) error {
	fs, _ := newFlagSet("timeline", inv.stderr)
	baby := fs.String("baby", "", "baby name, all babies if empty")
	date := fs.String("date", "", "day YYYY-MM-DD, defaults to today")

	if err := parse(fs, args); err != nil {
		return err
	}

	return inv.printResult(inv.tracker.TimelineForDay(inv.ctx, *baby, inv.date(*date, 0)))
}

func summary(inv invocation, args []string) error {
	fs, _ := newFlagSet("summary", inv.stderr)
	baby := fs.String("baby", "", "baby name, all babies if empty")
	date := fs.String("date", "", "day YYYY-MM-DD, defaults to today")
	since := fs.String("since", "", "inclusive start, timestamp or date")
	until := fs.String("until", "", "exclusive end, timestamp or date")

	if err := parse(fs, args); err != nil {
		return err
	}

	if *since != "" || *until != "" {
		if *since == "" || *until == "" || *date != "" {
			return fmt.Errorf("%w: -since and -until go together and exclude -date", errUsage)
		}

		return inv.printResult(inv.tracker.SummaryBetween(inv.ctx, *baby, *since, *until))
	}

	return inv.printResult(inv.tracker.Summary(inv.ctx, *baby, inv.date(*date, 0)))
}

func report(inv invocation, args []string) error {
	fs, _ := newFlagSet("report", inv.stderr)
	baby := fs.String("baby", "", "baby name, all babies if empty")
	from := fs.String("from", "", "first day YYYY-MM-DD, defaults to six days ago")
	to := fs.String("to", "", "day after the last one YYYY-MM-DD, defaults to tomorrow")

	if err := parse(fs, args); err != nil {
		return err
	}

	return inv.printResult(inv.tracker.Report(inv.ctx, *baby, inv.date(*from, 1-defaultReportDays), inv.date(*to, 1)))
}

func export(inv invocation, args []string) error {
	fs, _ := newFlagSet("export", inv.stderr)

	if err := parse(fs, args); err != nil {
		return err
	}

	return inv.printResult(inv.tracker.Export())
}

/***** output *****/

type idResult struct {
	ID uint64 `json:"id"`
}

type foundResult struct {
	ID    uint64 `json:"id"`
	Found bool   `json:"found"`
}

func (inv invocation) printJSON(v any) error {
	data, err := outputJSON.Marshal(v)
	if err != nil {
		return err
	}

	return inv.printResult(data, nil)
}

func (inv invocation) printResult(data []byte, err error) error {
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(inv.stdout, string(data))

	return err
}

// printFound prints the outcome of an update or delete, a miss becomes errNotFound.
func (inv invocation) printFound(id uint64, found bool, err error) error {
	if err != nil {
		return err
	}

	if printErr := inv.printJSON(foundResult{ID: id, Found: found}); printErr != nil {
		return printErr
	}

	if !found {
		return errNotFound
	}

	return nil
}

// timestamp defaults to the current wall-clock time.
func (inv invocation) timestamp(ts string) string {
	if strings.TrimSpace(ts) != "" {
		return ts
	}

	return inv.now().Format(timeFlagLayout)
}

// date defaults to today shifted by offsetDays.
func (inv invocation) date(date string, offsetDays int) string {
	if strings.TrimSpace(date) != "" {
		return date
	}

	return inv.now().AddDate(0, 0, offsetDays).Format(events.DateLayout)
}
