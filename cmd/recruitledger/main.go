// Command recruitledger is an operator console over the recruiting ledger:
// it seeds sample data, prints ledgers and NIL totals, and archives or
// restores store snapshots.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"recruitledger/internal/backup"
	"recruitledger/internal/blob"
	"recruitledger/internal/config"
	"recruitledger/internal/core"
	"recruitledger/internal/logger"
	"recruitledger/internal/seed"
	"recruitledger/pkg/domain"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"go.uber.org/zap"
)

var exitFunc = os.Exit

const usage = `usage: recruitledger [-config file] [-metrics] <command> [args]

commands:
  seed                 load sample data into an empty ledger
  schools              list schools with people counts
  people [filters]     list people (-role -search -position -state -city -rating -school)
  nil                  print NIL totals per player
  pools                print funding pool utilization
  backup <key>         archive a snapshot under key
  restore <key>        replace the ledger with the snapshot under key
  snapshots [prefix]   list archived snapshots
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cli(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	exitFunc(code)
}

// app holds the wiring shared by every command.
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	store   domain.PersistentStore
	svc     *core.Service
	reg     *prometheus.Registry
	stdout  io.Writer
	archive func(context.Context) (*backup.Archiver, error)
}

func cli(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("recruitledger", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { _, _ = fmt.Fprint(stderr, usage) }
	configPath := fs.String("config", "", "path to a YAML config file")
	dumpMetrics := fs.Bool("metrics", false, "print operation metrics after the command")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	a, err := open(ctx, *configPath, stdout)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "recruitledger: %v\n", err)
		return 1
	}
	defer a.close()

	if err := a.dispatch(ctx, fs.Arg(0), fs.Args()[1:]); err != nil {
		var uerr usageError
		if errors.As(err, &uerr) {
			_, _ = fmt.Fprintf(stderr, "recruitledger: %v\n%s", err, usage)
			return 2
		}
		a.log.Error("command failed", zap.String("command", fs.Arg(0)), zap.Error(err))
		_, _ = fmt.Fprintf(stderr, "recruitledger: %v\n", err)
		return 1
	}
	if *dumpMetrics {
		if err := writeMetrics(stdout, a.reg); err != nil {
			_, _ = fmt.Fprintf(stderr, "recruitledger: %v\n", err)
			return 1
		}
	}
	return 0
}

type usageError string

func (e usageError) Error() string { return string(e) }

func open(ctx context.Context, configPath string, stdout io.Writer) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	reg := prometheus.NewRegistry()
	metrics, err := core.NewPrometheusMetricsRecorder(reg, cfg.Metrics.Namespace)
	if err != nil {
		return nil, err
	}
	store, err := core.OpenPersistentStore(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}
	a := &app{
		cfg:    cfg,
		log:    log,
		store:  store,
		svc:    core.NewService(store, core.WithLogger(log), core.WithMetrics(metrics)),
		reg:    reg,
		stdout: stdout,
	}
	a.archive = func(ctx context.Context) (*backup.Archiver, error) {
		blobs, err := blob.Open(ctx, cfg.Blob)
		if err != nil {
			return nil, err
		}
		return backup.New(store, blobs, backup.WithLogger(log)), nil
	}
	return a, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		a.log.Warn("close store", zap.Error(err))
	}
	_ = a.log.Sync()
}

func (a *app) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "seed":
		return a.seed(ctx)
	case "schools":
		return a.schools(ctx)
	case "people":
		return a.people(ctx, args)
	case "nil":
		return a.nilTotals(ctx)
	case "pools":
		return a.pools(ctx)
	case "backup":
		key, err := keyArg(cmd, args)
		if err != nil {
			return err
		}
		return a.backup(ctx, key)
	case "restore":
		key, err := keyArg(cmd, args)
		if err != nil {
			return err
		}
		return a.restore(ctx, key)
	case "snapshots":
		prefix := ""
		if len(args) > 0 {
			prefix = args[0]
		}
		return a.snapshots(ctx, prefix)
	default:
		return usageError(fmt.Sprintf("unknown command %q", cmd))
	}
}

func keyArg(cmd string, args []string) (string, error) {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		return "", usageError(cmd + " requires exactly one snapshot key")
	}
	return args[0], nil
}

func (a *app) seed(ctx context.Context) error {
	res, err := seed.Sample(ctx, a.svc, a.log)
	if err != nil {
		return err
	}
	if res.Skipped {
		_, err = fmt.Fprintln(a.stdout, "ledger already has data; seed skipped")
		return err
	}
	_, err = fmt.Fprintf(a.stdout, "seeded %d schools, %d people, %d funding pools\n", res.Schools, res.People, res.Pools)
	return err
}

func (a *app) schools(ctx context.Context) error {
	rows, err := a.svc.SchoolsWithCounts(ctx)
	if err != nil {
		return err
	}
	tw := table(a.stdout, "NAME", "LOCATION", "PLAYERS", "COACHES", "STAFF")
	for _, s := range rows {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\n", s.Name, location(s.City, s.State), s.PlayerCount, s.CoachCount, s.StaffCount)
	}
	return tw.Flush()
}

func (a *app) people(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("people", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var f core.PersonFilter
	fs.StringVar(&f.Role, "role", core.FilterAll, "player|coach|staff")
	fs.StringVar(&f.Search, "search", "", "name or school substring")
	fs.StringVar(&f.Position, "position", core.FilterAll, "player position")
	fs.StringVar(&f.State, "state", core.FilterAll, "school state")
	fs.StringVar(&f.City, "city", core.FilterAll, "school city")
	fs.StringVar(&f.Rating, "rating", core.FilterAll, "MaxPreps stars")
	fs.StringVar(&f.School, "school", core.FilterAll, "school id")
	if err := fs.Parse(args); err != nil {
		return usageError("people: " + err.Error())
	}
	all, err := a.svc.ListPeople(ctx)
	if err != nil {
		return err
	}
	matched := core.FilterPeople(all, f)
	tw := table(a.stdout, "NAME", "TYPE", "SCHOOL", "DETAIL")
	for _, p := range matched {
		v := p.View()
		school := "-"
		if v.School != nil {
			school = v.School.Name
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", v.FullName(), v.Type, school, detail(p))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err = fmt.Fprintf(a.stdout, "showing %d of %d people\n", len(matched), len(all))
	return err
}

func detail(p domain.PersonFull) string {
	switch v := p.(type) {
	case *domain.PlayerFull:
		out := joinValues(v.Player.Positions, "/")
		if v.Rating != nil && v.Rating.MaxPreps != nil {
			out += fmt.Sprintf(" %d*", *v.Rating.MaxPreps)
		}
		return out
	case *domain.CoachFull:
		return joinValues(v.Coach.Specialties, ", ")
	case *domain.StaffFull:
		return joinValues(v.Staff.Specialties, ", ")
	}
	return ""
}

func joinValues[T ~string](values []T, sep string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, sep)
}

func (a *app) nilTotals(ctx context.Context) error {
	summary, err := a.svc.NILSummary(ctx)
	if err != nil {
		return err
	}
	names := map[string]string{}
	players, err := a.svc.ListPlayers(ctx)
	if err != nil {
		return err
	}
	for _, p := range players {
		names[p.ID] = p.FullName()
	}
	tw := table(a.stdout, "PLAYER", "INSTITUTIONAL", "EXTERNAL EST.", "EXTERNAL COMMITTED", "TOTAL")
	for _, t := range summary.Players {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", names[t.PlayerID],
			money(t.InstitutionalAnnual), money(t.ExternalEstimated), money(t.ExternalCommitted), money(t.Total()))
	}
	_, _ = fmt.Fprintf(tw, "ALL\t%s\t%s\t%s\t%s\n", money(summary.InstitutionalAnnual), money(summary.ExternalEstimated),
		money(summary.ExternalCommitted), money(summary.InstitutionalAnnual+summary.ExternalEstimated))
	return tw.Flush()
}

func (a *app) pools(ctx context.Context) error {
	rows, err := a.svc.FundingPoolUtilization(ctx)
	if err != nil {
		return err
	}
	tw := table(a.stdout, "TEAM", "CYCLE", "TYPE", "CAP", "TOTAL", "COMMITTED", "REMAINING", "OVER")
	for _, u := range rows {
		cycle := "-"
		if u.Pool.RecruitingCycleID != nil {
			cycle = *u.Pool.RecruitingCycleID
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%t\n", u.Pool.TeamID, cycle, u.Pool.PoolType, u.Pool.CapType,
			money(u.Pool.TotalAmount), money(u.Committed), money(u.Remaining), u.OverCap)
	}
	return tw.Flush()
}

func (a *app) backup(ctx context.Context, key string) error {
	arch, err := a.archive(ctx)
	if err != nil {
		return err
	}
	info, err := arch.Backup(ctx, key)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(a.stdout, "wrote %s (%d bytes, %s records)\n", info.Key, info.Size, info.Metadata["records"])
	return err
}

func (a *app) restore(ctx context.Context, key string) error {
	arch, err := a.archive(ctx)
	if err != nil {
		return err
	}
	snap, err := arch.Restore(ctx, key)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(a.stdout, "restored %d records from %s (taken %s)\n", snap.Count(), key, snap.TakenAt.Format(time.RFC3339))
	return err
}

func (a *app) snapshots(ctx context.Context, prefix string) error {
	arch, err := a.archive(ctx)
	if err != nil {
		return err
	}
	infos, err := arch.List(ctx, prefix)
	if err != nil {
		return err
	}
	tw := table(a.stdout, "KEY", "BYTES", "MODIFIED")
	for _, info := range infos {
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%s\n", info.Key, info.Size, info.LastModified.Format(time.RFC3339))
	}
	return tw.Flush()
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}

func table(w io.Writer, headers ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, strings.Join(headers, "\t"))
	return tw
}

func location(city *string, state *domain.USState) string {
	var parts []string
	if city != nil && *city != "" {
		parts = append(parts, *city)
	}
	if state != nil {
		parts = append(parts, string(*state))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
