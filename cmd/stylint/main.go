package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"github.com/codewithboateng/stylint/internal/analyzer"
	"github.com/codewithboateng/stylint/internal/api"
	"github.com/codewithboateng/stylint/internal/loader"
	"github.com/codewithboateng/stylint/internal/report"
	"github.com/codewithboateng/stylint/internal/rules"
	"github.com/codewithboateng/stylint/internal/rulesdsl"
	"github.com/codewithboateng/stylint/internal/shared"
	"github.com/codewithboateng/stylint/internal/storage"
	"github.com/codewithboateng/stylint/internal/sym"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "analyze":
		analyzeCmd(os.Args[2:])
	case "report":
		reportCmd(os.Args[2:])
	case "diff":
		diffCmd(os.Args[2:])
	case "serve":
		serveCmd(os.Args[2:])
	case "watch":
		watchCmd(os.Args[2:])
	case "version":
		fmt.Println("stylint convention linter, schema:", sym.SchemaVersion)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `stylint - coding-convention linter

Usage:
  stylint analyze --path <symbols-dir> --out <reports-dir> [--db ./stylint.db] [--severity WARNING] [--disable R1,R2] [--packs ./rules.yaml] [--config ./configs/stylint.yaml]
  stylint report  --run <run-id>       --out <reports-dir> [--db ./stylint.db] [--config ./configs/stylint.yaml]
  stylint diff    --base <run-id> --head <run-id> --out <reports-dir> [--db ./stylint.db]
  stylint serve   [--addr :8080] [--db ./stylint.db] [--config ./configs/stylint.yaml]
  stylint watch   --path <symbols-dir> --out <reports-dir> [--db ./stylint.db]
  stylint version
`)
}

// buildRegistry assembles the built-in rules plus any YAML rule packs.
func buildRegistry(threshold string, disabled map[string]bool, packs []string) (*rules.Registry, error) {
	reg, err := rules.Default(rules.Settings{
		SeverityThreshold: threshold,
		Disabled:          disabled,
	})
	if err != nil {
		return nil, err
	}
	for _, p := range packs {
		n, err := rulesdsl.LoadAndRegister(p, reg)
		if err != nil {
			return nil, fmt.Errorf("rule pack %s: %w", p, err)
		}
		slog.Info("rule pack loaded", "path", p, "rules", n)
	}
	return reg, nil
}

type analyzeOpts struct {
	inPath    string
	outDir    string
	dbPath    string
	threshold string
	disabled  map[string]bool
	packs     []string
}

// runAnalysis is the full analyze pipeline shared by analyze and watch.
func runAnalysis(ctx context.Context, o analyzeOpts) (report.Report, error) {
	reg, err := buildRegistry(o.threshold, o.disabled, o.packs)
	if err != nil {
		return report.Report{}, err
	}

	run, diags, err := loader.Load(o.inPath)
	if err != nil {
		return report.Report{}, err
	}
	if len(diags.Warnings) > 0 {
		slog.Warn("loader warnings", "warnings", diags.Warnings)
	}
	run.ID = "run-" + uuid.NewString()
	run.StartedAt = time.Now().UTC()
	run.Context.SeverityThreshold = o.threshold
	for id := range o.disabled {
		run.Context.DisabledRules = append(run.Context.DisabledRules, id)
	}

	rep, err := analyzer.New(reg).AnalyzeAll(ctx, run.Units)
	if err != nil {
		return report.Report{}, err
	}

	db, err := storage.OpenSQLite(o.dbPath)
	if err != nil {
		return report.Report{}, fmt.Errorf("db open: %w", err)
	}
	defer db.Close()
	if err := db.CreateSchema(); err != nil {
		return report.Report{}, fmt.Errorf("db schema: %w", err)
	}

	if waivers, err := db.ListWaivers(true); err == nil && len(waivers) > 0 {
		kept, waived := rules.ApplyWaivers(rep.Violations, waivers)
		if waived > 0 {
			slog.Info("waivers applied", "waived", waived)
			rep = report.New(kept)
		}
	}

	run.Violations = rep.Violations
	if err := db.SaveRun(&run); err != nil {
		return report.Report{}, fmt.Errorf("db save run: %w", err)
	}

	jsonPath, _ := report.WriteJSON(run.ID, o.outDir, &run)
	htmlPath, _ := report.WriteHTML(run.ID, o.outDir, &run)
	slog.Info("analyze complete",
		"run", run.ID,
		"violations", len(rep.Violations),
		"json", jsonPath,
		"html", htmlPath,
		"db", filepath.Clean(o.dbPath),
	)
	return rep, nil
}

func analyzeCmd(args []string) {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	inPath := fs.String("path", "", "Path to source-unit directory")
	outDir := fs.String("out", "", "Output directory for reports")
	dbPath := fs.String("db", "", "SQLite database path")
	severity := fs.String("severity", "", "Minimum severity to report (INFO|WARNING|ERROR)")
	disable := fs.String("disable", "", "Comma-separated rule IDs to disable")
	packs := fs.String("packs", "", "Comma-separated YAML rule pack paths")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	o := resolveOpts(cfg, *inPath, *outDir, *dbPath, *severity, *disable, *packs)
	if o.inPath == "" {
		fmt.Fprintln(os.Stderr, "analyze: --path (or analysis.sources in config) is required")
		os.Exit(2)
	}
	if err := os.MkdirAll(o.outDir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, "analyze: cannot create out dir:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rep, err := runAnalysis(ctx, o)
	if err != nil {
		var perr *loader.ParseError
		if errors.As(err, &perr) {
			fmt.Fprintln(os.Stderr, "analyze:", perr)
		} else {
			slog.Error("analyze failed", "err", err)
		}
		os.Exit(1)
	}

	_ = report.RenderText(os.Stdout, rep)
	report.RenderSummary(os.Stdout, rep)
	os.Exit(rep.ExitCode())
}

func resolveOpts(cfg shared.Config, inPath, outDir, dbPath, severity, disable, packs string) analyzeOpts {
	// precedence: flags > config > defaults
	if inPath == "" && len(cfg.Analysis.Sources) > 0 {
		inPath = cfg.Analysis.Sources[0]
	}
	if outDir == "" {
		outDir = cfg.Reporting.OutDir
	}
	if dbPath == "" {
		dbPath = cfg.Database.DSN
	}
	if severity == "" {
		severity = cfg.Analysis.SeverityThreshold
	}
	disabled := cfg.DisabledSet()
	for _, id := range strings.Split(disable, ",") {
		id = strings.ToUpper(strings.TrimSpace(id))
		if id != "" {
			disabled[id] = true
		}
	}
	packList := append([]string{}, cfg.Analysis.RulePacks...)
	for _, p := range strings.Split(packs, ",") {
		if p = strings.TrimSpace(p); p != "" {
			packList = append(packList, p)
		}
	}
	return analyzeOpts{
		inPath:    inPath,
		outDir:    outDir,
		dbPath:    dbPath,
		threshold: strings.ToUpper(severity),
		disabled:  disabled,
		packs:     packList,
	}
}

func reportCmd(args []string) {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	runID := fs.String("run", "", "Run ID")
	outDir := fs.String("out", "", "Output directory")
	dbPath := fs.String("db", "", "SQLite database path")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	if *outDir == "" {
		*outDir = cfg.Reporting.OutDir
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	if *runID == "" {
		fmt.Fprintln(os.Stderr, "report: --run is required")
		os.Exit(2)
	}

	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	run, err := db.LoadRun(*runID)
	if err != nil {
		slog.Error("load run error", "err", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		slog.Error("cannot create out dir", "err", err)
		os.Exit(1)
	}
	jsonPath, _ := report.WriteJSON(run.ID, *outDir, &run)
	htmlPath, _ := report.WriteHTML(run.ID, *outDir, &run)
	rep := report.Report{Violations: run.Violations}
	_ = report.RenderText(os.Stdout, rep)
	fmt.Printf("Report OK\n  Run: %s\n  JSON: %s\n  HTML: %s\n", run.ID, jsonPath, htmlPath)
}

func diffCmd(args []string) {
	fs := flag.NewFlagSet("diff", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	base := fs.String("base", "", "Base run ID")
	head := fs.String("head", "", "Head run ID")
	outDir := fs.String("out", "", "Output directory")
	dbPath := fs.String("db", "", "SQLite database path")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	if *outDir == "" {
		*outDir = cfg.Reporting.OutDir
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	if *base == "" || *head == "" {
		fmt.Fprintln(os.Stderr, "diff: --base and --head are required")
		os.Exit(2)
	}
	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	br, err := db.LoadRun(*base)
	if err != nil {
		slog.Error("load base run error", "err", err)
		os.Exit(1)
	}
	hr, err := db.LoadRun(*head)
	if err != nil {
		slog.Error("load head run error", "err", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		slog.Error("cannot create out dir", "err", err)
		os.Exit(1)
	}
	path, _ := report.WriteDiffJSON(*base, *head, *outDir, &br, &hr)
	fmt.Printf("Diff OK\n  %s\n", path)
}

func serveCmd(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	addr := fs.String("addr", "", "Listen address")
	dbPath := fs.String("db", "", "SQLite database path")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	logger := shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	if *addr == "" {
		*addr = cfg.Server.Addr
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}

	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.CreateSchema(); err != nil {
		slog.Error("db schema error", "err", err)
		os.Exit(1)
	}

	reg, err := buildRegistry(cfg.Analysis.SeverityThreshold, cfg.DisabledSet(), cfg.Analysis.RulePacks)
	if err != nil {
		slog.Error("registry error", "err", err)
		os.Exit(1)
	}

	srv := &api.Server{
		DB:              db,
		UserStore:       db,
		Registry:        reg,
		Logger:          logger,
		SessionDuration: time.Duration(cfg.Server.SessionHours) * time.Hour,
	}
	slog.Info("serving API", "addr", *addr)
	if err := http.ListenAndServe(*addr, srv.Routes()); err != nil {
		slog.Error("server error", "err", err)
		os.Exit(1)
	}
}

func watchCmd(args []string) {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	inPath := fs.String("path", "", "Path to source-unit directory")
	outDir := fs.String("out", "", "Output directory for reports")
	dbPath := fs.String("db", "", "SQLite database path")
	severity := fs.String("severity", "", "Minimum severity to report")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	o := resolveOpts(cfg, *inPath, *outDir, *dbPath, *severity, "", "")
	if o.inPath == "" {
		fmt.Fprintln(os.Stderr, "watch: --path is required")
		os.Exit(2)
	}
	if err := os.MkdirAll(o.outDir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, "watch: cannot create out dir:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		slog.Error("watcher error", "err", err)
		os.Exit(1)
	}
	defer watcher.Close()
	if err := addWatchDirs(watcher, o.inPath); err != nil {
		slog.Error("watch add error", "err", err)
		os.Exit(1)
	}

	// initial pass
	if _, err := runAnalysis(ctx, o); err != nil && ctx.Err() == nil {
		slog.Error("analysis error", "err", err)
	}

	// debounce bursts of file events into one re-run
	var timer *time.Timer
	rerun := make(chan struct{}, 1)
	schedule := func() {
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(500*time.Millisecond, func() {
			select {
			case rerun <- struct{}{}:
			default:
			}
		})
	}

	slog.Info("watching for changes", "path", o.inPath)
	for {
		select {
		case <-ctx.Done():
			slog.Info("watch stopped")
			return
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				schedule()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("watch error", "err", err)
		case <-rerun:
			if _, err := runAnalysis(ctx, o); err != nil && ctx.Err() == nil {
				slog.Error("analysis error", "err", err)
			}
		}
	}
}

func addWatchDirs(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(p)
		}
		return nil
	})
}
