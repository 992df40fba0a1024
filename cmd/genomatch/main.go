package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/genomatch/genomatch/internal/ai"
	"github.com/genomatch/genomatch/internal/analyzer"
	"github.com/genomatch/genomatch/internal/cache"
	"github.com/genomatch/genomatch/internal/config"
	"github.com/genomatch/genomatch/internal/database"
	"github.com/genomatch/genomatch/internal/logger"
	"github.com/genomatch/genomatch/internal/migrations"
	"github.com/genomatch/genomatch/internal/models"
	"github.com/genomatch/genomatch/internal/ratelimit"
	"github.com/genomatch/genomatch/internal/report"
	"github.com/genomatch/genomatch/internal/repositories"
	"github.com/genomatch/genomatch/internal/sources/clinvar"
	"github.com/genomatch/genomatch/internal/sources/rawdna"
)

const version = "0.1.0"

type referenceTable struct {
	Variants []models.ReferenceVariant
	Stats    clinvar.Stats
}

type genotypeTable struct {
	Calls []models.GenotypeCall
	Stats rawdna.Stats
}

func main() {
	var (
		clinvarPath = flag.String("clinvar", "", "path to ClinVar variant summary (tsv, optionally gzipped)")
		dnaPath     = flag.String("dna", "", "path to raw genotype file (23andMe or AncestryDNA)")
		configPath  = flag.String("config", "", "path to yaml config")
		outPath     = flag.String("out", "-", "export path, - for stdout")
		dbDSN       = flag.String("db", "", "result store DSN, overrides config and GENOMATCH_DB")
		noStore     = flag.Bool("no-store", false, "skip persisting the run to the result store")

		confirmedOnly = flag.Bool("confirmed-only", true, "show confirmed risks only")
		strict        = flag.Bool("strict", true, "hide records with conflicting interpretations")
		hideAmbiguous = flag.Bool("hide-ambiguous", true, "hide strand-ambiguous matches")

		explain  = flag.Bool("explain", false, "ask the local model to explain confirmed findings")
		question = flag.String("ask", "Explain my confirmed genetic risks in simple terms.", "question for the explanation model")
		debug    = flag.Bool("debug", false, "verbose logging and query tracing")
	)
	flag.Parse()

	level := zapcore.InfoLevel
	if *debug {
		level = zapcore.DebugLevel
	}
	if err := logger.Init(level); err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env found, using local environment")
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadFile(*configPath)
		if err != nil {
			logger.Fatal("config", zap.Error(err))
		}
	}
	cfg = cfg.ApplyEnv()
	if *dbDSN != "" {
		cfg.DatabaseDSN = *dbDSN
	}
	if *debug {
		cfg.Debug = true
	}

	if *clinvarPath == "" || *dnaPath == "" {
		fmt.Fprintln(os.Stderr, "usage: genomatch -clinvar variant_summary.txt.gz -dna genome.txt [flags]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	logger.Info("start", zap.String("version", version), zap.String("assembly", cfg.Assembly))

	refs, refDigest := loadReference(*clinvarPath, cfg.Assembly)
	calls, genoDigest := loadGenotypes(*dnaPath)

	start := time.Now()
	results := analyzer.Analyze(calls.Calls, refs.Variants)
	logger.Info("analyzed",
		zap.Int("matches", len(results)),
		zap.Duration("took", time.Since(start)))

	view := report.Apply(results, report.FilterOptions{
		ConfirmedOnly: *confirmedOnly,
		Strict:        *strict,
		HideAmbiguous: *hideAmbiguous,
	})
	summary := view.Summarize()
	logger.Info("summary",
		zap.Int("shown", summary.Total),
		zap.Int("homozygous", summary.Homozygous),
		zap.Int("heterozygous", summary.Heterozygous),
		zap.Int("ambiguous_hidden", summary.HiddenAmbiguous))

	if err := writeExport(*outPath, view, cfg.Delimiter()); err != nil {
		logger.Fatal("export", zap.Error(err))
	}

	if !*noStore {
		persistRun(cfg, refs, calls, refDigest, genoDigest, results)
	}

	if *explain {
		explainFindings(cfg, view, *question)
	}
}

// Session-scoped table caches keyed by input content digest.
var (
	referenceCache = cache.NewStore[referenceTable]()
	genotypeCache  = cache.NewStore[genotypeTable]()
)

func loadReference(path, assembly string) (referenceTable, string) {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Fatal("read reference file", zap.Error(err))
	}
	digest := cache.Digest(data)

	table, err := referenceCache.GetOrLoad(digest, func() (referenceTable, error) {
		variants, stats, err := clinvar.Load(bytes.NewReader(data), assembly)
		return referenceTable{Variants: variants, Stats: stats}, err
	})
	if err != nil {
		logger.Fatal("load reference", zap.Error(err))
	}

	logger.Info("reference loaded",
		zap.Int("rows", table.Stats.TotalRows),
		zap.Int("kept", table.Stats.Kept),
		zap.Int("filtered", table.Stats.FilteredOut),
		zap.Int("skipped", table.Stats.Skipped))
	return table, digest
}

func loadGenotypes(path string) (genotypeTable, string) {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Fatal("read genotype file", zap.Error(err))
	}
	digest := cache.Digest(data)

	table, err := genotypeCache.GetOrLoad(digest, func() (genotypeTable, error) {
		calls, stats, err := rawdna.Load(bytes.NewReader(data))
		return genotypeTable{Calls: calls, Stats: stats}, err
	})
	if err != nil {
		logger.Fatal("load genotypes", zap.Error(err))
	}

	logger.Info("genotypes loaded",
		zap.Int("rows", table.Stats.TotalRows),
		zap.Int("kept", table.Stats.Kept),
		zap.Int("dropped", table.Stats.Dropped))
	return table, digest
}

func writeExport(path string, view report.View, delimiter rune) error {
	if path == "-" {
		return report.WriteDelimited(os.Stdout, view, delimiter)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := report.WriteDelimited(f, view, delimiter); err != nil {
		return err
	}
	logger.Info("export written", zap.String("path", path))
	return nil
}

// persistRun records the run in the local result store. Persistence is best
// effort: a storage failure is logged, not fatal, because the results were
// already computed and exported.
func persistRun(cfg config.Config, refs referenceTable, calls genotypeTable, refDigest, genoDigest string, results []models.MatchResult) {
	ctx := context.Background()

	db, err := database.New(cfg.DatabaseDSN, cfg.Debug)
	if err != nil {
		logger.Warn("result store unavailable", zap.Error(err))
		return
	}
	defer db.Close()

	if err := migrations.Migrate(ctx, db); err != nil {
		logger.Warn("migrate result store", zap.Error(err))
		return
	}

	confirmed := 0
	for _, r := range results {
		if r.Status == models.StatusConfirmedRisk {
			confirmed++
		}
	}

	run := &models.AnalysisRun{
		RunID:           uuid.NewString(),
		Assembly:        cfg.Assembly,
		ReferenceDigest: refDigest,
		GenotypeDigest:  genoDigest,
		ReferenceRows:   refs.Stats.Kept,
		GenotypeRows:    calls.Stats.Kept,
		SkippedRows:     refs.Stats.Skipped + calls.Stats.Dropped,
		MatchCount:      len(results),
		ConfirmedCount:  confirmed,
		Status:          models.RunStatusRunning,
		StartTime:       time.Now(),
	}

	if prev, err := repositories.FindRunByDigests(ctx, db, refDigest, genoDigest); err == nil && prev != nil {
		logger.Info("inputs analyzed before", zap.String("run_id", prev.RunID))
	}

	if err := repositories.SaveRun(ctx, db, run, results); err != nil {
		logger.Warn("save run", zap.Error(err))
		return
	}
	if err := repositories.CompleteRun(ctx, db, run); err != nil {
		logger.Warn("complete run", zap.Error(err))
		return
	}
	logger.Info("run stored", zap.String("run_id", run.RunID))
}

func explainFindings(cfg config.Config, view report.View, question string) {
	contexts := report.ExplanationContexts(view, cfg.AI.MaxFindings)

	limiter := ratelimit.NewLimiter(cfg.AI.RateLimit)
	client := ai.NewClient(limiter, cfg.AI.BaseURL, cfg.AI.Model)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	answer, err := client.Explain(ctx, contexts, question)
	if err != nil {
		// Results above stay valid regardless.
		logger.Warn("explanation unavailable, is the model running?", zap.Error(err))
		return
	}
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, answer)
}
