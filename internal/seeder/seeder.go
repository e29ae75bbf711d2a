package seeder

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Lumos-Labs-HQ/shopseed/internal/config"
	"github.com/Lumos-Labs-HQ/shopseed/internal/database"
	"github.com/Lumos-Labs-HQ/shopseed/internal/export"
	"github.com/Lumos-Labs-HQ/shopseed/internal/manifest"
	"github.com/Lumos-Labs-HQ/shopseed/internal/metrics"
	"github.com/Lumos-Labs-HQ/shopseed/internal/types"
	"github.com/fatih/color"
)

const MetricsFile = "metrics.prom"

var ErrCountMismatch = errors.New("row count mismatch after load")

type RunOptions struct {
	Export bool
	Load   bool
	Verify bool
}

type Report struct {
	Manifest     manifest.Manifest
	Files        []string
	ManifestPath string
	MetricsPath  string
}

type Seeder struct {
	config  *config.Config
	adapter database.DatabaseAdapter
	metrics *metrics.Recorder
	now     func() time.Time
	quiet   bool
}

// NewSeeder wires a pipeline for cfg. adapter may be nil when the run only
// generates and exports.
func NewSeeder(cfg *config.Config, adapter database.DatabaseAdapter) *Seeder {
	s := &Seeder{
		config:  cfg,
		adapter: adapter,
		now:     time.Now,
	}
	if cfg.Metrics {
		s.metrics = metrics.New()
	}
	return s
}

// SetClock fixes the instant every trailing time window is anchored to.
func (s *Seeder) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Seeder) SetQuiet(quiet bool) {
	s.quiet = quiet
}

func (s *Seeder) Metrics() *metrics.Recorder {
	return s.metrics
}

// Generate runs the three generation stages against fresh streams seeded from
// the configuration.
func (s *Seeder) Generate(now time.Time) (*Dataset, error) {
	counts := s.config.Counts
	if err := counts.Validate(); err != nil {
		return nil, err
	}

	streams := NewStreams(s.config.Seed, s.config.FakerSeed, now)
	ds := &Dataset{}

	err := s.metrics.Time(metrics.StageReference, func() (err error) {
		ds.Reference, err = GenerateReference(counts, streams)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate reference data: %w", err)
	}

	err = s.metrics.Time(metrics.StageCatalog, func() (err error) {
		ds.Products, err = GenerateCatalog(counts.Products, ds.Reference, streams)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate catalog: %w", err)
	}

	err = s.metrics.Time(metrics.StageTransactions, func() (err error) {
		ds.Transactions, err = GenerateTransactions(counts, ds.Reference, ds.Products, streams)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate transactions: %w", err)
	}

	return ds, nil
}

func (s *Seeder) Run(ctx context.Context, opts RunOptions) (*Report, error) {
	if opts.Load && s.adapter == nil {
		return nil, fmt.Errorf("load requested without a database adapter")
	}

	now := s.now().UTC().Truncate(time.Second)
	s.logf(color.Cyan, "🌱 Generating dataset (seed %d, faker seed %d)...", s.config.Seed, s.config.FakerSeed)

	ds, err := s.Generate(now)
	if err != nil {
		return nil, err
	}
	tables := ds.Tables()
	for _, t := range tables {
		s.metrics.RowsGenerated(t.Name, t.Len())
	}
	s.logf(color.Green, "📊 Generated %s", summarize(types.Counts(tables)))

	report := &Report{Manifest: manifest.New(now, s.config.Seed, s.config.FakerSeed)}
	report.Manifest.Format = s.config.ExportFormat
	report.Manifest.Tables = types.Counts(tables)

	if opts.Export {
		if err := s.config.EnsureDirectories(); err != nil {
			return nil, err
		}
		err := s.metrics.Time(metrics.StageExport, func() (err error) {
			report.Files, err = export.PerformExport(ctx, tables, s.config.ExportPath, s.config.ExportFormat)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("failed to export flat files: %w", err)
		}
		report.Manifest.Files = relativeTo(s.config.ExportPath, report.Files)
		s.logf(color.Green, "💾 Wrote %d %s file(s) to %s", len(report.Files), s.config.ExportFormat, s.config.ExportPath)
	}

	if opts.Load {
		order, _ := NewSchemaGraph().InsertionOrder()
		s.logf(color.Cyan, "📋 Insertion order: %s", strings.Join(order, " → "))

		loader := NewLoader(s.adapter, s.config.BatchSizes(), s.metrics)
		loader.quiet = s.quiet
		if err := s.metrics.Time(metrics.StageLoad, func() error { return loader.Load(ctx, tables) }); err != nil {
			return nil, err
		}
		report.Manifest.Provider = s.config.Database.Provider
		report.Manifest.Loaded = true

		if opts.Verify {
			if err := s.Verify(ctx, tables); err != nil {
				return nil, err
			}
			s.logf(color.Green, "🔍 Row counts verified")
		}
	}

	if opts.Export {
		if err := s.writeArtifacts(report); err != nil {
			return nil, err
		}
	}

	s.logf(color.Green, "\n✅ Done")
	return report, nil
}

// Verify compares the committed row count of every table with what was generated.
func (s *Seeder) Verify(ctx context.Context, tables []types.Table) error {
	var mismatches []string
	for _, t := range tables {
		got, err := s.adapter.GetTableRowCount(ctx, t.Name)
		if err != nil {
			return fmt.Errorf("failed to count %s: %w", t.Name, err)
		}
		if got != int64(t.Len()) {
			mismatches = append(mismatches, fmt.Sprintf("%s: want %d, got %d", t.Name, t.Len(), got))
		}
	}
	if len(mismatches) > 0 {
		return fmt.Errorf("%w: %s", ErrCountMismatch, strings.Join(mismatches, "; "))
	}
	return nil
}

// Status reports the current row count of every target table in insertion order.
func (s *Seeder) Status(ctx context.Context) ([]types.TableCount, error) {
	if s.adapter == nil {
		return nil, fmt.Errorf("status requires a database adapter")
	}
	order, err := NewSchemaGraph().InsertionOrder()
	if err != nil {
		return nil, err
	}

	counts := make([]types.TableCount, 0, len(order))
	for _, name := range order {
		n, err := s.adapter.GetTableRowCount(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", name, err)
		}
		counts = append(counts, types.TableCount{Name: name, Rows: int(n)})
	}
	return counts, nil
}

func (s *Seeder) writeArtifacts(report *Report) error {
	path, err := manifest.Write(s.config.ExportPath, report.Manifest)
	if err != nil {
		return err
	}
	report.ManifestPath = path

	if s.metrics != nil {
		report.MetricsPath = filepath.Join(s.config.ExportPath, MetricsFile)
		if err := s.metrics.WriteTextfile(report.MetricsPath); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) logf(printer func(string, ...interface{}), format string, args ...interface{}) {
	if s.quiet {
		return
	}
	printer(format, args...)
}

func summarize(counts []types.TableCount) string {
	parts := make([]string, len(counts))
	for i, c := range counts {
		parts[i] = fmt.Sprintf("%s=%d", c.Name, c.Rows)
	}
	return strings.Join(parts, " ")
}

func relativeTo(dir string, paths []string) []string {
	rel := make([]string, len(paths))
	for i, p := range paths {
		if r, err := filepath.Rel(dir, p); err == nil {
			rel[i] = r
		} else {
			rel[i] = p
		}
	}
	return rel
}
