package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/meridian-specialty/underwriting-cli/internal/acord"
	"github.com/meridian-specialty/underwriting-cli/internal/ingest"
	"github.com/meridian-specialty/underwriting-cli/internal/ledger"
	"github.com/meridian-specialty/underwriting-cli/internal/model"
	"github.com/meridian-specialty/underwriting-cli/internal/narrative"
	"github.com/meridian-specialty/underwriting-cli/internal/report"
	"github.com/meridian-specialty/underwriting-cli/internal/risk"
	"github.com/meridian-specialty/underwriting-cli/internal/store"
)

var batchCmd = &cobra.Command{
	Use:   "batch <schedule-file>",
	Short: "Score a full property schedule",
	Long: `Score every property on a schedule, append the score columns, and
print the portfolio summary.

The schedule may be CSV or XLSX; a workbook holding both the schedule and a
loss run sheet is matched automatically. A separate loss run can be supplied
with --claims.

Examples:
  # Score a schedule and write the scored table next to it
  underwriting-cli batch sov.xlsx --output sov_scored.xlsx

  # Score against a separate loss run with 8 workers, persist all rows
  underwriting-cli batch sov.csv --claims lossrun.csv --workers 8 --save`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	f := batchCmd.Flags()
	f.String("claims", "", "loss run file (CSV/XLSX) matched against every property")
	f.String("output", "", "scored table output path (.csv or .xlsx)")
	f.Int("workers", 0, "concurrent scoring workers (default from config)")
	f.Bool("save", false, "persist every assessment to the configured store")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cfg.Validate("batch"); err != nil {
		return err
	}

	f := cmd.Flags()
	claimsPath, _ := f.GetString("claims")
	outputPath, _ := f.GetString("output")
	workers, _ := f.GetInt("workers")
	save, _ := f.GetBool("save")
	if workers <= 0 {
		workers = cfg.Batch.Workers
	}

	bundle, err := ingest.Load(args[0])
	if err != nil {
		return err
	}
	if bundle.Properties.Empty() {
		return eris.Errorf("batch: %s holds no property schedule", args[0])
	}

	claims := bundle.Claims
	if claimsPath != "" {
		lossRun, err := ingest.Load(claimsPath)
		if err != nil {
			return err
		}
		claims = lossRun.Claims
	}

	scored, results, err := newScorer().ScoreTableParallel(ctx, bundle.Properties, claims, workers)
	if err != nil {
		return err
	}
	zap.L().Info("schedule scored",
		zap.Int("properties", len(results)),
		zap.Int("workers", workers),
	)

	if outputPath != "" {
		if err := writeTable(outputPath, scored); err != nil {
			return err
		}
		zap.L().Info("scored table written", zap.String("path", outputPath))
	}

	if save {
		if err := saveBatch(ctx, bundle.Properties, results); err != nil {
			return err
		}
	}

	stats := narrative.Aggregate(results, scheduleTIVs(bundle.Properties))
	fmt.Fprintln(cmd.OutOrStdout(), report.Portfolio(stats, portfolioClient(bundle.Properties)))
	return nil
}

// scheduleTIVs reads the TIV column per row for the financial summary.
func scheduleTIVs(properties *ledger.Table) []float64 {
	tivs := make([]float64, properties.Len())
	for i := range tivs {
		tivs[i] = risk.ParseNumeric(properties.Get(i, acord.FieldTIV), 0)
	}
	return tivs
}

// portfolioClient returns the insured name when the whole schedule belongs
// to one client, "" otherwise.
func portfolioClient(properties *ledger.Table) string {
	name := properties.Get(0, acord.FieldNamedInsured)
	for i := 1; i < properties.Len(); i++ {
		if properties.Get(i, acord.FieldNamedInsured) != name {
			return ""
		}
	}
	return name
}

// saveBatch persists every scored row, using the bulk COPY path when the
// store supports it.
func saveBatch(ctx context.Context, properties *ledger.Table, results []model.RiskScoreResult) error {
	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck

	assessments := make([]model.Assessment, len(results))
	for i, res := range results {
		rec := acord.RecordFromRow(properties, i)
		assessments[i] = model.Assessment{
			PolicyID:     rec.AgencyCustomerID,
			NamedInsured: rec.NamedInsured,
			Address:      rec.DisplayAddress(),
			TIV:          risk.ParseNumeric(rec.TIV, 0),
			Result:       res,
		}
	}

	if bulk, ok := st.(store.BulkSaver); ok {
		n, err := bulk.SaveAssessmentsBulk(ctx, assessments)
		if err != nil {
			return err
		}
		zap.L().Info("assessments saved", zap.Int64("count", n))
		return nil
	}

	for _, a := range assessments {
		if _, err := st.SaveAssessment(ctx, a); err != nil {
			return err
		}
	}
	zap.L().Info("assessments saved", zap.Int("count", len(assessments)))
	return nil
}

// writeTable writes a scored table as CSV or XLSX, by extension.
func writeTable(path string, t *ledger.Table) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return writeTableCSV(path, t)
	case ".xlsx":
		return writeTableXLSX(path, t)
	default:
		return eris.Errorf("batch: unsupported output type %q", filepath.Ext(path))
	}
}

func writeTableCSV(path string, t *ledger.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "batch: create %s", path)
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)
	if err := w.Write(t.Columns); err != nil {
		return eris.Wrap(err, "batch: write header")
	}
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return eris.Wrap(err, "batch: write row")
		}
	}
	w.Flush()
	return eris.Wrap(w.Error(), "batch: flush csv")
}

func writeTableXLSX(path string, t *ledger.Table) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Scored Schedule")
	if err != nil {
		return eris.Wrap(err, "batch: add sheet")
	}

	header := sheet.AddRow()
	for _, c := range t.Columns {
		header.AddCell().SetString(c)
	}
	for _, row := range t.Rows {
		r := sheet.AddRow()
		for _, cell := range row {
			r.AddCell().SetString(cell)
		}
	}

	return eris.Wrapf(f.Save(path), "batch: save %s", path)
}
