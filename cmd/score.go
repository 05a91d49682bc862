package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/meridian-specialty/underwriting-cli/internal/acord"
	"github.com/meridian-specialty/underwriting-cli/internal/ingest"
	"github.com/meridian-specialty/underwriting-cli/internal/ledger"
	"github.com/meridian-specialty/underwriting-cli/internal/model"
	"github.com/meridian-specialty/underwriting-cli/internal/narrative"
	"github.com/meridian-specialty/underwriting-cli/internal/report"
	"github.com/meridian-specialty/underwriting-cli/internal/risk"
)

var scoreCmd = &cobra.Command{
	Use:   "score <submission-file>",
	Short: "Score a single property submission",
	Long: `Score one commercial property submission across property, claims
history, geographic, and protection risk.

The submission may be a JSON field map (ACORD extraction output), a CSV, or
an XLSX workbook. A separate loss run can be supplied with --claims; loss
history embedded in the submission is used otherwise.

Examples:
  # Score an extracted ACORD form and print the markdown report
  underwriting-cli score acord_125.json

  # Score with a separate loss run and write an HTML report
  underwriting-cli score sov.xlsx --claims lossrun.csv --html report.html

  # Score, generate an LLM narrative, and persist the assessment
  underwriting-cli score acord_125.json --narrative --save --policy-id POL-1001`,
	Args: cobra.ExactArgs(1),
	RunE: runScore,
}

func init() {
	f := scoreCmd.Flags()
	f.String("claims", "", "loss run file (CSV/XLSX) matched against the property")
	f.Int("row", 0, "schedule row to score when the submission has several")
	f.String("policy-id", "", "policy identifier for persistence (default: Agency Customer ID)")
	f.Bool("narrative", false, "generate the analysis summary with the configured model")
	f.Bool("save", false, "persist the assessment to the configured store")
	f.Bool("json", false, "emit the raw scoring result as JSON instead of markdown")
	f.String("html", "", "also write an HTML report to this path")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cfg.Validate("score"); err != nil {
		return err
	}

	f := cmd.Flags()
	claimsPath, _ := f.GetString("claims")
	row, _ := f.GetInt("row")
	policyID, _ := f.GetString("policy-id")
	wantNarrative, _ := f.GetBool("narrative")
	save, _ := f.GetBool("save")
	asJSON, _ := f.GetBool("json")
	htmlPath, _ := f.GetString("html")

	rec, claims, err := loadSubmission(args[0], claimsPath, row)
	if err != nil {
		return err
	}

	res := newScorer().Score(rec, claims)
	zap.L().Info("property scored",
		zap.String("named_insured", rec.NamedInsured),
		zap.Float64("overall", res.OverallScore),
		zap.String("risk_level", string(res.RiskLevel)),
	)

	var gen narrative.Generator
	if wantNarrative {
		if err := cfg.ValidateNarrative(); err != nil {
			return err
		}
		gen = newGenerator()
	}
	summary := narrative.SummaryOrFallback(ctx, gen, res)

	if save {
		if err := saveAssessment(ctx, policyID, rec, res); err != nil {
			return err
		}
	}

	if htmlPath != "" {
		if err := writeHTMLReport(htmlPath, rec, res); err != nil {
			return err
		}
	}

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(res), "score: encode result")
	}

	fmt.Fprintln(cmd.OutOrStdout(), report.Property(rec, res, summary))
	return nil
}

// loadSubmission resolves the property record and claims ledger from the
// submission file plus an optional separate loss run. An explicit loss run
// replaces claims found in the submission itself.
func loadSubmission(path, claimsPath string, row int) (model.PropertyRecord, *ledger.Table, error) {
	bundle, err := ingest.Load(path)
	if err != nil {
		return model.PropertyRecord{}, nil, err
	}
	if bundle.Properties.Empty() {
		return model.PropertyRecord{}, nil, eris.Errorf("score: %s holds no property schedule", path)
	}
	if row < 0 || row >= bundle.Properties.Len() {
		return model.PropertyRecord{}, nil, eris.Errorf("score: row %d out of range (schedule has %d rows)", row, bundle.Properties.Len())
	}

	claims := bundle.Claims
	if claimsPath != "" {
		lossRun, err := ingest.Load(claimsPath)
		if err != nil {
			return model.PropertyRecord{}, nil, err
		}
		if lossRun.Claims.Empty() {
			return model.PropertyRecord{}, nil, eris.Errorf("score: %s holds no claims ledger", claimsPath)
		}
		claims = lossRun.Claims
	}

	return acord.RecordFromRow(bundle.Properties, row), claims, nil
}

func saveAssessment(ctx context.Context, policyID string, rec model.PropertyRecord, res model.RiskScoreResult) error {
	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck

	if policyID == "" {
		policyID = rec.AgencyCustomerID
	}
	saved, err := st.SaveAssessment(ctx, model.Assessment{
		PolicyID:     policyID,
		NamedInsured: rec.NamedInsured,
		Address:      rec.DisplayAddress(),
		TIV:          risk.ParseNumeric(rec.TIV, 0),
		Result:       res,
	})
	if err != nil {
		return err
	}
	zap.L().Info("assessment saved", zap.String("id", saved.ID), zap.String("policy_id", saved.PolicyID))
	return nil
}

func writeHTMLReport(path string, rec model.PropertyRecord, res model.RiskScoreResult) error {
	out, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "score: create %s", path)
	}
	defer out.Close() //nolint:errcheck

	if err := report.WriteHTML(out, rec, res, time.Now()); err != nil {
		return err
	}
	zap.L().Info("html report written", zap.String("path", path))
	return nil
}
