package main

import (
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/meridian-specialty/underwriting-cli/internal/model"
	"github.com/meridian-specialty/underwriting-cli/internal/store"
)

var assessmentsCmd = &cobra.Command{
	Use:   "assessments",
	Short: "Inspect persisted assessments",
}

var assessmentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved assessments",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		f := cmd.Flags()
		policyID, _ := f.GetString("policy-id")
		riskLevel, _ := f.GetString("risk-level")
		limit, _ := f.GetInt("limit")
		offset, _ := f.GetInt("offset")

		out, err := st.ListAssessments(ctx, store.AssessmentFilter{
			PolicyID:  policyID,
			RiskLevel: model.RiskLevel(riskLevel),
			Limit:     limit,
			Offset:    offset,
		})
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tPOLICY\tINSURED\tSCORE\tLEVEL\tCREATED")
		for _, a := range out {
			fmt.Fprintf(w, "%s\t%s\t%s\t%.1f\t%s\t%s\n",
				a.ID, a.PolicyID, a.NamedInsured,
				a.Result.OverallScore, a.Result.RiskLevel,
				a.CreatedAt.Format("2006-01-02 15:04"),
			)
		}
		return w.Flush()
	},
}

var assessmentsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one assessment as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		a, err := st.GetAssessment(ctx, args[0])
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(a)
	},
}

var assessmentsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an assessment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if err := st.DeleteAssessment(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
		return nil
	},
}

func init() {
	f := assessmentsListCmd.Flags()
	f.String("policy-id", "", "filter by policy identifier")
	f.String("risk-level", "", "filter by risk level (LOW, MEDIUM, HIGH, VERY HIGH)")
	f.Int("limit", 0, "maximum rows (default from store)")
	f.Int("offset", 0, "rows to skip")

	assessmentsCmd.AddCommand(assessmentsListCmd, assessmentsGetCmd, assessmentsDeleteCmd)
	rootCmd.AddCommand(assessmentsCmd)
}
