package report

import (
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/meridian-specialty/underwriting-cli/internal/model"
	"github.com/meridian-specialty/underwriting-cli/internal/risk"
)

// Score color thresholds shared by the overall badge and section bars.
func scoreColor(score float64) string {
	switch {
	case score >= 80:
		return "#dc3545"
	case score >= 60:
		return "#fd7e14"
	case score >= 45:
		return "#ffc107"
	default:
		return "#28a745"
	}
}

type htmlSection struct {
	Title string
	Score float64
	Color string
	Width float64
	Items []string
}

type htmlReport struct {
	ClientName     string
	Address        string
	CityState      string
	NAICSCode      string
	YearBuilt      string
	TIV            string
	Construction   string
	Stories        string
	TotalArea      string
	Sprinklered    string
	FireClass      string
	BurglarAlarm   string
	RoofCondition  string
	OverallScore   string
	OverallColor   string
	RiskLevel      model.RiskLevel
	Recommendation model.Recommendation
	FinalText      string
	Sections       []htmlSection
	Date           string
	Timestamp      string
}

// finalRecommendationText picks the closing paragraph by tier.
func finalRecommendationText(level model.RiskLevel) string {
	switch level {
	case model.RiskLow:
		return "This property presents a favorable risk profile and may qualify for auto-bind processing with standard terms."
	case model.RiskMedium:
		return "This property requires standard underwriting review. Consider appropriate premium adjustments based on identified risk factors."
	case model.RiskHigh:
		return "This property presents elevated risk and should be referred to senior underwriting for detailed evaluation. Enhanced monitoring and risk mitigation requirements are recommended."
	default:
		return "This property presents significant risk concerns. Recommend decline or referral to specialized underwriting team for enhanced terms evaluation."
	}
}

func orNA(v string) string {
	if strings.TrimSpace(v) == "" {
		return "N/A"
	}
	return v
}

func percent(v float64) string {
	return currencyPrinter.Sprintf("%.1f%%", v)
}

// WriteHTML renders the formal single-property underwriting report.
func WriteHTML(w io.Writer, rec model.PropertyRecord, res model.RiskScoreResult, now time.Time) error {
	section := func(title string, score float64, items []string) htmlSection {
		width := score
		if width > 100 {
			width = 100
		}
		// Breakdown lines carry markdown bold markers for the chat surface;
		// strip them here.
		plain := make([]string, len(items))
		for i, item := range items {
			plain[i] = strings.ReplaceAll(item, "**", "")
		}
		return htmlSection{
			Title: title,
			Score: score,
			Color: scoreColor(score),
			Width: width,
			Items: plain,
		}
	}

	cityState := orNA(rec.City)
	if rec.State != "" {
		cityState = orNA(rec.City) + ", " + rec.State
	}

	data := htmlReport{
		ClientName:     orNA(rec.NamedInsured),
		Address:        orNA(rec.StreetAddress),
		CityState:      cityState,
		NAICSCode:      orNA(rec.NAICSCode),
		YearBuilt:      orNA(rec.YearBuilt),
		TIV:            Currency(risk.ParseNumeric(rec.TIV, 0)),
		Construction:   orNA(rec.ConstructionType),
		Stories:        orNA(rec.Stories),
		TotalArea:      orNA(rec.TotalArea),
		Sprinklered:    percent(risk.ParseNumeric(rec.SprinkleredPct, 0)),
		FireClass:      orNA(rec.FireProtectionClass),
		BurglarAlarm:   orNA(rec.BurglarAlarmType),
		RoofCondition:  orNA(rec.RoofCondition),
		OverallScore:   percent(res.OverallScore),
		OverallColor:   scoreColor(res.OverallScore),
		RiskLevel:      res.RiskLevel,
		Recommendation: res.Recommendation,
		FinalText:      finalRecommendationText(res.RiskLevel),
		Sections: []htmlSection{
			section("Property Risk", res.PropertyRisk, res.PropertyBreakdown),
			section("Claims History Risk", res.ClaimsRisk, res.ClaimsBreakdown),
			section("Geographic Risk", res.GeographicRisk, res.GeographicBreakdown),
			section("Protection Risk", res.ProtectionRisk, res.ProtectionBreakdown),
		},
		Date:      now.Format("January 2, 2006"),
		Timestamp: now.Format("2006-01-02 15:04:05"),
	}

	if err := reportTemplate.Execute(w, data); err != nil {
		return eris.Wrap(err, "report: render html")
	}
	return nil
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Underwriting Report - {{.ClientName}}</title>
    <style>
        body { font-family: 'Helvetica', 'Arial', sans-serif; color: #333; line-height: 1.5; max-width: 900px; margin: 0 auto; padding: 40px; background: #f9f9f9; }
        .paper { background: #fff; padding: 50px; box-shadow: 0 0 20px rgba(0,0,0,0.1); }
        .header { display: flex; justify-content: space-between; border-bottom: 2px solid #333; padding-bottom: 20px; margin-bottom: 30px; }
        .section-title { background-color: #ffcd69; padding: 8px 15px; font-weight: bold; font-size: 14px; text-transform: uppercase; margin-top: 30px; margin-bottom: 15px; }
        .grid { display: grid; grid-template-columns: 1fr 1fr; gap: 40px; margin-bottom: 20px; }
        .row { display: flex; justify-content: space-between; margin-bottom: 8px; font-size: 13px; border-bottom: 1px solid #f0f0f0; padding-bottom: 4px; }
        .label { font-weight: bold; color: #444; }
        .value { text-align: right; }
        .risk-container { display: flex; flex-wrap: wrap; gap: 15px; }
        .risk-card { flex: 1; min-width: 45%; background: #fff; padding: 15px; border: 1px solid #eee; border-radius: 6px; margin-bottom: 15px; }
        .score-box { text-align: center; padding: 20px; background: #f8f9fa; border-radius: 8px; margin-bottom: 20px; border: 1px solid #eee; }
    </style>
</head>
<body>
    <div class="paper">
        <div class="header">
            <div>
                <h1 style="margin: 0; font-size: 24px; text-transform: uppercase;">Underwriting Report</h1>
                <h2 style="margin: 5px 0 0; font-size: 16px; font-weight: normal; color: #666;">Claims Likelihood Analysis</h2>
            </div>
            <div style="text-align: right;">
                <div style="font-size: 14px; color: #666;">{{.Date}}</div>
                <div style="font-size: 11px; color: #999; margin-top: 5px;">CONFIDENTIAL</div>
            </div>
        </div>

        <div class="section-title">Client &amp; Property Details</div>
        <div class="grid">
            <div>
                <div class="row"><span class="label">Client Name:</span> <span class="value">{{.ClientName}}</span></div>
                <div class="row"><span class="label">Address:</span> <span class="value">{{.Address}}</span></div>
                <div class="row"><span class="label">City/State:</span> <span class="value">{{.CityState}}</span></div>
            </div>
            <div>
                <div class="row"><span class="label">NAICS Code:</span> <span class="value">{{.NAICSCode}}</span></div>
                <div class="row"><span class="label">Year Built:</span> <span class="value">{{.YearBuilt}}</span></div>
                <div class="row"><span class="label">Total Insured Value:</span> <span class="value">{{.TIV}}</span></div>
            </div>
        </div>

        <div class="section-title">Building Occupation Summary</div>
        <div class="grid">
            <div>
                <div class="row"><span class="label">Construction Type:</span> <span class="value">{{.Construction}}</span></div>
                <div class="row"><span class="label">Stories:</span> <span class="value">{{.Stories}}</span></div>
                <div class="row"><span class="label">Total Area:</span> <span class="value">{{.TotalArea}} sq ft</span></div>
                <div class="row"><span class="label">Sprinklered:</span> <span class="value">{{.Sprinklered}}</span></div>
            </div>
            <div>
                <div class="row"><span class="label">Fire Protection Class:</span> <span class="value">{{.FireClass}}</span></div>
                <div class="row"><span class="label">Burglar Alarm:</span> <span class="value">{{.BurglarAlarm}}</span></div>
                <div class="row"><span class="label">Roof Condition:</span> <span class="value">{{.RoofCondition}}</span></div>
            </div>
        </div>

        <div class="section-title">Underwriting Review</div>

        <div class="score-box">
            <div style="font-size: 14px; color: #666; margin-bottom: 5px;">Overall Claims Likelihood Score</div>
            <div style="font-size: 42px; font-weight: bold; color: {{.OverallColor}};">{{.OverallScore}}</div>
            <div style="font-size: 18px; font-weight: bold; margin-top: 5px;">{{.RiskLevel}}</div>
            <div style="font-size: 13px; color: #666; margin-top: 10px; font-style: italic;">Rec: {{.Recommendation}}</div>
        </div>

        <div style="font-weight: bold; font-size: 14px; margin-bottom: 10px;">Risk Component Analysis:</div>
        <div class="risk-container">
            {{range .Sections}}
            <div class="risk-card">
                <div style="display: flex; justify-content: space-between; margin-bottom: 8px; font-weight: bold;">
                    <span>{{.Title}}</span>
                    <span style="color: {{.Color}}">{{printf "%.1f%%" .Score}}</span>
                </div>
                <div style="height: 6px; background: #eee; border-radius: 3px; margin-bottom: 10px;">
                    <div style="width: {{.Width}}%; height: 100%; background-color: {{.Color}}; border-radius: 3px;"></div>
                </div>
                <ul style="padding-left: 20px; margin: 0; font-size: 13px; color: #555;">
                    {{range .Items}}<li style="margin-bottom:4px;">{{.}}</li>{{end}}
                </ul>
            </div>
            {{end}}
        </div>

        <div class="section-title">Final Recommendation</div>
        <div style="padding: 15px; background: #f8f9fa; border-left: 4px solid {{.OverallColor}}; font-size: 13px;">
            {{.FinalText}}
        </div>

        <div style="margin-top: 50px; font-size: 11px; text-align: center; color: #999; border-top: 1px solid #eee; padding-top: 20px;">
            Generated by Claims Likelihood Engine &bull; {{.Timestamp}}
        </div>
    </div>
</body>
</html>
`))
