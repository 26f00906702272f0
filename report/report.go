// Package report renders the core result records to JSON and markdown
// for downstream consumers (issue filing, dashboards). The core
// produces records; this layer only formats them.
package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/example/faultline/domain"
)

// JSON renders any result record as indented JSON.
func JSON(record any) ([]byte, error) {
	return json.MarshalIndent(record, "", "  ")
}

// MinimizationMarkdown renders a minimization result.
func MinimizationMarkdown(r *domain.MinimizationResult) string {
	var b strings.Builder
	b.WriteString("## Minimized reproducer\n\n")
	fmt.Fprintf(&b, "- Units: %d -> %d (%s, %.0f%% reduction)\n",
		r.OriginalSize, r.MinimizedSize, r.Minimized.Kind, r.ReductionRatio*100)
	fmt.Fprintf(&b, "- Oracle runs: %d\n\n", r.TestRunCount)
	b.WriteString("```\n")
	b.WriteString(r.Minimized.Text())
	b.WriteString("\n```\n")
	return b.String()
}

// BisectionMarkdown renders a bisection result with its probe history.
func BisectionMarkdown(r *domain.BisectionResult) string {
	var b strings.Builder
	b.WriteString("## Bisection result\n\n")
	fmt.Fprintf(&b, "- First bad commit: `%s` %s (%s)\n",
		r.FirstBad.ID, r.FirstBad.Subject, r.FirstBad.Author)
	fmt.Fprintf(&b, "- Last good commit: `%s` %s\n", r.LastGood.ID, r.LastGood.Subject)
	fmt.Fprintf(&b, "- Commits tested: %d\n\n", r.CommitsTested)
	b.WriteString("| # | Commit | Verdict |\n|---|--------|--------|\n")
	for i, t := range r.TestResults {
		fmt.Fprintf(&b, "| %d | `%s` | %s |\n", i+1, t.Commit.ID, t.Verdict)
	}
	return b.String()
}

// VerdictMarkdown renders one regression verdict.
func VerdictMarkdown(v *domain.RegressionVerdict) string {
	var b strings.Builder
	status := "no regression"
	if v.Regression {
		status = "REGRESSION"
	}
	fmt.Fprintf(&b, "## %s -> %s: %s\n\n", v.Baseline, v.Variant, status)
	fmt.Fprintf(&b, "- Slowdown: %.3fx (baseline %.4f, variant %.4f)\n",
		v.SlowdownFactor, v.BaselineMean, v.VariantMean)
	fmt.Fprintf(&b, "- p-value: %.4f, Cohen's d: %.3f\n", v.PValue, v.EffectSize)
	return b.String()
}

// FunctionalMarkdown renders a functional regression.
func FunctionalMarkdown(f *domain.FunctionalRegression) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s -> %s: FUNCTIONAL REGRESSION (%s)\n\n", f.Baseline, f.Variant, f.Outcome)
	counts := map[domain.FunctionalOutcome]int{}
	for _, o := range f.VariantOutcomes {
		counts[o]++
	}
	order := []domain.FunctionalOutcome{domain.FuncPass, domain.FuncWrongOutput, domain.FuncCrash, domain.FuncHang}
	for _, o := range order {
		if counts[o] > 0 {
			fmt.Fprintf(&b, "- %s: %d\n", o, counts[o])
		}
	}
	return b.String()
}

// ConfidenceMarkdown renders a confidence score.
func ConfidenceMarkdown(s *domain.ConfidenceScore) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Confidence: %.2f (%s)\n\n", s.Overall, s.Priority)
	fmt.Fprintf(&b, "%s\n\n", s.Explanation)
	b.WriteString("Contributing axes:\n")
	for _, c := range s.Contributing {
		fmt.Fprintf(&b, "- %s\n", c)
	}
	b.WriteString("\n_Needs human validation._\n")
	return b.String()
}
