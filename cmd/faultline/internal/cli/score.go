package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/faultline/confidence"
	"github.com/example/faultline/report"
)

var (
	scoreMethod   string
	scoreRepro    string
	scoreStrength string
	scoreClarity  string
	scoreJSON     bool
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a finding's confidence from four evidence axes",
	Long: `Aggregate four evidence axes into a normalized confidence score and
triage priority. The weight scheme comes from the config file
(default, equal, or a custom vector). Scores always require human
validation; this is a triage aid, not a verdict.

AXES:
  --method    property-testing | fuzzing | manual | user-report
  --repro     always | often | sometimes | rarely
  --strength  strong | moderate | weak
  --clarity   confirmed | likely | unclear

EXAMPLE:
  faultline score --method fuzzing --repro always --strength strong --clarity likely`,
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().StringVar(&scoreMethod, "method", "manual", "discovery method")
	scoreCmd.Flags().StringVar(&scoreRepro, "repro", "sometimes", "reproducibility")
	scoreCmd.Flags().StringVar(&scoreStrength, "strength", "moderate", "evidence strength")
	scoreCmd.Flags().StringVar(&scoreClarity, "clarity", "unclear", "root-cause clarity")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "print the result record as JSON")
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	method, err := confidence.ParseDiscoveryMethod(scoreMethod)
	if err != nil {
		return err
	}
	repro, err := confidence.ParseReproducibility(scoreRepro)
	if err != nil {
		return err
	}
	strength, err := confidence.ParseEvidenceStrength(scoreStrength)
	if err != nil {
		return err
	}
	clarity, err := confidence.ParseRootCauseClarity(scoreClarity)
	if err != nil {
		return err
	}

	startedAt := time.Now().UTC()
	score := confidence.NewModel(cfg.Weights()).Score(confidence.Evidence{
		Method:          method,
		Reproducibility: repro,
		Strength:        strength,
		Clarity:         clarity,
	})

	if scoreJSON {
		data, err := report.JSON(score)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	} else {
		fmt.Print(report.ConfidenceMarkdown(&score))
	}

	summary := fmt.Sprintf("%.2f (%s)", score.Overall, score.Priority)
	recordRun("score", summary, score, startedAt)
	return nil
}
