package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loyalty-tools/receipt-points/pkg/models/api"
	"github.com/loyalty-tools/receipt-points/pkg/models/domain"
	"github.com/loyalty-tools/receipt-points/pkg/runtime/terminal/export"
	"github.com/loyalty-tools/receipt-points/pkg/services/scoring"
	"github.com/loyalty-tools/receipt-points/pkg/services/validation"
)

type ScoreCmd struct {
	validator *validation.Validator
	reporter  *export.Reporter
}

func NewScoreCmd(validator *validation.Validator, reporter *export.Reporter) *cobra.Command {
	sc := &ScoreCmd{validator: validator, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "score <receipt.json>",
		Short: "Score a receipt file and print the rule breakdown",
		Args:  cobra.ExactArgs(1),
		RunE:  sc.run,
	}

	return cmd
}

func (sc *ScoreCmd) run(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read receipt file: %w", err)
	}

	var raw api.Receipt
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse receipt file: %w", err)
	}

	validated, err := sc.validator.Validate(raw)
	if err != nil {
		return err
	}

	breakdown, err := scoring.Explain(validated)
	if err != nil {
		return err
	}

	report := &domain.ScoreReport{
		Retailer:     validated.Retailer,
		PurchaseDate: validated.PurchaseDate,
		PurchaseTime: validated.PurchaseTime,
		Total:        validated.Total.StringFixed(2),
	}
	for _, rp := range breakdown {
		report.Contributions = append(report.Contributions, domain.RuleContribution{
			Rule:   rp.Rule,
			Points: rp.Points,
		})
		report.TotalPoints += rp.Points
	}

	return sc.reporter.Handle(report)
}
