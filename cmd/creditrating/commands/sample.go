package commands

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/domain/model"
	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/infrastructure/codec"
)

type sampleMortgage struct {
	loanType      string
	propertyType  string
	credit        int64
	loan          int64
	propertyValue int64
	annualIncome  int64
	debtAmount    int64
}

// samples are reference pools with known ratings: strong AAA, weak C,
// mixed AAA, edge BBB and average C.
var samples = map[string][]sampleMortgage{ //nolint:gochecknoglobals // skip
	"strong": {
		{credit: 750, loan: 200000, propertyValue: 250000, annualIncome: 60000, debtAmount: 20000, loanType: "fixed", propertyType: "single_family"},
	},
	"weak": {
		{credit: 600, loan: 200000, propertyValue: 220000, annualIncome: 40000, debtAmount: 25000, loanType: "adjustable", propertyType: "condo"},
	},
	"mixed": {
		{credit: 750, loan: 200000, propertyValue: 250000, annualIncome: 60000, debtAmount: 20000, loanType: "fixed", propertyType: "single_family"},
		{credit: 680, loan: 150000, propertyValue: 175000, annualIncome: 45000, debtAmount: 10000, loanType: "adjustable", propertyType: "condo"},
	},
	"edge": {
		{credit: 680, loan: 180000, propertyValue: 200000, annualIncome: 50000, debtAmount: 25000, loanType: "adjustable", propertyType: "single_family"},
	},
	"average": {
		{credit: 640, loan: 150000, propertyValue: 180000, annualIncome: 45000, debtAmount: 20000, loanType: "adjustable", propertyType: "condo"},
		{credit: 630, loan: 180000, propertyValue: 200000, annualIncome: 50000, debtAmount: 25000, loanType: "fixed", propertyType: "single_family"},
	},
}

func sampleNames() []string {
	names := make([]string, 0, len(samples))
	for name := range samples {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (s sampleMortgage) record() model.MortgageRecord {
	d := func(v int64) *decimal.Decimal {
		x := decimal.NewFromInt(v)
		return &x
	}
	loanType, propertyType := s.loanType, s.propertyType
	return model.MortgageRecord{
		CreditScore:   d(s.credit),
		LoanAmount:    d(s.loan),
		PropertyValue: d(s.propertyValue),
		AnnualIncome:  d(s.annualIncome),
		DebtAmount:    d(s.debtAmount),
		LoanType:      &loanType,
		PropertyType:  &propertyType,
	}
}

func sampleCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print a reference mortgage pool as a JSON envelope",
		Example: `  creditrating sample --name mixed | creditrating rate
  creditrating sample --name weak > weak.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pool, ok := samples[name]
			if !ok {
				return fmt.Errorf("unknown sample %q, want one of %s", name, strings.Join(sampleNames(), ", "))
			}

			records := make([]model.MortgageRecord, 0, len(pool))
			for _, m := range pool {
				records = append(records, m.record())
			}
			return codec.EncodeEnvelope(cmd.OutOrStdout(), name, records)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "mixed", "sample pool ("+strings.Join(sampleNames(), ", ")+")")
	return cmd
}
