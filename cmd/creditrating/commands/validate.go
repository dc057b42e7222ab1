package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/application/dto"
)

func validateCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Report every validation problem in a mortgage pool",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pool, err := readPool(cmd, file)
			if err != nil {
				return report(cmd, err)
			}

			rep := a.validate.Execute(cmd.Context(), dto.ValidateRequest{Mortgages: pool.Mortgages})
			out := cmd.OutOrStdout()

			for _, r := range rep.Records {
				if r.Valid {
					fmt.Fprintf(out, "mortgage[%d]: ok\n", r.Index)
					continue
				}
				for _, v := range r.Violations {
					fmt.Fprintf(out, "mortgage[%d]: %s\n", r.Index, v.Message)
				}
			}
			fmt.Fprintf(out, "%d valid, %d invalid\n", rep.ValidCount, rep.InvalidCount)

			if !rep.Valid {
				return errReported
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "envelope file, - for stdin")
	return cmd
}
