package commands

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/application/dto"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

func rateCmd(a *app) *cobra.Command {
	var (
		file   string
		output string
	)

	cmd := &cobra.Command{
		Use:   "rate",
		Short: "Rate a mortgage pool read from a JSON envelope",
		Long: `Rate reads {"mortgages": [...]} from --file or stdin, validates every
mortgage and prints the pool's credit rating.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if output != "text" && output != "json" {
				return fmt.Errorf("unknown output format %q", output)
			}

			pool, err := readPool(cmd, file)
			if err != nil {
				return report(cmd, err)
			}

			result, err := a.rater.Execute(cmd.Context(), dto.RatePoolRequest{
				PoolID:    pool.PoolID,
				Mortgages: pool.Mortgages,
			})
			if err != nil {
				return report(cmd, err)
			}

			if output == "json" {
				b, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return report(cmd, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Credit Rating: %s\n", result.Rating)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "envelope file, - for stdin")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format (text, json)")
	return cmd
}
