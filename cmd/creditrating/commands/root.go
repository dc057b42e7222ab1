package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/application/usecase"
	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/domain/model"
	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/domain/service"
	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/infrastructure/codec"
	"github.com/yashsarjekar/rmbs-credit-evaluator/pkg/observability"
)

// errReported is returned once a command has already printed its failure.
var errReported = errors.New("reported")

type app struct {
	logger   *slog.Logger
	rater    *usecase.RateMortgagePool
	validate *usecase.ValidateMortgages

	logLevel  string
	logFormat string
}

// Execute runs the creditrating CLI against the process arguments.
func Execute() error {
	root := NewRootCmd()
	err := root.Execute()
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintf(root.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "creditrating",
		Short:         "Rate RMBS mortgage pools AAA, BBB or C",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a.logger = observability.InitLogger(observability.LogConfig{
				Output: cmd.ErrOrStderr(),
				Level:  a.logLevel,
				Format: a.logFormat,
			})
			a.rater = usecase.NewRateMortgagePool(service.NewRatingEngine(), nil, nil, a.logger)
			a.validate = usecase.NewValidateMortgages()
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "text", "log format (text, json)")

	root.AddCommand(rateCmd(a), validateCmd(a), sampleCmd(), devCmd(), pingCmd())
	return root
}

// openInput returns the envelope source named by path; "-" or "" is stdin.
func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

func readPool(cmd *cobra.Command, path string) (codec.Pool, error) {
	in, err := openInput(cmd, path)
	if err != nil {
		return codec.Pool{}, err
	}
	defer in.Close()

	return codec.DecodePool(in)
}

// report prints err in the CLI's error format and returns errReported.
func report(cmd *cobra.Command, err error) error {
	out := cmd.ErrOrStderr()
	switch {
	case errors.Is(err, codec.ErrMalformedJSON):
		fmt.Fprintln(out, "Error: Invalid JSON format.")
	case errors.Is(err, codec.ErrInvalidEnvelope), model.IsValidationError(err):
		fmt.Fprintf(out, "Input Error: %v\n", err)
	default:
		fmt.Fprintf(out, "Unexpected Error: %v\n", err)
	}
	return errReported
}
