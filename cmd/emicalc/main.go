package main

import (
	"emi-calculator/internal/api/handler/dto"
	"emi-calculator/internal/domain/emi"
	"emi-calculator/internal/pkg/apperrors"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

const (
	outputText = "text"
	outputJSON = "json"
)

func main() {
	root := newRootCmd(os.Stdout)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorMessage(err))
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "emicalc",
		Short:         "Loan EMI calculator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.AddCommand(newComputeCmd())
	return root
}

func newComputeCmd() *cobra.Command {
	var fields dto.LoanFields
	var output string

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute the monthly installment, total interest, total payable and interest saved",
		Example: "  emicalc compute --principal 100000 --rate 10 --tenure 1\n" +
			"  emicalc compute --principal 500000 --rate 8.5 --tenure 20 --prepayment 200000 --output json",
		RunE: func(cmd *cobra.Command, args []string) error {
			output = strings.ToLower(strings.TrimSpace(output))
			if output != outputText && output != outputJSON {
				return fmt.Errorf("unsupported output format %q (want %s or %s)", output, outputText, outputJSON)
			}

			in, err := dto.ParseLoanFields(fields)
			if err != nil {
				return err
			}
			res, err := emi.Compute(in)
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), res, output)
		},
	}

	cmd.Flags().StringVar(&fields.Principal, "principal", "", "Loan amount")
	cmd.Flags().StringVar(&fields.AnnualRatePercent, "rate", "", "Annual interest rate in percent (e.g. 8.5)")
	cmd.Flags().StringVar(&fields.TenureYears, "tenure", "", "Loan tenure in years (fractions allowed)")
	cmd.Flags().StringVar(&fields.Prepayment, "prepayment", "", "Prepayment amount (optional)")
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "Output format: text or json")
	return cmd
}

func writeResult(w io.Writer, res emi.LoanResult, output string) error {
	if output == outputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(dto.NewEMIResponse(res, ""))
	}

	_, err := fmt.Fprintf(w,
		"EMI: %s\nTotal Interest Payable: %s\nTotal Amount Payable (P+I): %s\nTotal Interest Saved: %s\n",
		emi.FormatMoney(res.MonthlyInstallment),
		emi.FormatMoney(res.TotalInterestPayable),
		emi.FormatMoney(res.TotalAmountPayable),
		emi.FormatMoney(res.InterestSaved),
	)
	return err
}

// errorMessage prints validation failures as the bare user-facing message.
func errorMessage(err error) string {
	var verr *apperrors.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	return err.Error()
}
