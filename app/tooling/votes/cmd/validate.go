package cmd

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Recompute the ledger and report tampering.",
	RunE:  validateRun,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func validateRun(cmd *cobra.Command, args []string) error {
	var report struct {
		Valid    bool   `json:"valid"`
		Length   int    `json:"length"`
		LastHash string `json:"last_hash"`
		Failures []struct {
			Sequence uint64 `json:"sequence"`
			Reason   string `json:"reason"`
			Got      string `json:"got"`
			Exp      string `json:"exp"`
		} `json:"failures"`
	}
	if err := send(http.MethodGet, url+"/v1/ledger/validate", nil, &report); err != nil {
		return err
	}

	fmt.Printf("Entries: %d  LastHash: %s\n", report.Length, report.LastHash)

	if report.Valid {
		fmt.Println("Ledger is valid")
		return nil
	}

	for _, f := range report.Failures {
		fmt.Printf("Entry %d: %s: got %s, exp %s\n", f.Sequence, f.Reason, f.Got, f.Exp)
	}

	return errors.New("ledger has been tampered with")
}
