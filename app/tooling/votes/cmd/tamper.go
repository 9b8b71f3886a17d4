package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

var (
	tamperSeq   uint64
	tamperField string
	tamperValue string
)

var tamperCmd = &cobra.Command{
	Use:   "tamper",
	Short: "Overwrite a field of a recorded entry without resealing it.",
	Long:  "Overwrite a field of a recorded entry without resealing it. The service must be started with tampering allowed.",
	RunE:  tamperRun,
}

func init() {
	rootCmd.AddCommand(tamperCmd)
	tamperCmd.Flags().Uint64VarP(&tamperSeq, "sequence", "s", 1, "Sequence of the entry.")
	tamperCmd.Flags().StringVarP(&tamperField, "field", "f", "payload", "Field to change: timestamp, subject_id, payload, prev_digest, digest.")
	tamperCmd.Flags().StringVarP(&tamperValue, "value", "v", "", "New value for the field.")
}

func tamperRun(cmd *cobra.Command, args []string) error {
	body := struct {
		Sequence uint64 `json:"sequence"`
		Field    string `json:"field"`
		Value    string `json:"value"`
	}{
		Sequence: tamperSeq,
		Field:    tamperField,
		Value:    tamperValue,
	}

	var res struct {
		Report struct {
			Valid bool `json:"valid"`
		} `json:"report"`
	}
	if err := send(http.MethodPost, privateURL+"/v1/ledger/tamper", body, &res); err != nil {
		return err
	}

	fmt.Printf("Entry %d %s changed, ledger valid: %t\n", tamperSeq, tamperField, res.Report.Valid)

	return nil
}
