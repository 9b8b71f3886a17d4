package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

type entry struct {
	Sequence   uint64 `json:"sequence"`
	Timestamp  string `json:"timestamp"`
	VoterID    string `json:"voter_id"`
	Candidate  string `json:"candidate"`
	PrevDigest string `json:"prev_digest"`
	Digest     string `json:"digest"`
}

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Print every entry on the ledger.",
	RunE:  ledgerRun,
}

func init() {
	rootCmd.AddCommand(ledgerCmd)
}

func ledgerRun(cmd *cobra.Command, args []string) error {
	var info struct {
		Valid   bool    `json:"valid"`
		Length  int     `json:"length"`
		Entries []entry `json:"entries"`
	}
	if err := send(http.MethodGet, url+"/v1/ledger", nil, &info); err != nil {
		return err
	}

	fmt.Printf("Entries: %d  Valid: %t\n\n", info.Length, info.Valid)
	for _, e := range info.Entries {
		printEntry(e)
		fmt.Println()
	}

	return nil
}

func printEntry(e entry) {
	fmt.Printf("Sequence:   %d\n", e.Sequence)
	fmt.Printf("Timestamp:  %s\n", e.Timestamp)
	fmt.Printf("Voter:      %s\n", e.VoterID)
	fmt.Printf("Candidate:  %s\n", e.Candidate)
	fmt.Printf("PrevDigest: %s\n", e.PrevDigest)
	fmt.Printf("Digest:     %s\n", e.Digest)
}
