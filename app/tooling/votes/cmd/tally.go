package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

var tallyCmd = &cobra.Command{
	Use:   "tally",
	Short: "Print the number of votes per candidate.",
	RunE:  tallyRun,
}

func init() {
	rootCmd.AddCommand(tallyCmd)
}

func tallyRun(cmd *cobra.Command, args []string) error {
	var tally struct {
		Valid  bool `json:"valid"`
		Total  int  `json:"total"`
		Counts []struct {
			Candidate string `json:"candidate"`
			Votes     int    `json:"votes"`
		} `json:"counts"`
	}
	if err := send(http.MethodGet, url+"/v1/tally", nil, &tally); err != nil {
		return err
	}

	for _, c := range tally.Counts {
		fmt.Printf("%-20s %d\n", c.Candidate, c.Votes)
	}
	fmt.Printf("\nTotal: %d  Valid: %t\n", tally.Total, tally.Valid)

	return nil
}
