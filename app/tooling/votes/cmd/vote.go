package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

var (
	voterID   string
	candidate string
)

var voteCmd = &cobra.Command{
	Use:   "vote",
	Short: "Cast a vote for a candidate.",
	RunE:  voteRun,
}

func init() {
	rootCmd.AddCommand(voteCmd)
	voteCmd.Flags().StringVarP(&voterID, "voter", "v", "", "Id of the voter.")
	voteCmd.Flags().StringVarP(&candidate, "candidate", "c", "", "Name of the candidate.")
	voteCmd.MarkFlagRequired("voter")
	voteCmd.MarkFlagRequired("candidate")
}

func voteRun(cmd *cobra.Command, args []string) error {
	body := struct {
		VoterID   string `json:"voter_id"`
		Candidate string `json:"candidate"`
	}{
		VoterID:   voterID,
		Candidate: candidate,
	}

	var e entry
	if err := send(http.MethodPost, url+"/v1/votes", body, &e); err != nil {
		return err
	}

	fmt.Println("Vote recorded")
	printEntry(e)

	return nil
}
