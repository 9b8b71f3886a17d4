// Package cmd contains the votes command line client.
package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	url        string
	privateURL string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&url, "url", "u", "http://localhost:8080", "Url of the votes service.")
	rootCmd.PersistentFlags().StringVarP(&privateURL, "private-url", "p", "http://localhost:9080", "Url of the private votes service.")
}

var rootCmd = &cobra.Command{
	Use:   "votes",
	Short: "Cast votes and inspect the vote ledger",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// =============================================================================

var client = http.Client{
	Timeout: 10 * time.Second,
}

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// send performs the http call and decodes a successful response into
// resp. A non 2xx status is returned as an error carrying the service's
// error message.
func send(method string, endpoint string, body any, resp any) error {
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		r = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, endpoint, r)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		var er errorResponse
		if err := json.NewDecoder(res.Body).Decode(&er); err != nil {
			return fmt.Errorf("status %d", res.StatusCode)
		}
		if len(er.Fields) > 0 {
			return fmt.Errorf("status %d: %s %v", res.StatusCode, er.Error, er.Fields)
		}
		return fmt.Errorf("status %d: %s", res.StatusCode, er.Error)
	}

	if resp == nil {
		return nil
	}

	return json.NewDecoder(res.Body).Decode(resp)
}
