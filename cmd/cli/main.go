package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration

	at      int64
	ttl     int64
	forTime int64
	topN    int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "timebank-cli",
		Short: "timebank CLI tool",
		Long:  `A command line interface for interacting with the timebank API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the timebank API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().Int64Var(&at, "at", 0, "Logical timestamp of the operation or query")

	rootCmd.AddCommand(accountCmd(), depositCmd(), withdrawCmd(), transferCmd(), scheduledCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func accountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Account operations",
	}

	create := &cobra.Command{
		Use:   "create <id>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			post("/api/v1/accounts", map[string]any{"id": args[0]})
		},
	}

	balance := &cobra.Command{
		Use:   "balance <id>",
		Short: "Balance as of --at",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			get(fmt.Sprintf("/api/v1/accounts/%s/balance?at=%d", args[0], at))
		},
	}

	volume := &cobra.Command{
		Use:   "volume <id>",
		Short: "Transaction volume as of --at",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			get(fmt.Sprintf("/api/v1/accounts/%s/volume?at=%d", args[0], at))
		},
	}

	history := &cobra.Command{
		Use:   "history <id>",
		Short: "Transaction history as of --at",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			get(fmt.Sprintf("/api/v1/accounts/%s/history?at=%d", args[0], at))
		},
	}

	scheduled := &cobra.Command{
		Use:   "scheduled <id>",
		Short: "Pending scheduled transfers as of --at",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			get(fmt.Sprintf("/api/v1/accounts/%s/scheduled?at=%d", args[0], at))
		},
	}

	top := &cobra.Command{
		Use:   "top",
		Short: "Top accounts by transaction volume as of --at",
		Run: func(cmd *cobra.Command, args []string) {
			get(fmt.Sprintf("/api/v1/accounts/top?n=%d&at=%d", topN, at))
		},
	}
	top.Flags().IntVar(&topN, "n", 10, "Number of accounts to return")

	cmd.AddCommand(create, balance, volume, history, scheduled, top)
	return cmd
}

func depositCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deposit <account> <amount>",
		Short: "Deposit into an account at --at",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			post(fmt.Sprintf("/api/v1/accounts/%s/deposits", args[0]), map[string]any{
				"amount":    jsonNumber(args[1]),
				"timestamp": at,
			})
		},
	}
}

func withdrawCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "withdraw <account> <amount>",
		Short: "Withdraw from an account at --at",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			post(fmt.Sprintf("/api/v1/accounts/%s/withdrawals", args[0]), map[string]any{
				"amount":    jsonNumber(args[1]),
				"timestamp": at,
			})
		},
	}
}

func transferCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Transfer operations",
	}

	create := &cobra.Command{
		Use:   "create <from> <to> <amount>",
		Short: "Create a transfer at --at with --ttl",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			post("/api/v1/transfers", map[string]any{
				"from_account_id": args[0],
				"to_account_id":   args[1],
				"amount":          jsonNumber(args[2]),
				"timestamp":       at,
				"ttl":             ttl,
			})
		},
	}
	create.Flags().Int64Var(&ttl, "ttl", 0, "Time to live of the transfer")

	accept := &cobra.Command{
		Use:   "accept <id>",
		Short: "Accept a pending transfer at --at",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			post(fmt.Sprintf("/api/v1/transfers/%s/accept", args[0]), map[string]any{
				"timestamp": at,
			})
		},
	}

	status := &cobra.Command{
		Use:   "status <id>",
		Short: "Transfer status as of --at",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			get(fmt.Sprintf("/api/v1/transfers/%s/status?at=%d", args[0], at))
		},
	}

	cmd.AddCommand(create, accept, status)
	return cmd
}

func scheduledCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scheduled",
		Short: "Scheduled transfer operations",
	}

	create := &cobra.Command{
		Use:   "create <from> <to> <amount>",
		Short: "Schedule a transfer at --at for --for with --ttl",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			post("/api/v1/scheduled-transfers", map[string]any{
				"from_account_id": args[0],
				"to_account_id":   args[1],
				"amount":          jsonNumber(args[2]),
				"timestamp":       at,
				"scheduled_for":   forTime,
				"ttl":             ttl,
			})
		},
	}
	create.Flags().Int64Var(&forTime, "for", 0, "Logical time the transfer is scheduled for")
	create.Flags().Int64Var(&ttl, "ttl", 0, "Time to live of the materialized transfer")

	process := &cobra.Command{
		Use:   "process",
		Short: "Process due scheduled transfers as of --at",
		Run: func(cmd *cobra.Command, args []string) {
			post("/api/v1/scheduled-transfers/process", map[string]any{
				"timestamp": at,
			})
		},
	}

	cmd.AddCommand(create, process)
	return cmd
}

func post(path string, body map[string]any) {
	payload, err := json.Marshal(body)
	if err != nil {
		fmt.Printf("Failed to encode request: %v\n", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func get(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func printResponse(resp *http.Response) {
	body, _ := io.ReadAll(resp.Body)

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		fmt.Println(string(body))
	} else {
		fmt.Println(pretty.String())
	}

	if resp.StatusCode >= http.StatusBadRequest {
		os.Exit(1)
	}
}

// jsonNumber keeps an amount argument numeric in the request body instead
// of quoting it.
func jsonNumber(s string) json.Number {
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		fmt.Printf("Invalid amount: %s\n", s)
		os.Exit(1)
	}
	return json.Number(s)
}
