package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rmacedo/contas/internal/infrastructure/config"
	"github.com/rmacedo/contas/internal/infrastructure/postgres"
)

var (
	baseURL string
	timeout time.Duration
	from    string
	to      string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "contas-cli",
		Short: "Contas CLI tool",
		Long:  `A command line interface for the Contas payment and balance API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Contas API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Due-date timeline commands
	dueDatesCmd := &cobra.Command{
		Use:   "duedates",
		Short: "Due-date timeline operations",
	}
	dueDatesCmd.PersistentFlags().StringVar(&from, "from", "", "Window start (YYYY-MM-DD)")
	dueDatesCmd.PersistentFlags().StringVar(&to, "to", "", "Window end (YYYY-MM-DD)")

	receivablesCmd := &cobra.Command{
		Use:   "receivables",
		Short: "List money owed to the business, ordered by due date",
		Run: func(cmd *cobra.Command, args []string) {
			printTimeline("receivables")
		},
	}
	payablesCmd := &cobra.Command{
		Use:   "payables",
		Short: "List money the business owes, ordered by due date",
		Run: func(cmd *cobra.Command, args []string) {
			printTimeline("payables")
		},
	}
	dueDatesCmd.AddCommand(receivablesCmd, payablesCmd)
	rootCmd.AddCommand(dueDatesCmd)

	// Migration commands
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database schema migrations",
	}
	migrateUpCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		Run: func(cmd *cobra.Command, args []string) {
			runMigrations(postgres.RunMigrations)
		},
	}
	migrateDownCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back all migrations",
		Run: func(cmd *cobra.Command, args []string) {
			runMigrations(postgres.RunMigrationsDown)
		},
	}
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
	rootCmd.AddCommand(migrateCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runMigrations(run func(databaseURL, migrationsPath string) error) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := run(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		fmt.Printf("Migration failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Migrations applied")
}

func printTimeline(kind string) {
	client := &http.Client{Timeout: timeout}

	query := url.Values{}
	if from != "" {
		query.Set("from", from)
	}
	if to != "" {
		query.Set("to", to)
	}
	endpoint := baseURL + "/api/v1/duedates/" + kind
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	resp, err := client.Get(endpoint)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var items []map[string]any
	if err := json.Unmarshal(body, &items); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	if len(items) == 0 {
		fmt.Println("Nothing due in this window")
		return
	}
	for _, item := range items {
		fmt.Printf("%-12v %-10v %-10v %-30v %v\n",
			item["due_date"], item["urgency"], item["value"], item["counterparty_name"], item["description"])
	}
}
