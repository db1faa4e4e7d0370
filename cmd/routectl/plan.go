package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cashroute/cashroute/internal/application/dto"
	"github.com/cashroute/cashroute/internal/application/usecase"
	"github.com/cashroute/cashroute/internal/domain/model"
	"github.com/cashroute/cashroute/internal/domain/service"
	"github.com/cashroute/cashroute/pkg/money"
)

func planCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan --input scenario.json",
		Short: "Compute routes for a scenario file",
		Long: `Run the planner against a scenario file and print the selected routes.

The scenario file uses the same JSON shape as the POST /v1/route-plans
request body: a goal, the linked accounts with their pending transactions,
and the transfer matrix. The planner runs entirely in-process.`,
		RunE: runPlan,
	}

	cmd.Flags().String("input", "", "scenario file (required)")
	cmd.Flags().String("at", "", "evaluate at this RFC3339 instant instead of now")
	cmd.Flags().String("format", "table", "output format (table, json)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runPlan(cmd *cobra.Command, _ []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	atFlag, _ := cmd.Flags().GetString("at")
	format, _ := cmd.Flags().GetString("format")
	if format != "table" && format != "json" {
		return fmt.Errorf("unknown format %q: expected table or json", format)
	}

	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read scenario: %w", err)
	}
	var req dto.PlanRoutesRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return fmt.Errorf("parse scenario: %w", err)
	}

	goal, accounts, matrix, err := usecase.DecodePlanInput(req)
	if err != nil {
		return fmt.Errorf("invalid scenario: %w", err)
	}

	now := time.Now().UTC()
	if req.CurrentTime != nil {
		now = req.CurrentTime.UTC()
	}
	if atFlag != "" {
		at, err := time.Parse(time.RFC3339, atFlag)
		if err != nil {
			return fmt.Errorf("invalid --at instant: %w", err)
		}
		now = at.UTC()
	}

	planner := service.NewPlanner(service.CombinationConfig{
		MaxAccountsPerCombination: viper.GetInt("routing.maxAccountsPerCombination"),
		MaxEligibleAccounts:       viper.GetInt("routing.maxEligibleAccounts"),
	}, service.NewPathCache())

	result, err := planner.Plan(goal, accounts, matrix, now)
	if err != nil {
		if refusal, ok := model.AsRoutingError(err); ok {
			return printRefusal(refusal, format)
		}
		return err
	}

	return printRoutes(result, format)
}

func printRefusal(refusal *model.RoutingError, format string) error {
	if format == "json" {
		out := map[string]any{
			"error":   string(refusal.Kind),
			"message": refusal.Message,
		}
		if refusal.Shortfall != nil {
			out["shortfall"] = refusal.Shortfall
		}
		if refusal.Suggestion != "" {
			out["suggestion"] = refusal.Suggestion
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Printf("no plan: %s\n", refusal.Message)
	if refusal.Shortfall != nil {
		fmt.Printf("shortfall: %s\n", money.FormatUSD(*refusal.Shortfall))
	}
	if refusal.Suggestion != "" {
		fmt.Printf("suggestion: link a transfer path through account %s\n", refusal.Suggestion)
	}
	return nil
}

func printRoutes(result model.RoutingResult, format string) error {
	if format == "json" {
		out := map[string]any{
			"routes":         usecase.EncodeRoutes(result.Routes),
			"allRoutesRisky": result.AllRoutesRisky,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tHOPS\tTOTAL FEE\tARRIVAL\tRISK")
	for _, route := range result.Routes {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s (%.0f)\n",
			route.Category.String(),
			route.StepCount(),
			money.FormatUSD(route.TotalFee),
			route.Arrival.Format(time.RFC3339),
			route.RiskLevel.String(),
			route.RiskScore,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	for _, route := range result.Routes {
		fmt.Printf("\n%s: %s\n", route.Category.String(), route.Reasoning)
		for _, step := range route.Steps {
			fmt.Printf("  %s -> %s  %s  %s  fee %s\n",
				step.FromID, step.ToID,
				money.FormatUSD(step.Amount),
				step.Speed.String(),
				money.FormatUSD(step.Fee),
			)
		}
	}
	if result.AllRoutesRisky {
		fmt.Println("\nwarning: every route scores high risk")
	}
	return nil
}
