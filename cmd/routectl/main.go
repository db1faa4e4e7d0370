package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	rootCmd = &cobra.Command{
		Use:   "routectl",
		Short: "Cash routing planner CLI",
		Long: `routectl runs the cash routing planner offline: feed it a scenario file
describing the goal, the linked accounts, and the transfer matrix, and it
prints the cheapest, fastest, and recommended routes (or the reason no
plan is possible) without touching a running service.`,
	}
)

func init() {
	rootCmd.PersistentFlags().Int("max-accounts", 5, "maximum source accounts per combination")
	rootCmd.PersistentFlags().Int("max-eligible", 16, "maximum eligible accounts considered for combinations")

	_ = viper.BindPFlag("routing.maxAccountsPerCombination", rootCmd.PersistentFlags().Lookup("max-accounts"))
	_ = viper.BindPFlag("routing.maxEligibleAccounts", rootCmd.PersistentFlags().Lookup("max-eligible"))

	rootCmd.AddCommand(planCmd())
	rootCmd.AddCommand(speedsCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the routectl version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println("routectl", version)
		},
	}
}
