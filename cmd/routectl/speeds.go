package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/cashroute/cashroute/internal/domain/service"
	"github.com/cashroute/cashroute/internal/domain/valueobject"
)

func speedsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "speeds",
		Short: "Show transfer speeds and their estimated arrivals",
		Long: `List the supported transfer speeds with the arrival each one would
produce for a transfer initiated at a given instant. Arrivals honor the
5:00 PM Eastern business cutoff and skip weekends.`,
		RunE: runSpeeds,
	}

	cmd.Flags().String("at", "", "initiation instant, RFC3339 (default: now)")

	return cmd
}

func runSpeeds(cmd *cobra.Command, _ []string) error {
	atFlag, _ := cmd.Flags().GetString("at")
	initiation := time.Now().UTC()
	if atFlag != "" {
		at, err := time.Parse(time.RFC3339, atFlag)
		if err != nil {
			return fmt.Errorf("invalid --at instant: %w", err)
		}
		initiation = at.UTC()
	}

	descriptions := []struct {
		speed valueobject.TransferSpeed
		text  string
	}{
		{valueobject.SpeedInstant, "settles immediately, any hour"},
		{valueobject.SpeedSameDay, "end of business day, next day after the 5 PM ET cutoff"},
		{valueobject.SpeedOneDay, "next business day, one more after the cutoff"},
		{valueobject.SpeedThreeDay, "three business days out"},
	}

	estimator := service.NewArrivalEstimator(service.NewBusinessCalendar())

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "SPEED\tARRIVAL (from %s)\tNOTES\n", initiation.Format(time.RFC3339))
	for _, d := range descriptions {
		arrival, err := estimator.EstimateArrival(d.speed, initiation)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", d.speed.String(), arrival.Format(time.RFC3339), d.text)
	}
	return w.Flush()
}
