package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func reconcileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Run one reconciliation pass and print what it found",
		Long: `Run one reconciliation pass over the settlement journal.

Captured payments whose booking is still unpaid are settled again.
Gateway orders that never got a local payment are looked up at the
gateway and annotated for manual follow-up.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			report, err := a.reconciler().RunOnce(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "bookings settled:        %d\n", report.Resumed)
			fmt.Fprintf(out, "settlement retries failed: %d\n", report.ResumeFailed)
			fmt.Fprintf(out, "orphaned orders checked: %d (%d paid at gateway)\n", report.OrphansSeen, report.OrphansPaid)
			fmt.Fprintf(out, "stale pending payments:  %d\n", report.StalePending)
			fmt.Fprintf(out, "retries exhausted:       %d\n", report.Exhausted)
			return nil
		},
	}
}
