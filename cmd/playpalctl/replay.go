package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"playpal-backend-go/internal/app"
	"playpal-backend-go/internal/core"
	"playpal-backend-go/internal/trigger"
)

var replayLong = `Feed a captured Firestore event through a notification workflow
against the configured project. Pushes and in-app records are real.

The file holds the event JSON as delivered to the trigger endpoints:
{"oldValue": {...}, "value": {...}, "updateMask": {...}}. Use "-" for stdin.`

func replayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay a captured document event",
		Long:  replayLong,
	}
	cmd.AddCommand(replaySubCmd("match", "Replay a matches/{matchId} update",
		func(ctx context.Context, svc core.NotificationService, e *trigger.Event) (core.Report, error) {
			change, err := e.MatchChange()
			if err != nil {
				return core.Report{}, err
			}
			return svc.HandleMatchUpdate(ctx, change)
		}))
	cmd.AddCommand(replaySubCmd("payment", "Replay a matches/{matchId}/payments/{userId} update",
		func(ctx context.Context, svc core.NotificationService, e *trigger.Event) (core.Report, error) {
			change, err := e.PaymentChange()
			if err != nil {
				return core.Report{}, err
			}
			return svc.HandlePaymentUpdate(ctx, change)
		}))
	return cmd
}

type replayFunc func(ctx context.Context, svc core.NotificationService, e *trigger.Event) (core.Report, error)

func replaySubCmd(use, short string, run replayFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("file")
			event, err := readEvent(cmd.InOrStdin(), path)
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				report, err := run(ctx, a.Notifications, event)
				if err != nil {
					return err
				}
				return printReport(cmd.OutOrStdout(), report)
			})
		},
	}
	cmd.Flags().StringP("file", "f", "", "Event JSON file, or - for stdin")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func readEvent(stdin io.Reader, path string) (*trigger.Event, error) {
	if path == "-" {
		return trigger.Decode(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open event file: %w", err)
	}
	defer f.Close()
	return trigger.Decode(f)
}

func printReport(w io.Writer, report core.Report) error {
	out := struct {
		Outcome string `json:"outcome"`
		core.Report
	}{Outcome: report.Outcome(), Report: report}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
