package main

import (
	"fmt"

	"github.com/opus-finance/opus-api/libs/go/helpers"
	"github.com/opus-finance/opus-api/libs/go/services"
	"github.com/opus-finance/opus-api/libs/go/types/api/responses"
	"github.com/spf13/cobra"
)

func (a *cli) locksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locks",
		Short: "Read staking locks for an account",
	}
	cmd.AddCommand(a.locksProbeCmd(), a.locksScanCmd(), a.locksEventsCmd())
	return cmd
}

func (a *cli) locksProbeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "probe <address>",
		Short: "Try each known lock accessor until one answers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := helpers.ParseAddress(args[0])
			if err != nil {
				return err
			}

			result, err := a.container.Probe.Probe(cmd.Context(), account)
			if err != nil {
				if result != nil && !a.jsonOutput {
					printAttempts(cmd, helpers.ToLockProbeResponse(account.Hex(), *result).Attempts)
				}
				return asNoData(err)
			}

			resp := helpers.ToLockProbeResponse(account.Hex(), *result)
			if a.jsonOutput {
				return printJSON(cmd, resp)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Method: %s\n", resp.Method)
			if resp.Raw != "" {
				fmt.Fprintf(out, "Raw:    %s\n", resp.Raw)
			}
			fmt.Fprintf(out, "Locked: %s OPUS\n\n", helpers.FormatBalance(resp.TotalLocked))
			if err := printLocks(out, resp.Locks); err != nil {
				return err
			}
			printAttempts(cmd, resp.Attempts)
			return nil
		},
	}
}

func printAttempts(cmd *cobra.Command, attempts []responses.ProbeAttemptResponse) {
	out := cmd.ErrOrStderr()
	for _, at := range attempts {
		if at.Error != "" {
			fmt.Fprintf(out, "  %-20s %-12s %s\n", at.Method, at.Outcome, at.Error)
			continue
		}
		fmt.Fprintf(out, "  %-20s %s\n", at.Method, at.Outcome)
	}
}

func (a *cli) locksScanCmd() *cobra.Command {
	var (
		preset   string
		start    uint64
		ceiling  uint64
		emptyRun int
	)
	cmd := &cobra.Command{
		Use:   "scan <address>",
		Short: "Read mapUserInfoLock slots in order until an empty run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := helpers.ParseAddress(args[0])
			if err != nil {
				return err
			}

			cfg, err := a.container.ScanConfig()
			if err != nil {
				return err
			}
			if preset != "" {
				if cfg, err = services.ScanPreset(preset); err != nil {
					return err
				}
			}
			cfg.StartIndex = start
			if ceiling > 0 {
				cfg.Ceiling = ceiling
			}
			if emptyRun > 0 {
				cfg.EmptyRunLimit = emptyRun
			}

			result, err := a.container.Scanner.Scan(cmd.Context(), account, cfg)
			if result == nil {
				return err
			}

			resp := helpers.ToLockScanResponse(account.Hex(), *result)
			if a.jsonOutput {
				if jerr := printJSON(cmd, resp); jerr != nil {
					return jerr
				}
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Read %d slots (%d errors), last index %d, stopped by %s\n",
				resp.Reads, resp.Errors, resp.LastIndex, resp.StoppedBy)
			fmt.Fprintf(out, "Locked: %s OPUS\n\n", helpers.FormatBalance(resp.TotalLocked))
			if perr := printLocks(out, resp.Locks); perr != nil {
				return perr
			}
			return err
		},
	}
	cmd.Flags().StringVar(&preset, "preset", "", "scan bounds preset: quick or deep")
	cmd.Flags().Uint64Var(&start, "start", 0, "first slot index")
	cmd.Flags().Uint64Var(&ceiling, "ceiling", 0, "stop before this index")
	cmd.Flags().IntVar(&emptyRun, "empty-run", 0, "stop after this many consecutive empty slots")
	return cmd
}

func (a *cli) locksEventsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "events <address>",
		Short: "Rebuild open locks from LockCreated and LockReleased logs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := helpers.ParseAddress(args[0])
			if err != nil {
				return err
			}

			state, err := a.container.Indexer.IndexedLocks(cmd.Context(), account)
			if err != nil {
				return err
			}
			resp := helpers.ToIndexedLocksResponse(*state)
			if a.jsonOutput {
				return printJSON(cmd, resp)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Indexed blocks %d..%d\n", resp.FromBlock, resp.NextBlock)
			fmt.Fprintf(out, "Locked: %s OPUS\n\n", helpers.FormatBalance(resp.TotalLocked))
			return printLocks(out, resp.Locks)
		},
	}
}
