package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/opus-finance/opus-api/libs/go/client/wallet"
	"github.com/opus-finance/opus-api/libs/go/helpers"
	"github.com/opus-finance/opus-api/libs/go/services"
	"github.com/opus-finance/opus-api/libs/go/types/business"
	"github.com/spf13/cobra"
)

func (a *cli) balancesCmd() *cobra.Command {
	var walletRPC string
	cmd := &cobra.Command{
		Use:   "balances [address]",
		Short: "Show wallet, staked and locked balances",
		Long: "Show wallet, staked and locked balances for an address, or for the account\n" +
			"a wallet JSON-RPC endpoint hands out when --wallet-rpc is given.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var provider wallet.Provider
			switch {
			case len(args) == 1:
				account, err := helpers.ParseAddress(args[0])
				if err != nil {
					return err
				}
				provider = wallet.NewStaticProvider(account)
			case walletRPC != "":
				p, err := wallet.DialRPCProvider(cmd.Context(), walletRPC)
				if err != nil {
					return err
				}
				defer p.Close()
				provider = p
			default:
				return services.ErrNoWallet
			}

			sessions := a.container.Sessions
			snap, err := sessions.Connect(cmd.Context(), provider)
			if err != nil {
				return err
			}
			if id, err := uuid.Parse(snap.ID); err == nil {
				defer func() { _ = sessions.Disconnect(id) }()
			}

			if a.jsonOutput {
				return printJSON(cmd, helpers.ToSessionResponse(*snap))
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, snap.Account)
			for _, line := range snap.Summary {
				fmt.Fprintln(out, "  "+line)
			}
			fmt.Fprintf(out, "  Lock source: %s\n", snap.LockSource)
			return nil
		},
	}
	cmd.Flags().StringVar(&walletRPC, "wallet-rpc", "", "wallet JSON-RPC URL answering eth_requestAccounts")
	return cmd
}

func (a *cli) capabilitiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "capabilities",
		Short: "Detect which lock accessors the staking contract implements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			caps, err := a.container.Detector.Detect(cmd.Context())
			if err != nil {
				return err
			}
			if a.jsonOutput {
				return printJSON(cmd, helpers.ToCapabilitiesResponse(*caps))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Contract:  %s\n", caps.Contract)
			fmt.Fprintf(out, "Code size: %d bytes\n", caps.CodeSize)
			fmt.Fprintf(out, "Proxy:     %t\n", caps.Proxy)
			preferred := caps.Preferred
			if preferred == "" {
				preferred = "none"
			}
			fmt.Fprintf(out, "Preferred: %s\n", preferred)

			methods := make([]string, 0, len(caps.Present))
			for m := range caps.Present {
				methods = append(methods, m)
			}
			sort.Strings(methods)
			tw := newTable(out)
			fmt.Fprintln(tw, "METHOD\tPRESENT")
			for _, m := range methods {
				fmt.Fprintf(tw, "%s\t%t\n", m, caps.Present[m])
			}
			return tw.Flush()
		},
	}
}

func (a *cli) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show token statistics and where each figure came from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := a.container.Stats.Statistics(cmd.Context())
			if err != nil {
				return err
			}
			resp := helpers.ToStatisticsResponse(*stats)
			if a.jsonOutput {
				return printJSON(cmd, resp)
			}

			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "STAT\tVALUE\tSOURCE")
			fmt.Fprintf(tw, "Total supply\t%s\t%s\n", resp.TotalSupply.Display, resp.TotalSupply.Source)
			fmt.Fprintf(tw, "Circulating supply\t%s\t%s\n", resp.CirculatingSupply.Display, resp.CirculatingSupply.Source)
			fmt.Fprintf(tw, "Holders\t%s\t%s\n", resp.Holders.Display, resp.Holders.Source)
			fmt.Fprintf(tw, "Stakers\t%s\t%s\n", resp.Stakers.Display, resp.Stakers.Source)
			fmt.Fprintf(tw, "Total staked\t%s\t%s\n", resp.TotalStaked.Display, resp.TotalStaked.Source)
			return tw.Flush()
		},
	}
}

func (a *cli) contentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "content [page]",
		Short: "Print a static content page, or list the pages",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				slugs := a.container.Content.Slugs()
				if a.jsonOutput {
					return printJSON(cmd, slugs)
				}
				for _, s := range slugs {
					fmt.Fprintln(out, s)
				}
				return nil
			}

			page, err := a.container.Content.Page(args[0])
			if err != nil {
				return err
			}
			if a.jsonOutput {
				return printJSON(cmd, page)
			}
			printPage(cmd, page)
			return nil
		},
	}
}

func printPage(cmd *cobra.Command, page *business.ContentPage) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, page.Title)
	if page.Summary != "" {
		fmt.Fprintln(out, page.Summary)
	}
	for _, section := range page.Sections {
		fmt.Fprintf(out, "\n## %s\n", section.Heading)
		if section.Body != "" {
			fmt.Fprintln(out, section.Body)
		}
		for _, item := range section.Items {
			line := "- " + item.Label
			switch {
			case item.Value != "":
				line += ": " + item.Value
			case item.Share > 0:
				line += fmt.Sprintf(": %g%%", item.Share)
			}
			if item.Detail != "" {
				line += " (" + item.Detail + ")"
			}
			fmt.Fprintln(out, line)
		}
	}
}

// asNoData turns a missing-lock error into the message the dashboard shows.
func asNoData(err error) error {
	if errors.Is(err, services.ErrNoLockData) {
		return errors.New("no data found")
	}
	return err
}
