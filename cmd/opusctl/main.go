// Command opusctl reads OPUS token, staking and lock data from the command
// line using the same services as the API.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/opus-finance/opus-api/libs/go/config"
	"github.com/opus-finance/opus-api/libs/go/logger"
	"github.com/opus-finance/opus-api/libs/go/services"
	"github.com/spf13/cobra"
)

// containerFactory builds the services for one invocation.
type containerFactory func(ctx context.Context, cfg *config.Config) (*services.Container, error)

func defaultContainer(ctx context.Context, cfg *config.Config) (*services.Container, error) {
	return services.NewContainer(ctx, cfg, services.ContainerOptions{})
}

// cli holds global flags and the container shared by subcommands.
type cli struct {
	configPath string
	rpcURLs    string
	logLevel   string
	jsonOutput bool

	newContainer containerFactory
	container    *services.Container
}

func newRootCmd(newContainer containerFactory) (*cobra.Command, *cli) {
	app := &cli{newContainer: newContainer}

	root := &cobra.Command{
		Use:           "opusctl",
		Short:         "Inspect the OPUS token and staking contracts",
		Long:          `opusctl reads balances, staking locks and token statistics directly from chain and the configured indexers.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&app.configPath, "config", "", "YAML config file (defaults to $CONFIG_FILE)")
	flags.StringVar(&app.rpcURLs, "rpc", "", "comma separated RPC URLs, overriding the config")
	flags.StringVar(&app.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	flags.BoolVar(&app.jsonOutput, "json", false, "print JSON instead of text")

	root.AddCommand(
		app.balancesCmd(),
		app.locksCmd(),
		app.capabilitiesCmd(),
		app.statsCmd(),
		app.contentCmd(),
	)
	return root, app
}

func (a *cli) setup(ctx context.Context) error {
	logger.InitCLILogger(a.logLevel)

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.rpcURLs != "" {
		var urls []string
		for _, u := range strings.Split(a.rpcURLs, ",") {
			if u = strings.TrimSpace(u); u != "" {
				urls = append(urls, u)
			}
		}
		cfg.Chain.RPCURLs = urls
	}

	a.container, err = a.newContainer(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to build services: %w", err)
	}
	return nil
}

func (a *cli) close() {
	if a.container != nil {
		a.container.Close()
		a.container = nil
	}
	_ = logger.Sync()
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer, newContainer containerFactory) int {
	root, app := newRootCmd(newContainer)
	defer app.close()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr, defaultContainer)
	stop()
	os.Exit(code)
}
