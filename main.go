package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/samber/do/v2"
	"github.com/selfbingo/selfbingo/internal/pkg/common"
	"github.com/selfbingo/selfbingo/internal/pkg/game"
	"github.com/selfbingo/selfbingo/internal/pkg/logging"
	"github.com/selfbingo/selfbingo/internal/pkg/metrics"
	"github.com/selfbingo/selfbingo/internal/pkg/payment"

	"github.com/urfave/cli/v3"
)

type SelfBingoService struct {
	EchoService *common.EchoService `do:""`

	JoinService *game.JoinService `do:""`
}

func runServer(_ context.Context, cmd *cli.Command) error {
	i := do.New()

	do.ProvideNamedValue(i, "port", cmd.Int("port"))
	do.ProvideNamedValue(i, "data-dir", cmd.String("data-dir"))

	do.ProvideNamedValue(i, "pay-to", cmd.String("pay-to"))
	do.ProvideNamedValue(i, "facilitator-url", cmd.String("facilitator-url"))
	do.ProvideNamedValue(i, "network", cmd.String("network"))
	do.ProvideNamedValue(i, "entry-fee-usd", cmd.String("entry-fee-usd"))

	do.ProvideNamedValue(i, "environment", cmd.String("environment"))
	do.ProvideNamedValue(i, "log-level", cmd.String("log-level"))

	do.Provide(i, logging.NewLogger)
	do.Provide(i, metrics.NewRecorder)

	do.Provide(i, common.NewEchoService)
	do.Provide(i, common.NewDatabaseService)

	do.Provide(i, payment.NewPolicy)
	do.Provide(i, payment.NewFacilitatorClient)

	do.Provide(i, game.NewStore)
	do.Provide(i, game.NewJoinService)

	do.Provide(i, do.InvokeStruct[SelfBingoService])

	selfBingoService, err := do.Invoke[SelfBingoService](i)
	if err != nil {
		return fmt.Errorf("failed to create echo service: %w", err)
	}

	//nolint:wrapcheck
	return selfBingoService.EchoService.Start()
}

func main() {
	//nolint:exhaustruct
	cmd := &cli.Command{
		Name: "selfbingo",
		Commands: []*cli.Command{
			{
				Name: "server",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "port",
						Value:   3000, //nolint:mnd
						Sources: cli.EnvVars("SELFBINGO_PORT"),
					},
					&cli.StringFlag{
						Name:    "data-dir",
						Value:   "./selfbingo/data",
						Sources: cli.EnvVars("SELFBINGO_DATA_DIR"),
					},
					&cli.StringFlag{
						Name:    "pay-to",
						Sources: cli.EnvVars("SELFBINGO_PAY_TO"),
					},
					&cli.StringFlag{
						Name:    "facilitator-url",
						Value:   "http://localhost:3005",
						Sources: cli.EnvVars("SELFBINGO_FACILITATOR_URL"),
					},
					&cli.StringFlag{
						Name:    "network",
						Value:   "celo",
						Sources: cli.EnvVars("SELFBINGO_NETWORK"),
					},
					&cli.StringFlag{
						Name:    "entry-fee-usd",
						Value:   "0.01",
						Sources: cli.EnvVars("SELFBINGO_ENTRY_FEE_USD"),
					},
					&cli.StringFlag{
						Name:    "environment",
						Value:   "production",
						Sources: cli.EnvVars("SELFBINGO_ENVIRONMENT"),
					},
					&cli.StringFlag{
						Name:    "log-level",
						Value:   "info",
						Sources: cli.EnvVars("SELFBINGO_LOG_LEVEL"),
					},
				},
				Action: runServer,
			},
		},
		DefaultCommand: "server",
	}

	err := cmd.Run(context.Background(), os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
