package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/api-sage/splitpay-ledger/src/internal/adapter/repository/memory"
	"github.com/api-sage/splitpay-ledger/src/internal/adapter/stream"
	"github.com/api-sage/splitpay-ledger/src/internal/domain"
)

func newRunCommand() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "run <input.json>",
		Short: "Replay a batch command stream and write the output log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStream(cmd.Context(), args[0], outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default stdout)")

	return cmd
}

func runStream(ctx context.Context, inputPath, outputPath string) error {
	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read input %s: %w", inputPath, err)
	}

	var input stream.Input
	if err := json.Unmarshal(raw, &input); err != nil {
		return fmt.Errorf("parse input %s: %w", inputPath, err)
	}

	rates := make([]domain.Rate, 0, len(input.ExchangeRates))
	for i, seed := range input.ExchangeRates {
		rates = append(rates, domain.Rate{
			ID:           int64(i + 1),
			FromCurrency: seed.From,
			ToCurrency:   seed.To,
			Rate:         seed.Rate,
		})
	}

	app := newApplication(memory.NewRateRepository(rates))

	if err := app.rateService.LoadRates(ctx); err != nil {
		return fmt.Errorf("load exchange rates: %w", err)
	}

	runner := stream.NewRunner(
		app.userService,
		app.accountService,
		app.transferService,
		app.settlementService,
	)

	if err := runner.Seed(ctx, input); err != nil {
		return err
	}

	events := runner.Run(ctx, input)

	encoded, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	encoded = append(encoded, '\n')

	if outputPath == "" {
		_, err = os.Stdout.Write(encoded)
		return err
	}

	if err := os.WriteFile(outputPath, encoded, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	return nil
}
