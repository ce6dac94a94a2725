package main

import (
	"fmt"

	"slidegen/internal/llm"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// verifyKeyCmd checks the configured LLM credentials.
var verifyKeyCmd = &cobra.Command{
	Use:   "verify-key",
	Short: "Check that the configured API key works",
	Args:  cobra.NoArgs,
	RunE:  runVerifyKey,
}

func runVerifyKey(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := commandContext()
	defer cancel()

	client, err := a.client(ctx)
	if err != nil {
		return err
	}
	ok, err := llm.VerifyKey(ctx, client)
	if err != nil {
		logger.Warn("Key verification request failed", zap.Error(err))
		return fmt.Errorf("could not reach %s: %w", a.cfg.LLM.Provider, err)
	}
	out := cmd.OutOrStdout()
	if !ok {
		fmt.Fprintln(out, a.styles.Error.Render(a.catalog.T("key_invalid")))
		return fmt.Errorf("API key verification failed for provider %s", a.cfg.LLM.Provider)
	}
	fmt.Fprintln(out, a.styles.Success.Render(a.catalog.T("key_valid")))
	return nil
}
