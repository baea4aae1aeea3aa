package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/tacair/aircombat-simulations/pkg/logger"
	"github.com/tacair/aircombat-simulations/pkg/scenario"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a scenario",
	Long:  `Run a scenario interactively or by name, streaming an ACMI-style recording`,
	RunE:  runScenario,
}

func init() {
	runCmd.Flags().StringP("scenario", "s", "", "bundled scenario name to run")
	runCmd.Flags().StringP("file", "f", "", "scenario file (YAML)")
	runCmd.Flags().StringP("output", "o", "", "recording output path (default <scenario>.acmi)")
}

func runScenario(cmd *cobra.Command, _ []string) error {
	cfg, err := selectScenario(cmd)
	if err != nil {
		return fmt.Errorf("failed to select scenario: %w", err)
	}

	outPath, _ := cmd.Flags().GetString("output")
	if outPath == "" {
		outPath = cfg.Name + ".acmi"
	}
	outFile, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create recording file: %w", err)
	}
	defer func() { _ = outFile.Close() }()

	rec := scenario.NewRecorder(outFile, !noColor)
	var s *scenario.Scenario
	err = logger.WithSpinner("Building scenario entities", func() error {
		var buildErr error
		s, buildErr = scenario.New(cfg, rec)
		return buildErr
	})
	if err != nil {
		return fmt.Errorf("failed to build scenario: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Warn("\nReceived interrupt signal, stopping scenario...")
		cancel()
	}()

	logger.LogSection(fmt.Sprintf("Scenario: %s", cfg.Name))
	logger.Progressf("Running %d aircraft at %d Hz...", len(cfg.Aircraft), cfg.Frequency)

	outcome, err := s.Run(ctx)
	if err != nil && err != context.Canceled {
		return fmt.Errorf("scenario failed: %w", err)
	}
	if err == context.Canceled {
		logger.Warn("Scenario cancelled")
	}

	logger.Success(rec.Summary())
	logger.LogKeyValue("sim time", fmt.Sprintf("%.1f s", outcome.SimTime))
	logger.LogKeyValue("missiles fired", outcome.MissilesFired)
	logger.LogKeyValue("survivors", outcome.Survivors)
	for uid, reason := range outcome.Terminated {
		logger.LogKeyValue(uid, reason)
	}
	logger.Successf("Recording written to %s", outPath)
	return nil
}

// selectScenario resolves the scenario from flags, falling back to an
// interactive prompt over the bundled set.
func selectScenario(cmd *cobra.Command) (*scenario.Config, error) {
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		return scenario.LoadConfig(path)
	}
	if name, _ := cmd.Flags().GetString("scenario"); name != "" {
		cfg, ok := scenario.FindBuiltin(name)
		if !ok {
			return nil, fmt.Errorf("unknown scenario %q", name)
		}
		return cfg, nil
	}

	builtin := scenario.Builtin()
	options := make([]string, len(builtin))
	for i, cfg := range builtin {
		options[i] = fmt.Sprintf("%s - %s", cfg.Name, cfg.Description)
	}

	var selected int
	prompt := &survey.Select{
		Message: "Select a scenario to run:",
		Options: options,
	}
	if err := survey.AskOne(prompt, &selected); err != nil {
		return nil, err
	}
	return builtin[selected], nil
}
