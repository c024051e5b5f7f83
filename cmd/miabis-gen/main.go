// Command miabis-gen generates synthetic MIABIS on FHIR transaction bundles
// for loading into a FHIR server, either as a one-shot CLI run or as a small
// HTTP service.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/miabis/bundlegen/internal/config"
	"github.com/miabis/bundlegen/internal/generator"
	"github.com/miabis/bundlegen/internal/platform/random"
	"github.com/miabis/bundlegen/internal/registry"
	"github.com/miabis/bundlegen/internal/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "miabis-gen",
		Short: "Synthetic MIABIS on FHIR bundle generator",
	}

	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(registriesCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return logger
}

// loadConfig reads the environment configuration and lays command-line flag
// values over it. Flags win over environment variables.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("donors") {
		cfg.Donors, _ = flags.GetInt("donors")
	}
	if flags.Changed("biobanks") {
		cfg.Biobanks, _ = flags.GetInt("biobanks")
	}
	if flags.Changed("collections") {
		cfg.Collections, _ = flags.GetInt("collections")
	}
	if flags.Changed("output") {
		cfg.Output, _ = flags.GetString("output")
	}
	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetInt64("seed")
	}
	if flags.Changed("specimens-min") {
		cfg.SpecimensMin, _ = flags.GetInt("specimens-min")
	}
	if flags.Changed("specimens-max") {
		cfg.SpecimensMax, _ = flags.GetInt("specimens-max")
	}
	if flags.Changed("observation-probability") {
		cfg.ObservationProbability, _ = flags.GetFloat64("observation-probability")
	}
	return cfg, nil
}

func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().Int("donors", 0, "Number of sample donors (required unless DONORS is set)")
	cmd.Flags().Int("biobanks", 1, "Number of biobanks")
	cmd.Flags().Int("collections", 1, "Number of collections")
	cmd.Flags().Int64("seed", 0, "Random seed; 0 draws one from system entropy")
	cmd.Flags().Int("specimens-min", 1, "Minimum specimens per donor")
	cmd.Flags().Int("specimens-max", 3, "Maximum specimens per donor")
	cmd.Flags().Float64("observation-probability", 1.0, "Probability of an observation per specimen")
}

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a transaction bundle and write it to disk",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			seed := cfg.Seed
			var p *random.Provider
			if seed == 0 {
				p, seed, err = random.NewFromEntropy()
				if err != nil {
					return err
				}
				logger.Info().Int64("seed", seed).Msg("no seed supplied, drew one from system entropy")
			} else {
				p = random.New(seed)
			}

			output := cfg.ResolvedOutput()
			if err := generator.CheckWritable(output); err != nil {
				return err
			}

			bundle, sum, err := generator.New(cfg, p, seed).Assemble()
			if err != nil {
				return err
			}
			if err := generator.WriteFile(output, bundle); err != nil {
				return err
			}

			logger.Info().
				Int64("seed", sum.Seed).
				Int("organizations", sum.Organizations).
				Int("groups", sum.Groups).
				Int("donors", sum.Donors).
				Int("conditions", sum.Conditions).
				Int("specimens", sum.Specimens).
				Int("diagnostic_reports", sum.DiagnosticReports).
				Int("observations", sum.Observations).
				Int("total", sum.TotalResources).
				Dur("took", sum.Duration).
				Str("output", output).
				Msg("bundle written")
			return nil
		},
	}
	addGenerateFlags(cmd)
	cmd.Flags().String("output", "", "Output file path")
	return cmd
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the generator HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			// The server validates per request, so a partial configuration
			// is acceptable at startup.
			e := server.New(cfg, logger)

			go func() {
				addr := ":" + cfg.Port
				logger.Info().Str("addr", addr).Msg("starting server")
				if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
					logger.Fatal().Err(err).Msg("server error")
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit

			logger.Info().Msg("shutting down server")
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := e.Shutdown(ctx); err != nil {
				logger.Fatal().Err(err).Msg("server shutdown failed")
			}
			logger.Info().Msg("server stopped")
			return nil
		},
	}
	addGenerateFlags(cmd)
	return cmd
}

func registriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "registries [name]",
		Short: "List the coded value sets the generator draws from",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sets := registry.Registries()
			if len(args) == 0 {
				for _, s := range sets {
					fmt.Printf("%-30s %d codes\n", s.Name, len(s.Codes))
				}
				return nil
			}
			for _, s := range sets {
				if s.Name != args[0] {
					continue
				}
				for _, c := range s.Codes {
					fmt.Printf("%-12s %s\n", c.Code, c.Display)
				}
				return nil
			}
			return fmt.Errorf("unknown registry %q", args[0])
		},
	}
}
