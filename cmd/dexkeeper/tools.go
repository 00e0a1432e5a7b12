package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	service "github.com/okian/dexkeeper/internal/app"
	"github.com/okian/dexkeeper/internal/domain/analytics"
	"github.com/okian/dexkeeper/internal/domain/model"
	"github.com/okian/dexkeeper/internal/domain/stat"
	"github.com/okian/dexkeeper/internal/seed"
	"github.com/okian/dexkeeper/pkg/logger"
)

const outputFilePermission = 0o600

var errBadStatList = errors.New("stat list must have 1 or 6 comma-separated integers")

func statsCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print analytics for an exported collection",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := readInput(cmd, file)
			if err != nil {
				return err
			}
			var records []model.Pokemon
			if err := json.Unmarshal(data, &records); err != nil {
				return fmt.Errorf("decode collection: %w", err)
			}
			return writeJSON(cmd.OutOrStdout(), analytics.Compute(records))
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "Exported collection (JSON array); - reads stdin")
	return cmd
}

func calcCmd() *cobra.Command {
	var (
		species, base, ivs, evs, nature, only, refdataDir string
		level                                             int
	)

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Compute effective stats for a build",
		Example: `  dexkeeper calc --species garchomp --level 100 --nature jolly --ev 0,252,0,0,4,252
  dexkeeper calc --base 108,130,95,80,85,102 --iv 31 --level 50 --stat speed`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			refs, err := loadReferences(refdataDir)
			if err != nil {
				return err
			}
			svc := service.New(service.WithLogger(logger.Nop()), service.WithReferenceData(refs))
			if err := svc.Start(ctx); err != nil {
				return err
			}
			defer svc.Stop()

			in := service.CalcInput{Level: level, Nature: nature}
			if in.IVs, err = parseStatList(ivs); err != nil {
				return fmt.Errorf("--iv: %w", err)
			}
			if in.EVs, err = parseStatList(evs); err != nil {
				return fmt.Errorf("--ev: %w", err)
			}
			switch {
			case base != "":
				b, err := parseStatList(base)
				if err != nil {
					return fmt.Errorf("--base: %w", err)
				}
				in.Base = &b
			case species != "":
				sp, err := refs.Species(ctx, species)
				if err != nil {
					return err
				}
				in.SpeciesID = sp.ID
			default:
				return errors.New("one of --species or --base is required")
			}

			report, err := svc.CalculateStats(ctx, in)
			if err != nil {
				return err
			}
			if only == "" {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			s := stat.Stat(strings.ToLower(only))
			if !s.Valid() {
				return fmt.Errorf("unknown stat %q", only)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), report.Stats.Get(s))
			return err
		},
	}

	cmd.Flags().StringVar(&species, "species", "", "Species id or name")
	cmd.Flags().StringVar(&base, "base", "", "Base stats hp,atk,def,spa,spd,spe (overrides --species)")
	cmd.Flags().StringVar(&ivs, "iv", "31", "IVs, one value or six")
	cmd.Flags().StringVar(&evs, "ev", "0", "EVs, one value or six")
	cmd.Flags().IntVar(&level, "level", stat.MaxLevel, "Level 1-100")
	cmd.Flags().StringVar(&nature, "nature", "", "Nature name; empty is neutral")
	cmd.Flags().StringVar(&only, "stat", "", "Print only this stat (hp, attack, defense, special-attack, special-defense, speed)")
	cmd.Flags().StringVar(&refdataDir, "refdata", "", "Directory with species.json and moves.json")
	return cmd
}

func seedCmd() *cobra.Command {
	var (
		count      int
		seedValue  uint64
		shinyRate  float64
		out        string
		refdataDir string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate a sample collection in the import format",
		RunE: func(cmd *cobra.Command, _ []string) error {
			refs, err := loadReferences(refdataDir)
			if err != nil {
				return err
			}
			gen := seed.New(refs,
				seed.WithSeed(seedValue),
				seed.WithShinyRate(shinyRate),
			)
			records, err := gen.Generate(cmd.Context(), count)
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				return writeJSON(cmd.OutOrStdout(), records)
			}
			f, err := os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, outputFilePermission)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			if err := writeJSON(f, records); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("close %s: %w", out, err)
			}
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d records to %s\n", len(records), out)
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 100, "Number of records")
	cmd.Flags().Uint64Var(&seedValue, "seed", seed.DefaultSeed, "Random seed; equal seeds give equal collections")
	cmd.Flags().Float64Var(&shinyRate, "shiny-rate", seed.DefaultShinyRate, "Probability a record is shiny")
	cmd.Flags().StringVarP(&out, "out", "o", "-", "Output file; - writes stdout")
	cmd.Flags().StringVar(&refdataDir, "refdata", "", "Directory with species.json and moves.json")
	return cmd
}

// parseStatList reads "31" or "31,31,31,31,31,31" into a StatSet in display order.
func parseStatList(raw string) (stat.StatSet, error) {
	var out stat.StatSet
	parts := strings.Split(raw, ",")
	if len(parts) != 1 && len(parts) != len(stat.Stats()) {
		return out, errBadStatList
	}
	for i, s := range stat.Stats() {
		p := parts[0]
		if len(parts) > 1 {
			p = parts[i]
		}
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return out, fmt.Errorf("%w: %q", errBadStatList, p)
		}
		out.Set(s, v)
	}
	return out, nil
}

func readInput(cmd *cobra.Command, file string) ([]byte, error) {
	if file == "" || file == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file, err)
	}
	return data, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
