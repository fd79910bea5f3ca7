package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/ArthurEly/finn-old/internal/weightfile"
)

func weightsCmd() *cli.Command {
	var (
		thresholdsPath string
		mode           string
		outPath        string
	)

	return &cli.Command{
		Name:  "weights",
		Usage: "Serialize a threshold matrix into a weight file",
		Flags: append(commonOperatorFlags(),
			&cli.StringFlag{
				Name:        "thresholds",
				Aliases:     []string{"t"},
				Usage:       "path to threshold matrix YAML (rows = channels, columns = steps)",
				Required:    true,
				Destination: &thresholdsPath,
			},
			&cli.StringFlag{
				Name:        "mode",
				Usage:       "encoding: const, dat, or runtime",
				Value:       string(weightfile.ModeDat),
				Destination: &mode,
			},
			&cli.StringFlag{
				Name:        "out",
				Usage:       "destination file",
				Required:    true,
				Destination: &outPath,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := LoadConfig()
			log := newLogger(cfg)

			a, err := loadOperator(operatorPath)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(thresholdsPath)
			if err != nil {
				return fmt.Errorf("read thresholds: %w", err)
			}
			var thresholds [][]int64
			if err := yaml.Unmarshal(data, &thresholds); err != nil {
				return fmt.Errorf("parse thresholds: %w", err)
			}

			if err := weightfile.Write(a, thresholds, weightfile.Mode(mode), outPath); err != nil {
				return err
			}
			log.Info("wrote weight file", "mode", mode, "out", outPath,
				"channels", a.NumChannels, "steps", a.NumSteps)
			return nil
		},
	}
}
