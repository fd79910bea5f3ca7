package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/ArthurEly/finn-old/internal/ipi"
	"github.com/ArthurEly/finn-old/internal/manifest"
)

func integrateCmd() *cli.Command {
	var (
		genDir      string
		instName    string
		sAxisFreqHz int64
		mAxisFreqHz int64
		outPath     string
	)

	return &cli.Command{
		Name:  "integrate",
		Usage: "Emit the block-design integration command sequence for a generated block",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "gen-dir",
				Usage:       "generation directory holding the manifest and RTL files",
				Required:    true,
				Destination: &genDir,
			},
			&cli.StringFlag{
				Name:        "instance",
				Usage:       "cell name inside the block design",
				Required:    true,
				Destination: &instName,
			},
			&cli.Int64Flag{
				Name:        "s-axis-freq",
				Usage:       "input stream clock frequency in Hz",
				Destination: &sAxisFreqHz,
			},
			&cli.Int64Flag{
				Name:        "m-axis-freq",
				Usage:       "output stream clock frequency in Hz",
				Destination: &mAxisFreqHz,
			},
			&cli.StringFlag{
				Name:        "out",
				Usage:       "write the tcl sequence here instead of stdout",
				Destination: &outPath,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := LoadConfig()

			m, err := manifest.Load(genDir)
			if err != nil {
				return err
			}

			const defaultFreqHz = 100_000_000
			cmds := ipi.Commands(ipi.Block{
				GenDir:      genDir,
				Files:       m.Files,
				TopModule:   m.TopModule,
				InstName:    instName,
				SAxisFreqHz: resolveFreq(cmd, "s-axis-freq", sAxisFreqHz, cfg.SAxisFreqHz, defaultFreqHz),
				MAxisFreqHz: resolveFreq(cmd, "m-axis-freq", mAxisFreqHz, cfg.MAxisFreqHz, defaultFreqHz),
			})

			script := strings.Join(cmds, "\n") + "\n"
			if outPath == "" {
				_, err := fmt.Fprint(os.Stdout, script)
				return err
			}
			return os.WriteFile(outPath, []byte(script), 0o644)
		},
	}
}
