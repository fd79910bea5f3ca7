package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/ArthurEly/finn-old/internal/manifest"
	"github.com/ArthurEly/finn-old/internal/rtl"
)

func generateCmd() *cli.Command {
	var (
		outDir     string
		moduleName string
	)

	return &cli.Command{
		Name:  "generate",
		Usage: "Render the thresholding RTL file set for an operator description",
		Flags: append(commonOperatorFlags(),
			rtlDirFlag(),
			&cli.StringFlag{
				Name:        "out",
				Usage:       "generation directory (created if absent, overwritten wholesale)",
				Required:    true,
				Destination: &outDir,
			},
			&cli.StringFlag{
				Name:        "module-name",
				Usage:       "base name of the generated module",
				Value:       "thresholding",
				Destination: &moduleName,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := LoadConfig()
			log := newLogger(cfg)

			a, err := loadOperator(operatorPath)
			if err != nil {
				return err
			}

			root := resolveRTLDir(cmd, cfg, rtlDir)
			res, err := rtl.Generate(root, outDir, moduleName, a)
			if err != nil {
				return err
			}
			if err := manifest.Write(outDir, manifest.Manifest{
				Operator:  *a,
				Derived:   a.Derive(),
				TopModule: res.TopModule,
				Files:     res.Files,
			}); err != nil {
				return err
			}

			log.Info("generated thresholding block",
				"top_module", res.TopModule,
				"files", len(res.Files),
				"out", outDir)
			return nil
		},
	}
}
