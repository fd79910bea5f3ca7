package main

import (
	"context"
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/urfave/cli/v3"
)

func deriveCmd() *cli.Command {
	return &cli.Command{
		Name:  "derive",
		Usage: "Print the folded shapes and stream widths for an operator description",
		Flags: commonOperatorFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := loadOperator(operatorPath)
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(a.Derive(), "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(os.Stdout, string(out))
			return err
		},
	}
}
