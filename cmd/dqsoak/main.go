// dqsoak drives randomized workloads against the chunked deque and verifies
// every operation against a reference model.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/urfave/cli/v3"
)

var app = cli.Command{
	Name:  "dqsoak",
	Usage: "Soak test the chunked deque",

	DefaultCommand: "run",
	Commands: []*cli.Command{
		{
			Name:  "run",
			Usage: "Run a soak scenario",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				f, err := os.Open(cmd.String("config"))
				if err != nil {
					return fmt.Errorf("couldn't open scenario file: %w", err)
				}
				defer f.Close()
				cfg, err := Load(f)
				if err != nil {
					return fmt.Errorf("couldn't load scenario: %w", err)
				}
				return Run(ctx, cfg)
			},
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "config",
					Required: true,
					Usage:    "TOML scenario file",
					Action: func(ctx context.Context, cmd *cli.Command, s string) error {
						i, err := os.Stat(s)
						if err != nil {
							return err
						}
						if !i.Mode().IsRegular() {
							return errors.New("config must be a regular file")
						}
						return nil
					},
				},
			},
		},
	},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	go func() {
		<-ctx.Done()
		stop()
	}()
	err := app.Run(ctx, os.Args)
	if err != nil {
		fmt.Println(err)
	}
}
