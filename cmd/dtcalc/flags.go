package main

import "github.com/urfave/cli/v2"

const (
	flagConfig    = "config"
	flagStartDay  = "start-day"
	flagEndDay    = "end-day"
	flagAvgVolume = "avg-volume"
	flagOut       = "out"
	flagTail      = "tail"
)

const (
	defaultStartDay  = 43
	defaultEndDay    = 365
	defaultAvgVolume = 8.0
)

func rangeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.UintFlag{
			Name:    flagStartDay,
			Aliases: []string{"s"},
			Value:   defaultStartDay,
			Usage:   "issuance day the bonus pool is anchored to (1-based)",
		},
		&cli.UintFlag{
			Name:    flagEndDay,
			Aliases: []string{"e"},
			Value:   defaultEndDay,
			Usage:   "last issuance day of the range, inclusive",
		},
		&cli.Float64Flag{
			Name:    flagAvgVolume,
			Aliases: []string{"a"},
			Value:   defaultAvgVolume,
			Usage:   "average daily trading volume, in 亿",
		},
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    flagConfig,
			Aliases: []string{"c"},
			Value:   "configs/config.yaml",
			EnvVars: []string{"CONFIG_PATH"},
			Usage:   "path to configuration",
		},
	}
}
