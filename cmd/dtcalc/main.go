package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:     "dtcalc",
		Usage:    "DT release schedule and bonus calculator",
		Flags:    globalFlags(),
		Commands: commands(),
		Action:   defaultCmd,
	}
}

func commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:   "calc",
			Usage:  "compute total release and bonus for a day range",
			Flags:  rangeFlags(),
			Action: calcCmd,
		},
		{
			Name:  "schedule",
			Usage: "write the day-by-day release and bonus schedule as CSV",
			Flags: append(rangeFlags(), &cli.StringFlag{
				Name:    flagOut,
				Aliases: []string{"o"},
				Usage:   "CSV output file, stdout when empty (overrides report.csv_path)",
			}),
			Action: scheduleCmd,
		},
		{
			Name:      "show",
			Usage:     "print a schedule CSV saved by the schedule command",
			ArgsUsage: "[file]",
			Flags: []cli.Flag{
				&cli.UintFlag{
					Name:  flagTail,
					Usage: "only print the last N rows, all rows when 0",
				},
			},
			Action: showCmd,
		},
		{
			Name:   "today",
			Usage:  "print today's release, cost and bonus per coin",
			Action: todayCmd,
		},
		{
			Name:   "serve",
			Usage:  "record a daily snapshot on schedule and answer Telegram commands",
			Action: serveCmd,
		},
	}
}
