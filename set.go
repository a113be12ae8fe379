package main

import (
	"fmt"

	lib "github.com/awused/spanpapers/lib"
	"github.com/urfave/cli/v2"
)

func setCommand() *cli.Command {
	cmd := &cli.Command{}
	cmd.Name = "set"
	cmd.Usage = "Render the configured layout and set it as the wallpaper"
	cmd.Before = beforeFunc
	cmd.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  fill,
			Usage: "Override the fill mode: solid, blur or transparent",
		},
		&cli.StringFlag{
			Name:    color,
			Aliases: []string{"c"},
			Usage:   "Override the fill colour, e.g. '#112233'",
		},
	}

	cmd.Action = setAction

	return cmd
}

func setAction(c *cli.Context) error {
	conf, err := lib.GetConfig()
	checkErr(err)

	comp, err := composeFromLayout(conf.LayoutFile, c.String(fill), c.String(color))
	checkErr(err)
	if comp == nil {
		fmt.Println("Layout has no usable monitors, nothing to set.")
		return nil
	}

	err = lib.InstallComposite(comp)
	checkErr(err)

	printCoverage(comp)
	return nil
}
