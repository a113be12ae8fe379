package main

import (
	"errors"
	"fmt"
	"path/filepath"

	lib "github.com/awused/spanpapers/lib"
	"github.com/urfave/cli/v2"
)

const maxDim = "max-dim"

func previewCommand() *cli.Command {
	cmd := &cli.Command{}
	cmd.Name = "preview"
	cmd.Usage = "Render a scaled down copy of the wallpaper for checking " +
		"a layout without waiting on a full sized encode"
	cmd.ArgsUsage = "LAYOUT OUTPUT"
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
		&cli.IntFlag{
			Name:    maxDim,
			Aliases: []string{"m"},
			Value:   1200,
			Usage:   "Maximum output dimension in pixels",
		},
	}

	cmd.Action = previewAction

	return cmd
}

func previewAction(c *cli.Context) error {
	if c.NArg() < 2 {
		checkErr(errors.New("Missing layout or output file"))
	}

	layoutPath, err := filepath.Abs(c.Args().Get(0))
	checkErr(err)
	outPath, err := filepath.Abs(c.Args().Get(1))
	checkErr(err)

	dim := c.Int(maxDim)
	if dim < 100 {
		checkErr(fmt.Errorf("--%s %d is too small to be useful", maxDim, dim))
	}

	comp, err := composeFromLayout(layoutPath, c.String(fill), c.String(color))
	checkErr(err)
	if comp == nil {
		fmt.Println("Layout has no usable monitors, nothing to preview.")
		return nil
	}

	small := lib.ShrinkToFit(comp.Image, dim)
	err = lib.SaveImage(small, outPath, 90)
	checkErr(err)

	printCoverage(comp)
	return nil
}
