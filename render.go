package main

import (
	"errors"
	"fmt"
	"path/filepath"

	lib "github.com/awused/spanpapers/lib"
	"github.com/urfave/cli/v2"
)

const fill = "fill"
const color = "color"
const quality = "quality"

func renderCommand() *cli.Command {
	cmd := &cli.Command{}
	cmd.Name = "render"
	cmd.Usage = "Render the spanned wallpaper for a layout file"
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
			Name:    quality,
			Aliases: []string{"q"},
			Value:   90,
			Usage:   "JPEG quality, for .jpg output files",
		},
	}

	cmd.Action = renderAction

	return cmd
}

func renderAction(c *cli.Context) error {
	if c.NArg() < 2 {
		checkErr(errors.New("Missing layout or output file"))
	}

	layoutPath, err := filepath.Abs(c.Args().Get(0))
	checkErr(err)
	outPath, err := filepath.Abs(c.Args().Get(1))
	checkErr(err)

	comp, err := composeFromLayout(layoutPath, c.String(fill), c.String(color))
	checkErr(err)
	if comp == nil {
		fmt.Println("Layout has no usable monitors, nothing to render.")
		return nil
	}

	err = lib.SaveImage(comp.Image, outPath, c.Int(quality))
	checkErr(err)

	printCoverage(comp)
	return nil
}

// composeFromLayout runs the whole pipeline for a layout file, with
// optional fill overrides on top of whatever the layout specifies.
func composeFromLayout(path string, fillMode, fillColor string) (*lib.Composite, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	l, err := lib.LoadLayout(abs)
	if err != nil {
		return nil, err
	}

	si, err := l.SourceImage()
	if err != nil {
		return nil, err
	}

	fillOpts := l.FillOptions()
	if fillMode != "" {
		fillOpts.Mode = lib.FillMode(fillMode)
	}
	if fillColor != "" {
		fillOpts.Color = fillColor
	}

	return lib.ComposeWallpaper(lib.ComposeOptions{
		Monitors:   l.Monitor,
		Image:      si,
		Placements: l.Arrangement(),
		Fill:       fillOpts,
	})
}

func printCoverage(comp *lib.Composite) {
	fmt.Printf("Output: %dx%d\n", comp.Width, comp.Height)
	for _, s := range comp.Strips {
		fmt.Printf("  %s: %dx%d at +%d+%d\n", s.Monitor, s.Width, s.Height, s.X, s.Y)
	}
	if comp.HasGaps {
		fmt.Println("The monitors do not cover the full output, gaps show the fill.")
	}
}
