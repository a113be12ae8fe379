package main

import (
	"errors"
	"fmt"
	"path/filepath"

	lib "github.com/awused/spanpapers/lib"
	"github.com/urfave/cli/v2"
)

func infoCommand() *cli.Command {
	cmd := &cli.Command{}
	cmd.Name = "info"
	cmd.Usage = "Print the derived geometry and output coverage for a " +
		"layout without rendering any pixels"
	cmd.ArgsUsage = "LAYOUT"

	cmd.Action = infoAction

	return cmd
}

func infoAction(c *cli.Context) error {
	if c.NArg() == 0 {
		checkErr(errors.New("Missing layout file"))
	}

	layoutPath, err := filepath.Abs(c.Args().First())
	checkErr(err)

	l, err := lib.LoadLayout(layoutPath)
	checkErr(err)

	for _, m := range l.Monitor {
		r := m.PhysicalRect()
		fmt.Printf("%s: %.1f\" %d:%d %dx%d at %.2f,%.2f inches",
			m.Name, m.Diagonal, m.AspectX, m.AspectY, m.ResX, m.ResY, m.X, m.Y)
		if m.Rotation != 0 {
			fmt.Printf(" rotated %d", m.Rotation)
		}
		fmt.Printf("\n    %.1f ppi, %.2fx%.2f inches, strip %dx%d\n",
			m.PPI(), r.Width(), r.Height(), m.StripWidth(), m.StripHeight())
	}

	// The coverage report doesn't depend on the image or the fill, so the
	// null canvas skips all pixel work.
	comp, err := lib.ComposeWallpaper(lib.ComposeOptions{
		Monitors:   l.Monitor,
		Placements: l.Arrangement(),
		NewCanvas:  lib.NullCanvas,
	})
	checkErr(err)
	if comp == nil {
		fmt.Println("Layout has no usable monitors.")
		return nil
	}

	printCoverage(comp)
	return nil
}
