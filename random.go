package main

import (
	"errors"
	"log"

	"github.com/awused/go-strpick/persistent"
	lib "github.com/awused/spanpapers/lib"
	"github.com/urfave/cli/v2"
)

const unlocked = "unlocked"

func randomCommand() *cli.Command {
	cmd := &cli.Command{}
	cmd.Name = "random"
	cmd.Usage = "Span a randomly selected image across the configured layout"
	cmd.Before = beforeFunc
	cmd.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    unlocked,
			Aliases: []string{"u"},
			Usage:   "Abort without changing anything if the screen is locked",
		},
	}

	cmd.Action = randomAction

	return cmd
}

func randomAction(c *cli.Context) error {
	conf, err := lib.GetConfig()
	checkErr(err)

	if conf.DatabaseDir == "" {
		checkErr(errors.New("Config missing DatabaseDir"))
	}

	picker, err := persistent.NewPicker(conf.DatabaseDir)
	checkErr(err)
	defer picker.Close()

	if c.Bool(unlocked) {
		locked, err := lib.CheckIfLocked()
		checkErr(err)
		if locked {
			// Silently exit, this isn't an error
			return nil
		}
	}

	originals, err := lib.GetAllOriginals()
	checkErr(err)

	err = picker.AddAll(originals)
	checkErr(err)

	sz, err := picker.Size()
	checkErr(err)
	if sz == 0 {
		log.Fatal("No wallpapers present in OriginalsDirectory")
	}

	selection, err := picker.TryUniqueN(1)
	checkErr(err)
	if len(selection) == 0 {
		return nil
	}

	absPath, err := lib.GetFullInputPath(selection[0])
	checkErr(err)

	l, err := lib.LoadLayout(conf.LayoutFile)
	checkErr(err)

	si, err := lib.LoadSourceImage(absPath)
	checkErr(err)
	si.CoverPhysicalRect(lib.PhysicalBounds(l.Monitor))

	comp, err := lib.ComposeWallpaper(lib.ComposeOptions{
		Monitors:   l.Monitor,
		Image:      si,
		Placements: l.Arrangement(),
		Fill:       l.FillOptions(),
	})
	checkErr(err)
	if comp == nil {
		log.Println("Layout has no usable monitors.")
		return nil
	}

	err = lib.InstallComposite(comp)
	checkErr(err)
	return nil
}
