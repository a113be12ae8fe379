package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	lib "github.com/awused/spanpapers/lib"
	prompt "github.com/c-bata/go-prompt"
	"github.com/urfave/cli/v2"
)

/*
v2: save back to the layout file instead of printing
v2: monitor nudging, not just the image
*/

func interactiveCommand() *cli.Command {
	cmd := &cli.Command{}
	cmd.Name = "interactive"
	cmd.Usage = "Interactively nudge the image around the layout, " +
		"re-rendering onto every monitor after each change"
	cmd.ArgsUsage = "[FILE]"
	cmd.Before = beforeFunc

	cmd.Action = interactiveAction

	return cmd
}

func interactiveAction(c *cli.Context) error {
	var override string
	if c.NArg() > 0 {
		w, err := filepath.Abs(c.Args().First())
		checkErr(err)
		override = w
	}

	// Large buffered channel so it doesn't block signals if it's busy
	sigs := make(chan os.Signal, 100)
	promptChan := make(chan struct{}, 1)
	inputChan := make(chan string)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGHUP)

	go func() {
		promptUntilDone(override, inputChan)
		promptChan <- struct{}{}
	}()

	for {
		select {
		case <-promptChan:
			return nil
		case <-sigs:
			// We need to make sure we clean up, so consume sigint
			inputChan <- "exit"
		}
	}
}

func completer(d prompt.Document) []prompt.Suggest {
	s := []prompt.Suggest{
		{Text: "exit", Description: "Exit the program"},
		{Text: "print", Description: "Print the image and fill settings to " +
			"be copied into the layout file"},
		{Text: "reset", Description: "Reset the image and fill"},
		{Text: "rotate", Description: "Rotate the image a quarter turn " +
			"clockwise and re-cover the monitors"},
		{Text: "cover", Description: "Re-center the image over all monitors"},
		{Text: "x", Description: "Set the left edge of the image, in inches"},
		{Text: "y", Description: "Set the top edge of the image, in inches"},
		{Text: "width", Description: "Set the physical width of the image, " +
			"the height is left alone"},
		{Text: "height", Description: "Set the physical height of the image, " +
			"the width is left alone"},
		{Text: fill, Description: "Set the fill mode: solid, blur or transparent"},
		{Text: color, Description: "Set the fill colour, e.g. '#112233'"},
	}
	return prompt.FilterHasPrefix(s, d.TextBeforeCursor(), true)
}

func setDouble(toSet *float64) func(string, string) {
	return func(s, p string) {
		input := strings.TrimPrefix(s, p)
		n, err := strconv.ParseFloat(input, 64)
		if err != nil {
			fmt.Printf("Invalid input \"%s\"\n", input)
			return
		}
		*toSet = n
	}
}

func setString(toSet *string) func(string, string) {
	return func(s, p string) {
		input := strings.TrimPrefix(s, p)
		*toSet = input
	}
}

func setFillMode(toSet *lib.FillMode) func(string, string) {
	return func(s, p string) {
		input := lib.FillMode(strings.TrimPrefix(s, p))
		switch input {
		case lib.FillSolid, lib.FillBlur, lib.FillTransparent:
			*toSet = input
		default:
			fmt.Printf("Invalid fill mode \"%s\"\n", input)
		}
	}
}

func printSettings(si *lib.SourceImage, fillOpts lib.FillOptions) {
	fragment := &lib.Layout{
		Image: &lib.ImageConfig{
			Path:     si.Path,
			X:        si.X,
			Y:        si.Y,
			Width:    si.Width,
			Height:   si.Height,
			Rotation: si.Rotation,
		},
	}
	if fillOpts != lib.DefaultFill() {
		fragment.Fill = &fillOpts
	}
	fmt.Print(fragment.TOML())
}

func promptUntilDone(override string, inputChan chan string) {
	conf, err := lib.GetConfig()
	checkErr(err)

	l, err := lib.LoadLayout(conf.LayoutFile)
	checkErr(err)

	if len(l.Monitor) == 0 {
		log.Println("Layout has no monitors.")
		return
	}
	bounds := lib.PhysicalBounds(l.Monitor)

	var si *lib.SourceImage
	if override != "" {
		si, err = lib.LoadSourceImage(override)
		checkErr(err)
		si.CoverPhysicalRect(bounds)
	} else {
		si, err = l.SourceImage()
		checkErr(err)
		if si == nil {
			checkErr(errors.New(
				"Layout has no image, pass one as an argument"))
		}
	}
	initial := *si

	fillOpts := l.FillOptions()
	initialFill := fillOpts

	executors := map[string]func(string, string){
		"x ":        setDouble(&si.X),
		"y ":        setDouble(&si.Y),
		"width ":    setDouble(&si.Width),
		"w ":        setDouble(&si.Width),
		"height ":   setDouble(&si.Height),
		"h ":        setDouble(&si.Height),
		fill + " ":  setFillMode(&fillOpts.Mode),
		"f ":        setFillMode(&fillOpts.Mode),
		color + " ": setString(&fillOpts.Color),
		"c ":        setString(&fillOpts.Color),
	}

	exit := prompt.OptionAddKeyBind(prompt.KeyBind{
		Key: prompt.ControlC,
		Fn: func(b *prompt.Buffer) {
			inputChan <- "exit"
		},
	})

	rerender := func() {
		defer func() {
			r := recover()
			if r != nil {
				fmt.Println("Unexpected error: ", r)
			}
		}()

		comp, err := lib.ComposeWallpaper(lib.ComposeOptions{
			Monitors:   l.Monitor,
			Image:      si,
			Placements: l.Arrangement(),
			Fill:       fillOpts,
		})
		checkErr(err)
		if comp == nil {
			fmt.Println("Layout has no usable monitors.")
			return
		}
		err = lib.PreviewComposite(comp)
		checkErr(err)
	}

	fmt.Println("Previewing...")
	rerender()

PromptLoop:
	for {
		go func() {
			// prompt.Input is blocking, synchronous, and provides no way to abort it
			inputChan <- strings.ToLower(prompt.Input("> ", completer, exit))
		}()
		in := <-inputChan
		switch in {
		case "exit":
			return
		case "print":
			printSettings(si, fillOpts)
			continue
		case "reset":
			*si = initial
			fillOpts = initialFill
			rerender()
			continue
		case "rotate":
			si.Rotate()
			si.CoverPhysicalRect(bounds)
			rerender()
			continue
		case "cover":
			si.CoverPhysicalRect(bounds)
			rerender()
			continue
		}

		// Very naive, but adequate
		for s, e := range executors {
			if strings.HasPrefix(in, s) {
				e(in, s)

				rerender()
				continue PromptLoop
			}
		}

		fmt.Println("Unknown command")
	}
}
