package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"path/filepath"

	lib "github.com/awused/spanpapers/lib"
	"github.com/urfave/cli/v2"
)

func detectCommand() *cli.Command {
	cmd := &cli.Command{}
	cmd.Name = "detect"
	cmd.Usage = "Detect the attached monitors and write a starter layout"
	cmd.ArgsUsage = "[OUTPUT]"

	cmd.Action = detectAction

	return cmd
}

func detectAction(c *cli.Context) error {
	l, err := lib.DetectLayout()
	checkErr(err)

	if len(l.Monitor) == 0 {
		log.Println("No monitors detected.")
		return nil
	}

	out := "# Detected layout. Diagonal sizes come from EDID data and the\n" +
		"# physical X/Y positions are estimates, measure and adjust them.\n\n" +
		l.TOML()

	if c.NArg() == 0 {
		fmt.Print(out)
		return nil
	}

	path, err := filepath.Abs(c.Args().First())
	checkErr(err)

	err = ioutil.WriteFile(path, []byte(out), 0644)
	checkErr(err)

	fmt.Printf("Wrote %d monitors to [%s]\n", len(l.Monitor), path)
	return nil
}
