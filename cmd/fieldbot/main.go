package main

import (
	"os"

	"github.com/jessevdk/go-flags"
)

type Options struct {
	Setup SetupCommand `command:"setup" description:"Scan for drivetrain actuators and write the robot config"`
	Drive DriveCommand `command:"drive" description:"Start manual driving with the keyboard dashboard"`
	Auton AutonCommand `command:"auton" alias:"auto" description:"Run the autonomous routine"`
}

var opts Options
var parser = flags.NewParser(&opts, flags.Default)

func main() {
	parser.LongDescription = "Fieldbot - control harness for the mobile field robot"

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
		}
		os.Exit(1)
	}
}
