package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gwillem/fieldbot/pkg/chassis"
	"github.com/gwillem/fieldbot/pkg/input"
	"github.com/gwillem/fieldbot/pkg/robot"
)

type AutonCommand struct {
	Dev     bool `long:"dev" description:"Dev mode: simulate the drivetrain in memory"`
	Timeout int  `long:"timeout" default:"15" description:"Abort the routine after this many seconds"`
}

func (c *AutonCommand) Execute(args []string) error {
	cfg, err := robot.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "No configuration found. Run 'fieldbot setup' first.")
		os.Exit(1)
	}
	if c.Dev {
		cfg.DevMode = true
		// Dev mode simulates tracking odometry, so closed-loop steps
		// can converge.
		cfg.Chassis.Odometry = "tracking"
	}

	// The routine navigates closed-loop; without a pose source it
	// would pin the drivetrain until the timeout.
	if chassis.ParseOdomType(cfg.Chassis.Odometry) == chassis.OdomNone {
		fmt.Fprintln(os.Stderr, "The autonomous routine requires odometry. Configure tracking odometry or run with --dev.")
		os.Exit(1)
	}

	pad := input.NewSimGamepad()
	r, err := robot.New(*cfg, pad)
	if err != nil {
		log.Fatalf("Failed to build robot: %v", err)
	}
	defer r.Close()

	r.Chassis().SetPose(robot.AutonStartPose())

	// Arm the routine before the loop publishes its first state, so an
	// empty active-macro reading always means the routine finished.
	r.Macros().Register("auton", robot.AutonRoutine(r))
	if !r.Macros().Start("auton") {
		log.Fatal("Failed to start autonomous routine")
	}

	loop := robot.NewLoop(r)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := loop.Start(ctx); err != nil && err != context.Canceled {
			log.Printf("Control loop error: %v", err)
		}
	}()
	fmt.Println("Autonomous routine started")

	timeout := time.After(time.Duration(c.Timeout) * time.Second)
	for {
		select {
		case s := <-loop.States():
			if s.ActiveMacro == "" {
				fmt.Printf("Routine complete at x=%.1f y=%.1f θ=%.2f\n",
					s.Pose.X, s.Pose.Y, s.Pose.Heading)
				return nil
			}
		case msg := <-loop.Logs():
			fmt.Println(msg)
		case <-timeout:
			r.Macros().Stop()
			r.Disabled()
			return fmt.Errorf("routine did not finish within %ds", c.Timeout)
		}
	}
}
