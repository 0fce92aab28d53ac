package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/hipsterbrown/feetech-servo/feetech"
	"go.bug.st/serial"

	"github.com/gwillem/fieldbot/pkg/robot"
)

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	subHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	successStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Drivetrain actuators are expected in this ID range.
const (
	scanMinID = 1
	scanMaxID = 10
)

type SetupCommand struct{}

func (c *SetupCommand) Execute(args []string) error {
	fmt.Println(headerStyle.Render("Fieldbot Setup"))
	fmt.Println(dimStyle.Render("━━━━━━━━━━━━━━"))
	fmt.Println()

	config := scanForDrivetrain()

	fmt.Println()
	fmt.Println(subHeaderStyle.Render("━━━ Driving Style ━━━"))
	fmt.Println()
	configureDriver(config)

	if err := config.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println(dimStyle.Render("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"))
	fmt.Println(successStyle.Render("Setup complete!"))
	fmt.Printf("Configuration saved to %s\n", robot.DefaultConfigFile)
	fmt.Println()
	fmt.Println("Start driving with: " + headerStyle.Render("fieldbot drive"))

	return nil
}

func scanForDrivetrain() *robot.Config {
	fmt.Println("Scanning for drivetrain actuators...")
	fmt.Println()

	banks := findBanks()

	if len(banks) == 0 {
		fmt.Println("No actuators found.")
		fmt.Println("Make sure the drivetrain is connected and powered on.")
		fmt.Println()
		if askDevMode() {
			return devConfig()
		}
		os.Exit(1)
	}

	bank := banks[0]
	if len(banks) > 1 {
		bank = chooseBank(banks)
		for _, b := range banks {
			if b.port != bank.port {
				b.bus.Close()
			}
		}
	}
	defer bank.bus.Close()

	fmt.Printf("Found %d actuator(s) on %s. Let's assign them to sides...\n\n", len(bank.servos), bank.port)

	// No tracking-sensor backend exists for the hardware path yet, so
	// the written config leaves odometry off rather than promising a
	// pose source that nothing can supply.
	config := &robot.Config{
		Chassis: robot.ChassisConfig{
			Port: bank.port,
		},
	}

	// Wiggle each actuator in turn so the user can see which wheel it
	// drives, then ask which side it belongs to.
	for _, found := range bank.servos {
		side := identifyActuatorWithWiggle(bank, found)
		switch side {
		case "left":
			config.Chassis.LeftIDs = append(config.Chassis.LeftIDs, found.ID)
		case "right":
			config.Chassis.RightIDs = append(config.Chassis.RightIDs, found.ID)
		}
	}

	fmt.Println()

	if len(config.Chassis.LeftIDs) == 0 || len(config.Chassis.RightIDs) == 0 {
		fmt.Println(dimStyle.Render("━━━━━━━━━━━━━━━━━━━━━"))
		if len(config.Chassis.LeftIDs) == 0 {
			fmt.Println("No left-side actuators assigned.")
		}
		if len(config.Chassis.RightIDs) == 0 {
			fmt.Println("No right-side actuators assigned.")
		}
		fmt.Println()
		fmt.Println("Both sides are required for driving.")
		os.Exit(1)
	}

	fmt.Println(dimStyle.Render("━━━━━━━━━━━━━━━━━━━━━"))
	fmt.Println(successStyle.Render("Drivetrain assigned:"))
	fmt.Println(renderAssignmentTable(config))

	return config
}

func renderAssignmentTable(config *robot.Config) string {
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	tableHeaderStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	sideStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Padding(0, 1)

	var rows [][]string
	for _, id := range config.Chassis.LeftIDs {
		rows = append(rows, []string{fmt.Sprintf("%d", id), "left", "forward"})
	}
	for _, id := range config.Chassis.RightIDs {
		rows = append(rows, []string{fmt.Sprintf("%d", id), "right", "reversed"})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers("Actuator", "Side", "Polarity").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			if col == 1 {
				return sideStyle
			}
			return cellStyle
		})

	return t.Render()
}

func configureDriver(config *robot.Config) {
	var mode string
	var clampClosed bool

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Driving mode").
				Description("How stick input maps onto the drivetrain").
				Options(
					huh.NewOption("Split arcade (left stick drives, right stick turns)", "split"),
					huh.NewOption("Arcade (one stick does both)", "arcade"),
					huh.NewOption("Tank (each stick drives its own side)", "tank"),
				).
				Value(&mode),
			huh.NewConfirm().
				Title("Start with the clamp closed?").
				Affirmative("Closed").
				Negative("Open").
				Value(&clampClosed),
		),
	)

	if err := form.Run(); err != nil {
		fmt.Println()
		os.Exit(0)
	}

	config.Driver.Mode = mode
	config.Clamp.DefaultClosed = clampClosed
}

func askDevMode() bool {
	var dev bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Write a dev-mode config instead?").
				Description("Dev mode simulates the drivetrain in memory").
				Affirmative("Yes").
				Negative("No").
				Value(&dev),
		),
	)
	if err := form.Run(); err != nil {
		fmt.Println()
		os.Exit(0)
	}
	return dev
}

func devConfig() *robot.Config {
	return &robot.Config{
		DevMode: true,
		Chassis: robot.ChassisConfig{
			LeftIDs:  []int{1, 2},
			RightIDs: []int{3, 4},
			Odometry: "tracking",
		},
		Driver: robot.DriverConfig{Mode: "split"},
	}
}

type bankInfo struct {
	port   string
	servos []feetech.FoundServo
	bus    *feetech.Bus
}

func findBanks() []bankInfo {
	ports, err := serial.GetPortsList()
	if err != nil {
		fmt.Printf("Error listing ports: %v\n", err)
		return nil
	}

	var banks []bankInfo

	for _, port := range ports {
		// Skip Bluetooth ports on macOS
		if strings.Contains(port, "Bluetooth") {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)

		bus, err := feetech.NewBus(feetech.BusConfig{
			Port:     port,
			BaudRate: 1_000_000,
			Protocol: feetech.ProtocolSTS,
			Timeout:  100 * time.Millisecond,
		})
		if err != nil {
			cancel()
			continue
		}

		servos, err := bus.Scan(ctx, scanMinID, scanMaxID)
		cancel()

		if err != nil || len(servos) == 0 {
			bus.Close()
			continue
		}

		fmt.Printf("  Found %d actuator(s) on %s\n", len(servos), port)
		banks = append(banks, bankInfo{
			port:   port,
			servos: servos,
			bus:    bus,
		})
	}

	return banks
}

func chooseBank(banks []bankInfo) bankInfo {
	var options []huh.Option[string]
	for _, b := range banks {
		label := fmt.Sprintf("%s (%d actuators)", b.port, len(b.servos))
		options = append(options, huh.NewOption(label, b.port))
	}

	var port string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Multiple actuator banks found").
				Description("Which port is the drivetrain on?").
				Options(options...).
				Value(&port),
		),
	)
	if err := form.Run(); err != nil {
		fmt.Println()
		os.Exit(0)
	}

	for _, b := range banks {
		if b.port == port {
			return b
		}
	}
	return banks[0]
}

func identifyActuatorWithWiggle(bank bankInfo, found feetech.FoundServo) string {
	ctx := context.Background()
	servo := feetech.NewServo(bank.bus, found.ID, found.Model)

	originalPos, err := servo.Position(ctx)
	if err != nil {
		fmt.Printf("  Error reading actuator %d: %v\n", found.ID, err)
		return ""
	}

	if err := servo.Enable(ctx); err != nil {
		fmt.Printf("  Error enabling actuator %d: %v\n", found.ID, err)
		return ""
	}

	fmt.Printf("\n  Wiggling actuator %d...\n", found.ID)

	// Single gentle, slow movement
	wiggleAmount := 30
	moveTimeMs := 500
	servo.SetPositionWithTime(ctx, originalPos+wiggleAmount, moveTimeMs)
	time.Sleep(time.Duration(moveTimeMs+100) * time.Millisecond)
	servo.SetPositionWithTime(ctx, originalPos-wiggleAmount, moveTimeMs)
	time.Sleep(time.Duration(moveTimeMs+100) * time.Millisecond)
	servo.SetPositionWithTime(ctx, originalPos, moveTimeMs)
	time.Sleep(time.Duration(moveTimeMs+100) * time.Millisecond)

	servo.Disable(ctx)

	var side string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(fmt.Sprintf("Which side is actuator %d on?", found.ID)).
				Description("The wheel that just wiggled").
				Options(
					huh.NewOption("Left side", "left"),
					huh.NewOption("Right side", "right"),
					huh.NewOption("Skip this actuator", "skip"),
				).
				Value(&side),
		),
	)

	if err := form.Run(); err != nil {
		fmt.Println()
		os.Exit(0)
	}

	if side == "skip" {
		return ""
	}
	return side
}
