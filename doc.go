// Package fieldbot provides a control framework for a competition
// mobile robot: independently enabled subsystems, an event bus,
// closed-loop chassis navigation, operator input bindings, and macro
// sequences that can claim exclusive control of the actuators.
//
// # Usage
//
// Configure the robot once, then run the CLI:
//
//	fieldbot setup
//	fieldbot drive
//
// # Packages
//
// The module is organized into the following packages:
//
//   - cmd/fieldbot: CLI with setup, drive and auton commands
//   - pkg/core: subsystem registry and event bus
//   - pkg/chassis: motion control, odometry and input mixing
//   - pkg/input: gamepad bindings and the input mapper
//   - pkg/control: driver control, macros and control arbitration
//   - pkg/clamp: pneumatic clamp subsystem
//   - pkg/field: field geometry constants
//   - pkg/robot: configuration, wiring and the control loop
package fieldbot
