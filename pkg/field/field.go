// Package field holds the competition field geometry in a fixed frame
// with the origin at the bottom-left corner, measured in inches.
package field

// Field dimensions (inches).
const (
	Width  = 144.0
	Height = 144.0
)

// Point is a location on the field.
type Point struct {
	X, Y float64
}

// Element is a field feature with a height above the floor.
type Element struct {
	Position Point
	Height   float64
}

// Ladder structure at field center.
var (
	LadderCenter    = Element{Position: Point{X: 72, Y: 72}}
	LadderHighStake = Element{Position: Point{X: 72, Y: 72}, Height: 46.16}
)

// Ladder level heights (inches).
const (
	LadderLevel1 = 18.16
	LadderLevel2 = 32.16
	LadderLevel3 = 46.16

	LadderBaseWidth  = 36.0
	LadderBaseHeight = 36.0
)

// Wall stakes.
const StakeHeight = 14.5

var (
	RedAllianceStake  = Element{Position: Point{X: 72, Y: 0}, Height: StakeHeight}
	BlueAllianceStake = Element{Position: Point{X: 72, Y: 144}, Height: StakeHeight}
	LeftNeutralStake  = Element{Position: Point{X: 0, Y: 72}, Height: StakeHeight}
	RightNeutralStake = Element{Position: Point{X: 144, Y: 72}, Height: StakeHeight}
)

// Corner is a triangular scoring section in a field corner.
type Corner struct {
	Position Point
	Positive bool
	Size     float64
}

var Corners = []Corner{
	{Position: Point{X: 0, Y: 0}, Positive: false, Size: 12},
	{Position: Point{X: 144, Y: 0}, Positive: true, Size: 12},
	{Position: Point{X: 0, Y: 144}, Positive: true, Size: 12},
	{Position: Point{X: 144, Y: 144}, Positive: false, Size: 12},
}

// Mobile goals.
const (
	GoalHeight   = 14.5
	GoalDiameter = 10.0
)

var MobileGoals = []Element{
	{Position: Point{X: 36, Y: 36}, Height: GoalHeight},
	{Position: Point{X: 108, Y: 36}, Height: GoalHeight},
	{Position: Point{X: 72, Y: 72}, Height: GoalHeight},
	{Position: Point{X: 36, Y: 108}, Height: GoalHeight},
	{Position: Point{X: 108, Y: 108}, Height: GoalHeight},
}

// Autonomous line Y positions.
const (
	AutoLineLower = 60.0
	AutoLineUpper = 84.0
)

// StartZone is the legal starting range along a starting line.
type StartZone struct {
	Y          float64
	XMin, XMax float64
}

var (
	RedStartZone  = StartZone{Y: 18, XMin: 0, XMax: 144}
	BlueStartZone = StartZone{Y: 126, XMin: 0, XMax: 144}
)

// Ring specifications.
const (
	RingOuterDiameter = 7.0
	RingInnerDiameter = 3.0
	RingThickness     = 2.0
)

// RingStack is a stack of rings; Position is the bottom ring.
type RingStack struct {
	Position Point
	Count    int
	Flipped  bool
}

var RedRingStacks = []RingStack{
	{Position: Point{X: 24, Y: 24}, Count: 4},
	{Position: Point{X: 48, Y: 24}, Count: 4, Flipped: true},
}
