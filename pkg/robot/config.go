package robot

import (
	"encoding/json"
	"os"
)

const DefaultConfigFile = "fieldbot.json"

// Config holds the robot configuration
type Config struct {
	DevMode bool          `json:"dev_mode,omitempty"`
	Hz      int           `json:"hz,omitempty"`
	Chassis ChassisConfig `json:"chassis"`
	Clamp   ClampConfig   `json:"clamp"`
	Driver  DriverConfig  `json:"driver"`
}

// ChassisConfig holds the drivetrain wiring and odometry selection
type ChassisConfig struct {
	Port     string `json:"port"`
	LeftIDs  []int  `json:"left_ids"`
	RightIDs []int  `json:"right_ids"`
	Drive    string `json:"drive,omitempty"`    // tank, holonomic, mecanum
	Odometry string `json:"odometry,omitempty"` // none, tracking, integrated, orientation
}

// ClampConfig holds the pneumatic clamp defaults
type ClampConfig struct {
	DefaultClosed bool `json:"default_closed,omitempty"`
}

// DriverConfig holds manual-driving input shaping
type DriverConfig struct {
	Mode        string  `json:"mode,omitempty"` // arcade, split, tank
	Deadzone    float64 `json:"deadzone,omitempty"`
	CurveFactor float64 `json:"curve_factor,omitempty"`
	TurnScale   float64 `json:"turn_scale,omitempty"`
}

// LoadConfig loads configuration from the default config file
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(DefaultConfigFile)
}

// LoadConfigFrom loads configuration from a specific file
func LoadConfigFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save saves configuration to the default config file
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigFile)
}

// SaveTo saves configuration to a specific file
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ConfigExists returns true if the default config file exists
func ConfigExists() bool {
	_, err := os.Stat(DefaultConfigFile)
	return err == nil
}
