package timing

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config holds cycle costs per operation class.
// Values follow small in-order core estimates.
type Config struct {
	// MoveCost is the cost of register and immediate moves.
	// Default: 1 cycle.
	MoveCost uint64 `json:"move_cost"`

	// ALUCost is the cost of add, subtract, compare, increment, and
	// decrement operations. Default: 1 cycle.
	ALUCost uint64 `json:"alu_cost"`

	// LogicCost is the cost of bitwise operations. Default: 1 cycle.
	LogicCost uint64 `json:"logic_cost"`

	// ShiftCost is the cost of shift operations. Default: 1 cycle.
	ShiftCost uint64 `json:"shift_cost"`

	// MultiplyCost is the cost of integer multiply. Default: 3 cycles.
	MultiplyCost uint64 `json:"multiply_cost"`

	// NopCost is the cost of a NOP. Default: 1 cycle.
	NopCost uint64 `json:"nop_cost"`

	// HaltCost is the cost of the halting return. Default: 1 cycle.
	HaltCost uint64 `json:"halt_cost"`
}

// DefaultConfig returns a Config with the default cost values.
func DefaultConfig() *Config {
	return &Config{
		MoveCost:     1,
		ALUCost:      1,
		LogicCost:    1,
		ShiftCost:    1,
		MultiplyCost: 3,
		NopCost:      1,
		HaltCost:     1,
	}
}

// LoadConfig loads a Config from a JSON file. Fields absent from the
// file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read timing config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse timing config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a Config to a JSON file.
func (c *Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize timing config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write timing config file: %w", err)
	}

	return nil
}

// Validate checks that all cost values are valid (> 0).
func (c *Config) Validate() error {
	if c.MoveCost == 0 {
		return fmt.Errorf("move_cost must be > 0")
	}
	if c.ALUCost == 0 {
		return fmt.Errorf("alu_cost must be > 0")
	}
	if c.LogicCost == 0 {
		return fmt.Errorf("logic_cost must be > 0")
	}
	if c.ShiftCost == 0 {
		return fmt.Errorf("shift_cost must be > 0")
	}
	if c.MultiplyCost == 0 {
		return fmt.Errorf("multiply_cost must be > 0")
	}
	if c.NopCost == 0 {
		return fmt.Errorf("nop_cost must be > 0")
	}
	if c.HaltCost == 0 {
		return fmt.Errorf("halt_cost must be > 0")
	}
	return nil
}

// Clone returns a deep copy of the Config.
func (c *Config) Clone() *Config {
	return &Config{
		MoveCost:     c.MoveCost,
		ALUCost:      c.ALUCost,
		LogicCost:    c.LogicCost,
		ShiftCost:    c.ShiftCost,
		MultiplyCost: c.MultiplyCost,
		NopCost:      c.NopCost,
		HaltCost:     c.HaltCost,
	}
}
