// Package timing provides a cycle-cost model for simulated programs.
//
// Costs are configured per operation class via Config and applied to
// the per-operation execution counts a machine accumulates during a run.
package timing

import (
	"github.com/asmlab/minisim/insts"
)

// Table provides per-operation cycle cost lookups.
type Table struct {
	config *Config
}

// NewTable creates a cost table with default values.
func NewTable() *Table {
	return &Table{
		config: DefaultConfig(),
	}
}

// NewTableWithConfig creates a cost table with a custom configuration.
func NewTableWithConfig(config *Config) *Table {
	return &Table{
		config: config,
	}
}

// Cost returns the cycle cost for one operation.
func (t *Table) Cost(op insts.Op) uint64 {
	switch op {
	case insts.OpMOV:
		return t.config.MoveCost

	case insts.OpADD, insts.OpSUB, insts.OpCMP, insts.OpINC, insts.OpDEC:
		return t.config.ALUCost

	case insts.OpAND, insts.OpORR, insts.OpEOR:
		return t.config.LogicCost

	case insts.OpLSL, insts.OpLSR:
		return t.config.ShiftCost

	case insts.OpMUL:
		return t.config.MultiplyCost

	case insts.OpNOP:
		return t.config.NopCost

	case insts.OpRET:
		return t.config.HaltCost

	default:
		return 1
	}
}

// Estimate totals the cycle cost of a run from per-operation counts.
func (t *Table) Estimate(counts map[insts.Op]uint64) uint64 {
	var total uint64
	for op, n := range counts {
		total += n * t.Cost(op)
	}
	return total
}

// Config returns the current configuration.
func (t *Table) Config() *Config {
	return t.config
}
