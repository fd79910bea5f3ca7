// Package ipi builds the ordered command sequence that wires a generated
// thresholding block into a larger block design.
//
// The consumer is an external, order-sensitive tcl interface, so the sequence
// is a hard contract: every source-file registration precedes the module
// instantiation, and the instantiation precedes all property bindings.
package ipi

import (
	"fmt"
	"path/filepath"
)

// Block identifies one generated block to integrate.
type Block struct {
	// GenDir is the generation directory holding the RTL files.
	GenDir string
	// Files are the generated RTL base filenames, in registration order.
	Files []string
	// TopModule is the resolved top-level module of the generated block.
	TopModule string
	// InstName is the cell name the block gets inside the block design.
	InstName string
	// SAxisFreqHz / MAxisFreqHz are the clock-domain frequencies bound to
	// the input and output stream interfaces.
	SAxisFreqHz int64
	MAxisFreqHz int64
}

// Commands returns the integration sequence for b: one add_files per RTL
// file in list order, then the cell instantiation, then one FREQ_HZ binding
// per stream interface (s_axis first, then m_axis).
func Commands(b Block) []string {
	cmds := make([]string, 0, len(b.Files)+3)
	for _, name := range b.Files {
		cmds = append(cmds, fmt.Sprintf("add_files -norecurse %s", filepath.Join(b.GenDir, name)))
	}
	cmds = append(cmds, fmt.Sprintf("create_bd_cell -type module -reference %s %s", b.TopModule, b.InstName))
	cmds = append(cmds,
		fmt.Sprintf("set_property -dict [list CONFIG.FREQ_HZ {%d}] [get_bd_intf_pins %s/s_axis]", b.SAxisFreqHz, b.InstName),
		fmt.Sprintf("set_property -dict [list CONFIG.FREQ_HZ {%d}] [get_bd_intf_pins %s/m_axis]", b.MAxisFreqHz, b.InstName),
	)
	return cmds
}
