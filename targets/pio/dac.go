//go:build rp2040

package pio

import (
	"machine"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"
)

// buildDACProgram copies the low byte of every FIFO word onto eight pins.
//
//	.wrap_target
//	pull block
//	out pins, 8
//	.wrap
func buildDACProgram() []uint16 {
	asm := rp2pio.AssemblerV0{SidesetBits: 0}
	return []uint16{
		asm.Pull(false, true).Encode(),          // 0: pull block
		asm.Out(rp2pio.OutDestPins, 8).Encode(), // 1: out pins, 8
	}
}

const dacPIOOrigin = 0 // Load at offset 0, the generator is the only program

// DACOutput drives an 8-bit parallel (R-2R) DAC on eight consecutive pins,
// LSB on base. It implements wavegen.SampleOutput.
type DACOutput struct {
	pio     *rp2pio.PIO
	sm      rp2pio.StateMachine
	base    machine.Pin
	offset  uint8
	pioNum  uint8
	smNum   uint8
	dropped uint32
}

// NewDACOutput claims a state machine on block pioNum and starts the DAC program
func NewDACOutput(pioNum uint8, base machine.Pin) (*DACOutput, error) {
	smNum, err := allocateSM(pioNum)
	if err != nil {
		return nil, err
	}

	hw := rp2pio.PIO0
	if pioNum == 1 {
		hw = rp2pio.PIO1
	}
	d := &DACOutput{
		pio:    hw,
		sm:     hw.StateMachine(smNum),
		base:   base,
		pioNum: pioNum,
		smNum:  smNum,
	}

	// Claim the state machine before touching it
	d.sm.TryClaim()

	program := buildDACProgram()
	offset, err := hw.AddProgram(program, dacPIOOrigin)
	if err != nil {
		releaseSM(pioNum, smNum)
		return nil, err
	}
	d.offset = offset

	for i := machine.Pin(0); i < 8; i++ {
		(base + i).Configure(machine.PinConfig{Mode: hw.PinMode()})
	}

	cfg := rp2pio.DefaultStateMachineConfig()
	cfg.SetOutPins(base, 8)
	// Shift right so the low byte goes out first, explicit PULL
	cfg.SetOutShift(true, false, 32)
	cfg.SetWrap(offset+uint8(len(program))-1, offset)
	// Full speed, the FIFO paces the program
	cfg.SetClkDivIntFrac(1, 0)

	// Initialize the state machine before setting pin directions
	d.sm.Init(offset, cfg)
	d.sm.SetPindirsConsecutive(base, 8, true)
	d.sm.SetPinsConsecutive(base, 8, false)
	d.sm.SetEnabled(true)

	return d, nil
}

// WriteSample queues one sample. It never blocks: with the FIFO full the
// sample is dropped and counted.
func (d *DACOutput) WriteSample(v uint8) {
	if d.sm.IsTxFIFOFull() {
		d.dropped++
		return
	}
	d.sm.TxPut(uint32(v))
}

// Dropped returns how many samples were lost to a full FIFO
func (d *DACOutput) Dropped() uint32 {
	return d.dropped
}
