//go:build rp2040

package rp2

const timerBase = 0x40054000
