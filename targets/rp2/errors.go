package rp2

import "errors"

// MaxPin is the highest user GPIO on the 30-pin packages
const MaxPin = 29

var (
	ErrBadPin        = errors.New("rp2: no such gpio")
	ErrPinInUse      = errors.New("rp2: gpio already configured")
	ErrNotConfigured = errors.New("rp2: gpio not configured")
)
