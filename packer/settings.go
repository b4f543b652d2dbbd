package packer

import "errors"

// Operator-adjustable ranges
const (
	PasswordLen   = 4
	MinLotSize    = 1
	MaxLotSize    = 24
	MinFillDelayS = 1
	MaxFillDelayS = 99
)

// Settings are the controller parameters. Durations are in milliseconds.
type Settings struct {
	Password    string // fixed PasswordLen-digit credential
	LotSize     uint8  // boxes per lot until changed in CONFIG
	LotNumber   uint16 // number shown for the first lot
	FillDelayMS uint32 // dwell with the gate open until changed in CONFIG

	DebounceMS      uint32 // buttons
	PauseDebounceMS uint32 // pause/resume requests

	WrongPasswordMS uint32
	ConfigBannerMS  uint32
	BoxFinishedMS   uint32
	LotFinishedMS   uint32
	NextLotMS       uint32

	// Password lockout, disabled when MaxPasswordAttempts is 0
	MaxPasswordAttempts uint8
	LockoutMS           uint32
}

// DefaultSettings returns the factory parameters
func DefaultSettings() Settings {
	return Settings{
		Password:        "1111",
		LotSize:         3,
		LotNumber:       1,
		FillDelayMS:     500,
		DebounceMS:      50,
		PauseDebounceMS: 10,
		WrongPasswordMS: 1000,
		ConfigBannerMS:  500,
		BoxFinishedMS:   2000,
		LotFinishedMS:   1000,
		NextLotMS:       1000,
		LockoutMS:       30000,
	}
}

// Settings validation errors
var (
	ErrBadPassword  = errors.New("packer: password must be 4 digits")
	ErrBadLotSize   = errors.New("packer: lot size out of range 1..24")
	ErrBadFillDelay = errors.New("packer: fill delay above 99 s")
)

// Validate checks the operator-visible ranges
func (s *Settings) Validate() error {
	if len(s.Password) != PasswordLen {
		return ErrBadPassword
	}
	for i := 0; i < len(s.Password); i++ {
		if s.Password[i] < '0' || s.Password[i] > '9' {
			return ErrBadPassword
		}
	}
	if s.LotSize < MinLotSize || s.LotSize > MaxLotSize {
		return ErrBadLotSize
	}
	if s.FillDelayMS > MaxFillDelayS*1000 {
		return ErrBadFillDelay
	}
	return nil
}
