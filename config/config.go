// Package config loads the JSON machine descriptions used by the firmware
// targets and the host simulator.
package config

import (
	"encoding/json"
	"fmt"

	"boxfill/packer"
)

// SignalConfig describes one digital line.
// Inputs are active-low unless Invert is set; outputs are active-high unless Invert is set.
type SignalConfig struct {
	Pin    string `json:"pin"`              // "gpioN"
	Invert bool   `json:"invert,omitempty"` // flip the default polarity
}

// CylinderConfig describes a pneumatic cylinder
type CylinderConfig struct {
	Drive  SignalConfig `json:"drive"`
	Open   SignalConfig `json:"open"`   // position 0 sensor
	Closed SignalConfig `json:"closed"` // position 1 sensor
}

// LCDConfig is the 4-bit HD44780 wiring
type LCDConfig struct {
	Data   [4]string `json:"data"` // D4..D7
	Enable string    `json:"enable"`
	RS     string    `json:"rs"`
}

// MachineConfig is the packaging machine description
type MachineConfig struct {
	Cylinders map[string]CylinderConfig `json:"cylinders"` // "a", "b", "c"

	Box   SignalConfig `json:"box"`
	Up    SignalConfig `json:"up"`
	Down  SignalConfig `json:"down"`
	Enter SignalConfig `json:"enter"`
	Start SignalConfig `json:"start"`
	EStop SignalConfig `json:"estop"`
	Pause SignalConfig `json:"pause"`
	Reset SignalConfig `json:"reset"` // optional

	LCD LCDConfig `json:"lcd"`

	Password    string `json:"password"`
	LotSize     uint8  `json:"lot_size"`
	LotNumber   uint16 `json:"lot_number"`
	FillDelayMS uint32 `json:"fill_delay_ms"`

	DebounceMS      uint32 `json:"debounce_ms"`
	PauseDebounceMS uint32 `json:"pause_debounce_ms"`

	// Message hold times
	WrongPasswordMS uint32 `json:"wrong_password_ms"`
	ConfigBannerMS  uint32 `json:"config_banner_ms"`
	BoxFinishedMS   uint32 `json:"box_finished_ms"`
	LotFinishedMS   uint32 `json:"lot_finished_ms"`
	NextLotMS       uint32 `json:"next_lot_ms"`

	MaxPasswordAttempts uint8  `json:"max_password_attempts"` // 0 disables the lockout
	LockoutMS           uint32 `json:"lockout_ms"`

	Debug bool `json:"debug"`
}

// GeneratorConfig is the waveform generator description
type GeneratorConfig struct {
	DACBasePin string `json:"dac_base_pin"` // first of 8 consecutive pins, LSB first
	PIO        uint8  `json:"pio"`          // PIO block driving the DAC

	UARTTX string `json:"uart_tx"`
	UARTRX string `json:"uart_rx"`
	Baud   uint32 `json:"baud"`

	LEDOn  SignalConfig `json:"led_on"`
	LEDRun SignalConfig `json:"led_run"`
	LEDErr SignalConfig `json:"led_err"`

	Wave      string `json:"wave"` // "s", "q", "w" or "t"
	Frequency uint32 `json:"frequency"`

	Debug bool `json:"debug"`
}

// LoadMachineConfig parses a JSON machine description, fills in defaults and validates it
func LoadMachineConfig(jsonData []byte) (*MachineConfig, error) {
	var cfg MachineConfig

	if err := json.Unmarshal(jsonData, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse machine: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadGeneratorConfig parses a JSON generator description, fills in defaults and validates it
func LoadGeneratorConfig(jsonData []byte) (*GeneratorConfig, error) {
	var cfg GeneratorConfig

	if err := json.Unmarshal(jsonData, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse generator: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills in missing values. Pins left empty take the default wiring.
func (c *MachineConfig) applyDefaults() {
	def := DefaultMachineConfig()

	if c.Cylinders == nil {
		c.Cylinders = make(map[string]CylinderConfig)
	}
	for name, cyl := range def.Cylinders {
		have := c.Cylinders[name]
		defaultSignal(&have.Drive, cyl.Drive)
		defaultSignal(&have.Open, cyl.Open)
		defaultSignal(&have.Closed, cyl.Closed)
		c.Cylinders[name] = have
	}

	defaultSignal(&c.Box, def.Box)
	defaultSignal(&c.Up, def.Up)
	defaultSignal(&c.Down, def.Down)
	defaultSignal(&c.Enter, def.Enter)
	defaultSignal(&c.Start, def.Start)
	defaultSignal(&c.EStop, def.EStop)
	defaultSignal(&c.Pause, def.Pause)

	for i := range c.LCD.Data {
		if c.LCD.Data[i] == "" {
			c.LCD.Data[i] = def.LCD.Data[i]
		}
	}
	if c.LCD.Enable == "" {
		c.LCD.Enable = def.LCD.Enable
	}
	if c.LCD.RS == "" {
		c.LCD.RS = def.LCD.RS
	}

	if c.Password == "" {
		c.Password = def.Password
	}
	if c.LotSize == 0 {
		c.LotSize = def.LotSize
	}
	if c.LotNumber == 0 {
		c.LotNumber = def.LotNumber
	}
	if c.FillDelayMS == 0 {
		c.FillDelayMS = def.FillDelayMS
	}
	if c.DebounceMS == 0 {
		c.DebounceMS = def.DebounceMS
	}
	if c.PauseDebounceMS == 0 {
		c.PauseDebounceMS = def.PauseDebounceMS
	}
	if c.WrongPasswordMS == 0 {
		c.WrongPasswordMS = def.WrongPasswordMS
	}
	if c.ConfigBannerMS == 0 {
		c.ConfigBannerMS = def.ConfigBannerMS
	}
	if c.BoxFinishedMS == 0 {
		c.BoxFinishedMS = def.BoxFinishedMS
	}
	if c.LotFinishedMS == 0 {
		c.LotFinishedMS = def.LotFinishedMS
	}
	if c.NextLotMS == 0 {
		c.NextLotMS = def.NextLotMS
	}
	if c.LockoutMS == 0 {
		c.LockoutMS = def.LockoutMS
	}
}

func (c *GeneratorConfig) applyDefaults() {
	def := DefaultGeneratorConfig()

	if c.DACBasePin == "" {
		c.DACBasePin = def.DACBasePin
	}
	if c.UARTTX == "" {
		c.UARTTX = def.UARTTX
	}
	if c.UARTRX == "" {
		c.UARTRX = def.UARTRX
	}
	if c.Baud == 0 {
		c.Baud = def.Baud
	}
	defaultSignal(&c.LEDOn, def.LEDOn)
	defaultSignal(&c.LEDRun, def.LEDRun)
	defaultSignal(&c.LEDErr, def.LEDErr)
	if c.Wave == "" {
		c.Wave = def.Wave
	}
	if c.Frequency == 0 {
		c.Frequency = def.Frequency
	}
}

func defaultSignal(s *SignalConfig, def SignalConfig) {
	if s.Pin == "" {
		*s = def
	}
}

// DefaultMachineConfig returns the reference RP2040 wiring and the factory parameters
func DefaultMachineConfig() *MachineConfig {
	set := packer.DefaultSettings()
	return &MachineConfig{
		Cylinders: map[string]CylinderConfig{
			"a": {
				Drive:  SignalConfig{Pin: "gpio16"},
				Open:   SignalConfig{Pin: "gpio0"},
				Closed: SignalConfig{Pin: "gpio1"},
			},
			"b": {
				Drive:  SignalConfig{Pin: "gpio17"},
				Open:   SignalConfig{Pin: "gpio2"},
				Closed: SignalConfig{Pin: "gpio3"},
			},
			"c": {
				Drive:  SignalConfig{Pin: "gpio18"},
				Open:   SignalConfig{Pin: "gpio4"},
				Closed: SignalConfig{Pin: "gpio5"},
			},
		},
		Box:   SignalConfig{Pin: "gpio6"},
		Up:    SignalConfig{Pin: "gpio7"},
		Down:  SignalConfig{Pin: "gpio8"},
		Enter: SignalConfig{Pin: "gpio9"},
		Start: SignalConfig{Pin: "gpio19"},
		EStop: SignalConfig{Pin: "gpio20"},
		Pause: SignalConfig{Pin: "gpio21"},
		Reset: SignalConfig{Pin: "gpio22"},
		LCD: LCDConfig{
			Data:   [4]string{"gpio10", "gpio11", "gpio12", "gpio13"},
			Enable: "gpio14",
			RS:     "gpio15",
		},
		Password:            set.Password,
		LotSize:             set.LotSize,
		LotNumber:           set.LotNumber,
		FillDelayMS:         set.FillDelayMS,
		DebounceMS:          set.DebounceMS,
		PauseDebounceMS:     set.PauseDebounceMS,
		WrongPasswordMS:     set.WrongPasswordMS,
		ConfigBannerMS:      set.ConfigBannerMS,
		BoxFinishedMS:       set.BoxFinishedMS,
		LotFinishedMS:       set.LotFinishedMS,
		NextLotMS:           set.NextLotMS,
		MaxPasswordAttempts: set.MaxPasswordAttempts,
		LockoutMS:           set.LockoutMS,
	}
}

// DefaultGeneratorConfig returns the reference RP2040 generator wiring
func DefaultGeneratorConfig() *GeneratorConfig {
	return &GeneratorConfig{
		DACBasePin: "gpio0",
		PIO:        0,
		UARTTX:     "gpio8",
		UARTRX:     "gpio9",
		Baud:       115200,
		LEDOn:      SignalConfig{Pin: "gpio25"},
		LEDRun:     SignalConfig{Pin: "gpio14"},
		LEDErr:     SignalConfig{Pin: "gpio15"},
		Wave:       "w",
		Frequency:  10,
	}
}

// Settings converts the parameters into controller settings
func (c *MachineConfig) Settings() packer.Settings {
	return packer.Settings{
		Password:            c.Password,
		LotSize:             c.LotSize,
		LotNumber:           c.LotNumber,
		FillDelayMS:         c.FillDelayMS,
		DebounceMS:          c.DebounceMS,
		PauseDebounceMS:     c.PauseDebounceMS,
		WrongPasswordMS:     c.WrongPasswordMS,
		ConfigBannerMS:      c.ConfigBannerMS,
		BoxFinishedMS:       c.BoxFinishedMS,
		LotFinishedMS:       c.LotFinishedMS,
		NextLotMS:           c.NextLotMS,
		MaxPasswordAttempts: c.MaxPasswordAttempts,
		LockoutMS:           c.LockoutMS,
	}
}
