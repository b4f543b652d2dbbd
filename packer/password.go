package packer

import (
	"crypto/subtle"

	"boxfill/core"
)

// passwordEntry is the digit-by-digit login buffer
type passwordEntry struct {
	buf      [PasswordLen]byte
	pos      uint8
	digit    uint8
	failures uint8
	locked   bool
	lockedAt uint32
}

func (p *passwordEntry) clear() {
	for i := range p.buf {
		p.buf[i] = '0'
	}
	p.pos = 0
	p.digit = 0
}

// render shows the confirmed digits followed by the one being selected
func (p *passwordEntry) render() string {
	b := make([]byte, 0, PasswordLen)
	b = append(b, p.buf[:p.pos]...)
	b = append(b, '0'+p.digit)
	return string(b)
}

func (c *Controller) handlePassword(now uint32, k keys) {
	p := &c.pwd
	if p.locked {
		if !core.Elapsed(p.lockedAt, now, core.TimerFromMS(c.set.LockoutMS)) {
			c.scr.line(0, "Locked out")
			c.scr.line(1, "")
			return
		}
		p.locked = false
		p.failures = 0
	}

	c.scr.line(0, "Password:")
	up, down, enter := k.navigation()
	switch {
	case up:
		p.digit = (p.digit + 1) % 10
	case down:
		p.digit = (p.digit + 9) % 10
	case enter:
		p.buf[p.pos] = '0' + p.digit
		if p.pos < PasswordLen-1 {
			// the selected digit carries over to the next position
			p.pos++
			break
		}
		c.verifyPassword(now)
		return
	}
	c.scr.line(1, p.render())
}

func (c *Controller) verifyPassword(now uint32) {
	p := &c.pwd
	ok := subtle.ConstantTimeCompare(p.buf[:], []byte(c.set.Password)) == 1
	p.clear()

	if ok {
		p.failures = 0
		c.cfg = configEntry{phase: cfgBanner}
		c.scr.clear()
		c.setState(now, StateConfig)
		return
	}

	p.failures++
	core.DebugPrintln("packer: wrong password")
	c.notify(now, 1, "Wrong passwd", c.set.WrongPasswordMS)
	if c.set.MaxPasswordAttempts > 0 && p.failures >= c.set.MaxPasswordAttempts {
		p.locked = true
		p.lockedAt = now
	}
}

type configPhase uint8

const (
	cfgBanner configPhase = iota
	cfgLotSize
	cfgFillDelay
)

// configEntry holds the values being edited in CONFIG
type configEntry struct {
	phase   configPhase
	lotSize uint8
	delayS  uint8
}

func (c *Controller) handleConfig(now uint32, k keys) {
	e := &c.cfg
	up, down, enter := k.navigation()

	switch e.phase {
	case cfgBanner:
		e.lotSize = c.lots.Size
		e.phase = cfgLotSize
		c.scr.line(1, "")
		c.notify(now, 0, "Conf. param.", c.set.ConfigBannerMS)

	case cfgLotSize:
		switch {
		case up:
			e.lotSize = wrapUp(e.lotSize, MinLotSize, MaxLotSize)
		case down:
			e.lotSize = wrapDown(e.lotSize, MinLotSize, MaxLotSize)
		case enter:
			c.lots.Size = e.lotSize
			e.delayS = delaySeconds(c.fillDelayMS)
			e.phase = cfgFillDelay
			c.scr.clear()
			return
		}
		c.scr.line(0, "Cycle Count:")
		c.scr.line(1, core.Pad2(uint32(e.lotSize)))

	case cfgFillDelay:
		switch {
		case up:
			e.delayS = wrapUp(e.delayS, MinFillDelayS, MaxFillDelayS)
		case down:
			e.delayS = wrapDown(e.delayS, MinFillDelayS, MaxFillDelayS)
		case enter:
			c.fillDelayMS = uint32(e.delayS) * 1000
			core.DebugPrintln("packer: lot size " + core.Utoa(uint32(c.lots.Size)) +
				", fill delay " + core.Utoa(c.fillDelayMS) + " ms")
			c.scr.clear()
			c.setState(now, StateReady)
			return
		}
		c.scr.line(0, "Delay:")
		c.scr.line(1, core.Pad2(uint32(e.delayS))+" s")
	}
}

// delaySeconds is the starting value of the delay editor
func delaySeconds(ms uint32) uint8 {
	s := ms / 1000
	if s < MinFillDelayS {
		return MinFillDelayS
	}
	if s > MaxFillDelayS {
		return MaxFillDelayS
	}
	return uint8(s)
}

func wrapUp(v, lo, hi uint8) uint8 {
	if v >= hi {
		return lo
	}
	return v + 1
}

func wrapDown(v, lo, hi uint8) uint8 {
	if v <= lo {
		return hi
	}
	return v - 1
}
