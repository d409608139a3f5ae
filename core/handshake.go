package core

// ControllerType is the model code returned by the type-read command
type ControllerType byte

const (
	TypeGuitarHero        ControllerType = 0x01
	TypeDualShock         ControllerType = 0x03
	TypeWirelessDualShock ControllerType = 0x0C
	TypeUnknown           ControllerType = 0xFF
)

func (t ControllerType) String() string {
	switch t {
	case TypeDualShock:
		return "DualShock"
	case TypeGuitarHero:
		return "GuitarHero (not supported)"
	case TypeWirelessDualShock:
		return "2.4G Wireless DualShock"
	default:
		return "Unknown"
	}
}

// linkState is the negotiation state of a pad session.
//
//	Probing -> ConfigEnter -> TypeRead -> ModeSet -> ConfigExit -> Verifying -> Ready
//	Probing, Verifying -> Failed
//
// Reconfig enters at ConfigEnter and skips TypeRead and Verifying.
type linkState uint8

const (
	stateProbing linkState = iota
	stateConfigEnter
	stateTypeRead
	stateModeSet
	stateConfigExit
	stateVerifying
	stateReady
	stateFailed
)

var stateNames = [...]string{
	"Probing",
	"ConfigEnter",
	"TypeRead",
	"ModeSet",
	"ConfigExit",
	"Verifying",
	"Ready",
	"Failed",
}

func (s linkState) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "Invalid"
}

// runHandshake takes a freshly configured bus to Ready or returns the
// reason it failed.
func (p *Pad) runHandshake() error {
	p.kind = TypeUnknown
	p.watchdog = p.clock.Millis()

	var failure error
	if p.run(stateProbing, true, &failure) == stateFailed {
		return failure
	}

	logPrintln("Configure successful. Type: " + p.kind.String())
	return nil
}

// run steps the state machine from start until Ready or Failed.
// full selects the startup path (type read and verification).
func (p *Pad) run(start linkState, full bool, failure *error) linkState {
	state := start
	for state != stateReady && state != stateFailed {
		p.state = state
		state = p.step(state, full, failure)
	}
	p.state = state
	return state
}

func (p *Pad) step(s linkState, full bool, failure *error) linkState {
	switch s {
	case stateProbing:
		return p.stepProbing(failure)
	case stateConfigEnter:
		p.sendCommand(enterConfigCommand())
		if full {
			return stateTypeRead
		}
		return stateModeSet
	case stateTypeRead:
		return p.stepTypeRead()
	case stateModeSet:
		return p.stepModeSet()
	case stateConfigExit:
		return p.stepConfigExit(full)
	case stateVerifying:
		return p.stepVerifying(failure)
	default:
		return stateFailed
	}
}

func (p *Pad) stepProbing(failure *error) linkState {
	p.getData(beginCommand())

	switch mode := p.frame.Mode(); mode {
	case ModeDigital, ModeAnalog, ModeAnalogFull, 0xF1, 0xF3, 0xF9:
		RecordLinkEvent(EvtProbe, mode, p.clock.Millis())
		return stateConfigEnter
	}

	if p.clock.Millis()-p.watchdog > p.timing.Watchdog {
		logPrintln("No controller found, please check wiring again.")
		RecordLinkEvent(EvtFailed, p.frame.Mode(), p.clock.Millis())
		*failure = ErrNoController
		return stateFailed
	}
	return stateProbing
}

func (p *Pad) stepTypeRead() linkState {
	p.getData(typeReadCommand())

	// Header must be [0xFF, 0xFx, 0x5A] for byte 3 to mean anything
	if p.frame.At(0) == headerByte && p.frame.At(2) == dataMarker {
		p.kind = ControllerType(p.frame.At(3))
	} else {
		p.kind = TypeUnknown
		logPrintln("Wrong package header on type read: " + hexBytes(p.frame.At(0), p.frame.At(2)))
	}
	return stateModeSet
}

func (p *Pad) stepModeSet() linkState {
	p.sendCommand(setModeCommand(p.mode.Analog, p.mode.Locked))
	if p.mode.Rumble {
		p.sendCommand(enableRumbleCommand())
	}
	if p.mode.Pressure {
		p.sendCommand(enablePressureCommand())
	}
	return stateConfigExit
}

func (p *Pad) stepConfigExit(full bool) linkState {
	p.sendCommand(exitConfigCommand())
	p.stats.Reconfigs++
	RecordLinkEvent(EvtReconfig, 0, p.clock.Millis())

	if !full {
		return stateReady
	}

	// Start link monitoring now
	now := p.clock.Millis()
	p.lastUpdate = now
	p.watchdog = now
	return stateVerifying
}

func (p *Pad) stepVerifying(failure *error) linkState {
	p.Update()

	mode := p.frame.Mode()
	switch {
	case mode&0xF0 == 0x70:
		logPrintln("PS2 controller: Analog Mode")
		if p.mode.Pressure {
			if mode == ModeAnalogFull {
				logPrintln("Pressures mode is ON.")
			} else {
				logPrintln("Controller refusing to enter Pressures mode, may not support it.")
			}
		}
		RecordLinkEvent(EvtModeConfirmed, mode, p.clock.Millis())
		return stateReady
	case mode == ModeDigital:
		logPrintln("PS2 controller: Digital Mode")
		RecordLinkEvent(EvtModeConfirmed, mode, p.clock.Millis())
		return stateReady
	}

	if p.clock.Millis()-p.watchdog > p.timing.Watchdog {
		logPrintln("Controller found but not in a recognizable mode: " + hex8(mode))
		RecordLinkEvent(EvtFailed, mode, p.clock.Millis())
		*failure = ErrUnrecognizedMode
		return stateFailed
	}
	return stateVerifying
}
