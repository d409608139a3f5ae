package core

// Command bytes (second byte of every frame, after the 0x01 address)
const (
	cmdAddress  = 0x01
	cmdPoll     = 0x42
	cmdConfig   = 0x43
	cmdSetMode  = 0x44
	cmdTypeRead = 0x45
	cmdRumble   = 0x4D
	cmdPressure = 0x4F
)

// Every builder returns a fresh slice; callers may not share frames.

// beginCommand probes the controller (digital poll, short form)
func beginCommand() []byte {
	return []byte{cmdAddress, cmdPoll, 0x00, 0x00, 0x00}
}

// pollCommand reads buttons and sticks; motor bytes stay zero
func pollCommand() []byte {
	return []byte{cmdAddress, cmdPoll, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
}

// enterConfigCommand switches the controller into configuration mode
func enterConfigCommand() []byte {
	return []byte{cmdAddress, cmdConfig, 0x00, 0x01, 0x00}
}

// exitConfigCommand leaves configuration mode
func exitConfigCommand() []byte {
	return []byte{cmdAddress, cmdConfig, 0x00, 0x00, 0x5A, 0x5A, 0x5A, 0x5A, 0x5A}
}

// typeReadCommand asks for the controller model (valid in configuration mode)
func typeReadCommand() []byte {
	return []byte{cmdAddress, cmdTypeRead, 0x00, 0x5A, 0x5A, 0x5A, 0x5A, 0x5A, 0x5A}
}

// setModeCommand selects analog/digital and locks the MODE button
func setModeCommand(analog, locked bool) []byte {
	var a, l byte
	if analog {
		a = 0x01
	}
	if locked {
		l = 0x03
	}
	return []byte{cmdAddress, cmdSetMode, 0x00, a, l, 0x00, 0x00, 0x00, 0x00}
}

// enablePressureCommand requests the 0x79 full analog reply
func enablePressureCommand() []byte {
	return []byte{cmdAddress, cmdPressure, 0x00, 0xFF, 0xFF, 0x03, 0x00, 0x00, 0x00}
}

// enableRumbleCommand maps the motor bytes of the poll frame
func enableRumbleCommand() []byte {
	return []byte{cmdAddress, cmdRumble, 0x00, 0x00, 0x01, 0xFF, 0xFF, 0xFF, 0xFF}
}
