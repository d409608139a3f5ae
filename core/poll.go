package core

// frameClass is the polling verdict on a response header
type frameClass uint8

const (
	classData   frameClass = iota // Digital or analog data frame
	classConfig                   // Controller is stuck in configuration mode
	classNoise                    // Anything else
)

// classify inspects the header of a response frame
func classify(f *Frame) frameClass {
	if f.At(0) != headerByte {
		return classNoise
	}
	switch mode := f.Mode(); {
	case mode == ModeDigital || mode == ModeAnalog || mode == ModeAnalogFull:
		return classData
	case mode&0xF0 == modeConfigNibble:
		return classConfig
	default:
		return classNoise
	}
}

// Update polls the controller once. Call it every loop iteration; it
// throttles itself to Timing.UpdateInterval.
//
// A link that produced no valid frame for Timing.ExpiryInterval is
// reconfigured and the tick is skipped. A configuration-mode reply is also
// answered with a reconfiguration; any other bad header is dropped and the
// next attempt waits one interval.
func (p *Pad) Update() {
	elapsed := p.clock.Millis() - p.lastUpdate

	if elapsed > p.timing.ExpiryInterval {
		logPrintln("Waited too long. Try to reset...")
		p.stats.Stale++
		RecordLinkEvent(EvtStale, p.frame.Mode(), p.clock.Millis())
		p.lastUpdate = p.clock.Millis()
		p.Reconfig()
		return
	}

	if elapsed < p.timing.UpdateInterval {
		SleepMillis(p.clock, p.timing.UpdateInterval-elapsed)
	}

	p.getData(pollCommand())
	p.stats.Polls++

	switch classify(&p.frame) {
	case classData:
		p.input.latch(&p.frame)
		p.stats.Frames++
		p.lastUpdate = p.clock.Millis()

	case classConfig:
		logPrintln("Currently in config mode. Getting out...")
		p.stats.ConfigLeaks++
		RecordLinkEvent(EvtConfigLeak, p.frame.Mode(), p.clock.Millis())
		p.frame.Reset()
		p.Reconfig()

	default:
		logPrintln("Not valid header received: " +
			hexBytes(p.frame.At(0), p.frame.At(1), p.frame.At(2)))
		p.stats.Noise++
		RecordLinkEvent(EvtNoise, p.frame.Mode(), p.clock.Millis())
		p.frame.Reset()
		SleepMillis(p.clock, p.timing.UpdateInterval)
	}
}
