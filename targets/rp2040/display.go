//go:build rp2040

package main

import (
	"image/color"
	"machine"

	"ps2pad/core"
	"tinygo.org/x/drivers/ssd1306"
)

// Layout of the 128x64 status screen
const (
	displayWidth  = 128
	displayHeight = 64

	stickBox  = 32 // Side of each stick square
	leftBoxX  = 0
	rightBoxX = 40
	buttonRow = 48 // Top of the button strip
	buttonBox = 8
)

var (
	pixelOn  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	pixelOff = color.RGBA{}
)

// statusDisplay draws the pad state on an SSD1306 over I2C0
type statusDisplay struct {
	dev ssd1306.Device
}

// newStatusDisplay configures I2C0 (GP0/GP1) and the panel at 0x3C
func newStatusDisplay() (*statusDisplay, error) {
	err := machine.I2C0.Configure(machine.I2CConfig{
		Frequency: 400000,
		SDA:       machine.GPIO0,
		SCL:       machine.GPIO1,
	})
	if err != nil {
		return nil, err
	}

	dev := ssd1306.NewI2C(machine.I2C0)
	dev.Configure(ssd1306.Config{
		Address: 0x3C,
		Width:   displayWidth,
		Height:  displayHeight,
	})
	dev.ClearDisplay()
	return &statusDisplay{dev: dev}, nil
}

// Show redraws both sticks, the button strip and the link mode marker
func (s *statusDisplay) Show(buttons core.ButtonMask, lstick, rstick core.Stick, analog bool) error {
	s.dev.ClearBuffer()

	s.drawStick(leftBoxX, lstick)
	s.drawStick(rightBoxX, rstick)

	for i := 0; i < 16; i++ {
		x := int16(i * buttonBox)
		s.rect(x, buttonRow, buttonBox-1, buttonBox-1, buttons.Has(core.ButtonMask(1)<<i))
	}

	// Analog marker in the top right corner
	s.rect(displayWidth-buttonBox, 0, buttonBox-1, buttonBox-1, analog)

	return s.dev.Display()
}

func (s *statusDisplay) drawStick(x0 int16, st core.Stick) {
	s.rect(x0, 0, stickBox-1, stickBox-1, false)
	x := x0 + int16(st.X())*(stickBox-4)/255 + 1
	y := int16(st.Y())*(stickBox-4)/255 + 1
	s.rect(x, y, 2, 2, true)
}

// rect draws a w x h rectangle, filled or as an outline
func (s *statusDisplay) rect(x0, y0, w, h int16, filled bool) {
	for y := y0; y <= y0+h; y++ {
		for x := x0; x <= x0+w; x++ {
			edge := x == x0 || x == x0+w || y == y0 || y == y0+h
			if filled || edge {
				s.dev.SetPixel(x, y, pixelOn)
			} else {
				s.dev.SetPixel(x, y, pixelOff)
			}
		}
	}
}
