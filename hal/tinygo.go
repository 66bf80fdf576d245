//go:build tinygo && baremetal

package hal

import (
	"machine"
	"time"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/st7789"
)

// Pico display pack wiring (ST7789 240x135 on SPI0, four buttons to ground).
const (
	lcdWidth  = 240
	lcdHeight = 135

	buttonPoll = 10 * time.Millisecond
)

type tinyGoHAL struct {
	logger *uartLogger
	fb     Framebuffer
	kbd    Keyboard
	t      *tinyGoTime
}

// New returns a Pico (RP2040) HAL with a display pack attached.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})
	logger := &uartLogger{uart: uart}

	var kbd Keyboard = &stubKeyboard{}
	bk, err := NewButtonKeyboard(buttonPoll,
		ButtonBinding{Pin: machinePin{pin: machine.GP12}, Code: KeyUp},     // A
		ButtonBinding{Pin: machinePin{pin: machine.GP13}, Code: KeyDown},   // B
		ButtonBinding{Pin: machinePin{pin: machine.GP14}, Code: KeyEnter},  // X
		ButtonBinding{Pin: machinePin{pin: machine.GP15}, Code: KeyEscape}, // Y
	)
	if err == nil {
		bk.Start()
		kbd = bk
	} else {
		logger.WriteLineString("hal: buttons: " + err.Error())
	}

	return &tinyGoHAL{
		logger: logger,
		fb:     newLCDFramebuffer(),
		kbd:    kbd,
		t:      newTinyGoTime(),
	}
}

func (h *tinyGoHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHAL) Display() Display { return tinyGoDisplay{fb: h.fb} }
func (h *tinyGoHAL) Input() Input     { return tinyGoInput{kbd: h.kbd} }
func (h *tinyGoHAL) Time() Time       { return h.t }

type lcdFramebuffer struct {
	w      int
	h      int
	stride int
	buf    []byte
	tx     []byte

	lcd st7789.Device
}

func newLCDFramebuffer() *lcdFramebuffer {
	machine.SPI0.Configure(machine.SPIConfig{
		SCK:       machine.GP18,
		SDO:       machine.GP19,
		Frequency: 62_500_000,
	})
	lcd := st7789.New(machine.SPI0, machine.NoPin, machine.GP16, machine.GP17, machine.GP20)
	lcd.Configure(st7789.Config{
		Width:        135,
		Height:       240,
		Rotation:     drivers.Rotation90,
		RowOffset:    40,
		ColumnOffset: 53,
	})

	stride := lcdWidth * 2
	return &lcdFramebuffer{
		w:      lcdWidth,
		h:      lcdHeight,
		stride: stride,
		buf:    make([]byte, stride*lcdHeight),
		tx:     make([]byte, stride*lcdHeight),
		lcd:    lcd,
	}
}

func (f *lcdFramebuffer) Width() int          { return f.w }
func (f *lcdFramebuffer) Height() int         { return f.h }
func (f *lcdFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *lcdFramebuffer) StrideBytes() int    { return f.stride }
func (f *lcdFramebuffer) Buffer() []byte      { return f.buf }

func (f *lcdFramebuffer) ClearRGB(r, g, b uint8) {
	fillRGB565(f.buf, r, g, b)
}

// Present swaps to the panel's big-endian RGB565 order and blits the whole frame.
func (f *lcdFramebuffer) Present() error {
	for i := 0; i+1 < len(f.buf); i += 2 {
		f.tx[i] = f.buf[i+1]
		f.tx[i+1] = f.buf[i]
	}
	return f.lcd.DrawRGBBitmap8(0, 0, f.tx, int16(f.w), int16(f.h))
}
