// v0
// internal/hal/ads1115.go
package hal

import (
	"encoding/binary"
	"fmt"
	"time"

	"periph.io/x/conn/v3/i2c"
)

// ads1115 runs the converter in single-shot mode: write the channel config,
// wait out one conversion, read the conversion register back. Codes are the
// converter's signed 16-bit output passed through untouched.
type ads1115 struct {
	dev i2c.Dev
}

const (
	adsRegConversion = 0x00
	adsRegConfig     = 0x01

	// High byte: OS=1, MUX=AINx single-ended (channel shifted in), PGA
	// ±4.096V, single-shot. Low byte: 128 SPS, comparator disabled.
	adsConfigHigh = 0xC3
	adsConfigLow  = 0x83

	// One conversion at 128 SPS takes just under 8ms.
	adsConversionWait = 9 * time.Millisecond
)

func (a *ads1115) readChannel(ch int) (int, error) {
	if ch < 0 || ch > 3 {
		return 0, fmt.Errorf("ads1115 channel %d out of range", ch)
	}
	cfg := []byte{adsRegConfig, adsConfigHigh | byte(ch)<<4, adsConfigLow}
	if err := a.dev.Tx(cfg, nil); err != nil {
		return 0, fmt.Errorf("ads1115 config: %w", err)
	}
	time.Sleep(adsConversionWait)
	buf := make([]byte, 2)
	if err := a.dev.Tx([]byte{adsRegConversion}, buf); err != nil {
		return 0, fmt.Errorf("ads1115 read: %w", err)
	}
	return int(int16(binary.BigEndian.Uint16(buf))), nil
}
