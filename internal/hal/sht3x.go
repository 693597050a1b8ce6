// v0
// internal/hal/sht3x.go
package hal

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"periph.io/x/conn/v3/i2c"
)

// sht3x drives an SHT3x-class combo sensor in high-repeatability single-shot
// mode with clock stretching disabled. Each 16-bit word of the response
// carries its own checksum, so a corrupt word invalidates only that quantity.
type sht3x struct {
	dev i2c.Dev
}

var sht3xMeasureCmd = []byte{0x2C, 0x06}

const sht3xSettle = 15 * time.Millisecond

func (s *sht3x) measure() (float64, float64, error) {
	if err := s.dev.Tx(sht3xMeasureCmd, nil); err != nil {
		return math.NaN(), math.NaN(), fmt.Errorf("sht3x command: %w", err)
	}
	time.Sleep(sht3xSettle)
	frame := make([]byte, 6)
	if err := s.dev.Tx(nil, frame); err != nil {
		return math.NaN(), math.NaN(), fmt.Errorf("sht3x read: %w", err)
	}
	t, h := decodeSHT3x(frame)
	return t, h, nil
}

// decodeSHT3x converts a 6-byte measurement frame. A word that fails its CRC
// yields NaN for that quantity only.
func decodeSHT3x(frame []byte) (tempC, humidityPct float64) {
	tempC, humidityPct = math.NaN(), math.NaN()
	if len(frame) != 6 {
		return
	}
	if crc8(frame[0:2]) == frame[2] {
		raw := binary.BigEndian.Uint16(frame[0:2])
		tempC = float64(raw)*175.0/65535.0 - 45.0
	}
	if crc8(frame[3:5]) == frame[5] {
		raw := binary.BigEndian.Uint16(frame[3:5])
		humidityPct = float64(raw) * 100.0 / 65535.0
	}
	return
}

// crc8 is the sensor's checksum: polynomial 0x31, init 0xFF, no reflection.
func crc8(data []byte) byte {
	crc := byte(0xFF)
	for _, b := range data {
		crc ^= b
		for i := 0; i < 8; i++ {
			if crc&0x80 != 0 {
				crc = crc<<1 ^ 0x31
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
