package sensor

import (
	"errors"
	"fmt"
	"log"
	"time"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/sweeney/tinyml-panel/internal/logic"
)

// Single-shot measurement, high repeatability, clock stretching disabled.
var cmdMeasureHigh = []byte{0x24, 0x00}

// measureDelay covers the worst-case high repeatability conversion time.
const measureDelay = 16 * time.Millisecond

var errCRC = errors.New("sht3x: crc mismatch")

// SHT3x reads a Sensirion SHT30/31/35 over I2C.
type SHT3x struct {
	bus  i2c.BusCloser
	dev  *i2c.Dev
	last logic.Reading
	have bool
}

// NewSHT3x opens the named I2C bus ("" selects the first available) and
// binds the sensor at addr.
func NewSHT3x(busName string, addr uint16) (*SHT3x, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init periph host: %w", err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", busName, err)
	}

	return &SHT3x{
		bus: bus,
		dev: &i2c.Dev{Bus: bus, Addr: addr},
	}, nil
}

// Read triggers a measurement. If it fails after a successful read, the
// last good value is returned so the caller always sees a prompt answer.
func (s *SHT3x) Read() (logic.Reading, error) {
	r, err := s.measure()
	if err != nil {
		if s.have {
			log.Printf("sensor: %v (using last reading)", err)
			return s.last, nil
		}
		return logic.Reading{}, err
	}
	s.last = r
	s.have = true
	return r, nil
}

func (s *SHT3x) measure() (logic.Reading, error) {
	if err := s.dev.Tx(cmdMeasureHigh, nil); err != nil {
		return logic.Reading{}, fmt.Errorf("sht3x: write command: %w", err)
	}
	time.Sleep(measureDelay)

	var buf [6]byte
	if err := s.dev.Tx(nil, buf[:]); err != nil {
		return logic.Reading{}, fmt.Errorf("sht3x: read result: %w", err)
	}
	return decodeSHT3x(buf)
}

// Close releases the I2C bus.
func (s *SHT3x) Close() error {
	if s.bus == nil {
		return nil
	}
	return s.bus.Close()
}

// decodeSHT3x converts a 6-byte measurement frame (T msb, T lsb, crc,
// RH msb, RH lsb, crc) to engineering units.
func decodeSHT3x(buf [6]byte) (logic.Reading, error) {
	if crc8(buf[0:2]) != buf[2] || crc8(buf[3:5]) != buf[5] {
		return logic.Reading{}, errCRC
	}
	rawT := uint16(buf[0])<<8 | uint16(buf[1])
	rawH := uint16(buf[3])<<8 | uint16(buf[4])

	return logic.Reading{
		Temperature: -45 + 175*float64(rawT)/65535,
		Humidity:    100 * float64(rawH) / 65535,
	}, nil
}

// crc8 is the Sensirion CRC: polynomial 0x31, init 0xFF, no reflection.
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
