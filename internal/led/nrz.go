package led

import (
	"fmt"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/host/v3"

	"github.com/sweeney/tinyml-panel/internal/logic"
)

// NRZStrip drives a WS2812 (NeoPixel) strip from an SPI MOSI line.
type NRZStrip struct {
	port   spi.PortCloser
	dev    *nrzled.Dev
	pixels int
}

// NewNRZStrip opens the named SPI port ("" selects the first available)
// and binds a strip of the given pixel count. The strip starts dark.
func NewNRZStrip(spiName string, pixels int) (*NRZStrip, error) {
	if pixels <= 0 {
		pixels = DefaultPixels
	}
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init periph host: %w", err)
	}

	port, err := spireg.Open(spiName)
	if err != nil {
		return nil, fmt.Errorf("open spi port %q: %w", spiName, err)
	}

	dev, err := nrzled.NewSPI(port, &nrzled.Opts{
		NumPixels: pixels,
		Channels:  3,
		Freq:      800 * physic.KiloHertz,
	})
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("bind strip on %q: %w", spiName, err)
	}

	s := &NRZStrip{port: port, dev: dev, pixels: pixels}
	if err := s.Fill(logic.Off); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// Fill sets all pixels to c.
func (s *NRZStrip) Fill(c logic.RGB) error {
	if _, err := s.dev.Write(frame(s.pixels, c)); err != nil {
		return fmt.Errorf("write strip: %w", err)
	}
	return nil
}

// Close blanks the strip and releases the SPI port.
func (s *NRZStrip) Close() error {
	var errs []error
	if s.dev != nil {
		if err := s.dev.Halt(); err != nil {
			errs = append(errs, fmt.Errorf("halt strip: %w", err))
		}
	}
	if s.port != nil {
		if err := s.port.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close spi port: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
