package main

import (
	"fmt"
	"log"

	"github.com/sweeney/tinyml-panel/internal/config"
	"github.com/sweeney/tinyml-panel/internal/gpio"
	"github.com/sweeney/tinyml-panel/internal/led"
	"github.com/sweeney/tinyml-panel/internal/sensor"
)

// hardware is the set of devices the daemon drives.
type hardware struct {
	sensor    sensor.Source
	led1      led.Strip
	led2      led.Strip
	indicator led.Strip
	relay     gpio.Relay
}

func openHardware(cfg config.Config) (*hardware, error) {
	if cfg.Hardware == config.HardwareSim {
		log.Printf("hardware: simulation mode")
		return simHardware(), nil
	}

	hw := &hardware{}

	relay, err := gpio.NewRealRelay(cfg.Relay.Chip, cfg.Relay.Pin)
	if err != nil {
		return nil, fmt.Errorf("relay: %w", err)
	}
	hw.relay = relay

	for _, s := range []struct {
		name string
		port string
		dst  *led.Strip
	}{
		{"led1", cfg.LED.Strip1, &hw.led1},
		{"led2", cfg.LED.Strip2, &hw.led2},
		{"indicator", cfg.LED.Indicator, &hw.indicator},
	} {
		if s.port == "" && s.name == "indicator" {
			*s.dst = led.NewLogStrip(s.name)
			continue
		}
		strip, err := led.NewNRZStrip(s.port, cfg.LED.Pixels)
		if err != nil {
			hw.Close()
			return nil, fmt.Errorf("%s: %w", s.name, err)
		}
		*s.dst = strip
	}

	sht, err := sensor.NewSHT3x(cfg.Sensor.Bus, cfg.Sensor.Addr)
	if err != nil {
		hw.Close()
		return nil, fmt.Errorf("sensor: %w", err)
	}
	hw.sensor = sht

	log.Printf("hardware: relay %s/%d, strips %s %s, indicator %q, sht3x 0x%02x on %q",
		cfg.Relay.Chip, cfg.Relay.Pin, cfg.LED.Strip1, cfg.LED.Strip2, cfg.LED.Indicator, cfg.Sensor.Addr, cfg.Sensor.Bus)
	return hw, nil
}

func simHardware() *hardware {
	relay := gpio.NewFakeRelay()
	relay.Log = true
	return &hardware{
		sensor:    sensor.NewSimSource(nil),
		led1:      led.NewLogStrip("led1"),
		led2:      led.NewLogStrip("led2"),
		indicator: led.NewLogStrip("indicator"),
		relay:     relay,
	}
}

// Close releases whatever was opened.
func (h *hardware) Close() {
	for _, c := range []interface{ Close() error }{h.sensor, h.led1, h.led2, h.indicator, h.relay} {
		if c != nil {
			c.Close()
		}
	}
}
