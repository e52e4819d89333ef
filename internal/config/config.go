// Package config loads daemon settings. Values are layered: built-in
// defaults, then an optional TOML file, then TINYML_* environment variables
// (a .env file in the working directory is read first). Command-line flags
// are applied on top by the caller.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/sweeney/tinyml-panel/internal/ap"
	"github.com/sweeney/tinyml-panel/internal/gpio"
	"github.com/sweeney/tinyml-panel/internal/led"
	"github.com/sweeney/tinyml-panel/internal/model"
	"github.com/sweeney/tinyml-panel/internal/sensor"
)

// Hardware modes.
const (
	HardwarePeriph = "periph"
	HardwareSim    = "sim"
)

// Config is the complete daemon configuration.
type Config struct {
	Hardware   string           `toml:"hardware"`
	PeriodMs   int64            `toml:"period_ms"`
	HTTPAddr   string           `toml:"http_addr"`
	ArenaBytes int              `toml:"arena_bytes"`
	AP         ap.Config        `toml:"ap"`
	LED        LEDConfig        `toml:"led"`
	Relay      RelayConfig      `toml:"relay"`
	Sensor     SensorConfig     `toml:"sensor"`
	MQTT       MQTTConfig       `toml:"mqtt"`
	ClickHouse ClickHouseConfig `toml:"clickhouse"`
}

// LEDConfig names the SPI ports driving each strip.
type LEDConfig struct {
	Strip1    string `toml:"strip1"`
	Strip2    string `toml:"strip2"`
	Indicator string `toml:"indicator"`
	Pixels    int    `toml:"pixels"`
}

// RelayConfig selects the relay output line.
type RelayConfig struct {
	Chip string `toml:"chip"`
	Pin  int    `toml:"pin"`
}

// SensorConfig selects the I2C bus and address of the SHT3x.
type SensorConfig struct {
	Bus  string `toml:"bus"`
	Addr uint16 `toml:"addr"`
}

// MQTTConfig configures the optional event publisher. An empty broker
// disables publishing.
type MQTTConfig struct {
	Broker      string `toml:"broker"`
	HeartbeatMs int64  `toml:"heartbeat_ms"`
}

// ClickHouseConfig configures the optional classification store. An empty
// address disables it.
type ClickHouseConfig struct {
	Addr     string `toml:"addr"`
	Database string `toml:"database"`
	Username string `toml:"username"`
	Password string `toml:"password"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Hardware:   HardwarePeriph,
		PeriodMs:   1000,
		HTTPAddr:   ":80",
		ArenaBytes: model.DefaultArenaSize,
		AP:         ap.Default(),
		LED: LEDConfig{
			Strip1:    "SPI0.0",
			Strip2:    "SPI0.1",
			Indicator: "SPI1.0",
			Pixels:    led.DefaultPixels,
		},
		Relay: RelayConfig{
			Chip: gpio.DefaultChip,
			Pin:  gpio.DefaultPinRelay,
		},
		Sensor: SensorConfig{
			Bus:  "",
			Addr: sensor.DefaultAddr,
		},
		MQTT: MQTTConfig{
			HeartbeatMs: 60000,
		},
		ClickHouse: ClickHouseConfig{
			Database: "tinyml",
			Username: "default",
		},
	}
}

// Load returns the defaults overlaid with the TOML file at path (skipped
// when path is empty) and the environment. It does not validate.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return cfg, fmt.Errorf("config: %w", err)
		}
		for _, key := range md.Undecoded() {
			log.Printf("config: ignoring unknown key %q in %s", key.String(), path)
		}
	}

	_ = godotenv.Load()
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Hardware = getEnv("TINYML_HARDWARE", c.Hardware)
	c.PeriodMs = getEnvInt64("TINYML_PERIOD_MS", c.PeriodMs)
	c.HTTPAddr = getEnv("TINYML_HTTP_ADDR", c.HTTPAddr)

	c.AP.Interface = getEnv("TINYML_AP_INTERFACE", c.AP.Interface)
	c.AP.SSID = getEnv("TINYML_AP_SSID", c.AP.SSID)
	c.AP.Passphrase = getEnv("TINYML_AP_PASSPHRASE", c.AP.Passphrase)
	c.AP.IP = getEnv("TINYML_AP_IP", c.AP.IP)

	c.Relay.Pin = int(getEnvInt64("TINYML_RELAY_PIN", int64(c.Relay.Pin)))

	c.MQTT.Broker = getEnv("TINYML_MQTT_BROKER", c.MQTT.Broker)
	c.MQTT.HeartbeatMs = getEnvInt64("TINYML_HEARTBEAT_MS", c.MQTT.HeartbeatMs)

	c.ClickHouse.Addr = getEnv("TINYML_CLICKHOUSE_ADDR", c.ClickHouse.Addr)
	c.ClickHouse.Database = getEnv("TINYML_CLICKHOUSE_DB", c.ClickHouse.Database)
	c.ClickHouse.Username = getEnv("TINYML_CLICKHOUSE_USER", c.ClickHouse.Username)
	c.ClickHouse.Password = getEnv("TINYML_CLICKHOUSE_PASS", c.ClickHouse.Password)
}

// Validate rejects settings the daemon cannot run with.
func (c Config) Validate() error {
	if c.Hardware != HardwarePeriph && c.Hardware != HardwareSim {
		return fmt.Errorf("config: hardware must be %q or %q, got %q", HardwarePeriph, HardwareSim, c.Hardware)
	}
	if c.PeriodMs <= 0 {
		return fmt.Errorf("config: period_ms must be positive, got %d", c.PeriodMs)
	}
	if c.MQTT.HeartbeatMs < 0 {
		return fmt.Errorf("config: heartbeat_ms must not be negative, got %d", c.MQTT.HeartbeatMs)
	}
	if c.ArenaBytes <= 0 {
		return fmt.Errorf("config: arena_bytes must be positive, got %d", c.ArenaBytes)
	}
	if c.LED.Pixels <= 0 {
		return fmt.Errorf("config: led pixels must be positive, got %d", c.LED.Pixels)
	}
	return c.AP.Validate()
}

// Period is the inference period.
func (c Config) Period() time.Duration {
	return time.Duration(c.PeriodMs) * time.Millisecond
}

// Heartbeat is the MQTT heartbeat interval; zero disables heartbeats.
func (c Config) Heartbeat() time.Duration {
	return time.Duration(c.MQTT.HeartbeatMs) * time.Millisecond
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		log.Printf("config: failed to parse %s as integer, using default: %v", key, err)
		return defaultValue
	}
	return n
}
