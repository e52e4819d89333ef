// Package ap describes the Wi-Fi access point the control panel is served on.
// Bringing the radio up is left to hostapd; this package validates the
// settings, derives the WPA2 key and renders the hostapd configuration.
package ap

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net"

	"golang.org/x/crypto/pbkdf2"
)

// Defaults match the credentials printed on the panel's label.
const (
	DefaultInterface  = "wlan0"
	DefaultSSID       = "ESP32S3_AP"
	DefaultPassphrase = "12345678"
	DefaultIP         = "192.168.4.1"
	DefaultChannel    = 6
)

// WPA2 PSK derivation parameters (IEEE 802.11i, H.4).
const (
	pskIterations = 4096
	pskBytes      = 32
)

// Config holds access point settings.
type Config struct {
	Interface  string `toml:"interface"`
	SSID       string `toml:"ssid"`
	Passphrase string `toml:"passphrase"`
	IP         string `toml:"ip"`
	Channel    int    `toml:"channel"`
}

// Default returns the factory access point settings.
func Default() Config {
	return Config{
		Interface:  DefaultInterface,
		SSID:       DefaultSSID,
		Passphrase: DefaultPassphrase,
		IP:         DefaultIP,
		Channel:    DefaultChannel,
	}
}

var (
	errSSIDLength       = errors.New("ssid must be 1-32 bytes")
	errPassphraseLength = errors.New("passphrase must be 8-63 characters")
	errPassphraseChars  = errors.New("passphrase must be printable ASCII")
)

// Validate checks the settings against WPA2-Personal limits.
func (c Config) Validate() error {
	if len(c.SSID) < 1 || len(c.SSID) > 32 {
		return fmt.Errorf("ap: %w", errSSIDLength)
	}
	if len(c.Passphrase) < 8 || len(c.Passphrase) > 63 {
		return fmt.Errorf("ap: %w", errPassphraseLength)
	}
	for i := 0; i < len(c.Passphrase); i++ {
		if b := c.Passphrase[i]; b < 0x20 || b > 0x7e {
			return fmt.Errorf("ap: %w", errPassphraseChars)
		}
	}
	if net.ParseIP(c.IP).To4() == nil {
		return fmt.Errorf("ap: invalid ip %q", c.IP)
	}
	if c.Channel < 1 || c.Channel > 13 {
		return fmt.Errorf("ap: channel %d out of range 1-13", c.Channel)
	}
	return nil
}

// PSK returns the 256-bit pre-shared key derived from passphrase and SSID,
// hex encoded as hostapd's wpa_psk expects.
func (c Config) PSK() string {
	key := pbkdf2.Key([]byte(c.Passphrase), []byte(c.SSID), pskIterations, pskBytes, sha1.New)
	return hex.EncodeToString(key)
}

// UsesDefaultCredentials reports whether the factory passphrase is in use.
func (c Config) UsesDefaultCredentials() bool {
	return c.Passphrase == DefaultPassphrase
}

// URL is the address of the control page.
func (c Config) URL() string {
	return "http://" + c.IP
}

// Banner returns the startup lines printed once the AP is configured.
func (c Config) Banner() []string {
	return []string{
		"AP started",
		"SSID: " + c.SSID,
		"AP IP address: " + c.IP,
		"open " + c.URL(),
	}
}

// WriteHostapd renders a hostapd.conf for a WPA2-PSK access point.
// The derived key is written instead of the passphrase.
func (c Config) WriteHostapd(w io.Writer) error {
	_, err := fmt.Fprintf(w, `interface=%s
driver=nl80211
ssid=%s
hw_mode=g
channel=%d
auth_algs=1
wpa=2
wpa_key_mgmt=WPA-PSK
rsn_pairwise=CCMP
wpa_psk=%s
`, c.Interface, c.SSID, c.Channel, c.PSK())
	return err
}
