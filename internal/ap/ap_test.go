package ap

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	c := Default()
	if c.SSID != "ESP32S3_AP" || c.Passphrase != "12345678" || c.IP != "192.168.4.1" {
		t.Errorf("unexpected defaults: %+v", c)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
	if !c.UsesDefaultCredentials() {
		t.Error("expected default credentials")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"empty ssid", func(c *Config) { c.SSID = "" }, errSSIDLength},
		{"long ssid", func(c *Config) { c.SSID = strings.Repeat("a", 33) }, errSSIDLength},
		{"32 byte ssid", func(c *Config) { c.SSID = strings.Repeat("a", 32) }, nil},
		{"short passphrase", func(c *Config) { c.Passphrase = "1234567" }, errPassphraseLength},
		{"long passphrase", func(c *Config) { c.Passphrase = strings.Repeat("p", 64) }, errPassphraseLength},
		{"63 char passphrase", func(c *Config) { c.Passphrase = strings.Repeat("p", 63) }, nil},
		{"control char", func(c *Config) { c.Passphrase = "abc\tdefgh" }, errPassphraseChars},
		{"non ascii", func(c *Config) { c.Passphrase = "pässwörd1" }, errPassphraseChars},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateIPAndChannel(t *testing.T) {
	c := Default()
	c.IP = "not-an-ip"
	if err := c.Validate(); err == nil {
		t.Error("expected error for bad ip")
	}

	c = Default()
	c.Channel = 14
	if err := c.Validate(); err == nil {
		t.Error("expected error for channel 14")
	}
}

// IEEE 802.11i-2004, H.4.3 test vectors.
func TestPSK(t *testing.T) {
	tests := []struct {
		pass, ssid, want string
	}{
		{"password", "IEEE", "f42c6fc52df0ebef9ebb4b90b38a5f902e83fe1b135a70e23aed762e9710a12e"},
		{"ThisIsAPassword", "ThisIsASSID", "0dc0d6eb90555ed6419756b9a15ec3e3209b63df707dd508d14581f8982721af"},
	}

	for _, tt := range tests {
		c := Config{SSID: tt.ssid, Passphrase: tt.pass}
		if got := c.PSK(); got != tt.want {
			t.Errorf("PSK(%q, %q) = %s, want %s", tt.pass, tt.ssid, got, tt.want)
		}
	}
}

func TestBanner(t *testing.T) {
	lines := Default().Banner()
	joined := strings.Join(lines, "\n")
	for _, want := range []string{"SSID: ESP32S3_AP", "AP IP address: 192.168.4.1", "open http://192.168.4.1"} {
		if !strings.Contains(joined, want) {
			t.Errorf("banner missing %q:\n%s", want, joined)
		}
	}
}

func TestWriteHostapd(t *testing.T) {
	c := Default()
	var buf bytes.Buffer
	if err := c.WriteHostapd(&buf); err != nil {
		t.Fatalf("WriteHostapd: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"interface=wlan0\n",
		"ssid=ESP32S3_AP\n",
		"channel=6\n",
		"wpa=2\n",
		"wpa_psk=" + c.PSK() + "\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("hostapd.conf missing %q", want)
		}
	}
	if strings.Contains(out, c.Passphrase) {
		t.Error("hostapd.conf should not contain the plain passphrase")
	}
}
