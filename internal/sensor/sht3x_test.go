package sensor

import (
	"errors"
	"math"
	"testing"
)

func TestCRC8DatasheetVector(t *testing.T) {
	// Sensirion datasheet example: CRC(0xBEEF) = 0x92.
	if got := crc8([]byte{0xBE, 0xEF}); got != 0x92 {
		t.Errorf("crc8(0xBEEF): got %#x, want 0x92", got)
	}
}

func frame(rawT, rawH uint16) [6]byte {
	var b [6]byte
	b[0], b[1] = byte(rawT>>8), byte(rawT)
	b[2] = crc8(b[0:2])
	b[3], b[4] = byte(rawH>>8), byte(rawH)
	b[5] = crc8(b[3:5])
	return b
}

func TestDecodeSHT3x(t *testing.T) {
	tests := []struct {
		name  string
		rawT  uint16
		rawH  uint16
		wantT float64
		wantH float64
	}{
		{"min", 0x0000, 0x0000, -45, 0},
		{"max", 0xFFFF, 0xFFFF, 130, 100},
		{"room", 0x6666, 0x8000, 25.0, 50.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := decodeSHT3x(frame(tt.rawT, tt.rawH))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if math.Abs(r.Temperature-tt.wantT) > 0.01 {
				t.Errorf("Temperature: got %.3f, want %.3f", r.Temperature, tt.wantT)
			}
			if math.Abs(r.Humidity-tt.wantH) > 0.01 {
				t.Errorf("Humidity: got %.3f, want %.3f", r.Humidity, tt.wantH)
			}
		})
	}
}

func TestDecodeSHT3xBadCRC(t *testing.T) {
	b := frame(0x6666, 0x8000)
	b[5] ^= 0xFF

	if _, err := decodeSHT3x(b); !errors.Is(err, errCRC) {
		t.Errorf("expected errCRC, got %v", err)
	}
}
