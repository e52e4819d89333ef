package mqtt

import (
	"testing"
)

func pushN(rb *ringBuffer, from, to int) {
	for i := from; i < to; i++ {
		rb.push(bufferedMsg{topic: "t", payload: []byte{byte(i)}})
	}
}

func payloadBytes(msgs []bufferedMsg) []byte {
	out := make([]byte, len(msgs))
	for i, m := range msgs {
		out[i] = m.payload[0]
	}
	return out
}

func TestRingBufferEmptyDrain(t *testing.T) {
	rb := newRingBuffer(10)
	if got := rb.drainAll(); got != nil {
		t.Errorf("expected nil from empty drain, got %d items", len(got))
	}
}

func TestRingBufferOrder(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		pushed   int
		want     []byte
	}{
		{"partial", 10, 5, []byte{0, 1, 2, 3, 4}},
		{"exactly full", 4, 4, []byte{0, 1, 2, 3}},
		{"overflow keeps newest", 5, 8, []byte{3, 4, 5, 6, 7}},
		{"capacity floor", 0, 3, []byte{2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rb := newRingBuffer(tt.capacity)
			pushN(rb, 0, tt.pushed)

			got := payloadBytes(rb.drainAll())
			if string(got) != string(tt.want) {
				t.Errorf("drain: got %v, want %v", got, tt.want)
			}
			if rb.len() != 0 {
				t.Errorf("len after drain: got %d, want 0", rb.len())
			}
		})
	}
}

func TestRingBufferMultipleCycles(t *testing.T) {
	rb := newRingBuffer(5)

	pushN(rb, 0, 3)
	if got := rb.drainAll(); len(got) != 3 {
		t.Fatalf("cycle 1: expected 3 items, got %d", len(got))
	}

	pushN(rb, 10, 14)
	got := payloadBytes(rb.drainAll())
	if string(got) != string([]byte{10, 11, 12, 13}) {
		t.Errorf("cycle 2: got %v", got)
	}
}

func TestRingBufferOverflowFlagResets(t *testing.T) {
	rb := newRingBuffer(2)
	pushN(rb, 0, 3)
	if !rb.overflow {
		t.Error("expected overflow after pushing past capacity")
	}
	rb.drainAll()
	if rb.overflow {
		t.Error("overflow should reset on drain")
	}
}

func TestRingBufferPreservesFields(t *testing.T) {
	rb := newRingBuffer(10)
	rb.push(bufferedMsg{
		topic:    TopicSystem,
		payload:  []byte(`{"test":true}`),
		qos:      1,
		retained: true,
	})

	got := rb.drainAll()
	if len(got) != 1 {
		t.Fatalf("expected 1 item, got %d", len(got))
	}
	if got[0].topic != TopicSystem {
		t.Errorf("topic: got %s, want %s", got[0].topic, TopicSystem)
	}
	if string(got[0].payload) != `{"test":true}` {
		t.Errorf("payload: got %s", got[0].payload)
	}
	if got[0].qos != 1 || !got[0].retained {
		t.Errorf("qos/retained: got %d/%v", got[0].qos, got[0].retained)
	}
}
