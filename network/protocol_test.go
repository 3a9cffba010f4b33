package network

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestEncodeDecodePacket(t *testing.T) {
	data := []byte(`{"room_id":"abc"}`)
	packet, err := EncodePacket(MsgTypeWatch, data)
	if err != nil {
		t.Fatal(err)
	}
	if len(packet) != 4+len(data) {
		t.Errorf("Expected %d bytes, got %d", 4+len(data), len(packet))
	}

	p, err := DecodePacket(packet)
	if err != nil {
		t.Fatal(err)
	}
	if p.MsgID != MsgTypeWatch || int(p.Length) != len(data) || !bytes.Equal(p.Data, data) {
		t.Errorf("Unexpected packet %+v", p)
	}
}

func TestDecodePacket_Short(t *testing.T) {
	if _, err := DecodePacket([]byte{0, 1}); !errors.Is(err, io.ErrShortBuffer) {
		t.Errorf("Expected io.ErrShortBuffer, got %v", err)
	}
	if _, err := DecodePacket([]byte{0, 1, 0, 9, 'x'}); !errors.Is(err, io.ErrShortBuffer) {
		t.Errorf("Expected io.ErrShortBuffer for a truncated body, got %v", err)
	}
}

func TestEncodePacket_TooLarge(t *testing.T) {
	if _, err := EncodePacket(MsgTypeSnapshot, make([]byte, 70000)); !errors.Is(err, ErrPacketTooLarge) {
		t.Errorf("Expected ErrPacketTooLarge, got %v", err)
	}
}
