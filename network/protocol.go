package network

import (
	"encoding/binary"
	"errors"
	"io"
)

// 消息类型
const (
	MsgTypeHeartbeat = 1
	MsgTypeWatch     = 101 // {"room_id": ...}
	MsgTypeUnwatch   = 102
	MsgTypeRoomList  = 103
	MsgTypeSnapshot  = 301
	MsgTypeGameOver  = 305
	MsgTypeError     = 500
)

const headerSize = 4

var ErrPacketTooLarge = errors.New("packet payload exceeds 65535 bytes")

// EncodePacket 封包: 2字节消息ID + 2字节数据长度 + 数据
func EncodePacket(msgID uint16, data []byte) ([]byte, error) {
	if len(data) > 0xFFFF {
		return nil, ErrPacketTooLarge
	}
	packet := make([]byte, headerSize+len(data))
	binary.BigEndian.PutUint16(packet[0:2], msgID)
	binary.BigEndian.PutUint16(packet[2:4], uint16(len(data)))
	copy(packet[headerSize:], data)
	return packet, nil
}

// DecodePacket 解包，数据长度不足时返回 io.ErrShortBuffer
func DecodePacket(data []byte) (*Packet, error) {
	if len(data) < headerSize {
		return nil, io.ErrShortBuffer
	}
	msgID := binary.BigEndian.Uint16(data[0:2])
	length := binary.BigEndian.Uint16(data[2:4])
	if len(data) < headerSize+int(length) {
		return nil, io.ErrShortBuffer
	}
	return &Packet{
		MsgID:  msgID,
		Length: length,
		Data:   data[headerSize : headerSize+int(length)],
	}, nil
}
