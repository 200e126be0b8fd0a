package sctp

import (
	"encoding/binary"

	"github.com/opd-ai/sctplink/limits"
)

// PutStreamID writes stream into the first two bytes of buf in big-endian
// order. buf must be at least limits.StreamIDSize long.
func PutStreamID(buf []byte, stream uint16) {
	binary.BigEndian.PutUint16(buf[:limits.StreamIDSize], stream)
}

// StreamID decodes the big-endian stream identifier prefix of buf.
func StreamID(buf []byte) uint16 {
	return binary.BigEndian.Uint16(buf[:limits.StreamIDSize])
}

// AppendFrame appends a framed message (stream-id prefix then payload) to dst.
func AppendFrame(dst []byte, stream uint16, payload []byte) []byte {
	dst = binary.BigEndian.AppendUint16(dst, stream)
	return append(dst, payload...)
}

// SplitFrame separates a framed buffer into its stream id and payload.
// The payload aliases buf.
func SplitFrame(buf []byte) (uint16, []byte, error) {
	if err := limits.ValidateFramedBuffer(buf); err != nil {
		return 0, nil, newError("frame", "", ErrInvalidArgument, err)
	}
	return StreamID(buf), buf[limits.StreamIDSize:], nil
}
