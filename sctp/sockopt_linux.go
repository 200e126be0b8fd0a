//go:build linux

package sctp

import (
	"encoding/binary"
	"errors"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Linux SCTP socket options and ancillary message types not exported by
// golang.org/x/sys/unix.
const (
	sctpInitMsgOpt     = 2   // SCTP_INITMSG
	sctpRecvRcvInfoOpt = 32  // SCTP_RECVRCVINFO
	sctpEventOpt       = 127 // SCTP_EVENT

	cmsgSndRcv  = 1 // SCTP_SNDRCV, struct sctp_sndrcvinfo
	cmsgSndInfo = 2 // SCTP_SNDINFO, struct sctp_sndinfo
	cmsgRcvInfo = 3 // SCTP_RCVINFO, struct sctp_rcvinfo

	msgNotification = 0x8000 // MSG_NOTIFICATION
)

// sctp_sn_type values accepted by SCTP_EVENT.
const (
	eventDataIO          = 0x8000
	eventAssocChange     = 0x8001
	eventPeerAddrChange  = 0x8002
	eventSendFailed      = 0x8003
	eventRemoteError     = 0x8004
	eventShutdown        = 0x8005
	eventPartialDelivery = 0x8006
	eventAdaptation      = 0x8007
)

// Wire sizes of the kernel structures.
const (
	sizeofInitMsg    = 8  // struct sctp_initmsg: 4 x u16
	sizeofEvent      = 8  // struct sctp_event: s32 assoc, u16 type, u8 on, pad
	sizeofSndInfo    = 16 // struct sctp_sndinfo
	sizeofRcvInfo    = 28 // struct sctp_rcvinfo
	sizeofSndRcvInfo = 32 // struct sctp_sndrcvinfo
)

var lifecycleEvents = []uint16{
	eventAssocChange,
	eventPeerAddrChange,
	eventSendFailed,
	eventRemoteError,
	eventShutdown,
	eventPartialDelivery,
	eventAdaptation,
}

// setsockoptBytes sets a raw structure option. SetsockoptString passes the
// bytes through unchanged.
func setsockoptBytes(fd, opt int, value []byte) error {
	return unix.SetsockoptString(fd, unix.IPPROTO_SCTP, opt, string(value))
}

// setInitMsg configures the number of inbound and outbound streams the
// next association negotiates.
func setInitMsg(fd, streams int) error {
	b := make([]byte, sizeofInitMsg)
	binary.NativeEndian.PutUint16(b[0:], uint16(streams)) // sinit_num_ostreams
	binary.NativeEndian.PutUint16(b[2:], uint16(streams)) // sinit_max_instreams
	return setsockoptBytes(fd, sctpInitMsgOpt, b)
}

// subscribeEvent toggles one notification type on the association.
func subscribeEvent(fd int, eventType uint16, on bool) error {
	b := make([]byte, sizeofEvent)
	binary.NativeEndian.PutUint16(b[4:], eventType)
	if on {
		b[6] = 1
	}
	return setsockoptBytes(fd, sctpEventOpt, b)
}

// enableRcvInfo asks the kernel to attach SCTP_RCVINFO to every message.
func enableRcvInfo(fd int) error {
	return unix.SetsockoptInt(fd, unix.IPPROTO_SCTP, sctpRecvRcvInfoOpt, 1)
}

// sndInfoSpace is the control buffer size of one SCTP_SNDINFO message.
var sndInfoSpace = unix.CmsgSpace(sizeofSndInfo)

// rcvControlSpace fits the largest receive-side ancillary message we parse.
var rcvControlSpace = unix.CmsgSpace(sizeofSndRcvInfo) + unix.CmsgSpace(sizeofRcvInfo)

// marshalSndInfo builds the SCTP_SNDINFO control message selecting stream.
func marshalSndInfo(stream uint16) []byte {
	b := make([]byte, sndInfoSpace)
	h := (*unix.Cmsghdr)(unsafe.Pointer(&b[0]))
	h.Level = unix.IPPROTO_SCTP
	h.Type = cmsgSndInfo
	h.SetLen(unix.CmsgLen(sizeofSndInfo))
	binary.NativeEndian.PutUint16(b[unix.CmsgLen(0):], stream) // snd_sid
	return b
}

var errShortRcvInfo = errors.New("short SCTP receive info control message")

// parseStreamID extracts the stream id from SCTP_RCVINFO or SCTP_SNDRCV
// ancillary data. Both structures start with the 16-bit stream number.
// ok is false when neither message is present.
func parseStreamID(oob []byte) (stream uint16, ok bool, err error) {
	if len(oob) == 0 {
		return 0, false, nil
	}
	msgs, err := unix.ParseSocketControlMessage(oob)
	if err != nil {
		return 0, false, err
	}
	for _, m := range msgs {
		if m.Header.Level != unix.IPPROTO_SCTP {
			continue
		}
		if m.Header.Type != cmsgRcvInfo && m.Header.Type != cmsgSndRcv {
			continue
		}
		if len(m.Data) < 2 {
			return 0, false, errShortRcvInfo
		}
		return binary.NativeEndian.Uint16(m.Data[:2]), true, nil
	}
	return 0, false, nil
}
