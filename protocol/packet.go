package protocol

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
	"github.com/skyezerfox/moss-ping/constants"
)

// PayloadWriter appends a packet payload to buf.
type PayloadWriter func(buf []byte) ([]byte, error)

// BuildPacket assembles an outbound frame: the packet ID and payload,
// prefixed with their combined length.
func BuildPacket(id int32, write PayloadWriter) ([]byte, error) {
	body := AppendVarInt(nil, id)
	if write != nil {
		var err error
		if body, err = write(body); err != nil {
			return nil, err
		}
	}

	frame := make([]byte, 0, VarIntSize(int32(len(body)))+len(body))
	frame = AppendVarInt(frame, int32(len(body)))
	return append(frame, body...), nil
}

// Handshake is the first serverbound packet of every connection.
type Handshake struct {
	ProtocolVersion int32
	ServerAddress   string
	ServerPort      uint16
	NextState       int32
}

// Marshal encodes the handshake as a complete frame.
func (h Handshake) Marshal() ([]byte, error) {
	return BuildPacket(constants.HandshakePacketID, func(buf []byte) ([]byte, error) {
		buf = AppendVarInt(buf, h.ProtocolVersion)
		buf, err := AppendString(buf, h.ServerAddress)
		if err != nil {
			return nil, err
		}
		buf = AppendUint16(buf, h.ServerPort)
		return AppendVarInt(buf, h.NextState), nil
	})
}

// ParseHandshake decodes a complete handshake frame, length prefix included.
func ParseHandshake(frame []byte) (Handshake, error) {
	var h Handshake
	body, err := splitFrame(frame)
	if err != nil {
		return h, err
	}

	var pos int
	id, err := ReadVarInt(body, &pos)
	if err != nil {
		return h, err
	}
	if id != constants.HandshakePacketID {
		return h, errors.Wrapf(ErrUnexpectedPacketID, "got 0x%02x, want handshake", id)
	}
	if h.ProtocolVersion, err = ReadVarInt(body, &pos); err != nil {
		return h, err
	}
	if h.ServerAddress, err = ReadString(body, &pos); err != nil {
		return h, err
	}
	if h.ServerPort, err = ReadUint16(body, &pos); err != nil {
		return h, err
	}
	if h.NextState, err = ReadVarInt(body, &pos); err != nil {
		return h, err
	}
	if pos != len(body) {
		return h, errors.Wrapf(ErrMalformedLength, "%d trailing bytes after handshake", len(body)-pos)
	}
	return h, nil
}

func splitFrame(frame []byte) ([]byte, error) {
	length, n, err := DecodeVarInt(frame)
	if err != nil {
		return nil, wrapFrame(ErrMalformedLength, err, "length prefix")
	}
	if int(length) != len(frame)-n {
		return nil, errors.Wrapf(ErrMalformedLength, "prefix says %d bytes, frame has %d", length, len(frame)-n)
	}
	return frame[n:], nil
}

// StatusRequest returns the empty-payload status request frame.
func StatusRequest() []byte {
	frame, _ := BuildPacket(constants.StatusRequestPacketID, nil)
	return frame
}

// ReadStatusResponse reads one status response frame from r and returns the
// JSON document it carries.
func ReadStatusResponse(r io.Reader) (string, error) {
	br, ok := r.(io.ByteReader)
	if !ok {
		b := bufio.NewReader(r)
		br, r = b, b
	}

	length, err := ReadVarIntFrom(br)
	if err != nil {
		if errors.Is(err, ErrVarIntTooLong) {
			return "", errors.Wrap(ErrMalformedLength, "length prefix does not terminate")
		}
		return "", wrapFrame(ErrTruncatedFrame, err, "reading length")
	}
	if length <= 0 || length > constants.MaxPacketLength {
		return "", errors.Wrapf(ErrMalformedLength, "packet length %d", length)
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		return "", wrapFrame(ErrTruncatedFrame, err, "want %d bytes", length)
	}

	var pos int
	id, err := ReadVarInt(body, &pos)
	if err != nil {
		return "", err
	}
	if id != constants.StatusResponsePacketID {
		return "", errors.Wrapf(ErrUnexpectedPacketID, "unexpected response code: %d", id)
	}
	return ReadString(body, &pos)
}
