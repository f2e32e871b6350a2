package constants

import "time"

const (
	DefaultServer   = "2b2t.org"
	DefaultPort     = 25565
	DefaultProtocol = 770 // 1.21.5

	ConnectTimeout = 5 * time.Second

	SRVService = "minecraft"
	SRVProto   = "tcp"
)

// Handshake next-state values.
const (
	NextStateStatus = 1
	NextStateLogin  = 2
)

// Packet IDs used by the status flow. Serverbound and clientbound IDs
// share the 0x00 slot in the handshaking and status states.
const (
	HandshakePacketID      = 0x00
	StatusRequestPacketID  = 0x00
	StatusResponsePacketID = 0x00
)

const (
	MaxVarIntLen  = 5
	MaxVarLongLen = 10

	MaxStringLength = 32767   // UTF-16 code units
	MaxPacketLength = 2097151 // largest value a 3-byte VarInt can hold
)
