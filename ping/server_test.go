package ping

import (
	"net"
	"testing"

	mcnet "github.com/Tnze/go-mc/net"
	"github.com/Tnze/go-mc/net/packet"
)

// handshake is what the fake server saw in the client's first packet.
type handshake struct {
	version int32
	address string
	port    uint16
	state   int32
}

// statusServer is a minimal server that answers one status request per
// connection with whatever respond writes.
type statusServer struct {
	t          *testing.T
	listener   *mcnet.Listener
	respond    func(conn *mcnet.Conn)
	handshakes chan handshake
}

func startStatusServer(t *testing.T, respond func(conn *mcnet.Conn)) *statusServer {
	t.Helper()
	l, err := mcnet.ListenMC("127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	s := &statusServer{
		t:          t,
		listener:   l,
		respond:    respond,
		handshakes: make(chan handshake, 16),
	}
	t.Cleanup(func() { l.Close() })

	go func() {
		for {
			conn, err := l.Accept()
			if err != nil {
				return
			}
			go s.handle(&conn)
		}
	}()
	return s
}

func (s *statusServer) port() uint16 {
	return uint16(s.listener.Addr().(*net.TCPAddr).Port)
}

func (s *statusServer) handle(conn *mcnet.Conn) {
	defer conn.Close()

	input, err := conn.ReadPacket()
	if err != nil {
		s.t.Errorf("read handshake: %v", err)
		return
	}
	var (
		version packet.VarInt
		address packet.String
		port    packet.UnsignedShort
		state   packet.VarInt
	)
	if input.ID != 0x00 {
		s.t.Errorf("handshake packet id = %#x", input.ID)
		return
	}
	if err := input.Scan(&version, &address, &port, &state); err != nil {
		s.t.Errorf("scan handshake: %v", err)
		return
	}
	s.handshakes <- handshake{int32(version), string(address), uint16(port), int32(state)}

	input, err = conn.ReadPacket()
	if err != nil {
		s.t.Errorf("read status request: %v", err)
		return
	}
	if input.ID != 0x00 || len(input.Data) != 0 {
		s.t.Errorf("status request = id %#x, %d data bytes", input.ID, len(input.Data))
		return
	}
	s.respond(conn)
}

func respondWith(id int32, doc string) func(conn *mcnet.Conn) {
	return func(conn *mcnet.Conn) {
		_ = conn.WritePacket(packet.Marshal(id, packet.String(doc)))
	}
}
