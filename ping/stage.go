package ping

// Stage is a step of the ping exchange.
type Stage int

const (
	ResolvingHost Stage = iota
	Connecting
	SendingHandshake
	SendingStatusRequest
	ReadingResponse
	ParsingJSON
	Done
)

var stageNames = [...]string{
	ResolvingHost:        "resolving host",
	Connecting:           "connecting",
	SendingHandshake:     "sending handshake",
	SendingStatusRequest: "sending status request",
	ReadingResponse:      "reading response",
	ParsingJSON:          "parsing JSON",
	Done:                 "done",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return "unknown stage"
	}
	return stageNames[s]
}
