package models

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/Tnze/go-mc/chat"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

const faviconPrefix = "data:image/png;base64,"

// ErrMissingField is returned when a status document lacks a required field.
var ErrMissingField = errors.New("status response is missing a required field")

type (
	// ServerStatus is the document a server returns to a status request.
	// Description is derived from RawDescription and never serialised.
	ServerStatus struct {
		Version        Version         `json:"version"`
		Players        Players         `json:"players"`
		RawDescription json.RawMessage `json:"description"`
		Description    string          `json:"-"`
		Favicon        string          `json:"favicon,omitempty"`
	}

	Version struct {
		Name     string `json:"name"`
		Protocol int32  `json:"protocol"`
	}

	Players struct {
		Max    uint32         `json:"max"`
		Online uint32         `json:"online"`
		Sample []PlayerSample `json:"sample,omitempty"`
	}

	PlayerSample struct {
		Name string `json:"name"`
		ID   string `json:"id"`
	}
)

// ParseStatus decodes a status document and derives its plain-text description.
func ParseStatus(payload []byte) (*ServerStatus, error) {
	var doc struct {
		Version     *Version        `json:"version"`
		Players     *Players        `json:"players"`
		Description json.RawMessage `json:"description"`
		Favicon     string          `json:"favicon"`
	}
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, errors.Wrap(err, "decode status")
	}

	switch {
	case doc.Version == nil:
		return nil, errors.Wrap(ErrMissingField, "version")
	case doc.Players == nil:
		return nil, errors.Wrap(ErrMissingField, "players")
	case doc.Description == nil:
		return nil, errors.Wrap(ErrMissingField, "description")
	}

	return &ServerStatus{
		Version:        *doc.Version,
		Players:        *doc.Players,
		RawDescription: doc.Description,
		Description:    Flatten(doc.Description),
		Favicon:        doc.Favicon,
	}, nil
}

// ANSIDescription renders the description with ANSI colour escapes.
// Descriptions go-mc cannot decode fall back to the plain text.
func (s *ServerStatus) ANSIDescription() string {
	raw := s.RawDescription
	if trimmed := strings.TrimSpace(string(raw)); strings.HasPrefix(trimmed, "[") {
		// chat.Message does not accept a bare array
		raw = json.RawMessage(`{"text":"","extra":` + trimmed + `}`)
	}

	var msg chat.Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		return s.Description
	}
	return msg.String()
}

// FaviconPNG decodes the favicon data URI. It returns nil when the server
// did not send one.
func (s *ServerStatus) FaviconPNG() ([]byte, error) {
	if s.Favicon == "" {
		return nil, nil
	}
	img, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(s.Favicon, faviconPrefix))
	if err != nil {
		return nil, errors.Wrap(err, "decode favicon")
	}
	return img, nil
}

// SampleNames returns the names from the player sample in server order.
func (s *ServerStatus) SampleNames() []string {
	return lo.Map(s.Players.Sample, func(p PlayerSample, _ int) string {
		return p.Name
	})
}

// MarshalIndent dumps the status the way it was received.
func (s *ServerStatus) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// UUID parses the sample's id.
func (p PlayerSample) UUID() (uuid.UUID, error) {
	return uuid.Parse(p.ID)
}
