package protocol

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Tnze/go-mc/net/packet"
	"github.com/pkg/errors"
)

func TestUTF16Len(t *testing.T) {
	tests := []struct {
		s    string
		want int
	}{
		{"", 0},
		{"example.com", 11},
		{"héllo", 5},
		{"日本", 2},
		{"😀", 2},
		{"a😀b", 4},
	}
	for _, tt := range tests {
		if got := UTF16Len(tt.s); got != tt.want {
			t.Errorf("UTF16Len(%q) = %d, want %d", tt.s, got, tt.want)
		}
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, s := range []string{"", "mc.hypixel.net", "§aGreen §lbold", "日本語", "a😀b", strings.Repeat("x", 32767), strings.Repeat("😀", 16383)} {
		buf, err := AppendString(nil, s)
		if err != nil {
			t.Fatalf("AppendString(%d chars): %v", len(s), err)
		}
		got, n, err := DecodeString(buf)
		if err != nil {
			t.Fatalf("DecodeString: %v", err)
		}
		if got != s {
			t.Errorf("DecodeString(AppendString(%q)) = %q", s, got)
		}
		if n != len(buf) {
			t.Errorf("DecodeString consumed %d bytes, want %d", n, len(buf))
		}
	}
}

func TestAppendStringPrefixIsByteLength(t *testing.T) {
	tests := []string{"a😀", "bücher.de", "日本語"}
	for _, s := range tests {
		buf, err := AppendString(nil, s)
		if err != nil {
			t.Fatal(err)
		}
		length, n, err := DecodeVarInt(buf)
		if err != nil {
			t.Fatal(err)
		}
		if int(length) != len(s) {
			t.Errorf("length prefix of %q = %d, want %d bytes", s, length, len(s))
		}
		if !bytes.Equal(buf[n:], []byte(s)) {
			t.Errorf("payload of %q = %x, want raw utf-8", s, buf[n:])
		}
		if !bytes.Equal(buf, packet.String(s).Encode()) {
			t.Errorf("AppendString(%q) disagrees with go-mc", s)
		}
	}
}

func TestAppendStringLimitCountsUTF16(t *testing.T) {
	// 32767 three-byte runes are within the limit even though the
	// encoding is far longer than 32767 bytes
	s := strings.Repeat("日", 32767)
	buf, err := AppendString(nil, s)
	if err != nil {
		t.Fatalf("AppendString: %v", err)
	}
	got, _, err := DecodeString(buf)
	if err != nil || got != s {
		t.Errorf("DecodeString round trip failed: %v", err)
	}
}

func TestAppendStringTooLong(t *testing.T) {
	buf := []byte{0xAA}
	out, err := AppendString(buf, strings.Repeat("a", 32768))
	if !errors.Is(err, ErrStringTooLong) {
		t.Fatalf("error = %v, want ErrStringTooLong", err)
	}
	if !bytes.Equal(out, buf) {
		t.Errorf("buffer modified on error: %x", out)
	}

	// 16384 surrogate pairs are 32768 code units
	if _, err := AppendString(nil, strings.Repeat("😀", 16384)); !errors.Is(err, ErrStringTooLong) {
		t.Errorf("astral string error = %v, want ErrStringTooLong", err)
	}
}

func TestReadStringTruncated(t *testing.T) {
	buf := AppendVarInt(nil, 10)
	buf = append(buf, "short"...)
	pos := 0
	if _, err := ReadString(buf, &pos); !errors.Is(err, ErrUnexpectedEOF) {
		t.Errorf("error = %v, want ErrUnexpectedEOF", err)
	}
	if pos != 0 {
		t.Errorf("cursor moved to %d on error", pos)
	}
}

func TestReadStringInvalidUTF8(t *testing.T) {
	buf := append(AppendVarInt(nil, 2), 0xC3, 0x28)
	if _, _, err := DecodeString(buf); !errors.Is(err, ErrInvalidEncoding) {
		t.Errorf("error = %v, want ErrInvalidEncoding", err)
	}
}

func TestReadStringNegativeLength(t *testing.T) {
	buf := AppendVarInt(nil, -5)
	if _, _, err := DecodeString(buf); !errors.Is(err, ErrNegativeLength) {
		t.Errorf("error = %v, want ErrNegativeLength", err)
	}
}

func TestReadStringDecodesGoMC(t *testing.T) {
	want := `{"description":"A Minecraft Server"}`
	got, _, err := DecodeString(packet.String(want).Encode())
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("DecodeString = %q, want %q", got, want)
	}
}

func TestAppendUint16(t *testing.T) {
	buf := AppendUint16(nil, 25565)
	if !bytes.Equal(buf, []byte{0x63, 0xDD}) {
		t.Errorf("AppendUint16(25565) = %x, want 63dd", buf)
	}
	if !bytes.Equal(buf, packet.UnsignedShort(25565).Encode()) {
		t.Errorf("AppendUint16 disagrees with go-mc")
	}

	pos := 0
	v, err := ReadUint16(buf, &pos)
	if err != nil || v != 25565 || pos != 2 {
		t.Errorf("ReadUint16 = %d, pos %d, err %v", v, pos, err)
	}
	if _, err := ReadUint16(buf[:1], new(int)); !errors.Is(err, ErrUnexpectedEOF) {
		t.Errorf("short ReadUint16 error = %v, want ErrUnexpectedEOF", err)
	}
}
