package encoding

import (
	"bytes"
	"errors"
	"testing"
)

func TestFixed32RoundTrip(t *testing.T) {
	for _, v := range []uint32{0, 1, 255, 256, 1 << 31, 0xFFFFFFFF} {
		buf := make([]byte, 4)
		EncodeFixed32(buf, v)
		if got := DecodeFixed32(buf); got != v {
			t.Fatalf("DecodeFixed32(EncodeFixed32(%d)) = %d", v, got)
		}
	}
}

func TestFixed64RoundTrip(t *testing.T) {
	for _, v := range []uint64{0, 1, 1 << 63, 0xFFFFFFFFFFFFFFFF} {
		buf := make([]byte, 8)
		EncodeFixed64(buf, v)
		if got := DecodeFixed64(buf); got != v {
			t.Fatalf("DecodeFixed64(EncodeFixed64(%d)) = %d", v, got)
		}
	}
}

func TestFixed32IsLittleEndian(t *testing.T) {
	buf := make([]byte, 4)
	EncodeFixed32(buf, 0x01020304)
	want := []byte{0x04, 0x03, 0x02, 0x01}
	if !bytes.Equal(buf, want) {
		t.Fatalf("EncodeFixed32 = %x, want %x", buf, want)
	}
}

func TestVarint32RoundTrip(t *testing.T) {
	values := []uint32{0, 1, 127, 128, 300, 16383, 16384, 0xFFFFFFFF}
	for _, v := range values {
		dst := AppendVarint32(nil, v)
		got, n, err := DecodeVarint32(dst)
		if err != nil {
			t.Fatalf("DecodeVarint32(%d): %v", v, err)
		}
		if got != v || n != len(dst) {
			t.Fatalf("DecodeVarint32(%d) = (%d, %d), want (%d, %d)", v, got, n, v, len(dst))
		}
	}
}

func TestVarint32Truncated(t *testing.T) {
	full := AppendVarint32(nil, 1<<20)
	_, _, err := DecodeVarint32(full[:len(full)-1])
	if !errors.Is(err, ErrBadLength) {
		t.Fatalf("DecodeVarint32(truncated) = %v, want ErrBadLength", err)
	}
}

func TestVarint32Overlong(t *testing.T) {
	// Five continuation bytes with no terminator: shift reaches 35 >= 32.
	overlong := []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01}
	_, _, err := DecodeVarint32(overlong)
	if !errors.Is(err, ErrBadLength) {
		t.Fatalf("DecodeVarint32(overlong) = %v, want ErrBadLength", err)
	}
}

func TestVarintLength32(t *testing.T) {
	for _, v := range []uint32{0, 1, 127, 128, 16383, 16384, 0xFFFFFFFF} {
		want := len(AppendVarint32(nil, v))
		if got := VarintLength32(v); got != want {
			t.Fatalf("VarintLength32(%d) = %d, want %d", v, got, want)
		}
	}
}

func TestCRC32IEEEKnownValue(t *testing.T) {
	// "123456789" has a well-known CRC-32/ISO-HDLC checksum.
	const want = 0xCBF43926
	if got := CRC32IEEE([]byte("123456789")); got != want {
		t.Fatalf("CRC32IEEE = %#x, want %#x", got, want)
	}
}

func TestCRC32IEEESensitiveToSingleBitFlip(t *testing.T) {
	data := []byte("the quick brown fox")
	base := CRC32IEEE(data)
	flipped := append([]byte{}, data...)
	flipped[3] ^= 0x01
	if CRC32IEEE(flipped) == base {
		t.Fatalf("CRC32IEEE did not change after single-bit flip")
	}
}
