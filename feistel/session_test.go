package feistel

import (
	"bytes"
	"errors"
	"log"
	"math/rand"
	"strings"
	"testing"

	"FeistelCipher/bitvec"
	"FeistelCipher/codec"
)

const (
	demoKey     = "abcdefgh"
	demoMessage = "this assignment was really hard"
)

func randomBits(rng *rand.Rand, n int) bitvec.Vector {
	v := bitvec.New(n)
	for i := range v {
		v[i] = byte(rng.Intn(2))
	}
	return v
}

func TestSegmentExactMultiple(t *testing.T) {
	for _, n := range []int{1, 2, 4} {
		blocks, padding := Segment(bitvec.New(n * BlockSize))
		if len(blocks) != n || padding != 0 {
			t.Errorf("%d blocks: got %d blocks, padding %d", n, len(blocks), padding)
		}
	}
	if blocks, padding := Segment(nil); len(blocks) != 0 || padding != 0 {
		t.Errorf("empty input: %d blocks, padding %d", len(blocks), padding)
	}
}

func TestSegmentPadsOnTheLeft(t *testing.T) {
	bits := bitvec.Concat(bitvec.New(BlockSize), bitvec.MustParse("1011"))
	blocks, padding := Segment(bits)
	if len(blocks) != 2 || padding != 60 {
		t.Fatalf("got %d blocks, padding %d", len(blocks), padding)
	}
	last := blocks[1].String()
	if last != strings.Repeat("0", 60)+"1011" {
		t.Errorf("last block = %s", last)
	}
}

func TestJoinInvertsSegment(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for _, n := range []int{0, 1, 7, 63, 64, 65, 127, 128, 200} {
		bits := randomBits(rng, n)
		blocks, padding := Segment(bits)
		got, err := Join(blocks, padding)
		if err != nil {
			t.Fatalf("n=%d: Join failed: %v", n, err)
		}
		if !got.Equal(bits) {
			t.Errorf("n=%d: Join(Segment) mismatch", n)
		}
	}
}

func TestJoinKeepsLeadingZerosOfMessage(t *testing.T) {
	bits := bitvec.MustParse("0001")
	blocks, padding := Segment(bits)
	got, err := Join(blocks, padding)
	if err != nil {
		t.Fatalf("Join failed: %v", err)
	}
	if got.String() != "0001" {
		t.Errorf("Join = %s, want 0001", got)
	}
}

func TestJoinErrors(t *testing.T) {
	var b Block
	b[0] = 1
	tests := []struct {
		name    string
		blocks  []Block
		padding int
		want    error
	}{
		{"negative padding", []Block{{}}, -1, ErrInvalidLength},
		{"padding too large", []Block{{}}, BlockSize, ErrInvalidLength},
		{"padding without blocks", nil, 8, ErrInvalidLength},
		{"set bit in padding", []Block{b}, 8, ErrCorruptPadding},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Join(tt.blocks, tt.padding); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSessionRoundTripAllLengths(t *testing.T) {
	s, err := NewTextSession(demoKey)
	if err != nil {
		t.Fatalf("NewTextSession failed: %v", err)
	}
	rng := rand.New(rand.NewSource(5))
	for _, n := range []int{0, 1, 8, 63, 64, 100, 128, 256, 333} {
		plain := randomBits(rng, n)
		ct := s.Encrypt(plain)
		got, err := s.Decrypt(ct)
		if err != nil {
			t.Fatalf("n=%d: Decrypt failed: %v", n, err)
		}
		if !got.Equal(plain) {
			t.Errorf("n=%d: round trip mismatch", n)
		}
	}
}

func TestDemoScenario(t *testing.T) {
	s, err := NewTextSession(demoKey)
	if err != nil {
		t.Fatalf("NewTextSession failed: %v", err)
	}

	// 31 個字元 = 248 位元，最後一塊補 8 個零
	ct := s.EncryptText(demoMessage)
	if len(ct.Blocks) != 4 || ct.Padding != 8 {
		t.Fatalf("got %d blocks, padding %d", len(ct.Blocks), ct.Padding)
	}

	again := s.EncryptText(demoMessage)
	if again.String() != ct.String() {
		t.Error("encryption is not deterministic")
	}

	other, _ := NewTextSession(demoKey)
	if other.EncryptText(demoMessage).String() != ct.String() {
		t.Error("a fresh session with the same key produced different ciphertext")
	}

	got, err := s.DecryptText(ct)
	if err != nil {
		t.Fatalf("DecryptText failed: %v", err)
	}
	if got != demoMessage {
		t.Errorf("DecryptText = %q, want %q", got, demoMessage)
	}
}

func TestExactBlockMessageHasNoPadding(t *testing.T) {
	s, err := NewTextSession(demoKey)
	if err != nil {
		t.Fatalf("NewTextSession failed: %v", err)
	}
	msg := demoMessage + "!"
	ct := s.EncryptText(msg)
	if len(ct.Blocks) != 4 || ct.Padding != 0 {
		t.Fatalf("got %d blocks, padding %d", len(ct.Blocks), ct.Padding)
	}
	if strings.Contains(ct.String(), "#") {
		t.Errorf("unexpected padding suffix in %s", ct)
	}
	got, err := s.DecryptText(ct)
	if err != nil || got != msg {
		t.Errorf("DecryptText = %q, %v", got, err)
	}
}

func TestWrongKeyDoesNotDecrypt(t *testing.T) {
	a, _ := NewTextSession(demoKey)
	b, _ := NewTextSession("hgfedcba")
	ct := a.EncryptText(demoMessage + "!")
	got, err := b.DecryptText(ct)
	if err == nil && got == demoMessage+"!" {
		t.Error("different key recovered the plaintext")
	}
}

func TestWorkersPreserveOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	plain := randomBits(rng, 64*37+5)

	seq, err := NewTextSession(demoKey)
	if err != nil {
		t.Fatalf("NewTextSession failed: %v", err)
	}
	par, err := NewTextSession(demoKey, WithWorkers(4))
	if err != nil {
		t.Fatalf("NewTextSession failed: %v", err)
	}

	want := seq.Encrypt(plain)
	got := par.Encrypt(plain)
	if got.String() != want.String() {
		t.Fatal("parallel ciphertext differs from sequential")
	}

	dec, err := par.Decrypt(got)
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if !dec.Equal(plain) {
		t.Error("parallel round trip mismatch")
	}
}

func TestSessionRejectsBadKey(t *testing.T) {
	if _, err := NewSession(bitvec.New(56)); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("56-bit key: %v", err)
	}
	if _, err := NewTextSession("short"); !errors.Is(err, codec.ErrKeyLength) {
		t.Errorf("short text key: %v", err)
	}
}

func TestSessionLogsWithID(t *testing.T) {
	var buf bytes.Buffer
	s, err := NewTextSession(demoKey, WithLogger(log.New(&buf, "", 0)))
	if err != nil {
		t.Fatalf("NewTextSession failed: %v", err)
	}
	s.EncryptText("hi")
	out := buf.String()
	if !strings.Contains(out, s.ID()) || !strings.Contains(out, "FEISTEL:") {
		t.Errorf("log output missing session id: %q", out)
	}
}

func TestCiphertextStringRoundTrip(t *testing.T) {
	s, _ := NewTextSession(demoKey)
	ct := s.EncryptText(demoMessage)

	str := ct.String()
	if !strings.HasSuffix(str, "#8") || len(str) != 4*16+2 {
		t.Fatalf("String() = %s", str)
	}
	parsed, err := ParseCiphertext(str)
	if err != nil {
		t.Fatalf("ParseCiphertext failed: %v", err)
	}
	if parsed.Padding != ct.Padding || len(parsed.Blocks) != len(ct.Blocks) {
		t.Fatalf("parsed %d blocks, padding %d", len(parsed.Blocks), parsed.Padding)
	}
	for i := range ct.Blocks {
		if parsed.Blocks[i] != ct.Blocks[i] {
			t.Errorf("block %d differs", i)
		}
	}
	if got, err := s.DecryptText(parsed); err != nil || got != demoMessage {
		t.Errorf("DecryptText(parsed) = %q, %v", got, err)
	}
}

func TestParseCiphertextErrors(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{"0123", ErrInvalidLength},
		{"0123456789ABCDEZ", ErrMalformed},
		{"0123456789ABCDEF#x", ErrMalformed},
		{"0123456789ABCDEF#64", ErrInvalidLength},
		{"#4", ErrInvalidLength},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if _, err := ParseCiphertext(tt.in); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCiphertextText(t *testing.T) {
	ct := Ciphertext{Blocks: []Block{{}}}
	if got := ct.Text(); got != strings.Repeat(codec.NotAvailable, 8) {
		t.Errorf("Text() = %q", got)
	}
}
