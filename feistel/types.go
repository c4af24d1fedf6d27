package feistel

import (
	"errors"
	"fmt"

	"FeistelCipher/bitvec"
)

const (
	// BlockSize 區塊位元數
	BlockSize = 64
	// HalfSize 半區塊位元數
	HalfSize = BlockSize / 2
	// KeySize 原始金鑰位元數
	KeySize = 64
	// RoundKeySize 子金鑰位元數
	RoundKeySize = 48
	// Rounds Feistel 輪數
	Rounds = 16
)

var (
	ErrInvalidLength  = errors.New("feistel: invalid length")
	ErrCorruptPadding = errors.New("feistel: corrupt padding")
	ErrMalformed      = errors.New("feistel: malformed ciphertext")
)

// Half 32 位元半區塊
type Half [HalfSize]byte

// Block 64 位元區塊
type Block [BlockSize]byte

// RoundKey 48 位元子金鑰
type RoundKey [RoundKeySize]byte

func lengthError(what string, want, got int) error {
	return fmt.Errorf("%w: %s must be %d bits, got %d", ErrInvalidLength, what, want, got)
}

// BlockFromVector 將恰好 64 位元的位元陣列轉成 Block
func BlockFromVector(v bitvec.Vector) (Block, error) {
	var b Block
	if len(v) != BlockSize {
		return b, lengthError("block", BlockSize, len(v))
	}
	copy(b[:], v)
	return b, nil
}

// HalfFromVector 將恰好 32 位元的位元陣列轉成 Half
func HalfFromVector(v bitvec.Vector) (Half, error) {
	var h Half
	if len(v) != HalfSize {
		return h, lengthError("half-block", HalfSize, len(v))
	}
	copy(h[:], v)
	return h, nil
}

// RoundKeyFromVector 將恰好 48 位元的位元陣列轉成 RoundKey
func RoundKeyFromVector(v bitvec.Vector) (RoundKey, error) {
	var k RoundKey
	if len(v) != RoundKeySize {
		return k, lengthError("round key", RoundKeySize, len(v))
	}
	copy(k[:], v)
	return k, nil
}

func (b Block) Vector() bitvec.Vector    { return bitvec.Vector(b[:]).Clone() }
func (h Half) Vector() bitvec.Vector     { return bitvec.Vector(h[:]).Clone() }
func (k RoundKey) Vector() bitvec.Vector { return bitvec.Vector(k[:]).Clone() }

func (b Block) String() string    { return bitvec.Vector(b[:]).String() }
func (h Half) String() string     { return bitvec.Vector(h[:]).String() }
func (k RoundKey) String() string { return bitvec.Vector(k[:]).String() }

// Hex 以 16 位大寫十六進位輸出區塊
func (b Block) Hex() string {
	return fmt.Sprintf("%016X", bitvec.Vector(b[:]).Uint())
}

// split 拆成左右半區塊
func (b Block) split() (l, r Half) {
	copy(l[:], b[:HalfSize])
	copy(r[:], b[HalfSize:])
	return
}

// joinHalves 串接 l||r
func joinHalves(l, r Half) Block {
	var b Block
	copy(b[:HalfSize], l[:])
	copy(b[HalfSize:], r[:])
	return b
}

func xorHalf(a, b Half) Half {
	var out Half
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out
}
