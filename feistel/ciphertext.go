package feistel

import (
	"fmt"
	"strconv"
	"strings"

	"FeistelCipher/bitvec"
	"FeistelCipher/codec"
)

// Ciphertext 有序的密文區塊，Padding 記錄最後一塊左側補零的位元數
type Ciphertext struct {
	Blocks  []Block
	Padding int
}

// Bits 返回所有密文區塊串接後的位元
func (c Ciphertext) Bits() bitvec.Vector {
	out := make(bitvec.Vector, 0, len(c.Blocks)*BlockSize)
	for _, b := range c.Blocks {
		out = append(out, b[:]...)
	}
	return out
}

// String 每塊 16 位十六進位，有補零時附加 "#<padding>"
func (c Ciphertext) String() string {
	var sb strings.Builder
	for _, b := range c.Blocks {
		sb.WriteString(b.Hex())
	}
	if c.Padding > 0 {
		sb.WriteString("#" + strconv.Itoa(c.Padding))
	}
	return sb.String()
}

// Text 以字元形式顯示密文，無法顯示的位元組以 'N/A' 表示
func (c Ciphertext) Text() string {
	return codec.ToText(c.Bits())
}

// ParseCiphertext 解析 String 的輸出
func ParseCiphertext(s string) (Ciphertext, error) {
	var ct Ciphertext
	s = strings.TrimSpace(s)

	hexPart, padPart, hasPad := strings.Cut(s, "#")
	if hasPad {
		n, err := strconv.Atoi(padPart)
		if err != nil {
			return ct, fmt.Errorf("%w: padding %q", ErrMalformed, padPart)
		}
		if n < 0 || n >= BlockSize {
			return ct, fmt.Errorf("%w: padding %d out of range", ErrInvalidLength, n)
		}
		ct.Padding = n
	}

	const digits = BlockSize / 4
	if len(hexPart)%digits != 0 {
		return ct, fmt.Errorf("%w: %d hex digits is not a multiple of %d", ErrInvalidLength, len(hexPart), digits)
	}
	for i := 0; i < len(hexPart); i += digits {
		n, err := strconv.ParseUint(hexPart[i:i+digits], 16, 64)
		if err != nil {
			return ct, fmt.Errorf("%w: block %d: %v", ErrMalformed, i/digits, err)
		}
		var b Block
		copy(b[:], bitvec.FromUint(n, BlockSize))
		ct.Blocks = append(ct.Blocks, b)
	}
	if ct.Padding > 0 && len(ct.Blocks) == 0 {
		return ct, fmt.Errorf("%w: padding without blocks", ErrInvalidLength)
	}
	return ct, nil
}
