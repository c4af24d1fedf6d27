package feistel

import (
	"fmt"

	"FeistelCipher/bitvec"
)

// Segment 將任意長度位元切成 64 位元區塊
// 最後不足一塊時在左側補零，padding 為補上的零的個數
func Segment(bits bitvec.Vector) (blocks []Block, padding int) {
	full := len(bits) / BlockSize
	blocks = make([]Block, 0, full+1)
	for i := 0; i < full; i++ {
		var b Block
		copy(b[:], bits[i*BlockSize:(i+1)*BlockSize])
		blocks = append(blocks, b)
	}

	rest := bits[full*BlockSize:]
	if len(rest) > 0 {
		padding = BlockSize - len(rest)
		var b Block
		copy(b[padding:], rest)
		blocks = append(blocks, b)
	}
	return blocks, padding
}

// Join 串接區塊並去掉最後一塊左側的 padding 個補零位元
func Join(blocks []Block, padding int) (bitvec.Vector, error) {
	if padding < 0 || padding >= BlockSize {
		return nil, fmt.Errorf("%w: padding %d out of range", ErrInvalidLength, padding)
	}
	if padding > 0 && len(blocks) == 0 {
		return nil, fmt.Errorf("%w: padding %d without blocks", ErrInvalidLength, padding)
	}

	out := make(bitvec.Vector, 0, len(blocks)*BlockSize-padding)
	for i, b := range blocks {
		if i < len(blocks)-1 {
			out = append(out, b[:]...)
			continue
		}
		if first := bitvec.Vector(b[:padding]).FirstSet(); first >= 0 {
			return nil, fmt.Errorf("%w: bit %d of final block is set", ErrCorruptPadding, first)
		}
		out = append(out, b[padding:]...)
	}
	return out, nil
}
