package codec

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"FeistelCipher/bitvec"
)

// NotAvailable 無法顯示為文字的位元組以此標記取代
const NotAvailable = "'N/A'"

// KeyChars 文字金鑰的字元數 (8 x 8 = 64 位元)
const KeyChars = 8

var (
	ErrKeyLength = errors.New("codec: key must be 8 characters or 64 binary digits")
	ErrNotBinary = bitvec.ErrNotBinary
)

// FromText 每個位元組轉為 8 位元，高位在前
func FromText(s string) bitvec.Vector {
	return FromBytes([]byte(s))
}

// FromBytes 同 FromText，輸入為位元組
func FromBytes(data []byte) bitvec.Vector {
	out := make(bitvec.Vector, 0, len(data)*8)
	for _, c := range data {
		for j := 7; j >= 0; j-- {
			out = append(out, c>>j&1)
		}
	}
	return out
}

// FromBinary 將 0/1 字串直接轉為位元
func FromBinary(s string) (bitvec.Vector, error) {
	return bitvec.Parse(s)
}

// IsBinary 判斷字串是否只由 0 與 1 組成
func IsBinary(s string) bool {
	if s == "" {
		return false
	}
	return strings.Trim(s, "01") == ""
}

// ToBytes 每 8 位元組成一個位元組，尾端不足 8 位元的部分忽略
func ToBytes(v bitvec.Vector) []byte {
	out := make([]byte, len(v)/8)
	for i := range out {
		out[i] = byte(v[i*8 : i*8+8].Uint())
	}
	return out
}

// ToText 將位元轉回文字
// 非合法 UTF-8 或不可列印的位元組以 NotAvailable 取代，不會返回錯誤
func ToText(v bitvec.Vector) string {
	data := ToBytes(v)
	var sb strings.Builder
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if (r == utf8.RuneError && size == 1) || !printable(r) {
			sb.WriteString(NotAvailable)
		} else {
			sb.Write(data[:size])
		}
		data = data[size:]
	}
	return sb.String()
}

func printable(r rune) bool {
	return r == '\n' || r == '\t' || unicode.IsPrint(r)
}

// KeyBits 解析金鑰: 8 個字元，或 64 位 0/1 字串
func KeyBits(key string) (bitvec.Vector, error) {
	if len(key) == KeyChars*8 && IsBinary(key) {
		return FromBinary(key)
	}
	if len(key) != KeyChars {
		return nil, fmt.Errorf("%w: got %d bytes", ErrKeyLength, len(key))
	}
	return FromText(key), nil
}
