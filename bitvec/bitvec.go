package bitvec

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotBinary 表示輸入字串中含有 0/1 以外的字元
var ErrNotBinary = errors.New("bitvec: not a binary string")

// ErrShort 表示輸入位元長度不足以套用置換表
var ErrShort = errors.New("bitvec: vector shorter than table requires")

// Vector 是一個有序的位元序列，每個元素只會是 0 或 1
type Vector []byte

// New 建立長度為 n 的全零位元陣列
func New(n int) Vector {
	return make(Vector, n)
}

// Parse 將 "0101..." 形式的字串轉換為位元陣列
func Parse(s string) (Vector, error) {
	v := make(Vector, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
			v[i] = 0
		case '1':
			v[i] = 1
		default:
			return nil, fmt.Errorf("%w: %q at %d", ErrNotBinary, s[i], i)
		}
	}
	return v, nil
}

// MustParse 同 Parse，失敗時 panic，僅供常數與測試使用
func MustParse(s string) Vector {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Len 返回位元數
func (v Vector) Len() int { return len(v) }

// String 以 0/1 字串輸出
func (v Vector) String() string {
	var sb strings.Builder
	sb.Grow(len(v))
	for _, b := range v {
		sb.WriteByte('0' + b)
	}
	return sb.String()
}

// Clone 返回獨立的副本
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

// Equal 判斷兩個位元陣列是否完全相同
func (v Vector) Equal(o Vector) bool {
	if len(v) != len(o) {
		return false
	}
	for i := range v {
		if v[i] != o[i] {
			return false
		}
	}
	return true
}

// Concat 依序串接多個位元陣列
func Concat(parts ...Vector) Vector {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make(Vector, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// Xor 逐位異或，兩者長度必須相同
func Xor(a, b Vector) (Vector, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("bitvec: xor of %d and %d bits", len(a), len(b))
	}
	out := make(Vector, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out, nil
}

// Permute 依 1-based 置換表重排位元: out[i] = in[table[i]-1]
func Permute(table []int, in Vector) (Vector, error) {
	out := make(Vector, len(table))
	for i, pos := range table {
		if pos < 1 || pos > len(in) {
			return nil, fmt.Errorf("%w: index %d, have %d bits", ErrShort, pos, len(in))
		}
		out[i] = in[pos-1]
	}
	return out, nil
}

// Uint 將最多 64 位元按 MSB 優先解讀為無號整數
func (v Vector) Uint() uint64 {
	var n uint64
	for _, b := range v {
		n = n<<1 | uint64(b&1)
	}
	return n
}

// FromUint 以 MSB 優先將 n 的低 width 位元展開
func FromUint(n uint64, width int) Vector {
	out := make(Vector, width)
	for i := width - 1; i >= 0; i-- {
		out[i] = byte(n & 1)
		n >>= 1
	}
	return out
}

// FirstSet 返回第一個為 1 的位元索引，全零時返回 -1
func (v Vector) FirstSet() int {
	for i, b := range v {
		if b == 1 {
			return i
		}
	}
	return -1
}
