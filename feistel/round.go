package feistel

import "FeistelCipher/bitvec"

// Expand 擴展置換 E，32 位元擴展為 48 位元
func Expand(r Half) [RoundKeySize]byte {
	var out [RoundKeySize]byte
	permute(out[:], r[:], expansion)
	return out
}

// sBoxCoords 從 6 位元分組取出列 (1-based) 與行
// 列由首位與末位組成，行由中間 4 位組成
func sBoxCoords(group []byte) (row, col int) {
	row = (int(group[0])<<1 | int(group[5])) + 1
	col = int(group[1])<<3 | int(group[2])<<2 | int(group[3])<<1 | int(group[4])
	return
}

// substitute 查表第 box 個 S 盒，返回 4 位元輸出
func substitute(box int, group []byte) byte {
	row, col := sBoxCoords(group)
	return sBoxes[box][(row-1)*16+col]
}

// Round 輪函數 F: 擴展 -> 與子金鑰異或 -> S 盒 -> P 置換
func Round(r Half, k RoundKey) Half {
	x := Expand(r)
	for i := range x {
		x[i] ^= k[i]
	}

	var s [HalfSize]byte
	for m := 0; m < 8; m++ {
		v := substitute(m, x[m*6:m*6+6])
		s[m*4+0] = v >> 3 & 1
		s[m*4+1] = v >> 2 & 1
		s[m*4+2] = v >> 1 & 1
		s[m*4+3] = v & 1
	}

	var out Half
	permute(out[:], s[:], p32)
	return out
}

// RoundVector 是 Round 的位元陣列版本，會檢查輸入長度
func RoundVector(r, k bitvec.Vector) (bitvec.Vector, error) {
	h, err := HalfFromVector(r)
	if err != nil {
		return nil, err
	}
	rk, err := RoundKeyFromVector(k)
	if err != nil {
		return nil, err
	}
	out := Round(h, rk)
	return out.Vector(), nil
}
