package feistel

import "FeistelCipher/bitvec"

const registerSize = 28

// Schedule 16 把子金鑰，索引 0 對應第 1 輪
type Schedule [Rounds]RoundKey

// rotor 固定 28 格的環形暫存器，左移只移動 offset
type rotor struct {
	cells  [registerSize]byte
	offset int
}

func (r *rotor) rotateLeft(n int) {
	r.offset = (r.offset + n) % registerSize
}

func (r *rotor) at(i int) byte {
	return r.cells[(r.offset+i)%registerSize]
}

// NewSchedule 由 64 位元原始金鑰生成 16 把子金鑰
func NewSchedule(raw bitvec.Vector) (Schedule, error) {
	var ks Schedule
	if len(raw) != KeySize {
		return ks, lengthError("key", KeySize, len(raw))
	}

	// PC-1 丟棄同位位元，拆成 C0/D0
	var key [56]byte
	permute(key[:], raw, pc1)
	var c, d rotor
	copy(c.cells[:], key[:registerSize])
	copy(d.cells[:], key[registerSize:])

	var cd [2 * registerSize]byte
	for i := 0; i < Rounds; i++ {
		// 在上一輪的結果上累積左移
		c.rotateLeft(shifts[i])
		d.rotateLeft(shifts[i])
		for j := 0; j < registerSize; j++ {
			cd[j] = c.at(j)
			cd[registerSize+j] = d.at(j)
		}
		permute(ks[i][:], cd[:], pc2)
	}
	return ks, nil
}

// Reverse 以倒序返回子金鑰 (第 16 輪在前)
func (ks *Schedule) Reverse() Schedule {
	var out Schedule
	for i := range ks {
		out[Rounds-1-i] = ks[i]
	}
	return out
}
