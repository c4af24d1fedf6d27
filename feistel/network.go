package feistel

import "FeistelCipher/bitvec"

// Cipher 持有一組子金鑰，對單一 64 位元區塊做加解密
//
// 加密: IP -> 16 輪 -> 交換左右，不做最終置換。
// 解密: 直接把輸入當作 (L,R) -> 16 輪 (子金鑰倒序) -> 交換 -> IIP。
// 兩者互為逆運算，但密文本身停在 IP 之後的狀態，與標準 DES 的 IP/FP 配對不同。
type Cipher struct {
	keys Schedule
}

// NewCipher 由 64 位元金鑰建立 Cipher
func NewCipher(key bitvec.Vector) (*Cipher, error) {
	ks, err := NewSchedule(key)
	if err != nil {
		return nil, err
	}
	return &Cipher{keys: ks}, nil
}

// Schedule 返回子金鑰副本
func (c *Cipher) Schedule() Schedule {
	return c.keys
}

// EncryptBlock 加密一個區塊
func (c *Cipher) EncryptBlock(b Block) Block {
	var ip Block
	permute(ip[:], b[:], initialPerm)
	l, r := ip.split()
	l, r = rounds(l, r, &c.keys)
	return joinHalves(r, l)
}

// DecryptBlock 解密一個由 EncryptBlock 產生的區塊
func (c *Cipher) DecryptBlock(b Block) Block {
	rev := c.keys.Reverse()
	l, r := b.split()
	l, r = rounds(l, r, &rev)

	var out Block
	swapped := joinHalves(r, l)
	permute(out[:], swapped[:], inverseInitialPerm)
	return out
}

// rounds 依序套用 16 輪: (L, R) = (R, L xor F(R, K))
func rounds(l, r Half, ks *Schedule) (Half, Half) {
	for i := 0; i < Rounds; i++ {
		l, r = r, xorHalf(l, Round(r, ks[i]))
	}
	return l, r
}
