package rsa

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"

	"FeistelCipher/bitvec"
	"FeistelCipher/codec"
)

// DefaultExponent 公開指數
const DefaultExponent = 65537

// fermatRounds 費馬測試的輪數
const fermatRounds = 4

// MinKeyBits N 必須大於一個 64 位元訊息區塊
const MinKeyBits = 80

// MessageBlockBits 文字加密時每個整數承載的位元數
const MessageBlockBits = 64

var (
	ErrNoInverse       = errors.New("rsa: modular inverse does not exist")
	ErrMessageTooLarge = errors.New("rsa: message is not smaller than modulus")
	ErrKeySize         = errors.New("rsa: key size too small")
)

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

type PublicKey struct {
	N *big.Int
	E *big.Int
}

type PrivateKey struct {
	PublicKey
	D *big.Int
	P *big.Int
	Q *big.Int
}

// ModPow 二進位快速冪 a^b mod n
func ModPow(a, b, n *big.Int) *big.Int {
	x := big.NewInt(1)
	base := new(big.Int).Mod(a, n)
	exp := new(big.Int).Set(b)
	for exp.Sign() > 0 {
		if exp.Bit(0) == 1 {
			x.Mul(x, base).Mod(x, n)
		}
		base.Mul(base, base).Mod(base, n)
		exp.Rsh(exp, 1)
	}
	return x.Mod(x, n)
}

// egcd 擴展歐幾里得，返回 g, x, y 使 a*x + b*y = g
func egcd(a, b *big.Int) (g, x, y *big.Int) {
	if a.Sign() == 0 {
		return new(big.Int).Set(b), big.NewInt(0), big.NewInt(1)
	}
	q, r := new(big.Int).QuoRem(b, a, new(big.Int))
	g, y1, x1 := egcd(r, a)
	// x = x1 - q*y1, y = y1
	x = new(big.Int).Sub(x1, new(big.Int).Mul(q, y1))
	return g, x, y1
}

// ModInverse 返回 a 在模 m 下的乘法逆元
func ModInverse(a, m *big.Int) (*big.Int, error) {
	g, x, _ := egcd(new(big.Int).Mod(a, m), m)
	if g.Cmp(one) != 0 {
		return nil, fmt.Errorf("%w: gcd(%s, %s) = %s", ErrNoInverse, a, m, g)
	}
	return x.Mod(x, m), nil
}

// IsProbablePrime 費馬測試: 隨機底數 a，檢查 a^(n-1) mod n == 1
func IsProbablePrime(random io.Reader, n *big.Int) (bool, error) {
	if n.Cmp(two) < 0 {
		return false, nil
	}
	if n.Cmp(big.NewInt(3)) <= 0 {
		return true, nil
	}
	if n.Bit(0) == 0 {
		return false, nil
	}

	nMinus1 := new(big.Int).Sub(n, one)
	span := new(big.Int).Sub(n, big.NewInt(3)) // a ∈ [2, n-2]
	for i := 0; i < fermatRounds; i++ {
		a, err := rand.Int(random, span)
		if err != nil {
			return false, err
		}
		a.Add(a, two)
		if ModPow(a, nMinus1, n).Cmp(one) != 0 {
			return false, nil
		}
	}
	return true, nil
}

// FindPrime 在 [2^(bits-1), 2^bits) 中找一個機率質數
func FindPrime(random io.Reader, bits int) (*big.Int, error) {
	low := new(big.Int).Lsh(one, uint(bits-1))
	for {
		p, err := rand.Int(random, low)
		if err != nil {
			return nil, err
		}
		p.Add(p, low).SetBit(p, 0, 1)
		ok, err := IsProbablePrime(random, p)
		if err != nil {
			return nil, err
		}
		if ok {
			return p, nil
		}
	}
}

// GenerateKey 生成 bits 位元的金鑰對，p、q 各佔一半
func GenerateKey(random io.Reader, bits int) (*PrivateKey, error) {
	if bits < MinKeyBits {
		return nil, fmt.Errorf("%w: %d < %d", ErrKeySize, bits, MinKeyBits)
	}
	e := big.NewInt(DefaultExponent)
	half := bits / 2

	for {
		p, err := FindPrime(random, half)
		if err != nil {
			return nil, fmt.Errorf("generate p: %w", err)
		}
		q, err := FindPrime(random, bits-half)
		if err != nil {
			return nil, fmt.Errorf("generate q: %w", err)
		}
		if p.Cmp(q) == 0 {
			continue
		}

		phi := new(big.Int).Mul(new(big.Int).Sub(p, one), new(big.Int).Sub(q, one))
		d, err := ModInverse(e, phi)
		if errors.Is(err, ErrNoInverse) {
			continue
		}
		if err != nil {
			return nil, err
		}

		return &PrivateKey{
			PublicKey: PublicKey{N: new(big.Int).Mul(p, q), E: e},
			D:         d,
			P:         p,
			Q:         q,
		}, nil
	}
}

func (pub *PublicKey) check(m *big.Int) error {
	if m.Sign() < 0 || m.Cmp(pub.N) >= 0 {
		return ErrMessageTooLarge
	}
	return nil
}

// Encrypt c = m^e mod n
func (pub *PublicKey) Encrypt(m *big.Int) (*big.Int, error) {
	if err := pub.check(m); err != nil {
		return nil, err
	}
	return ModPow(m, pub.E, pub.N), nil
}

// DecryptWithPublic 還原以私鑰加密的訊息: m = c^e mod n
func (pub *PublicKey) DecryptWithPublic(c *big.Int) (*big.Int, error) {
	return pub.Encrypt(c)
}

// Decrypt 以中國剩餘定理解密
func (priv *PrivateKey) Decrypt(c *big.Int) (*big.Int, error) {
	if err := priv.check(c); err != nil {
		return nil, err
	}
	return crt(c, priv.P, priv.Q, priv.D)
}

// EncryptWithPrivate 以私鑰加密: c = m^d mod n
func (priv *PrivateKey) EncryptWithPrivate(m *big.Int) (*big.Int, error) {
	if err := priv.check(m); err != nil {
		return nil, err
	}
	return crt(m, priv.P, priv.Q, priv.D)
}

// crt 計算 c^d mod pq
func crt(c, p, q, d *big.Int) (*big.Int, error) {
	dp := new(big.Int).Mod(d, new(big.Int).Sub(p, one))
	dq := new(big.Int).Mod(d, new(big.Int).Sub(q, one))
	qinv, err := ModInverse(q, p)
	if err != nil {
		return nil, err
	}
	m1 := ModPow(c, dp, p)
	m2 := ModPow(c, dq, q)

	h := new(big.Int).Sub(m1, m2)
	h.Mul(h, qinv).Mod(h, p)
	return h.Mul(h, q).Add(h, m2), nil
}

// EncryptText 將文字切成 64 位元區塊 (最後一塊左側補零) 後逐塊加密
func (pub *PublicKey) EncryptText(text string) ([]*big.Int, error) {
	return encryptBlocks(text, pub.Encrypt)
}

// EncryptText 以私鑰逐塊加密文字
func (priv *PrivateKey) EncryptText(text string) ([]*big.Int, error) {
	return encryptBlocks(text, priv.EncryptWithPrivate)
}

// DecryptText 以私鑰解密 PublicKey.EncryptText 的輸出
func (priv *PrivateKey) DecryptText(blocks []*big.Int) (string, error) {
	return decryptBlocks(blocks, priv.Decrypt)
}

// DecryptTextWithPublic 以公鑰解密 PrivateKey.EncryptText 的輸出
func (pub *PublicKey) DecryptTextWithPublic(blocks []*big.Int) (string, error) {
	return decryptBlocks(blocks, pub.DecryptWithPublic)
}

func encryptBlocks(text string, fn func(*big.Int) (*big.Int, error)) ([]*big.Int, error) {
	bits := codec.FromText(text)
	var out []*big.Int
	for i := 0; i < len(bits); i += MessageBlockBits {
		end := i + MessageBlockBits
		if end > len(bits) {
			end = len(bits)
		}
		m := new(big.Int).SetUint64(bits[i:end].Uint())
		c, err := fn(m)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i/MessageBlockBits, err)
		}
		out = append(out, c)
	}
	return out, nil
}

func decryptBlocks(blocks []*big.Int, fn func(*big.Int) (*big.Int, error)) (string, error) {
	var all bitvec.Vector
	for i, c := range blocks {
		m, err := fn(c)
		if err != nil {
			return "", fmt.Errorf("block %d: %w", i, err)
		}
		if m.BitLen() > MessageBlockBits {
			return "", fmt.Errorf("block %d: %w", i, ErrMessageTooLarge)
		}
		// 補齊到 8 的倍數，去掉的前導零位元組不屬於文字
		width := (m.BitLen() + 7) / 8 * 8
		all = append(all, bitvec.FromUint(m.Uint64(), width)...)
	}
	return codec.ToText(all), nil
}
