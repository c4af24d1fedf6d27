package rsa

import (
	"errors"
	"math/big"
	mrand "math/rand"
	"testing"
)

func seeded(seed int64) *mrand.Rand {
	return mrand.New(mrand.NewSource(seed))
}

func TestModPow(t *testing.T) {
	tests := []struct {
		a, b, n, want int64
	}{
		{4, 13, 497, 445},
		{2, 10, 1000, 24},
		{7, 0, 13, 1},
		{5, 3, 1, 0},
	}
	for _, tt := range tests {
		got := ModPow(big.NewInt(tt.a), big.NewInt(tt.b), big.NewInt(tt.n))
		if got.Int64() != tt.want {
			t.Errorf("ModPow(%d, %d, %d) = %s, want %d", tt.a, tt.b, tt.n, got, tt.want)
		}
	}
}

func TestModInverse(t *testing.T) {
	inv, err := ModInverse(big.NewInt(17), big.NewInt(3120))
	if err != nil {
		t.Fatalf("ModInverse failed: %v", err)
	}
	if inv.Int64() != 2753 {
		t.Errorf("17^-1 mod 3120 = %s, want 2753", inv)
	}

	if _, err := ModInverse(big.NewInt(6), big.NewInt(9)); !errors.Is(err, ErrNoInverse) {
		t.Errorf("expected ErrNoInverse, got %v", err)
	}
}

func TestIsProbablePrime(t *testing.T) {
	r := seeded(1)
	primes := []int64{2, 3, 5, 7, 97, 7919, 104729}
	for _, p := range primes {
		ok, err := IsProbablePrime(r, big.NewInt(p))
		if err != nil || !ok {
			t.Errorf("%d reported composite (%v)", p, err)
		}
	}
	composites := []int64{0, 1, 4, 9, 104730, 1000001}
	for _, c := range composites {
		ok, err := IsProbablePrime(r, big.NewInt(c))
		if err != nil || ok {
			t.Errorf("%d reported prime (%v)", c, err)
		}
	}
}

func TestFindPrimeBitLength(t *testing.T) {
	p, err := FindPrime(seeded(2), 48)
	if err != nil {
		t.Fatalf("FindPrime failed: %v", err)
	}
	if p.BitLen() != 48 {
		t.Errorf("BitLen = %d, want 48", p.BitLen())
	}
	if !p.ProbablyPrime(20) {
		t.Errorf("%s is not prime", p)
	}
}

func TestGenerateKeyAndRoundTrip(t *testing.T) {
	priv, err := GenerateKey(seeded(3), 128)
	if err != nil {
		t.Fatalf("GenerateKey failed: %v", err)
	}
	if new(big.Int).Mul(priv.P, priv.Q).Cmp(priv.N) != 0 {
		t.Fatal("N != P*Q")
	}

	m := big.NewInt(0x0123456789ABCDEF)
	c, err := priv.PublicKey.Encrypt(m)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	got, err := priv.Decrypt(c)
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if got.Cmp(m) != 0 {
		t.Errorf("CRT decrypt = %s, want %s", got, m)
	}
	if plain := ModPow(c, priv.D, priv.N); plain.Cmp(m) != 0 {
		t.Errorf("plain decrypt = %s, want %s", plain, m)
	}

	s, err := priv.EncryptWithPrivate(m)
	if err != nil {
		t.Fatalf("EncryptWithPrivate failed: %v", err)
	}
	back, err := priv.PublicKey.DecryptWithPublic(s)
	if err != nil || back.Cmp(m) != 0 {
		t.Errorf("DecryptWithPublic = %v, %v", back, err)
	}
}

func TestTextRoundTrip(t *testing.T) {
	priv, err := GenerateKey(seeded(4), 128)
	if err != nil {
		t.Fatalf("GenerateKey failed: %v", err)
	}
	for _, msg := range []string{"hi", "abcdefgh", "this assignment was really hard"} {
		t.Run(msg, func(t *testing.T) {
			blocks, err := priv.PublicKey.EncryptText(msg)
			if err != nil {
				t.Fatalf("EncryptText failed: %v", err)
			}
			got, err := priv.DecryptText(blocks)
			if err != nil {
				t.Fatalf("DecryptText failed: %v", err)
			}
			if got != msg {
				t.Errorf("got %q, want %q", got, msg)
			}

			signed, err := priv.EncryptText(msg)
			if err != nil {
				t.Fatalf("private EncryptText failed: %v", err)
			}
			got, err = priv.PublicKey.DecryptTextWithPublic(signed)
			if err != nil || got != msg {
				t.Errorf("public decrypt = %q, %v", got, err)
			}
		})
	}
}

func TestErrors(t *testing.T) {
	if _, err := GenerateKey(seeded(5), 64); !errors.Is(err, ErrKeySize) {
		t.Errorf("expected ErrKeySize, got %v", err)
	}
	pub := &PublicKey{N: big.NewInt(33), E: big.NewInt(3)}
	if _, err := pub.Encrypt(big.NewInt(33)); !errors.Is(err, ErrMessageTooLarge) {
		t.Errorf("expected ErrMessageTooLarge, got %v", err)
	}
}
