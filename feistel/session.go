package feistel

import (
	"io"
	"log"
	"sync"

	"github.com/google/uuid"

	"FeistelCipher/bitvec"
	"FeistelCipher/codec"
)

// Session 組合金鑰排程、分塊與 Feistel 網路，處理整段訊息
type Session struct {
	id      uuid.UUID
	cipher  *Cipher
	workers int
	logger  *log.Logger
}

// Option 設定 Session
type Option func(*Session)

// WithWorkers 設定並行處理區塊的 goroutine 數，小於 1 視為 1
func WithWorkers(n int) Option {
	return func(s *Session) {
		if n < 1 {
			n = 1
		}
		s.workers = n
	}
}

// WithLogger 設定日誌輸出
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSession 以 64 位元金鑰建立 Session
func NewSession(key bitvec.Vector, opts ...Option) (*Session, error) {
	c, err := NewCipher(key)
	if err != nil {
		return nil, err
	}
	s := &Session{
		id:      uuid.New(),
		cipher:  c,
		workers: 1,
		logger:  log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger.Printf("FEISTEL: session %s ready (workers=%d)", s.id, s.workers)
	return s, nil
}

// NewTextSession 以 8 字元金鑰 (或 64 位 0/1 字串) 建立 Session
func NewTextSession(key string, opts ...Option) (*Session, error) {
	bits, err := codec.KeyBits(key)
	if err != nil {
		return nil, err
	}
	return NewSession(bits, opts...)
}

// ID 返回 Session 識別碼
func (s *Session) ID() string { return s.id.String() }

// Cipher 返回底層的區塊加密器
func (s *Session) Cipher() *Cipher { return s.cipher }

// Encrypt 分塊並逐塊加密
func (s *Session) Encrypt(plain bitvec.Vector) Ciphertext {
	blocks, padding := Segment(plain)
	out := s.process(blocks, s.cipher.EncryptBlock)
	s.logger.Printf("FEISTEL: session %s encrypted %d bits into %d blocks (padding %d)", s.id, len(plain), len(out), padding)
	return Ciphertext{Blocks: out, Padding: padding}
}

// Decrypt 逐塊解密後去除補零
func (s *Session) Decrypt(ct Ciphertext) (bitvec.Vector, error) {
	out := s.process(ct.Blocks, s.cipher.DecryptBlock)
	bits, err := Join(out, ct.Padding)
	if err != nil {
		s.logger.Printf("FEISTEL: session %s decrypt failed: %v", s.id, err)
		return nil, err
	}
	s.logger.Printf("FEISTEL: session %s decrypted %d blocks into %d bits", s.id, len(ct.Blocks), len(bits))
	return bits, nil
}

// EncryptText 加密文字
func (s *Session) EncryptText(text string) Ciphertext {
	return s.Encrypt(codec.FromText(text))
}

// DecryptText 解密並轉回文字
func (s *Session) DecryptText(ct Ciphertext) (string, error) {
	bits, err := s.Decrypt(ct)
	if err != nil {
		return "", err
	}
	return codec.ToText(bits), nil
}

// process 對每個區塊套用 fn，輸出順序與輸入相同
func (s *Session) process(blocks []Block, fn func(Block) Block) []Block {
	out := make([]Block, len(blocks))
	if s.workers <= 1 || len(blocks) < 2 {
		for i, b := range blocks {
			out[i] = fn(b)
		}
		return out
	}

	workers := s.workers
	if workers > len(blocks) {
		workers = len(blocks)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				out[i] = fn(blocks[i])
			}
		}()
	}
	for i := range blocks {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return out
}
