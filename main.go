package main

import (
	ASNIColor "FeistelCipher/asnicolor"
	"FeistelCipher/configloader" // 匯入時載入 FeistelCipher.env
	"FeistelCipher/feistel"
	"FeistelCipher/htmltext"
	"FeistelCipher/rsa"
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"log"
	"math/big"
	"os"
	"strings"
	"time"
)

const helpText = `可用指令:
  /encrypt <文字>     以目前金鑰加密
  /decrypt [密文]     解密 (省略時使用上一次的密文)
  /html <檔案>        取出 HTML 檔中的文字並加密
  /key <金鑰>         更換金鑰 (8 個字元或 64 位 0/1)
  /rsa <文字>         以新生成的 RSA 金鑰加解密
  /demo               重新執行示範
  /clear              清除控制台
  /help               顯示本說明
  /quit               離開`

// app 保存互動模式的狀態
type app struct {
	cfg     *configloader.Config
	out     io.Writer
	logger  *log.Logger
	session *feistel.Session
	last    *feistel.Ciphertext
}

// printBanner 打印應用程式的啟動橫幅
func printBanner(w io.Writer) {
	fmt.Fprintln(w, ASNIColor.Paint(ASNIColor.BrightCyan, `
########################
#                      #
#    FEISTEL CIPHER    #
#                      #
########################`))
}

func newApp(cfg *configloader.Config, out io.Writer) (*app, error) {
	a := &app{cfg: cfg, out: out, logger: log.New(io.Discard, "", 0)}
	if cfg.LogDebug {
		a.logger = log.New(os.Stderr, "", log.LstdFlags)
	}
	if err := a.setKey(cfg.Key); err != nil {
		return nil, err
	}
	return a, nil
}

// setKey 以新金鑰建立 Session
func (a *app) setKey(key string) error {
	s, err := feistel.NewTextSession(key, feistel.WithWorkers(a.cfg.Workers), feistel.WithLogger(a.logger))
	if err != nil {
		return fmt.Errorf("建立金鑰排程失敗: %w", err)
	}
	a.session = s
	a.last = nil
	return nil
}

func (a *app) printf(color, format string, args ...interface{}) {
	fmt.Fprint(a.out, ASNIColor.Paint(color, fmt.Sprintf(format, args...)))
}

// encrypt 加密並記住密文，供之後的 /decrypt 使用
func (a *app) encrypt(text string) {
	ct := a.session.EncryptText(text)
	a.last = &ct
	a.printf(ASNIColor.BrightYellow, "(E)Plaintext: %s\n", text)
	a.printf("", "(E)Ciphertext: %s\n", ct.Text())
	a.printf(ASNIColor.BrightGreen, "(E)Hex: %s\n", ct.String())
}

func (a *app) decrypt(arg string) {
	var ct feistel.Ciphertext
	if arg == "" {
		if a.last == nil {
			a.printf(ASNIColor.Yellow, "尚無密文可解密，請先 /encrypt 或提供密文。\n")
			return
		}
		ct = *a.last
	} else {
		parsed, err := feistel.ParseCiphertext(arg)
		if err != nil {
			a.printf(ASNIColor.Red, "錯誤: 無法解析密文: %v\n", err)
			return
		}
		ct = parsed
	}

	text, err := a.session.DecryptText(ct)
	if err != nil {
		a.printf(ASNIColor.Red, "錯誤: 解密失敗: %v\n", err)
		return
	}
	a.printf(ASNIColor.BrightYellow, "(D)Plaintext: %s\n", text)
}

// demo 以設定檔中的金鑰與訊息跑一次完整的加解密並計時
func (a *app) demo() {
	start := time.Now()
	a.printf(ASNIColor.BrightBlue, "金鑰: %s  訊息長度: %d 個字元\n", a.cfg.Key, len(a.cfg.Message))
	a.encrypt(a.cfg.Message)
	a.decrypt("")
	a.printf(ASNIColor.Dim, "Execution time: %s\n", time.Since(start))
}

func (a *app) encryptHTML(path string) {
	text, err := htmltext.ExtractFile(path)
	if err != nil {
		a.printf(ASNIColor.Red, "錯誤: %v\n", err)
		return
	}
	if text == "" {
		a.printf(ASNIColor.Yellow, "%s 中沒有可加密的文字。\n", path)
		return
	}
	a.encrypt(text)
}

func (a *app) rsaRoundTrip(text string) {
	start := time.Now()
	a.printf(ASNIColor.BrightCyan, "正在生成 %d 位元 RSA 金鑰...\n", a.cfg.RSABits)
	priv, err := rsa.GenerateKey(rand.Reader, a.cfg.RSABits)
	if err != nil {
		a.printf(ASNIColor.Red, "錯誤: %v\n", err)
		return
	}
	a.printf("", " - e: %s\n - p: %s\n - q: %s\n - d: %s\n", priv.E, priv.P, priv.Q, priv.D)

	blocks, err := priv.PublicKey.EncryptText(text)
	if err != nil {
		a.printf(ASNIColor.Red, "錯誤: RSA 加密失敗: %v\n", err)
		return
	}
	a.printf(ASNIColor.BrightGreen, "Encrypted integers: %s\n", joinInts(blocks))

	plain, err := priv.DecryptText(blocks)
	if err != nil {
		a.printf(ASNIColor.Red, "錯誤: RSA 解密失敗: %v\n", err)
		return
	}
	a.printf(ASNIColor.BrightYellow, "Decrypted message: %s\n", plain)
	a.printf(ASNIColor.Dim, "Execution time: %s\n", time.Since(start))
}

func joinInts(values []*big.Int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = v.String()
	}
	return strings.Join(parts, " ")
}

// handle 處理一行輸入，返回 false 表示結束
func (a *app) handle(line string) bool {
	command, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(command) {
	case "/encrypt":
		if arg == "" {
			a.printf(ASNIColor.Yellow, "用法: /encrypt <文字>\n")
			break
		}
		a.encrypt(arg)
	case "/decrypt":
		a.decrypt(arg)
	case "/html":
		if arg == "" {
			a.printf(ASNIColor.Yellow, "用法: /html <檔案>\n")
			break
		}
		a.encryptHTML(arg)
	case "/key":
		if err := a.setKey(arg); err != nil {
			a.printf(ASNIColor.Red, "錯誤: %v\n", err)
			break
		}
		a.printf(ASNIColor.BrightGreen, "金鑰已更新 (session %s)。\n", a.session.ID())
	case "/rsa":
		if arg == "" {
			a.printf(ASNIColor.Yellow, "用法: /rsa <文字>\n")
			break
		}
		a.rsaRoundTrip(arg)
	case "/demo":
		a.demo()
	case "/clear":
		fmt.Fprint(a.out, ASNIColor.ClearScreen)
		printBanner(a.out)
	case "/help":
		fmt.Fprintln(a.out, helpText)
	case "/quit", "/exit":
		return false
	case "":
	default:
		a.printf(ASNIColor.Yellow, "未知指令: %s (輸入 /help 查看說明)\n", command)
	}
	return true
}

// run 讀取輸入直到 EOF 或 /quit
func (a *app) run(in io.Reader) {
	reader := bufio.NewReader(in)
	prompt := ASNIColor.Paint(ASNIColor.BrightBlue, "> ")
	fmt.Fprint(a.out, prompt)
	for {
		input, err := reader.ReadString('\n')
		if input != "" && !a.handle(input) {
			return
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(a.out)
			return
		}
		if err != nil {
			a.printf(ASNIColor.Red, "讀取輸入錯誤: %v\n", err)
			return
		}
		fmt.Fprint(a.out, prompt)
	}
}

func main() {
	cfg, err := configloader.Load()
	if err != nil {
		log.Fatalf("%v", err)
	}
	ASNIColor.Enabled = !cfg.NoColor

	printBanner(os.Stdout)

	a, err := newApp(cfg, os.Stdout)
	if err != nil {
		log.Fatalf(ASNIColor.Paint(ASNIColor.Red, "%v"), err)
	}
	a.demo()

	fmt.Println(ASNIColor.Paint(ASNIColor.BrightGreen, "輸入 /help 查看可用指令。"))
	a.run(os.Stdin)
}
