package asnicolor

// ANSI 顏色代碼常量
const (
	// 重置所有屬性
	Reset = "\033[0m"

	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Cyan   = "\033[36m"

	BrightRed    = "\033[91m"
	BrightGreen  = "\033[92m"
	BrightYellow = "\033[93m"
	BrightBlue   = "\033[94m"
	BrightCyan   = "\033[96m"

	Bold = "\033[1m"
	Dim  = "\033[2m"

	// 清除畫面並將游標移回左上角
	ClearScreen = "\033[H\033[2J"
)

// Enabled 為 false 時 Paint 原樣返回文字 (FEISTEL_NO_COLOR)
var Enabled = true

// Paint 以指定顏色包住文字
func Paint(color, text string) string {
	if !Enabled || color == "" {
		return text
	}
	return color + text + Reset
}
