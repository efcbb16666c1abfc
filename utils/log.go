package utils

import (
	"log"
	"strings"
	"unicode"

	"github.com/anoixa/tripill/config"
)

// LogIfDev 仅在开发构建中输出日志
func LogIfDev(v ...interface{}) {
	if config.IsDevelopment() {
		log.Println(v...)
	}
}

// LogIfDevf 仅在开发构建中输出格式化日志
func LogIfDevf(format string, v ...interface{}) {
	if config.IsDevelopment() {
		log.Printf(format, v...)
	}
}

// SanitizeLogMessage 去除不可打印字符，防止日志注入
func SanitizeLogMessage(msg string) string {
	var sb strings.Builder
	for _, r := range msg {
		if r == '\n' || r == '\t' {
			sb.WriteRune(' ')
		} else if unicode.IsPrint(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// SanitizeLogEmail 截断并清洗邮箱，用于日志输出
func SanitizeLogEmail(email string) string {
	if len(email) > 64 {
		email = email[:64] + "..."
	}
	return SanitizeLogMessage(email)
}
