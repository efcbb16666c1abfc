package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// GenerateSecret 生成 byteLen 字节随机数的 URL 安全编码（无填充）
func GenerateSecret(byteLen int) (string, error) {
	if byteLen <= 0 {
		return "", fmt.Errorf("secret length must be positive, got %d", byteLen)
	}
	buf := make([]byte, byteLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
