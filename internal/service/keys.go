package service

import (
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"
)

// signingKeyBits 临时生成的签名密钥长度
const signingKeyBits = 2048

// LoadSigningKey 从 PEM 文件读取 RSA 私钥（PKCS#1 或 PKCS#8）
// path 为空时生成临时密钥，重启后已签发的令牌全部失效
func LoadSigningKey(path string) (*rsa.PrivateKey, bool, error) {
	if path == "" {
		key, err := rsa.GenerateKey(rand.Reader, signingKeyBits)
		if err != nil {
			return nil, false, fmt.Errorf("生成 RSA 密钥失败: %w", err)
		}
		return key, true, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("读取私钥文件失败: %w", err)
	}
	key, err := jwt.ParseRSAPrivateKeyFromPEM(raw)
	if err != nil {
		return nil, false, fmt.Errorf("解析私钥失败: %w", err)
	}
	return key, false, nil
}
