package config

import (
	"fmt"
	"os"
	"strconv"

	"inventory/internal/contract"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	ContractScheme    string // アドレス規約のスキーム
	ContractAuthority string // アドレス規約のauthority

	SMTPHost     string // 発注メールのSMTPホスト（空なら送信無効）
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	MailFrom     string // 発注メールのFrom

	LogLevel string // debug/info/warn/error
	GoEnv    string // dev/prod
}

// Loadは環境変数
func Load() (Config, error) {
	cfg := Config{
		Port: os.Getenv("PORT"),

		ContractScheme:    getenv("CONTRACT_SCHEME", contract.DefaultScheme),
		ContractAuthority: getenv("CONTRACT_AUTHORITY", contract.DefaultAuthority),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		MailFrom:     os.Getenv("MAIL_FROM"),

		LogLevel: getenv("LOG_LEVEL", "info"),
		GoEnv:    getenv("GO_ENV", "dev"),
	}

	//必須チェック
	if cfg.Port == "" {
		return Config{}, fmt.Errorf("PORT is required")
	}

	// SMTPはホストを設定したときだけ有効
	if cfg.SMTPHost != "" {
		port, err := mustAtoi("SMTP_PORT")
		if err != nil {
			return Config{}, err
		}
		cfg.SMTPPort = port
		if cfg.MailFrom == "" {
			return Config{}, fmt.Errorf("MAIL_FROM is required when SMTP_HOST is set")
		}
	}

	return cfg, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func mustAtoi(key string) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}
