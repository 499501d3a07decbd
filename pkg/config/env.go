package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// EnvPrefix 环境变量前缀
const EnvPrefix = "HEARTCLICKER_"

// LoadDotEnv 加载 .env 文件到进程环境，已存在的变量不会被覆盖
// 文件不存在不是错误。
func LoadDotEnv(paths ...string) error {
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(paths) == 0 {
		if _, err := os.Stat(".env"); err == nil {
			existing = append(existing, ".env")
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("加载 .env 失败: %w", err)
	}
	return nil
}

// ApplyEnv 用 HEARTCLICKER_* 环境变量覆盖配置
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if getenv == nil {
		getenv = os.Getenv
	}
	get := func(key string) string {
		return strings.TrimSpace(getenv(EnvPrefix + key))
	}

	setString := func(key string, dst *string) {
		if v := get(key); v != "" {
			*dst = v
		}
	}
	setString("TARGET_URL", &c.TargetURL)
	setString("ASSET_DIR", &c.AssetDir)
	setString("BROWSER_PROCESS", &c.BrowserProcess)
	setString("SNAPSHOT_DIR", &c.SnapshotDir)
	setString("LOG_LEVEL", &c.LogLevel)
	setString("LOG_FILE", &c.LogFile)
	if v := get("HEART_COLOR"); v != "" {
		c.HeartColor = strings.ToLower(v)
	}

	ints := map[string]*int{
		"MAX_CLICKS":    &c.MaxClicksBeforeRefresh,
		"MAX_SCROLLS":   &c.MaxScrollsWithoutHearts,
		"SCROLL_AMOUNT": &c.ScrollAmount,
	}
	for key, dst := range ints {
		v := get(key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s%s 不是有效整数: %q", EnvPrefix, key, v)
		}
		*dst = n
	}

	floats := map[string]*float64{
		"REFRESH_CONFIDENCE":    &c.RefreshConfidence,
		"GREY_HEART_CONFIDENCE": &c.GreyHeartConfidence,
		"PINK_HEART_CONFIDENCE": &c.PinkHeartConfidence,
		"STATE_CONFIDENCE":      &c.StateConfidence,
	}
	for key, dst := range floats {
		v := get(key)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s%s 不是有效数字: %q", EnvPrefix, key, v)
		}
		*dst = f
	}

	if v := get("PAGE_LOAD_TIME"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sPAGE_LOAD_TIME 不是有效时长: %q", EnvPrefix, v)
		}
		c.PageLoadTime = d
	}
	if v := get("COLOR_FILTER"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sCOLOR_FILTER 不是有效布尔值: %q", EnvPrefix, v)
		}
		c.UseColorFilter = b
	}
	return nil
}
