package config

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.RefreshConfidence != 0.7 || cfg.GreyHeartConfidence != 0.80 ||
		cfg.PinkHeartConfidence != 0.95 || cfg.StateConfidence != 0.9 {
		t.Errorf("默认阈值错误: %+v", cfg)
	}
	if cfg.ScrollAmount != 4 || cfg.MouseMoveDistance != 100 {
		t.Errorf("默认动作参数错误: %+v", cfg)
	}
	if cfg.PageLoadTime != 6100*time.Millisecond || cfg.ScrollPause != 1500*time.Millisecond {
		t.Errorf("默认等待时长错误: %v %v", cfg.PageLoadTime, cfg.ScrollPause)
	}
	if cfg.MaxClicksBeforeRefresh != 100 || cfg.MaxScrollsWithoutHearts != 5 {
		t.Errorf("默认刷新阈值错误: %d %d", cfg.MaxClicksBeforeRefresh, cfg.MaxScrollsWithoutHearts)
	}
}

func TestHeartSelection(t *testing.T) {
	cfg := Default()
	cfg.AssetDir = "assets"

	cfg.HeartColor = ColorGrey
	if cfg.HeartConfidence() != 0.80 {
		t.Errorf("灰色阈值错误: %.2f", cfg.HeartConfidence())
	}
	if cfg.HeartTemplate() != filepath.Join("assets", "grey_heart.png") {
		t.Errorf("灰色模板错误: %s", cfg.HeartTemplate())
	}

	cfg.HeartColor = ColorPink
	if cfg.HeartConfidence() != 0.95 {
		t.Errorf("粉色阈值错误: %.2f", cfg.HeartConfidence())
	}
	if cfg.HeartTemplate() != filepath.Join("assets", "pink_heart.png") {
		t.Errorf("粉色模板错误: %s", cfg.HeartTemplate())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"有效", func(c *Config) {}, ""},
		{"颜色为空", func(c *Config) { c.HeartColor = "" }, "心形颜色"},
		{"颜色未知", func(c *Config) { c.HeartColor = "blue" }, "心形颜色"},
		{"点击阈值为 0", func(c *Config) { c.MaxClicksBeforeRefresh = 0 }, "最大点击数"},
		{"滚动阈值为负", func(c *Config) { c.MaxScrollsWithoutHearts = -1 }, "最大滚动数"},
		{"置信度超范围", func(c *Config) { c.StateConfidence = 1.5 }, "state_confidence"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			cfg.HeartColor = ColorPink
			tc.mutate(cfg)

			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("不应出错: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("错误应包含 %q, 实际 %v", tc.wantErr, err)
			}
		})
	}
}

func TestManagerSaveAndLoad(t *testing.T) {
	manager := NewManagerWithDir(t.TempDir())

	if manager.Exists() {
		t.Error("初始时配置文件不应存在")
	}

	loaded, err := manager.Load()
	if err != nil {
		t.Fatalf("加载默认配置失败: %v", err)
	}
	if loaded.MaxClicksBeforeRefresh != 100 {
		t.Errorf("文件不存在时应返回默认配置: %+v", loaded)
	}

	cfg := Default()
	cfg.TargetURL = "https://example.com/feed"
	cfg.HeartColor = ColorGrey
	cfg.MaxClicksBeforeRefresh = 30
	cfg.PageLoadTime = 3 * time.Second

	if err := manager.Save(cfg); err != nil {
		t.Fatalf("保存配置失败: %v", err)
	}
	if !manager.Exists() {
		t.Error("保存后配置文件应存在")
	}

	loaded, err = manager.Load()
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}
	if loaded.TargetURL != cfg.TargetURL || loaded.HeartColor != ColorGrey {
		t.Errorf("字符串字段不匹配: %+v", loaded)
	}
	if loaded.MaxClicksBeforeRefresh != 30 || loaded.PageLoadTime != 3*time.Second {
		t.Errorf("数值字段不匹配: %d %v", loaded.MaxClicksBeforeRefresh, loaded.PageLoadTime)
	}
}

func TestManagerPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	manager := NewManagerWithDir(dir)

	content := "heart_color: pink\nmax_scrolls_without_hearts: 8\nscroll_pause: 2s\n"
	if err := os.WriteFile(manager.GetConfigFile(), []byte(content), 0644); err != nil {
		t.Fatalf("写入配置失败: %v", err)
	}

	cfg, err := manager.Load()
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}
	if cfg.MaxScrollsWithoutHearts != 8 || cfg.ScrollPause != 2*time.Second {
		t.Errorf("文件中的值未生效: %+v", cfg)
	}
	if cfg.MaxClicksBeforeRefresh != 100 || cfg.Templates.Refresh != "refresh.png" {
		t.Errorf("未出现的字段应保留默认值: %+v", cfg)
	}
}

func TestManagerInvalidFile(t *testing.T) {
	manager := NewManagerWithDir(t.TempDir())
	if err := os.WriteFile(manager.GetConfigFile(), []byte("max_clicks_before_refresh: [1"), 0644); err != nil {
		t.Fatalf("写入配置失败: %v", err)
	}

	cfg, err := manager.Load()
	if err == nil {
		t.Error("无效 YAML 应返回错误")
	}
	if cfg == nil || cfg.MaxClicksBeforeRefresh != 100 {
		t.Error("解析失败时应返回默认配置")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"HEARTCLICKER_TARGET_URL":            " https://example.com ",
		"HEARTCLICKER_HEART_COLOR":           "GREY",
		"HEARTCLICKER_MAX_CLICKS":            "12",
		"HEARTCLICKER_PINK_HEART_CONFIDENCE": "0.9",
		"HEARTCLICKER_PAGE_LOAD_TIME":        "4s",
		"HEARTCLICKER_COLOR_FILTER":          "true",
	}
	cfg := Default()

	if err := cfg.ApplyEnv(func(k string) string { return env[k] }); err != nil {
		t.Fatalf("应用环境变量失败: %v", err)
	}
	if cfg.TargetURL != "https://example.com" || cfg.HeartColor != ColorGrey {
		t.Errorf("字符串变量未生效: %q %q", cfg.TargetURL, cfg.HeartColor)
	}
	if cfg.MaxClicksBeforeRefresh != 12 || cfg.PinkHeartConfidence != 0.9 {
		t.Errorf("数值变量未生效: %d %.2f", cfg.MaxClicksBeforeRefresh, cfg.PinkHeartConfidence)
	}
	if cfg.PageLoadTime != 4*time.Second || !cfg.UseColorFilter {
		t.Errorf("时长/布尔变量未生效: %v %v", cfg.PageLoadTime, cfg.UseColorFilter)
	}
	if cfg.MaxScrollsWithoutHearts != 5 {
		t.Errorf("未设置的变量不应改变配置: %d", cfg.MaxScrollsWithoutHearts)
	}
}

func TestApplyEnvInvalid(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(func(k string) string {
		if k == "HEARTCLICKER_MAX_SCROLLS" {
			return "five"
		}
		return ""
	})
	if err == nil || !strings.Contains(err.Error(), "MAX_SCROLLS") {
		t.Errorf("无效整数应返回错误: %v", err)
	}
}

func TestLoadDotEnv(t *testing.T) {
	const key = "HEARTCLICKER_TARGET_URL"
	t.Setenv(key, "")
	os.Unsetenv(key)

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(key+"=https://example.org/list\n"), 0644); err != nil {
		t.Fatalf("写入 .env 失败: %v", err)
	}

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("加载 .env 失败: %v", err)
	}
	if got := os.Getenv(key); got != "https://example.org/list" {
		t.Errorf(".env 未生效: %q", got)
	}

	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("文件不存在不应报错: %v", err)
	}
}

// writePNG 生成测试图片
func writePNG(t *testing.T, path string, pattern func(x, y int) uint8) {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			img.SetGray(x, y, color.Gray{Y: pattern(x, y)})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("创建图片失败: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("编码图片失败: %v", err)
	}
}

func TestCheckAssets(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.AssetDir = dir

	err := CheckAssets(cfg)
	var missing *MissingAssetError
	if !errors.As(err, &missing) {
		t.Fatalf("应返回 MissingAssetError: %v", err)
	}
	if len(missing.Paths) != 6 {
		t.Errorf("应缺少 6 个文件: %v", missing.Paths)
	}

	for _, p := range cfg.RequiredTemplates() {
		writePNG(t, p, func(x, y int) uint8 { return uint8(x * 8) })
	}
	if err := CheckAssets(cfg); err != nil {
		t.Errorf("文件齐全时不应报错: %v", err)
	}
}

func TestCheckDistinctReportsCopies(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.AssetDir = dir

	stripes := func(x, y int) uint8 {
		if (x/4)%2 == 0 {
			return 255
		}
		return 0
	}
	writePNG(t, cfg.Path(cfg.Templates.Homing), stripes)
	writePNG(t, cfg.Path(cfg.Templates.Browser), stripes)
	writePNG(t, cfg.Path(cfg.Templates.AddressBar), func(x, y int) uint8 { return uint8(y * 8) })
	writePNG(t, cfg.Path(cfg.Templates.Refresh), func(x, y int) uint8 {
		if (x/8+y/8)%2 == 0 {
			return 255
		}
		return 0
	})

	pairs, err := CheckDistinct(cfg)
	if err != nil {
		t.Fatalf("检查失败: %v", err)
	}

	found := false
	for _, p := range pairs {
		if p.A == cfg.Path(cfg.Templates.Homing) && p.B == cfg.Path(cfg.Templates.Browser) && p.Distance == 0 {
			found = true
		}
	}
	if !found {
		t.Errorf("相同的锚点模板应被报告: %+v", pairs)
	}
}
