package config

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"
	"strings"

	"github.com/corona10/goimagehash"
)

// MaxDuplicateDistance 感知哈希汉明距离不超过该值视为同一张图
const MaxDuplicateDistance = 4

// MissingAssetError 缺少模板文件
type MissingAssetError struct {
	Paths []string
}

func (e *MissingAssetError) Error() string {
	return fmt.Sprintf("缺少模板文件: %s", strings.Join(e.Paths, ", "))
}

// CheckAssets 检查所有必需的模板文件是否存在
func CheckAssets(cfg *Config) error {
	var missing []string
	for _, p := range cfg.RequiredTemplates() {
		info, err := os.Stat(p)
		if err != nil || info.IsDir() {
			missing = append(missing, p)
		}
	}
	if len(missing) > 0 {
		return &MissingAssetError{Paths: missing}
	}
	return nil
}

// DuplicatePair 两个不同用途但几乎相同的模板
type DuplicatePair struct {
	A, B     string
	Distance int
}

// CheckDistinct 检查锚点模板之间是否误用了同一张图
// 心形模板不参与比较，灰色和粉色心形形状相同是预期的。
func CheckDistinct(cfg *Config) ([]DuplicatePair, error) {
	t := cfg.Templates
	paths := []string{cfg.Path(t.Homing), cfg.Path(t.Browser), cfg.Path(t.AddressBar), cfg.Path(t.Refresh)}

	hashes := make([]*goimagehash.ImageHash, len(paths))
	for i, p := range paths {
		h, err := perceptionHash(p)
		if err != nil {
			return nil, err
		}
		hashes[i] = h
	}

	var pairs []DuplicatePair
	for i := 0; i < len(paths); i++ {
		for j := i + 1; j < len(paths); j++ {
			dist, err := hashes[i].Distance(hashes[j])
			if err != nil {
				return nil, fmt.Errorf("比较 %s 和 %s 失败: %w", paths[i], paths[j], err)
			}
			if dist <= MaxDuplicateDistance {
				pairs = append(pairs, DuplicatePair{A: paths[i], B: paths[j], Distance: dist})
			}
		}
	}
	return pairs, nil
}

func perceptionHash(path string) (*goimagehash.ImageHash, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开模板失败: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("解码模板 %s 失败: %w", path, err)
	}

	h, err := goimagehash.PerceptionHash(img)
	if err != nil {
		return nil, fmt.Errorf("计算 %s 哈希失败: %w", path, err)
	}
	return h, nil
}
