// validate_config 校验 scrollreel 配置文件
//
// 用法：
//
//	go run tools/validate_config.go [path]   # 默认 data/scrollreel.yaml
package main

import (
	"fmt"
	"os"

	"github.com/decker502/scrollreel/pkg/config"
	"github.com/decker502/scrollreel/pkg/frames"
)

func main() {
	path := config.DefaultConfigPath
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("❌ 读取文件失败: %v\n", err)
		os.Exit(1)
	}

	// 严格模式：任意层级的未知字段（拼写错误）都会报错
	cfg, err := config.ParseConfigStrict(data)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ YAML 格式正确\n")

	pattern := frames.PatternFromConfig(cfg.Frames)
	fmt.Printf("✅ 帧数量: %d (%s .. %s)\n", cfg.Frames.Count, pattern.Locator(1), pattern.Locator(cfg.Frames.Count))

	if cfg.Page.HeroHeight <= float64(cfg.Window.Height) {
		fmt.Printf("⚠️  heroHeight (%.0f) 不大于窗口高度 (%d)，动画不会随滚动推进\n",
			cfg.Page.HeroHeight, cfg.Window.Height)
	}

	total := cfg.Page.HeroHeight
	for _, s := range cfg.Page.Sections {
		total += s.Height
	}
	fmt.Printf("✅ 区块数量: %d，文档高度: %.0f\n", len(cfg.Page.Sections), total)

	if cfg.Chat.ResolveAPIKey() == "" {
		fmt.Printf("⚠️  未设置 chat.apiKey 或 %s，聊天助手不可用\n", config.APIKeyEnv)
	}
}
