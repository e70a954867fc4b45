package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/decker502/scrollreel/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath 嵌入的默认配置文件路径
const DefaultConfigPath = "data/scrollreel.yaml"

// DefaultPromptPath 嵌入的默认聊天提示词路径
const DefaultPromptPath = "data/chat_prompt.txt"

// APIKeyEnv 未在配置中设置 apiKey 时读取的环境变量
const APIKeyEnv = "GEMINI_API_KEY"

// 帧序列加载失败时的降级策略
const (
	// FallbackPoster 首帧加载成功时显示首帧（海报帧）
	FallbackPoster = "poster"
	// FallbackNone 只显示背景色
	FallbackNone = "none"
)

// HeroSection 首屏区块的保留名称，页面区块不能使用
const HeroSection = "hero"

// 缩放滤波器名称
const (
	FilterCatmullRom = "catmullrom"
	FilterBilinear   = "bilinear"
	FilterNearest    = "nearest"
)

// Config 应用配置
//
// 配置文件位置: data/scrollreel.yaml（嵌入），可通过 -config 覆盖
type Config struct {
	Window WindowConfig `yaml:"window"`
	Frames FramesConfig `yaml:"frames"`
	Page   PageConfig   `yaml:"page"`
	Render RenderConfig `yaml:"render"`
	Chat   ChatConfig   `yaml:"chat"`
}

// WindowConfig 窗口配置（CSS 像素，不含设备缩放）
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// FramesConfig 帧序列命名与加载配置
//
// 第 i 帧（从 1 开始）的地址为 BasePath + Prefix + 补零(i, PadWidth) + Suffix，
// 例如 images/ezgif-frame-001.jpg
type FramesConfig struct {
	Count    int    `yaml:"count"`
	BasePath string `yaml:"basePath"`
	Prefix   string `yaml:"prefix"`
	PadWidth int    `yaml:"padWidth"`
	Suffix   string `yaml:"suffix"`

	// MaxInFlight 同时进行的加载数上限，0 表示不限制
	MaxInFlight int `yaml:"maxInFlight"`

	// Fallback 任意一帧加载失败后的显示策略: poster | none
	Fallback string `yaml:"fallback"`
}

// PageConfig 页面布局与滚动行为配置
type PageConfig struct {
	// HeroHeight 首屏动画区域高度，必须大于视口高度动画才会推进
	HeroHeight float64 `yaml:"heroHeight"`

	// NavScrolledAfter 滚动超过该值后导航栏进入 scrolled 状态
	NavScrolledAfter float64 `yaml:"navScrolledAfter"`

	// NavbarHeight 导航栏高度，锚点跳转停在区块顶部减去该值处，避免被导航栏遮挡
	NavbarHeight float64 `yaml:"navbarHeight"`

	// ScrollStep 一次滚轮刻度或方向键对应的滚动距离
	ScrollStep float64 `yaml:"scrollStep"`

	// AnchorScrollSeconds 锚点平滑滚动时长（秒）
	AnchorScrollSeconds float64 `yaml:"anchorScrollSeconds"`

	RevealThreshold    float64 `yaml:"revealThreshold"`
	RevealBottomMargin float64 `yaml:"revealBottomMargin"`
	RevealSeconds      float64 `yaml:"revealSeconds"`

	Sections []SectionConfig `yaml:"sections"`
}

// SectionConfig 首屏之后的内容区块
type SectionConfig struct {
	Name   string  `yaml:"name"`
	Height float64 `yaml:"height"`
}

// RenderConfig 渲染配置
type RenderConfig struct {
	// Filter 离屏光栅渲染时的缩放滤波器
	Filter string `yaml:"filter"`
}

// ChatConfig 聊天助手配置
type ChatConfig struct {
	Model      string `yaml:"model"`
	APIKey     string `yaml:"apiKey"`
	PromptFile string `yaml:"promptFile"`
}

// DefaultConfig 返回默认配置
//
// 解析 YAML 时以此为底，文件中缺失的字段保持默认值
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "scrollreel",
		},
		Frames: FramesConfig{
			Count:    200,
			BasePath: "images/",
			Prefix:   "ezgif-frame-",
			PadWidth: 3,
			Suffix:   ".jpg",
			Fallback: FallbackPoster,
		},
		Page: PageConfig{
			HeroHeight:          3000,
			NavScrolledAfter:    100,
			NavbarHeight:        56,
			ScrollStep:          60,
			AnchorScrollSeconds: 0.8,
			RevealThreshold:     0.1,
			RevealBottomMargin:  50,
			RevealSeconds:       0.6,
		},
		Render: RenderConfig{
			Filter: FilterCatmullRom,
		},
		Chat: ChatConfig{
			Model: "gemini-2.5-flash",
		},
	}
}

// ParseConfig 解析 YAML 配置并校验
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse scrollreel config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scrollreel config: %w", err)
	}

	return cfg, nil
}

// ParseConfigStrict 与 ParseConfig 相同，但任意层级出现未知字段都会报错
//
// 用于配置校验工具，拼写错误的键在 ParseConfig 中会被静默忽略。
func ParseConfigStrict(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse scrollreel config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scrollreel config: %w", err)
	}

	return cfg, nil
}

// LoadConfig 从文件系统加载配置
//
// 参数:
//   - path: 配置文件路径；为空时加载嵌入的默认配置
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return LoadDefaultConfig()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scrollreel config: %w", err)
	}
	return ParseConfig(data)
}

// LoadDefaultConfig 加载嵌入的默认配置
func LoadDefaultConfig() (*Config, error) {
	data, err := embedded.ReadFile(DefaultConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded config: %w", err)
	}
	return ParseConfig(data)
}

// Validate 验证配置有效性
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}

	f := c.Frames
	if f.Count <= 0 {
		return fmt.Errorf("frames.count must be positive, got %d", f.Count)
	}
	if f.PadWidth < 0 {
		return fmt.Errorf("frames.padWidth must not be negative, got %d", f.PadWidth)
	}
	if f.MaxInFlight < 0 {
		return fmt.Errorf("frames.maxInFlight must not be negative, got %d", f.MaxInFlight)
	}
	switch f.Fallback {
	case FallbackPoster, FallbackNone:
	default:
		return fmt.Errorf("frames.fallback %q unknown (want %q or %q)", f.Fallback, FallbackPoster, FallbackNone)
	}

	p := c.Page
	if p.HeroHeight <= 0 {
		return fmt.Errorf("page.heroHeight must be positive, got %.1f", p.HeroHeight)
	}
	if p.NavbarHeight < 0 {
		return fmt.Errorf("page.navbarHeight must not be negative, got %.1f", p.NavbarHeight)
	}
	if p.ScrollStep <= 0 {
		return fmt.Errorf("page.scrollStep must be positive, got %.1f", p.ScrollStep)
	}
	if p.AnchorScrollSeconds < 0 || p.RevealSeconds < 0 {
		return fmt.Errorf("page durations must not be negative")
	}
	if p.RevealThreshold < 0 || p.RevealThreshold > 1 {
		return fmt.Errorf("page.revealThreshold must be within [0, 1], got %.2f", p.RevealThreshold)
	}

	seen := make(map[string]bool, len(p.Sections))
	for i, s := range p.Sections {
		if s.Name == "" {
			return fmt.Errorf("page.sections[%d] has no name", i)
		}
		if s.Name == HeroSection {
			return fmt.Errorf("page.sections[%d]: name %q is reserved", i, s.Name)
		}
		if seen[s.Name] {
			return fmt.Errorf("page.sections[%d]: duplicate name %q", i, s.Name)
		}
		seen[s.Name] = true
		if s.Height <= 0 {
			return fmt.Errorf("page.sections[%d] (%s): height must be positive", i, s.Name)
		}
	}

	switch c.Render.Filter {
	case FilterCatmullRom, FilterBilinear, FilterNearest:
	default:
		return fmt.Errorf("render.filter %q unknown", c.Render.Filter)
	}

	return nil
}

// ResolveAPIKey 返回聊天 API key，配置优先，其次环境变量
func (c *ChatConfig) ResolveAPIKey() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	return os.Getenv(APIKeyEnv)
}

// LoadPrompt 读取系统提示词
//
// PromptFile 为空时读取嵌入的默认提示词
func (c *ChatConfig) LoadPrompt() (string, error) {
	var (
		data []byte
		err  error
	)
	if c.PromptFile == "" {
		data, err = embedded.ReadFile(DefaultPromptPath)
	} else {
		data, err = os.ReadFile(c.PromptFile)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read chat prompt: %w", err)
	}
	return string(data), nil
}
