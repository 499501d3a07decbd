package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/zoeyai/heartclicker/internal/logger"
	"github.com/zoeyai/heartclicker/pkg/auto"
	"github.com/zoeyai/heartclicker/pkg/config"
	"github.com/zoeyai/heartclicker/pkg/console"
	"github.com/zoeyai/heartclicker/pkg/engine"
	"github.com/zoeyai/heartclicker/pkg/permissions"
	"github.com/zoeyai/heartclicker/pkg/process"
	"github.com/zoeyai/heartclicker/pkg/vision"
)

// 版本信息 (可通过 ldflags 注入)
var (
	Version   = "1.0.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

type options struct {
	url         string
	color       string
	maxClicks   int
	maxScrolls  int
	assetDir    string
	colorFilter bool
	snapshotDir string
	logLevel    string
	logFile     string
	envFile     string
	interactive bool
	save        bool
	showVersion bool
	showHelp    bool
}

func parseFlags() (*options, map[string]bool) {
	o := &options{}
	flag.StringVar(&o.url, "url", "", "目标页面地址")
	flag.StringVar(&o.color, "color", "", "要点击的心形颜色 (grey/pink)")
	flag.IntVar(&o.maxClicks, "max-clicks", 0, "刷新前最大点击数")
	flag.IntVar(&o.maxScrolls, "max-scrolls", 0, "无心形时刷新前最大滚动数")
	flag.StringVar(&o.assetDir, "assets", "", "模板图片目录")
	flag.BoolVar(&o.colorFilter, "filter", false, "点击前按颜色过滤匹配结果")
	flag.StringVar(&o.snapshotDir, "snapshots", "", "保存匹配调试截图的目录")
	flag.StringVar(&o.logLevel, "log-level", "", "日志级别 (DEBUG/INFO/WARN/ERROR)")
	flag.StringVar(&o.logFile, "log-file", "", "同时写入的日志文件")
	flag.StringVar(&o.envFile, "env", ".env", "环境变量文件")
	flag.BoolVar(&o.interactive, "i", false, "启动时逐项询问运行参数")
	flag.BoolVar(&o.save, "save", false, "保存配置到本地")
	flag.BoolVar(&o.showVersion, "version", false, "显示版本信息")
	flag.BoolVar(&o.showHelp, "help", false, "显示帮助信息")
	flag.Parse()

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return o, set
}

func main() {
	opts, set := parseFlags()

	if opts.showVersion {
		printVersion()
		return
	}
	if opts.showHelp {
		printHelp()
		return
	}

	os.Exit(run(opts, set))
}

func run(opts *options, set map[string]bool) int {
	log := logger.Default()
	defer log.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	manager := config.NewManager()
	if !manager.Exists() {
		log.Info("未找到配置文件 %s，使用默认配置", manager.GetConfigFile())
	}
	cfg, err := manager.Load()
	if err != nil {
		log.Warn("加载配置失败: %v", err)
	}
	if err := config.LoadDotEnv(opts.envFile); err != nil {
		log.Warn("%v", err)
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		log.Error("%v", err)
		return 1
	}
	applyFlags(cfg, opts, set)

	prompter := console.New(os.Stdin, os.Stdout)
	if err := askMissing(ctx, prompter, cfg, opts.interactive); err != nil {
		if errors.Is(err, context.Canceled) {
			return 0
		}
		log.Error("读取输入失败: %v", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		return 1
	}

	log.SetLevel(logger.ParseLevel(cfg.LogLevel))
	if err := log.SetFile(cfg.LogFile); err != nil {
		log.Warn("%v", err)
	}

	if opts.save {
		if err := manager.Save(cfg); err != nil {
			log.Warn("保存配置失败: %v", err)
		} else {
			log.Info("配置已保存到 %s", manager.GetConfigFile())
		}
	}

	if err := config.CheckAssets(cfg); err != nil {
		log.Error("%v", err)
		return 1
	}
	pairs, err := config.CheckDistinct(cfg)
	if err != nil {
		log.Warn("模板比对失败: %v", err)
	}
	for _, p := range pairs {
		log.Warn("模板 %s 和 %s 几乎相同 (距离 %d)，请检查是否放错了图片", p.A, p.B, p.Distance)
	}

	if runtime.GOOS == "darwin" {
		checkMacOSPermissions(log)
	}

	fmt.Println("========================================")
	fmt.Printf("  Heart Clicker v%s\n", Version)
	fmt.Println("========================================")
	log.Info("目标页面: %s", cfg.TargetURL)
	log.Info("点击 %s 心形，匹配阈值 %.2f", cfg.HeartColor, cfg.HeartConfidence())
	log.Info("刷新条件: 点击 %d 次或连续滚动 %d 次", cfg.MaxClicksBeforeRefresh, cfg.MaxScrollsWithoutHearts)

	device := auto.NewRobotDevice()
	locatorOpts := []vision.Option{vision.WithLogger(log)}
	if cfg.SnapshotDir != "" {
		locatorOpts = append(locatorOpts, vision.WithSnapshotDir(cfg.SnapshotDir))
	}

	e := engine.New(cfg, engine.Deps{
		Device:   device,
		Locator:  vision.NewLocator(device, locatorOpts...),
		Clock:    auto.RealClock{},
		Operator: prompter,
		Probe:    process.Probe{},
		Log:      log,
	})
	if err := e.Run(ctx); err != nil {
		return 1
	}
	return 0
}

// applyFlags 命令行参数优先级高于配置文件和环境变量
func applyFlags(cfg *config.Config, opts *options, set map[string]bool) {
	if set["url"] {
		cfg.TargetURL = opts.url
	}
	if set["color"] {
		cfg.HeartColor = opts.color
	}
	if set["max-clicks"] {
		cfg.MaxClicksBeforeRefresh = opts.maxClicks
	}
	if set["max-scrolls"] {
		cfg.MaxScrollsWithoutHearts = opts.maxScrolls
	}
	if set["assets"] {
		cfg.AssetDir = opts.assetDir
	}
	if set["filter"] {
		cfg.UseColorFilter = opts.colorFilter
	}
	if set["snapshots"] {
		cfg.SnapshotDir = opts.snapshotDir
	}
	if set["log-level"] {
		cfg.LogLevel = opts.logLevel
	}
	if set["log-file"] {
		cfg.LogFile = opts.logFile
	}
}

// askMissing 询问缺失的参数；interactive 时四项全部询问
func askMissing(ctx context.Context, p *console.Prompter, cfg *config.Config, interactive bool) error {
	var err error
	if interactive || cfg.TargetURL == "" {
		if cfg.TargetURL, err = p.AskURL(ctx); err != nil {
			return err
		}
	}
	if interactive || (cfg.HeartColor != config.ColorGrey && cfg.HeartColor != config.ColorPink) {
		if cfg.HeartColor, err = p.AskColor(ctx); err != nil {
			return err
		}
	}
	if interactive || cfg.MaxClicksBeforeRefresh <= 0 {
		if cfg.MaxClicksBeforeRefresh, err = p.AskPositiveInt(ctx, "刷新前最大点击数"); err != nil {
			return err
		}
	}
	if interactive || cfg.MaxScrollsWithoutHearts <= 0 {
		if cfg.MaxScrollsWithoutHearts, err = p.AskPositiveInt(ctx, "无心形时刷新前最大滚动数"); err != nil {
			return err
		}
	}
	return nil
}

// printVersion 打印版本信息
func printVersion() {
	fmt.Printf("Heart Clicker v%s\n", Version)
	fmt.Printf("Build Time: %s\n", BuildTime)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}

// printHelp 打印帮助信息
func printHelp() {
	fmt.Println("Heart Clicker - 自动点击页面上的心形图标")
	fmt.Println()
	fmt.Println("用法:")
	fmt.Println("  heartclicker [选项]")
	fmt.Println()
	fmt.Println("选项:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("示例:")
	fmt.Println("  # 点击粉色心形，每 50 次点击刷新一次")
	fmt.Println("  heartclicker -url https://example.com/feed -color pink -max-clicks 50")
	fmt.Println()
	fmt.Println("  # 逐项询问参数并保存")
	fmt.Println("  heartclicker -i -save")
	fmt.Println()
	fmt.Printf("环境变量前缀: %s (可写在 .env 中)\n", config.EnvPrefix)
	fmt.Printf("配置文件位置: %s\n", config.NewManager().GetConfigFile())
}

// checkMacOSPermissions 检查 macOS 权限
func checkMacOSPermissions(log *logger.Logger) {
	status := permissions.Check()
	if status.AllGranted() {
		log.Info("所需权限已授予")
		return
	}
	log.Warn("%s", permissions.Instructions(status))
	permissions.OpenSettings()
}
