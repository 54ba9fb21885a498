package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/clawbot/dysync/internal/app/run"
	"github.com/clawbot/dysync/internal/brands"
	"github.com/clawbot/dysync/internal/config"
	"github.com/clawbot/dysync/internal/domain"
	"github.com/clawbot/dysync/internal/feishu"
	"github.com/clawbot/dysync/internal/infra/fsx"
	"github.com/clawbot/dysync/internal/infra/httpx"
	"github.com/clawbot/dysync/internal/tikhub"
	"github.com/clawbot/dysync/internal/transcript"
	"github.com/clawbot/dysync/internal/vid"
	"github.com/clawbot/dysync/internal/yuntu"
)

func main() {
	args, verbose := stripVerbose(os.Args[1:])
	if len(args) == 0 || isHelp(args[0]) {
		printUsage()
		return
	}

	var code int
	switch args[0] {
	case "query":
		code = queryCmd(args[1:], verbose)
	case "sync":
		code = syncCmd(args[1:], verbose)
	case "translate":
		code = translateCmd(args[1:], verbose)
	case "script":
		code = scriptCmd(args[1:], verbose)
	case "brands":
		code = brandsCmd(args[1:])
	case "yuntu":
		code = yuntuCmd(args[1:], verbose)
	default:
		fmt.Fprintf(os.Stderr, "未知命令：%q\n\n", args[0])
		printUsage()
		code = 2
	}
	if code != 0 {
		os.Exit(code)
	}
}

// stripVerbose 把全局 -v/--verbose 从任意位置摘出来。
func stripVerbose(args []string) ([]string, bool) {
	out := make([]string, 0, len(args))
	verbose := false
	for _, a := range args {
		if a == "-v" || a == "--verbose" {
			verbose = true
			continue
		}
		out = append(out, a)
	}
	return out, verbose
}

// debugLogf 返回调试日志函数：-v 时写 stderr，否则丢弃。
func debugLogf(verbose bool) func(string, ...any) {
	if !verbose {
		return func(string, ...any) {}
	}
	return func(format string, args ...any) {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

// ---------------------------------------------------------------------------
// query
// ---------------------------------------------------------------------------

func queryCmd(args []string, verbose bool) int {
	fs := newFlagSet("query")
	videoID := fs.str("--video-id")
	rawURL := fs.str("--url")
	output := fs.str("--output")
	if err := fs.parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "参数错误：%v\n\n", err)
		printQueryUsage()
		return 2
	}
	if fs.help {
		printQueryUsage()
		return 0
	}
	if (*videoID == "") == (*rawURL == "") {
		fmt.Fprintln(os.Stderr, "参数错误：--video-id 与 --url 必须二选一")
		return 2
	}

	cfg, err := config.Load(false)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ctx := context.Background()
	logf := debugLogf(verbose)

	id, ok := resolveInput(ctx, cfg, *videoID, *rawURL)
	if !ok {
		fmt.Fprintln(os.Stderr, "无法从输入中解析视频 ID")
		return 1
	}
	logf("解析到视频 ID：%s", id)

	tc, err := newTikHubClient(cfg, logf)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	m, err := tc.FetchVideo(ctx, id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "获取视频失败：%v\n", err)
		return 1
	}

	if wantJSON(*output) {
		emitJSON(m)
		return 0
	}
	printMetadata(m)
	return 0
}

func resolveInput(ctx context.Context, cfg *config.Config, videoID, rawURL string) (domain.VideoID, bool) {
	if videoID != "" {
		return domain.ParseVideoID(videoID)
	}
	rc, err := httpx.NewRedirectClient(cfg.ProxyURL)
	if err != nil {
		return "", false
	}
	return vid.Resolve(ctx, rawURL, rc)
}

func printMetadata(m *domain.VideoMetadata) {
	fmt.Printf("视频ID:   %s\n", m.AwemeID)
	fmt.Printf("标题:     %s\n", m.Desc)
	fmt.Printf("作者:     %s（%s）\n", m.Author.Nickname, m.Author.UniqueID)
	if m.CreateTime > 0 {
		fmt.Printf("发布时间: %s\n", time.Unix(m.CreateTime, 0).Format("2006-01-02 15:04:05"))
	}
	fmt.Printf("时长:     %.2f 秒\n", m.DurationSeconds())
	fmt.Printf("播放量:   %d\n", m.Statistics.PlayCount)
	fmt.Printf("点赞数:   %d\n", m.Statistics.DiggCount)
	fmt.Printf("评论数:   %d\n", m.Statistics.CommentCount)
	fmt.Printf("分享数:   %d\n", m.Statistics.ShareCount)
	fmt.Printf("收藏数:   %d\n", m.Statistics.CollectCount)
	if line := m.HashtagLine(); line != "" {
		fmt.Printf("话题标签: %s\n", line)
	}
	if len(m.Promotions) > 0 {
		p := m.Promotions[0]
		fmt.Printf("挂车商品: %s（¥%.2f）\n", p.Title, float64(p.Price)/100)
	}
	fmt.Printf("数据来源: %s\n", m.DataSource)
	fmt.Printf("链接:     %s\n", m.ShareURL)
}

// ---------------------------------------------------------------------------
// sync
// ---------------------------------------------------------------------------

func syncCmd(args []string, verbose bool) int {
	fs := newFlagSet("sync")
	appToken := fs.str("--app-token")
	tableID := fs.str("--table-id")
	viewID := fs.str("--view-id")
	force := fs.boolFlag("--force")
	output := fs.str("--output")
	if err := fs.parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "参数错误：%v\n\n", err)
		printSyncUsage()
		return 2
	}
	if fs.help {
		printSyncUsage()
		return 0
	}
	if *appToken == "" || *tableID == "" {
		fmt.Fprintln(os.Stderr, "参数错误：--app-token 与 --table-id 必填")
		return 2
	}

	cfg, err := config.Load(true)
	if err != nil {
		emitSyncReport(domain.SyncReport{
			Status:    "error",
			Error:     err.Error(),
			ErrorCode: configErrorCode(err),
		}, *output)
		return 1
	}

	logf := debugLogf(verbose)
	fc, tc, err := newClients(cfg, logf)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	var obs run.Observer
	if isTTY(os.Stderr) {
		obs = newProgressUI(os.Stderr)
	}

	rep := run.Execute(context.Background(), fc, tc, run.Options{
		AppToken: *appToken,
		TableID:  *tableID,
		ViewID:   *viewID,
		Force:    *force,
	}, obs)

	emitSyncReport(rep, *output)
	if rep.Status != "success" {
		return 1
	}
	return 0
}

func configErrorCode(err error) string {
	if ce, ok := err.(*config.Error); ok {
		return ce.Code
	}
	return domain.ErrCodeConfigInvalid
}

func emitSyncReport(rep domain.SyncReport, output string) {
	if wantJSON(output) {
		emitJSON(rep)
		// 摘要走 stderr，不污染 stdout 的 JSON。
		fmt.Fprintf(os.Stderr, "完成：records=%d videos=%d updated=%d skipped=%d failed=%d unresolved=%d\n",
			rep.TotalRecords, rep.UniqueVideos, rep.Updated, rep.Skipped, rep.Failed, rep.Unresolved)
		return
	}
	if rep.Status != "success" {
		fmt.Fprintf(os.Stderr, "同步失败：%s（%s）\n", rep.Error, rep.ErrorCode)
		return
	}
	fmt.Printf("同步完成：records=%d videos=%d updated=%d skipped=%d failed=%d unresolved=%d\n",
		rep.TotalRecords, rep.UniqueVideos, rep.Updated, rep.Skipped, rep.Failed, rep.Unresolved)
}

// ---------------------------------------------------------------------------
// translate
// ---------------------------------------------------------------------------

func translateCmd(args []string, verbose bool) int {
	fs := newFlagSet("translate")
	content := fs.str("--content")
	lang := fs.str("--lang")
	output := fs.str("--output")
	if err := fs.parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "参数错误：%v\n", err)
		return 2
	}
	if fs.help {
		printTranslateUsage()
		return 0
	}
	if *content == "" {
		fmt.Fprintln(os.Stderr, "参数错误：--content 必填")
		return 2
	}

	cfg, err := config.Load(false)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	tc, err := newTikHubClient(cfg, debugLogf(verbose))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	tr, err := tc.TranslateContent(context.Background(), *content, *lang)
	if err != nil {
		fmt.Fprintf(os.Stderr, "翻译失败：%v\n", err)
		return 1
	}

	if wantJSON(*output) {
		emitJSON(tr)
		return 0
	}
	fmt.Println(tr.Translated)
	return 0
}

// ---------------------------------------------------------------------------
// script
// ---------------------------------------------------------------------------

func scriptCmd(args []string, verbose bool) int {
	fs := newFlagSet("script")
	videoID := fs.str("--video-id")
	rawURL := fs.str("--url")
	output := fs.str("--output")
	savePath := fs.str("--save")
	brandKey := fs.str("--brand")
	if err := fs.parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "参数错误：%v\n\n", err)
		printScriptUsage()
		return 2
	}
	if fs.help {
		printScriptUsage()
		return 0
	}
	if (*videoID == "") == (*rawURL == "") {
		fmt.Fprintln(os.Stderr, "参数错误：--video-id 与 --url 必须二选一")
		return 2
	}

	cfg, err := config.Load(false)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ctx := context.Background()
	logf := debugLogf(verbose)

	id, ok := resolveInput(ctx, cfg, *videoID, *rawURL)
	if !ok {
		fmt.Fprintln(os.Stderr, "无法从输入中解析视频 ID")
		return 1
	}

	tr, err := obtainTranscript(ctx, cfg, id, *brandKey, logf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "获取脚本失败：%v\n", err)
		return 1
	}

	if *savePath != "" {
		if err := saveTranscript(*savePath, tr); err != nil {
			fmt.Fprintf(os.Stderr, "保存失败：%v\n", err)
			return 1
		}
		fmt.Fprintf(os.Stderr, "已保存：%s\n", *savePath)
	}

	switch *output {
	case "json":
		emitJSON(tr)
	case "srt":
		fmt.Print(transcript.ToSRT(tr.Text))
	default:
		if *output == "" && !isTTY(os.Stdout) {
			emitJSON(tr)
		} else {
			fmt.Println(tr.Text)
		}
	}
	return 0
}

// obtainTranscript 按优先级取脚本：云图缓存 → 云图抓取（需 --brand 且
// 浏览器可用）→ Whisper 语音转写。
func obtainTranscript(ctx context.Context, cfg *config.Config, id domain.VideoID, brandKey string, logf func(string, ...any)) (*domain.Transcript, error) {
	cache, err := transcript.LoadCache(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	if vs, ok := cache.Find(id); ok && vs.RawScript != "" {
		logf("命中云图脚本缓存")
		return &domain.Transcript{
			VideoID:     string(id),
			Text:        vs.RawScript,
			Method:      "yuntu_cache",
			ExtractedAt: time.Now().Format(time.RFC3339),
			CharCount:   len([]rune(vs.RawScript)),
		}, nil
	}

	tc, err := newTikHubClient(cfg, logf)
	if err != nil {
		return nil, err
	}

	if brandKey != "" {
		if tr, ok := scriptFromYuntu(ctx, cfg, tc, cache, id, brandKey, logf); ok {
			return tr, nil
		}
	}

	dc, err := httpx.NewDownloadClient(cfg.ProxyURL)
	if err != nil {
		return nil, err
	}
	ex := &transcript.Extractor{
		TikHub:       tc,
		Download:     dc,
		GroqAPIKey:   cfg.GroqAPIKey,
		OpenAIAPIKey: cfg.OpenAIAPIKey,
		Logf:         logf,
	}
	return ex.Extract(ctx, id)
}

// scriptFromYuntu 临时拉一次云图页面找脚本；找到就顺手写回缓存。
func scriptFromYuntu(ctx context.Context, cfg *config.Config, tc *tikhub.Client, cache *transcript.Cache, id domain.VideoID, brandKey string, logf func(string, ...any)) (*domain.Transcript, bool) {
	reg, err := brands.Load(cfg.DataDir)
	if err != nil {
		logf("读取品牌注册表失败：%v", err)
		return nil, false
	}
	brandURL, ok := reg.URL(brandKey)
	if !ok {
		logf("未知品牌：%s", brandKey)
		return nil, false
	}

	svc := &yuntu.Service{
		Fetcher: &yuntu.Browser{ProxyURL: cfg.ProxyURL, Logf: logf},
		TikHub:  tc,
		Logf:    logf,
	}
	scripts := svc.CollectScripts(ctx, brandURL, []domain.VideoID{id})
	if len(scripts) == 0 || scripts[0].RawScript == "" {
		return nil, false
	}

	cache.Put(scripts[0])
	if err := cache.Save(); err != nil {
		logf("写脚本缓存失败：%v", err)
	}
	return &domain.Transcript{
		VideoID:     string(id),
		Text:        scripts[0].RawScript,
		Method:      "yuntu_cache",
		ExtractedAt: time.Now().Format(time.RFC3339),
		CharCount:   len([]rune(scripts[0].RawScript)),
	}, true
}

func saveTranscript(path string, tr *domain.Transcript) error {
	b, err := json.MarshalIndent(tr, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	return fsx.WriteFileAtomicReplace(filepath.Dir(path), filepath.Base(path), b)
}

// ---------------------------------------------------------------------------
// brands
// ---------------------------------------------------------------------------

func brandsCmd(args []string) int {
	for _, a := range args {
		if isHelp(a) {
			printBrandsUsage()
			return 0
		}
	}

	cfg, err := config.Load(false)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	reg, err := brands.Load(cfg.DataDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "参数错误：需要 --list、--add 或 --url")
		printBrandsUsage()
		return 2
	}

	switch args[0] {
	case "--list":
		keys := reg.Keys()
		if len(keys) == 0 {
			fmt.Println("（暂无品牌，用 --add 添加）")
			return 0
		}
		for _, k := range keys {
			e, _ := reg.Get(k)
			fmt.Printf("%s: %s\n", k, e.Name)
			fmt.Printf("    aadvid: %s\n", e.Aadvid)
			if e.Industry != "" {
				fmt.Printf("    行业: %s\n", e.Industry)
			}
		}
		return 0

	case "--add":
		rest := args[1:]
		if len(rest) < 3 {
			fmt.Fprintln(os.Stderr, "参数错误：--add 需要 KEY NAME AADVID [INDUSTRY]")
			return 2
		}
		e := domain.BrandEntry{Name: rest[1], Aadvid: rest[2]}
		if len(rest) > 3 {
			e.Industry = rest[3]
		}
		if err := reg.Add(rest[0], e); err != nil {
			fmt.Fprintf(os.Stderr, "添加失败：%v\n", err)
			return 1
		}
		fmt.Printf("已添加品牌：%s（%s）\n", rest[0], e.Name)
		return 0

	case "--url":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "参数错误：--url 需要 KEY")
			return 2
		}
		u, ok := reg.URL(args[1])
		if !ok {
			fmt.Fprintf(os.Stderr, "未知品牌：%s\n", args[1])
			return 1
		}
		fmt.Println(u)
		return 0

	default:
		fmt.Fprintf(os.Stderr, "未知参数 %q\n\n", args[0])
		printBrandsUsage()
		return 2
	}
}

// ---------------------------------------------------------------------------
// yuntu
// ---------------------------------------------------------------------------

func yuntuCmd(args []string, verbose bool) int {
	fs := newFlagSet("yuntu")
	brandKey := fs.str("--brand")
	appToken := fs.str("--app-token")
	tableID := fs.str("--table-id")
	output := fs.str("--output")
	videoIDs := fs.strList("--video-id")
	if err := fs.parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "参数错误：%v\n\n", err)
		printYuntuUsage()
		return 2
	}
	if fs.help {
		printYuntuUsage()
		return 0
	}
	if *brandKey == "" {
		fmt.Fprintln(os.Stderr, "参数错误：--brand 必填")
		return 2
	}
	if (*appToken == "") != (*tableID == "") {
		fmt.Fprintln(os.Stderr, "参数错误：--app-token 与 --table-id 需成对出现")
		return 2
	}
	syncTable := *appToken != ""

	cfg, err := config.Load(syncTable)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	logf := debugLogf(verbose)
	reg, err := brands.Load(cfg.DataDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	brandURL, ok := reg.URL(*brandKey)
	if !ok {
		fmt.Fprintf(os.Stderr, "未知品牌：%s\n", *brandKey)
		return 1
	}

	tc, err := newTikHubClient(cfg, logf)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ids := make([]domain.VideoID, 0, len(*videoIDs))
	for _, raw := range *videoIDs {
		id, ok := domain.ParseVideoID(raw)
		if !ok {
			fmt.Fprintf(os.Stderr, "非法视频 ID：%s\n", raw)
			return 2
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		// 不指定 ID 时抓品牌页本身（页面上默认展示的热门视频）。
		ids = []domain.VideoID{""}
	}

	svc := &yuntu.Service{
		Fetcher: &yuntu.Browser{ProxyURL: cfg.ProxyURL, Logf: logf},
		TikHub:  tc,
		Logf: func(format string, a ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", a...)
		},
	}
	scripts := svc.CollectScripts(context.Background(), brandURL, ids)
	if len(scripts) == 0 {
		fmt.Fprintln(os.Stderr, "未采集到任何脚本")
		return 1
	}

	// 刷新本地脚本缓存（script 命令的缓存命中来源）。
	cache, err := transcript.LoadCache(cfg.DataDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	for _, vs := range scripts {
		cache.Put(vs)
	}
	if err := cache.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "写脚本缓存失败：%v\n", err)
		return 1
	}

	if syncTable {
		api, err := httpx.NewAPIClient(cfg.ProxyURL)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fc := feishu.NewClient(cfg.FeishuAppID, cfg.FeishuAppSecret, api)
		fc.Logf = logf
		if err := fc.Authenticate(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "飞书认证失败：%v\n", err)
			return 1
		}
		n := yuntu.SyncToFeishu(context.Background(), fc, *appToken, *tableID, scripts, func(format string, a ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", a...)
		})
		fmt.Fprintf(os.Stderr, "已同步 %d/%d 条到多维表格\n", n, len(scripts))
	}

	if wantJSON(*output) {
		emitJSON(scripts)
		return 0
	}
	for _, vs := range scripts {
		fmt.Printf("%s [%s] %s\n", vs.VideoID, vs.Source, vs.Title)
	}
	return 0
}

// ---------------------------------------------------------------------------
// 共用
// ---------------------------------------------------------------------------

func newClients(cfg *config.Config, logf func(string, ...any)) (*feishu.Client, *tikhub.Client, error) {
	api, err := httpx.NewAPIClient(cfg.ProxyURL)
	if err != nil {
		return nil, nil, fmt.Errorf("初始化 HTTP client 失败：%w", err)
	}

	fc := feishu.NewClient(cfg.FeishuAppID, cfg.FeishuAppSecret, api)
	fc.Logf = logf

	tc := tikhub.NewClient(cfg.TikHubAPIKey, api)
	tc.DetailURL = cfg.TikHubDetailURL
	tc.Logf = logf
	return fc, tc, nil
}

func newTikHubClient(cfg *config.Config, logf func(string, ...any)) (*tikhub.Client, error) {
	api, err := httpx.NewAPIClient(cfg.ProxyURL)
	if err != nil {
		return nil, fmt.Errorf("初始化 HTTP client 失败：%w", err)
	}
	tc := tikhub.NewClient(cfg.TikHubAPIKey, api)
	tc.DetailURL = cfg.TikHubDetailURL
	tc.Logf = logf
	return tc, nil
}

// wantJSON 决定 stdout 形态：显式 --output 优先，否则非 TTY 输出 JSON。
func wantJSON(output string) bool {
	switch output {
	case "json":
		return true
	case "text":
		return false
	}
	return !isTTY(os.Stdout)
}

func emitJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func isTTY(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func isHelp(s string) bool {
	return s == "-h" || s == "--help" || s == "help"
}

// flagSet 是最小化的 --key value / --key=value 解析器。
type flagSet struct {
	name  string
	strs  map[string]*string
	bools map[string]*bool
	lists map[string]*[]string
	help  bool
}

func newFlagSet(name string) *flagSet {
	return &flagSet{
		name:  name,
		strs:  map[string]*string{},
		bools: map[string]*bool{},
		lists: map[string]*[]string{},
	}
}

func (f *flagSet) str(name string) *string {
	v := new(string)
	f.strs[name] = v
	return v
}

func (f *flagSet) boolFlag(name string) *bool {
	v := new(bool)
	f.bools[name] = v
	return v
}

func (f *flagSet) strList(name string) *[]string {
	v := new([]string)
	f.lists[name] = v
	return v
}

func (f *flagSet) parse(args []string) error {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if isHelp(a) {
			f.help = true
			return nil
		}

		name, val, hasVal := a, "", false
		if j := strings.IndexByte(a, '='); j >= 0 {
			name, val, hasVal = a[:j], a[j+1:], true
		}

		if p, ok := f.bools[name]; ok {
			if hasVal {
				switch val {
				case "true":
					*p = true
				case "false":
					*p = false
				default:
					return fmt.Errorf("%s 只能是 true 或 false，实际是 %q", name, val)
				}
			} else {
				*p = true
			}
			continue
		}

		takeValue := func() (string, error) {
			if hasVal {
				return val, nil
			}
			if i+1 >= len(args) {
				return "", fmt.Errorf("%s 需要一个值", name)
			}
			i++
			return args[i], nil
		}

		if p, ok := f.strs[name]; ok {
			v, err := takeValue()
			if err != nil {
				return err
			}
			*p = v
			continue
		}
		if p, ok := f.lists[name]; ok {
			v, err := takeValue()
			if err != nil {
				return err
			}
			*p = append(*p, v)
			continue
		}
		return fmt.Errorf("未知参数 %q", a)
	}
	return nil
}

// ---------------------------------------------------------------------------
// 帮助文本
// ---------------------------------------------------------------------------

func printUsage() {
	fmt.Fprint(os.Stdout, `用法：
  dysync <命令> [参数] [-v]

命令：
  query      查询单个视频的元数据
  sync       把飞书表格里的视频数据同步到最新
  translate  调用内容翻译接口
  script     获取视频口播脚本（云图缓存优先，否则语音转写）
  brands     管理本地品牌注册表
  yuntu      抓取云图品牌热门内容的视频脚本

环境变量：
  DOUYIN_API_KEY     TikHub API 密钥（必需）
  FEISHU_APP_ID      飞书应用 ID（sync / yuntu 写表时必需）
  FEISHU_APP_SECRET  飞书应用密钥（同上）
  GROQ_API_KEY       Groq 语音转写密钥（script）
  OPENAI_API_KEY     OpenAI 语音转写密钥（script 兜底）
  DOUYIN_API_URL     覆盖视频详情接口地址（可选）
  DYSYNC_DATA_DIR    数据目录（默认 ./data）
  DYSYNC_PROXY_URL   代理地址 http/https/socks5（可选）

使用 "dysync <命令> --help" 查看详细说明。
`)
}

func printQueryUsage() {
	fmt.Fprint(os.Stdout, `用法：
  dysync query {--video-id ID | --url URL} [--output text|json]

参数：
  --video-id  19 位视频 ID
  --url       视频链接（支持 v.douyin.com 短链与分享文本）
  --output    输出格式；默认 TTY 上为 text，否则为 json
`)
}

func printSyncUsage() {
	fmt.Fprint(os.Stdout, `用法：
  dysync sync --app-token TOKEN --table-id ID [--view-id VIEW] [--force] [--output text|json]

参数：
  --app-token  多维表格 app token
  --table-id   数据表 ID
  --view-id    视图 ID（可选）
  --force      无视完整性判定，全量刷新
  --output     输出格式；默认 TTY 上为 text，否则为 json
`)
}

func printTranslateUsage() {
	fmt.Fprint(os.Stdout, `用法：
  dysync translate --content TEXT [--lang CODE] [--output text|json]

参数：
  --content  待翻译内容（超过 5000 字自动截断）
  --lang     目标语言，默认 zh-Hans
`)
}

func printScriptUsage() {
	fmt.Fprint(os.Stdout, `用法：
  dysync script {--video-id ID | --url URL} [--output text|json|srt] [--save PATH] [--brand KEY]

参数：
  --video-id  19 位视频 ID
  --url       视频链接
  --output    输出格式；srt 按语速估算时间轴
  --save      把结果 JSON 原子写入指定路径
  --brand     缓存未命中时尝试从该品牌的云图页面抓脚本
`)
}

func printBrandsUsage() {
	fmt.Fprint(os.Stdout, `用法：
  dysync brands --list
  dysync brands --add KEY NAME AADVID [INDUSTRY]
  dysync brands --url KEY
`)
}

func printYuntuUsage() {
	fmt.Fprint(os.Stdout, `用法：
  dysync yuntu --brand KEY [--video-id ID ...] [--app-token T --table-id ID] [--output text|json]

参数：
  --brand      品牌键（见 dysync brands --list）
  --video-id   指定要查的视频 ID，可重复；缺省抓品牌页默认展示的内容
  --app-token  同步到多维表格（与 --table-id 成对）
  --table-id   数据表 ID
`)
}
