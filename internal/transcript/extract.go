package transcript

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/clawbot/dysync/internal/domain"
	"github.com/clawbot/dysync/internal/tikhub"
)

const (
	groqBaseURL = "https://api.groq.com/openai/v1"
	groqModel   = "whisper-large-v3"
	openaiModel = "whisper-1"
)

// Extractor 把一个视频变成口播文本。
//
// 管线：TikHub 取播放地址 → 下载到临时目录 → ffmpeg 抽单声道 16kHz
// 音轨 → Whisper 转写（Groq 优先，OpenAI 兜底）。串行、阻塞、
// 临时文件用完即删。
type Extractor struct {
	TikHub   *tikhub.Client
	Download *http.Client

	GroqAPIKey   string
	OpenAIAPIKey string

	// Logf 输出阶段进度；默认丢弃。
	Logf func(format string, args ...any)

	// FFmpegPath 可覆盖（测试/非标准安装）；空值用 PATH 里的 ffmpeg。
	FFmpegPath string
}

func (e *Extractor) logf(format string, args ...any) {
	if e.Logf != nil {
		e.Logf(format, args...)
	}
}

// Extract 执行完整管线，返回转写结果。
func (e *Extractor) Extract(ctx context.Context, id domain.VideoID) (*domain.Transcript, error) {
	if e.GroqAPIKey == "" && e.OpenAIAPIKey == "" {
		return nil, errors.New("未配置语音转写密钥（GROQ_API_KEY 或 OPENAI_API_KEY）")
	}

	playURL, err := e.TikHub.FetchPlayAddr(ctx, id)
	if err != nil {
		return nil, err
	}

	tmpDir, err := os.MkdirTemp("", "dysync-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	videoPath := filepath.Join(tmpDir, "video.mp4")
	e.logf("下载视频 %s …", id)
	if err := e.download(ctx, playURL, videoPath); err != nil {
		return nil, fmt.Errorf("下载视频失败：%w", err)
	}

	audioPath := filepath.Join(tmpDir, "audio.mp3")
	e.logf("提取音频…")
	if err := e.extractAudio(ctx, videoPath, audioPath); err != nil {
		return nil, err
	}

	e.logf("语音转写…")
	text, err := e.transcribe(ctx, audioPath)
	if err != nil {
		return nil, err
	}

	return &domain.Transcript{
		VideoID:     string(id),
		Text:        text,
		Method:      "whisper",
		ExtractedAt: time.Now().Format(time.RFC3339),
		CharCount:   len([]rune(text)),
	}, nil
}

func (e *Extractor) download(ctx context.Context, rawURL, dst string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}

	client := e.Download
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return err
	}
	return f.Sync()
}

// extractAudio 调 ffmpeg 抽音轨：丢视频流、mp3 编码、16kHz 单声道
// （Whisper 的推荐输入，也显著缩小上传体积）。
func (e *Extractor) extractAudio(ctx context.Context, in, out string) error {
	ffmpeg := e.FFmpegPath
	if ffmpeg == "" {
		ffmpeg = "ffmpeg"
	}

	cmd := exec.CommandContext(ctx, ffmpeg,
		"-y",
		"-i", in,
		"-vn",
		"-acodec", "libmp3lame",
		"-ar", "16000",
		"-ac", "1",
		out,
	)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg 提取音频失败：%w（输出：%s）", err, tail(string(output), 300))
	}
	return nil
}

// transcribe 先试 Groq（快且便宜），失败或未配置时退到 OpenAI。
func (e *Extractor) transcribe(ctx context.Context, audioPath string) (string, error) {
	var lastErr error

	if e.GroqAPIKey != "" {
		text, err := whisperOnce(ctx, audioPath, e.GroqAPIKey, groqBaseURL, groqModel)
		if err == nil {
			return text, nil
		}
		lastErr = err
		e.logf("Groq 转写失败：%v", err)
	}

	if e.OpenAIAPIKey != "" {
		text, err := whisperOnce(ctx, audioPath, e.OpenAIAPIKey, "", openaiModel)
		if err == nil {
			return text, nil
		}
		lastErr = err
		e.logf("OpenAI 转写失败：%v", err)
	}

	return "", fmt.Errorf("语音转写失败：%w", lastErr)
}

func whisperOnce(ctx context.Context, audioPath, apiKey, baseURL, model string) (string, error) {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := openai.NewClient(opts...)

	f, err := os.Open(audioPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	resp, err := client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		File:     f,
		Model:    openai.AudioModel(model),
		Language: openai.String("zh"),
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
