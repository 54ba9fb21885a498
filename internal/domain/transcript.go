package domain

// ScriptSegment 是脚本中带标签的一个段落（标签形如「开场」「商品卖点」）。
type ScriptSegment struct {
	Tag     string `json:"tag"`
	Content string `json:"content"`
}

// VideoScript 是云图侧的视频脚本记录。
// 既是抓取器的输出，也是 yuntu_scripts.json 缓存里 videos 数组的元素。
type VideoScript struct {
	VideoID         string          `json:"video_id"`
	Title           string          `json:"title"`
	PublishDate     string          `json:"publish_date"`
	Views           string          `json:"views"`
	InteractionRate string          `json:"interaction_rate"`
	CompletionRate  string          `json:"completion_rate"`
	TalentName      string          `json:"talent_name"`
	TalentFollowers string          `json:"talent_followers"`
	DouyinID        string          `json:"douyin_id"`
	ContentFormula  []string        `json:"content_formula"`
	ScriptSegments  []ScriptSegment `json:"script_segments"`
	RawScript       string          `json:"raw_script"`
	ScrapedAt       string          `json:"scraped_at"`
	Source          string          `json:"source"`     // "yuntu" | "tikhub"
	SourceURL       string          `json:"source_url"`
}

// Transcript 是语音识别得到的口播文本。
type Transcript struct {
	VideoID     string `json:"video_id"`
	Text        string `json:"text"`
	Method      string `json:"method"` // "whisper" | "yuntu_cache"
	ExtractedAt string `json:"extracted_at"`
	CharCount   int    `json:"char_count"`
}
