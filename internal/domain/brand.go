package domain

// BrandEntry 是本地品牌注册表中的一条配置。
// JSON 字段名与既有 brands_config.json 保持兼容。
type BrandEntry struct {
	Name     string `json:"name"`
	Aadvid   string `json:"aadvid"`
	Industry string `json:"industry"`
	YuntuURL string `json:"yuntu_url"`
}

// YuntuURLFor 由 aadvid 推导云图热门内容页 URL（注册表写入时生成一次）。
func YuntuURLFor(aadvid string) string {
	return "https://yuntu.oceanengine.com/yuntu_brand/ecom/strategy/medium/talent_markting/hotcontent?aadvid=" + aadvid
}
