package domain

// Record 是多维表格中的一行（后端拥有 record_id；本地永不原地修改）。
//
// Fields 的值形态由后端决定：可能是标量、空值，也可能是单元素的富文本
// 列表。内部逻辑不得直接断言形态，统一经 feishu 包的归一化函数读取。
type Record struct {
	ID     string         `json:"record_id"`
	Fields map[string]any `json:"fields"`
}

// RowUpdate 描述对某一行的字段更新（发回后端的增量，不是整行替换）。
// Fields 只包含要写的字段；缺席字段保持原值。
type RowUpdate struct {
	RecordID string         `json:"record_id"`
	Fields   map[string]any `json:"fields"`
}

// VideoGroup 是按 VideoID 聚合后的行分组。
//
// 不变量：
// - Master 是遍历顺序里第一条命中该 ID 的行，也是唯一的更新目标
// - Duplicates 按出现顺序排列，只做记录，永不独立更新
type VideoGroup struct {
	ID         VideoID
	Master     Record
	Duplicates []Record
}
