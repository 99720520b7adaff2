package model

import "fmt"

// 搜索文档类型。
const (
	SearchDocPost    = "post"
	SearchDocProject = "project"
)

// SearchDocument 代表写入 Elasticsearch 站点搜索索引的一条文档。
type SearchDocument struct {
	DocType   string `json:"doc_type"` // "post" 或 "project"
	RefID     uint   `json:"ref_id"`
	Slug      string `json:"slug"`
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	Content   string `json:"content"`
	Tags      string `json:"tags"`
	Published bool   `json:"published"`
}

// DocID 返回该文档在索引中的确定性 ID，保证同一条内容覆盖写入。
func (d SearchDocument) DocID() string {
	return fmt.Sprintf("%s-%d", d.DocType, d.RefID)
}
