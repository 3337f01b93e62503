package dto

// SearchVideoRequest 搜索请求参数
type SearchVideoRequest struct {
	Q        string `form:"q"`
	Subject  string `form:"subject"`
	Grade    string `form:"grade"`
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}

// SearchVideoData 搜索结果
type SearchVideoData struct {
	Videos     []VideoInfo `json:"videos"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int64       `json:"totalPages"`
	Source     string      `json:"source"` // elasticsearch / database
}

// SyncResult 批量重建索引结果
type SyncResult struct {
	Success int `json:"success"`
	Failed  int `json:"failed"`
}
