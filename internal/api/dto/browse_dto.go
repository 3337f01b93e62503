package dto

// VideoRow 分组后的一行视频
type VideoRow struct {
	Title  string      `json:"title"`
	Videos []VideoInfo `json:"videos"`
}

// FacetInfo 学科 / 年级统计
type FacetInfo struct {
	Name      string `json:"name"`
	Count     int    `json:"count"`
	Thumbnail string `json:"thumbnail"`
}

// HomeData 首页
type HomeData struct {
	Hero     *VideoInfo  `json:"hero"`
	Episodes []VideoInfo `json:"episodes"`
	Rows     []VideoRow  `json:"rows"`
}

// SubjectsData 学科总览
type SubjectsData struct {
	Subjects    []FacetInfo `json:"subjects"`
	TotalVideos int         `json:"totalVideos"`
}

// SubjectData 单个学科页
type SubjectData struct {
	Subject  string      `json:"subject"`
	Featured *VideoInfo  `json:"featured"`
	Videos   []VideoInfo `json:"videos"`
	Grades   []VideoRow  `json:"grades"`
}

// GradesData 年级总览
type GradesData struct {
	Grades      []FacetInfo `json:"grades"`
	Featured    []VideoInfo `json:"featured"`
	TotalVideos int         `json:"totalVideos"`
}

// GradeData 单个年级页
type GradeData struct {
	Grade    string      `json:"grade"`
	Hero     *VideoInfo  `json:"hero"`
	Videos   []VideoInfo `json:"videos"`
	Subjects []VideoRow  `json:"subjects"`
}

// VideoDetailData 视频详情页
type VideoDetailData struct {
	Video            VideoInfo   `json:"video"`
	RelatedBySubject []VideoInfo `json:"relatedBySubject"`
	RelatedByGrade   []VideoInfo `json:"relatedByGrade"`
	IsFavorited      bool        `json:"isFavorited"`
}

// NewData 新上架页
type NewData struct {
	NewReleases  []VideoInfo `json:"newReleases"`
	Popular      []VideoInfo `json:"popular"`
	Featured     []VideoInfo `json:"featured"`
	Top10        []VideoInfo `json:"top10"`
	NewBySubject []VideoRow  `json:"newBySubject"`
}

// MyListQuery 我的片单筛选参数
type MyListQuery struct {
	Subject string `form:"subject"`
	Q       string `form:"q"`
	Sort    string `form:"sort" binding:"omitempty,oneof=recent title subject"`
	UserID  string `form:"userId" binding:"omitempty,max=128"`
}

// MyListData 我的片单
type MyListData struct {
	Videos        []VideoInfo `json:"videos"`
	Total         int         `json:"total"`
	TotalSeconds  int64       `json:"totalSeconds"`
	TotalDuration string      `json:"totalDuration"`
	Subjects      []FacetInfo `json:"subjects"`
	BySubject     []VideoRow  `json:"bySubject"`
	ByGrade       []VideoRow  `json:"byGrade"`
}
