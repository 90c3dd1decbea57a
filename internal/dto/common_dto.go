package dto

// PaginationQuery 分页查询参数
type PaginationQuery struct {
	Page    int `form:"page,default=1" binding:"min=1"`
	PerPage int `form:"per_page,default=20" binding:"min=1,max=100"`
}

// Offset 计算偏移量
func (p *PaginationQuery) Offset() int {
	return (p.Page - 1) * p.PerPage
}
