package model

// 咨询来源页面类型
const (
	PageTypeService = "SERVICE"
	PageTypeBlog    = "BLOG"
	PageTypeClient  = "CLIENT"
	PageTypeGeneral = "GENERAL"
)

// Inquiry 访客咨询
type Inquiry struct {
	BaseModel
	Lifecycle
	Name     string  `gorm:"type:varchar(255);not null" json:"name"`
	Email    string  `gorm:"type:varchar(255);index" json:"email"`
	Phone    string  `gorm:"type:varchar(50)" json:"phone"`
	Location string  `gorm:"type:varchar(255)" json:"location"`
	Message  string  `gorm:"type:text" json:"message"`
	PageType string  `gorm:"type:varchar(20);not null" json:"page_type"`
	PageName string  `gorm:"type:varchar(500)" json:"page_name"`
	Slug     *string `gorm:"type:varchar(100);index" json:"slug,omitempty"` // 来源页面 slug，不唯一
}

// TableName 指定表名
func (Inquiry) TableName() string {
	return "inquiries"
}
