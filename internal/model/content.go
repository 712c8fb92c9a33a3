package model

// Category 一级分类
type Category struct {
	BaseModel
	Lifecycle
	SEOMeta
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Slug        string `gorm:"type:varchar(100);index" json:"slug"`
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}

// SubCategory 二级分类
type SubCategory struct {
	BaseModel
	Lifecycle
	SEOMeta
	CategoryID  uint64 `gorm:"index;not null" json:"category_id"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Slug        string `gorm:"type:varchar(100);index" json:"slug"`
}

// TableName 指定表名
func (SubCategory) TableName() string {
	return "sub_categories"
}

// Service 服务
type Service struct {
	BaseModel
	Lifecycle
	SEOMeta
	SubCategoryID uint64 `gorm:"index;not null" json:"sub_category_id"`
	Name          string `gorm:"type:varchar(255);not null" json:"name"`
	Description   string `gorm:"type:text" json:"description"`
	IconKey       string `gorm:"type:varchar(500)" json:"icon_key"`  // 对象存储 key，不含域名
	ImageKey      string `gorm:"type:varchar(500)" json:"image_key"` // 对象存储 key，不含域名
	Slug          string `gorm:"type:varchar(100);index" json:"slug"`
	ShowOnHome    bool   `gorm:"not null" json:"show_on_home"`
}

// TableName 指定表名
func (Service) TableName() string {
	return "services"
}

// HideFromHome 取消首页展示
func (s *Service) HideFromHome() {
	s.ShowOnHome = false
}

// ServiceDetail 服务详情段落
type ServiceDetail struct {
	BaseModel
	Lifecycle
	ServiceID    uint64 `gorm:"index;not null" json:"service_id"`
	Heading      string `gorm:"type:varchar(255)" json:"heading"`
	Details      string `gorm:"type:text" json:"details"`
	DisplayOrder int    `gorm:"not null" json:"display_order"`
}

// TableName 指定表名
func (ServiceDetail) TableName() string {
	return "service_details"
}

// GetDisplayOrder 排序值
func (d *ServiceDetail) GetDisplayOrder() int {
	return d.DisplayOrder
}

// ServiceFAQ 服务常见问题
type ServiceFAQ struct {
	BaseModel
	Lifecycle
	ServiceID    uint64 `gorm:"index;not null" json:"service_id"`
	Question     string `gorm:"type:varchar(1000);not null" json:"question"`
	Answer       string `gorm:"type:text" json:"answer"`
	DisplayOrder int    `gorm:"not null" json:"display_order"`
}

// TableName 指定表名
func (ServiceFAQ) TableName() string {
	return "service_faqs"
}

// GetDisplayOrder 排序值
func (f *ServiceFAQ) GetDisplayOrder() int {
	return f.DisplayOrder
}

// Blog 博客文章
type Blog struct {
	BaseModel
	Lifecycle
	SEOMeta
	CategoryID    uint64  `gorm:"index;not null" json:"category_id"`
	SubCategoryID *uint64 `gorm:"index" json:"sub_category_id,omitempty"`
	ServiceID     *uint64 `gorm:"index" json:"service_id,omitempty"`
	Title         string  `gorm:"type:varchar(255);not null" json:"title"`
	Excerpt       string  `gorm:"type:text" json:"excerpt"`
	ImageKey      string  `gorm:"type:varchar(500)" json:"image_key"`
	Slug          string  `gorm:"type:varchar(100);index" json:"slug"`
	ShowOnHome    bool    `gorm:"not null" json:"show_on_home"`
}

// TableName 指定表名
func (Blog) TableName() string {
	return "blogs"
}

// HideFromHome 取消首页展示
func (b *Blog) HideFromHome() {
	b.ShowOnHome = false
}

// BlogDetail 博客正文段落
type BlogDetail struct {
	BaseModel
	Lifecycle
	BlogID       uint64 `gorm:"index;not null" json:"blog_id"`
	Heading      string `gorm:"type:varchar(255)" json:"heading"`
	Content      string `gorm:"type:text" json:"content"`
	ImageKey     string `gorm:"type:varchar(500)" json:"image_key"`
	DisplayOrder int    `gorm:"not null" json:"display_order"`
}

// TableName 指定表名
func (BlogDetail) TableName() string {
	return "blog_details"
}

// GetDisplayOrder 排序值
func (d *BlogDetail) GetDisplayOrder() int {
	return d.DisplayOrder
}

// BlogFAQ 博客常见问题
type BlogFAQ struct {
	BaseModel
	Lifecycle
	BlogID       uint64 `gorm:"index;not null" json:"blog_id"`
	Question     string `gorm:"type:varchar(1000);not null" json:"question"`
	Answer       string `gorm:"type:text" json:"answer"`
	DisplayOrder int    `gorm:"not null" json:"display_order"`
}

// TableName 指定表名
func (BlogFAQ) TableName() string {
	return "blog_faqs"
}

// GetDisplayOrder 排序值
func (f *BlogFAQ) GetDisplayOrder() int {
	return f.DisplayOrder
}

// Client 客户案例
type Client struct {
	BaseModel
	Lifecycle
	SEOMeta
	Name         string `gorm:"type:varchar(255);not null" json:"name"`
	ClientType   string `gorm:"type:varchar(100)" json:"client_type"`
	Description  string `gorm:"type:text" json:"description"`
	ContactEmail string `gorm:"type:varchar(255)" json:"contact_email"`
	ContactPhone string `gorm:"type:varchar(50)" json:"contact_phone"`
	LogoKey      string `gorm:"type:varchar(500)" json:"logo_key"`
	Slug         string `gorm:"type:varchar(100);index" json:"slug"`
	ShowOnHome   bool   `gorm:"not null" json:"show_on_home"`
}

// TableName 指定表名
func (Client) TableName() string {
	return "clients"
}

// HideFromHome 取消首页展示
func (c *Client) HideFromHome() {
	c.ShowOnHome = false
}
