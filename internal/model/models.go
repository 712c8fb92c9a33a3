package model

// All 返回需要迁移的全部模型，按依赖顺序排列（父表在前）
func All() []any {
	return []any{
		&Role{},
		&User{},
		&Category{},
		&SubCategory{},
		&Service{},
		&ServiceDetail{},
		&ServiceFAQ{},
		&Blog{},
		&BlogDetail{},
		&BlogFAQ{},
		&Client{},
		&Inquiry{},
	}
}

// SlugTables 带 slug 的表，slug 在未删除记录中唯一
func SlugTables() []string {
	return []string{"categories", "sub_categories", "services", "blogs", "clients"}
}
