package repository

import "github.com/preetinest/cms-backend/internal/model"

// 各内容实体的数据访问接口
type (
	CategoryRepository      = Repository[model.Category, *model.Category]
	SubCategoryRepository   = Repository[model.SubCategory, *model.SubCategory]
	ServiceRepository       = Repository[model.Service, *model.Service]
	ServiceDetailRepository = Repository[model.ServiceDetail, *model.ServiceDetail]
	ServiceFAQRepository    = Repository[model.ServiceFAQ, *model.ServiceFAQ]
	BlogRepository          = Repository[model.Blog, *model.Blog]
	BlogDetailRepository    = Repository[model.BlogDetail, *model.BlogDetail]
	BlogFAQRepository       = Repository[model.BlogFAQ, *model.BlogFAQ]
	ClientRepository        = Repository[model.Client, *model.Client]
	InquiryRepository       = Repository[model.Inquiry, *model.Inquiry]
)
