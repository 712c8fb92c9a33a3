package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPageService_Menu 测试菜单组装、缓存与失效
func TestPageService_Menu(t *testing.T) {
	f := newFixture(t)

	_, err := f.Page.Menu(f.ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	category, _, service := f.seedCatalog(t)
	_, err = f.Blog.Create(f.ctx, BlogRequest{CategoryID: category.ID, Title: "Flight tips", Slug: "flight-tips"}, f.admin.ID)
	require.NoError(t, err)

	menu, err := f.Page.Menu(f.ctx)
	require.NoError(t, err)
	require.Len(t, menu.Services, 1)
	assert.Equal(t, MenuItem{ID: service.ID, UUID: service.UUID, Name: service.Name, Slug: "flights"}, menu.Services[0])
	require.Len(t, menu.Blogs, 1)
	assert.Equal(t, "Flight tips", menu.Blogs[0].Name)
	assert.Empty(t, menu.Clients)
	assert.True(t, f.redis.Exists(MenuCacheKey))

	// 直接写库不会触发失效，读到的是缓存
	hidden, err := f.services.GetByID(f.ctx, service.ID)
	require.NoError(t, err)
	hidden.Active = false
	require.NoError(t, f.services.Save(f.ctx, hidden))
	cached, err := f.Page.Menu(f.ctx)
	require.NoError(t, err)
	assert.Len(t, cached.Services, 1)

	// 通过服务写入会清理缓存
	_, err = f.Client.Create(f.ctx, ClientRequest{Name: "Acme", Slug: "acme"}, f.admin.ID)
	require.NoError(t, err)
	assert.False(t, f.redis.Exists(MenuCacheKey))

	fresh, err := f.Page.Menu(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, fresh.Services)
	require.Len(t, fresh.Clients, 1)
	assert.Equal(t, "acme", fresh.Clients[0].Slug)
}

// TestPageService_CorruptedCache 测试缓存损坏时重新构建
func TestPageService_CorruptedCache(t *testing.T) {
	f := newFixture(t)
	f.seedCatalog(t)

	require.NoError(t, f.redis.Set(MenuCacheKey, "{not json"))
	menu, err := f.Page.Menu(f.ctx)
	require.NoError(t, err)
	assert.Len(t, menu.Services, 1)
}

// TestPageService_ServicePage 测试服务完整页面
func TestPageService_ServicePage(t *testing.T) {
	f := newFixture(t)
	_, _, service := f.seedCatalog(t)

	_, err := f.ServiceDetail.Create(f.ctx, ServiceDetailRequest{ServiceID: service.ID, Heading: "Pricing", DisplayOrder: 2}, f.admin.ID)
	require.NoError(t, err)
	_, err = f.ServiceDetail.Create(f.ctx, ServiceDetailRequest{ServiceID: service.ID, Heading: "Overview", DisplayOrder: 1}, f.admin.ID)
	require.NoError(t, err)
	hiddenFAQ, err := f.ServiceFAQ.Create(f.ctx, ServiceFAQRequest{
		ServiceID:   service.ID,
		Question:    "Draft?",
		StatusInput: StatusInput{DisplayStatus: boolPtr(false)},
	}, f.admin.ID)
	require.NoError(t, err)
	_, err = f.ServiceFAQ.Create(f.ctx, ServiceFAQRequest{ServiceID: service.ID, Question: "Refunds?"}, f.admin.ID)
	require.NoError(t, err)

	page, err := f.Page.ServicePage(f.ctx, "flights")
	require.NoError(t, err)
	require.NotNil(t, page)
	assert.Equal(t, service.ID, page.Service.ID)
	require.Len(t, page.Details, 2)
	assert.Equal(t, "Overview", page.Details[0].Heading)
	require.Len(t, page.FAQs, 1)
	assert.NotEqual(t, hiddenFAQ.ID, page.FAQs[0].ID)

	missing, err := f.Page.ServicePage(f.ctx, "nothing")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

// TestPageService_BlogPage 测试博客完整页面
func TestPageService_BlogPage(t *testing.T) {
	f := newFixture(t)
	category, _, _ := f.seedCatalog(t)

	blog, err := f.Blog.Create(f.ctx, BlogRequest{
		CategoryID: category.ID,
		Title:      "Flight tips",
		Slug:       "flight-tips",
		Image:      MediaInput{Base64: pngDataURI()},
	}, f.admin.ID)
	require.NoError(t, err)
	_, err = f.BlogDetail.Create(f.ctx, BlogDetailRequest{BlogID: blog.ID, Heading: "Book early", Image: MediaInput{Base64: pngDataURI()}}, f.admin.ID)
	require.NoError(t, err)
	_, err = f.BlogFAQ.Create(f.ctx, BlogFAQRequest{BlogID: blog.ID, Question: "When?"}, f.admin.ID)
	require.NoError(t, err)

	page, err := f.Page.BlogPage(f.ctx, "flight-tips")
	require.NoError(t, err)
	require.NotNil(t, page)
	assert.NotEmpty(t, page.Blog.ImageKey)
	require.Len(t, page.Details, 1)
	assert.NotEmpty(t, page.Details[0].ImageKey)
	assert.Len(t, page.FAQs, 1)
	assert.Equal(t, 2, f.store.Len())
}
