package render

import "context"

type Renderer interface {
	RenderIndex(ctx context.Context, page IndexPage) ([]byte, error)
	RenderPost(ctx context.Context, page PostPage) ([]byte, error)
	RenderOverview(ctx context.Context, page OverviewPage) ([]byte, error)
	RenderGallery(ctx context.Context, page GalleryPage) ([]byte, error)
	RenderScreenshot(ctx context.Context, page ScreenshotPage) ([]byte, error)
	RenderStatic(ctx context.Context, name string, page StaticPage) ([]byte, error)
}
