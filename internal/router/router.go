package router

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"path"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/user/moviecatalog/internal/handler"
	"github.com/user/moviecatalog/internal/middleware"
	"github.com/user/moviecatalog/internal/utils"
	"github.com/user/moviecatalog/web"
)

// SessionName cookie holding flashes and navigation history
const SessionName = "moviecatalog"

// excerptLength characters of synopsis shown on a catalog card
const excerptLength = 100

// pages page templates, each rendered as <page>.html
var pages = []string{"catalog", "detail", "create", "edit", "404"}

// RegisterRoutes registers every route
func RegisterRoutes(r *gin.Engine, h *handler.Handler, limiter *middleware.RateLimiter) {
	r.GET("/health", h.Health)

	if h.Images != nil {
		r.GET("/images/proxy", h.ProxyImage)
	}

	views := r.Group("/")
	views.Use(middleware.History())
	views.Use(middleware.FormToken(h.Config.AppSecret))
	views.Use(limiter.Middleware())
	{
		views.GET("/", h.Catalog)
		views.GET("/create", h.CreatePage)
		views.POST("/create", h.CreateMovie)
		views.GET("/edit/:id", h.EditPage)
		views.POST("/edit/:id", h.UpdateMovie)
		views.GET("/:id", h.Movie)
		views.POST("/:id/delete", h.DeleteMovie)
	}

	r.NoRoute(h.NotFound)
}

// TemplateFuncs functions available to every template
func TemplateFuncs(proxyImages bool) template.FuncMap {
	return template.FuncMap{
		"dict": func(values ...interface{}) (map[string]interface{}, error) {
			if len(values)%2 != 0 {
				return nil, fmt.Errorf("invalid dict call")
			}
			dict := make(map[string]interface{}, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict keys must be strings")
				}
				dict[key] = values[i+1]
			}
			return dict, nil
		},
		"excerpt": func(s string) string {
			return utils.Excerpt(s, excerptLength)
		},
		"picture": func(picture string) string {
			return handler.PictureURL(picture, proxyImages)
		},
		"moviePath":  handler.MoviePath,
		"pathEscape": url.PathEscape,
	}
}

// LoadTemplates builds one template set per page from layouts, partials
// and the page itself, all read from fsys
func LoadTemplates(fsys fs.FS, funcMap template.FuncMap) (multitemplate.Renderer, error) {
	r := multitemplate.NewRenderer()

	layouts, err := fs.Glob(fsys, "templates/layouts/*.html")
	if err != nil {
		return nil, err
	}
	partials, err := fs.Glob(fsys, "templates/partials/*.html")
	if err != nil {
		return nil, err
	}
	if len(layouts) == 0 {
		return nil, fmt.Errorf("no layout templates found")
	}

	for _, page := range pages {
		files := make([]string, 0, len(layouts)+len(partials)+1)
		files = append(files, layouts...)
		files = append(files, partials...)
		files = append(files, "templates/pages/"+page+".html")

		tmpl, err := template.New(path.Base(layouts[0])).Funcs(funcMap).ParseFS(fsys, files...)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		r.Add(page+".html", tmpl)
	}

	return r, nil
}

// EngineOptions inputs of NewEngine beside the handlers
type EngineOptions struct {
	Logger    zerolog.Logger
	Secret    string
	Secure    bool
	RateLimit middleware.RateLimitConfig
}

// NewEngine assembles the gin engine with middleware, templates, static
// assets and routes
func NewEngine(h *handler.Handler, opts EngineOptions) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(opts.Logger))
	r.Use(middleware.Security())
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPathsRegexs([]string{`^/images/`})))

	store := cookie.NewStore([]byte(opts.Secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(SessionName, store))

	renderer, err := LoadTemplates(web.FS, TemplateFuncs(h.Images != nil))
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	r.HTMLRender = renderer

	static, err := fs.Sub(web.FS, "static")
	if err != nil {
		return nil, err
	}
	r.StaticFS("/static", http.FS(static))

	RegisterRoutes(r, h, middleware.NewRateLimiter(opts.RateLimit))
	return r, nil
}
