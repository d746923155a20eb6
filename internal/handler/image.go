package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/user/moviecatalog/internal/utils"
	"golang.org/x/sync/singleflight"
)

// maxImageBytes largest poster the proxy will relay
const maxImageBytes = 5 << 20

// ErrNotImage upstream answered with something other than an image
var ErrNotImage = errors.New("upstream response is not an image")

// Image cached poster
type Image struct {
	ContentType string
	Data        []byte
}

// ImageProxy fetches remote posters, caching them in a TTL LRU
type ImageProxy struct {
	client *utils.HTTPClient
	cache  *utils.TTLCache[*Image]
	sf     singleflight.Group
	logger zerolog.Logger
}

// NewImageProxy size is the number of cached posters
func NewImageProxy(client *utils.HTTPClient, size int, ttl time.Duration, logger zerolog.Logger) *ImageProxy {
	return &ImageProxy{
		client: client,
		cache:  utils.NewTTLCache[*Image](size, ttl),
		logger: logger,
	}
}

// Fetch returns the poster at rawURL, from cache when possible.
// Concurrent fetches of the same URL share one upstream request.
func (p *ImageProxy) Fetch(ctx context.Context, rawURL string) (*Image, error) {
	if img, ok := p.cache.Get(rawURL); ok {
		return img, nil
	}

	// detached from the caller, bounded by the client timeout
	shared := context.WithoutCancel(ctx)
	ch := p.sf.DoChan(rawURL, func() (interface{}, error) {
		img, err := p.download(shared, rawURL)
		if err != nil {
			return nil, err
		}
		p.cache.Set(rawURL, img)
		return img, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Image), nil
	}
}

func (p *ImageProxy) download(ctx context.Context, rawURL string) (*Image, error) {
	resp, err := p.client.Get(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &utils.StatusError{StatusCode: resp.StatusCode}
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w: %q", ErrNotImage, contentType)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if len(data) > maxImageBytes {
		return nil, fmt.Errorf("image larger than %d bytes", maxImageBytes)
	}

	p.logger.Debug().Str("url", rawURL).Int("bytes", len(data)).Msg("image cached")
	return &Image{ContentType: contentType, Data: data}, nil
}

// ProxyImage relays a poster through the front end
func (h *Handler) ProxyImage(c *gin.Context) {
	if h.Images == nil {
		h.NotFound(c)
		return
	}

	target := c.Query("url")
	if !utils.IsHTTPURL(target) {
		utils.BadRequest(c, "url must be an absolute http(s) URL")
		return
	}

	img, err := h.Images.Fetch(c.Request.Context(), target)
	if err != nil {
		h.logger.Warn().Err(err).Str("url", target).Msg("image proxy failed")
		var statusErr *utils.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			utils.Error(c, http.StatusNotFound, "image not found")
			return
		}
		utils.BadGateway(c, "")
		return
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, img.ContentType, img.Data)
}

// PictureURL src of a movie picture: the placeholder when empty, routed
// through the proxy when proxy is set
func PictureURL(picture string, proxy bool) string {
	src := utils.PictureOrPlaceholder(picture)
	if !proxy || !utils.IsHTTPURL(src) {
		return src
	}
	return "/images/proxy?url=" + url.QueryEscape(src)
}
