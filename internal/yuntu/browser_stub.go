//go:build !browser

package yuntu

import (
	"context"

	"github.com/clawbot/dysync/internal/domain"
)

func (b *Browser) FetchVideoPage(ctx context.Context, brandURL string, id domain.VideoID) (string, error) {
	return "", ErrBrowserUnavailable
}
