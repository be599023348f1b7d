// internal/app/system/preview/fetcher.go
package preview

import (
	"context"

	"github.com/dalemusser/vaulthub/internal/domain/models"
	"go.uber.org/zap"
)

// Fetcher produces a normalized preview record for a URL.
//
// Implementations must not let network failures escape: a fetch always
// yields a best-effort record, degrading toward the generic link kind.
// The error return exists so alternate implementations can report
// internal faults; callers treat an error as "no preview" and carry on.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*models.PreviewRecord, error)
}

// ChainFetcher is the production Fetcher. Known platforms (YouTube,
// Instagram reels, TikTok) are synthesized locally without any network
// call; generic URLs are fetched through an ordered chain of fallback
// channels and parsed for Open Graph / Twitter-card / generic meta tags.
type ChainFetcher struct {
	channels []FetchChannel
	log      *zap.Logger
}

// NewChainFetcher constructs a ChainFetcher. With no channels given it
// uses DefaultChannels.
func NewChainFetcher(logger *zap.Logger, channels ...FetchChannel) *ChainFetcher {
	if len(channels) == 0 {
		channels = DefaultChannels()
	}
	return &ChainFetcher{channels: channels, log: logger}
}

// Fetch classifies rawURL and produces its preview record. It never
// returns a non-nil error: every failure inside the channel chain is
// absorbed and converted to the generic link fallback.
func (f *ChainFetcher) Fetch(ctx context.Context, rawURL string) (*models.PreviewRecord, error) {
	switch Classify(rawURL) {
	case models.PreviewYouTube, models.PreviewYouTubeShort:
		// Thumbnail and embed URLs are derivable from the video id;
		// no network call needed.
		id, _ := YouTubeVideoID(rawURL)
		kind := models.PreviewYouTube
		if Classify(rawURL) == models.PreviewYouTubeShort {
			kind = models.PreviewYouTubeShort
		}
		return &models.PreviewRecord{
			Type:        kind,
			Title:       "YouTube Video",
			Description: "Watch on YouTube",
			Image:       youTubeThumbnail(id),
			VideoID:     id,
			EmbedURL:    youTubeEmbedURL(id),
			URL:         rawURL,
		}, nil

	case models.PreviewInstagramReel:
		// Instagram blocks unauthenticated scraping; no image.
		return &models.PreviewRecord{
			Type:        models.PreviewInstagramReel,
			Title:       "Instagram Reel",
			Description: "View on Instagram",
			URL:         rawURL,
		}, nil

	case models.PreviewTikTok:
		return &models.PreviewRecord{
			Type:        models.PreviewTikTok,
			Title:       "TikTok Video",
			Description: "Watch on TikTok",
			URL:         rawURL,
		}, nil

	case models.PreviewArticle:
		if rec := f.fetchArticle(ctx, rawURL); rec != nil {
			return rec, nil
		}
	}

	return linkFallback(rawURL), nil
}

// fetchArticle walks the channel chain, strictly in order, one bounded
// attempt per channel. The first channel whose HTML yields a usable
// title, description, or image wins. Nil means every channel failed or
// the page exposed nothing worth showing.
func (f *ChainFetcher) fetchArticle(ctx context.Context, rawURL string) *models.PreviewRecord {
	for _, ch := range f.channels {
		body, err := ch.Fetch(ctx, rawURL)
		if err != nil {
			f.log.Debug("preview channel failed, trying next",
				zap.String("channel", ch.Name()),
				zap.String("url", rawURL),
				zap.Error(err))
			continue
		}

		pm := parseMeta(body)
		if pm.empty(rawURL) {
			f.log.Debug("preview channel returned page with no usable metadata",
				zap.String("channel", ch.Name()),
				zap.String("url", rawURL))
			continue
		}

		title := pm.articleTitle()
		if title == "" {
			title = "Article"
		}
		desc := pm.articleDescription()
		if desc == "" {
			desc = "Read more"
		}

		return &models.PreviewRecord{
			Type:        models.PreviewArticle,
			Title:       title,
			Description: desc,
			Image:       pm.articleImage(rawURL),
			URL:         rawURL,
		}
	}
	return nil
}

func linkFallback(rawURL string) *models.PreviewRecord {
	return &models.PreviewRecord{
		Type:        models.PreviewLink,
		Title:       "Link",
		Description: "Visit link",
		URL:         rawURL,
	}
}
