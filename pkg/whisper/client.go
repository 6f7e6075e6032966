// Package whisper implements types.Transcriber against an OpenAI-compatible
// transcription API.
package whisper

import (
	"context"
	"net/http"
	"net/url"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"lecture-scribe/internal/types"
	"lecture-scribe/log"
	apperrors "lecture-scribe/pkg/errors"
)

type Client struct {
	client *openai.Client
	model  string
}

func NewClient(baseUrl, apiKey, model, proxyAddr string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseUrl != "" {
		cfg.BaseURL = baseUrl
	}
	if proxyAddr != "" {
		proxyUrl, err := url.Parse(proxyAddr)
		if err == nil {
			cfg.HTTPClient = &http.Client{
				Transport: &http.Transport{Proxy: http.ProxyURL(proxyUrl)},
			}
		} else {
			log.GetLogger().Warn("invalid proxy address, ignoring", zap.String("proxy", proxyAddr))
		}
	}
	if model == "" {
		model = openai.Whisper1
	}
	return &Client{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (c *Client) Transcribe(ctx context.Context, audioFile string, language string) ([]types.RawSegment, error) {
	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    c.model,
		FilePath: audioFile,
		Format:   openai.AudioResponseFormatVerboseJSON,
		Language: language,
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeTranscribeFailed, "Transcription failed", err)
	}

	segments := make([]types.RawSegment, 0, len(resp.Segments))
	for _, seg := range resp.Segments {
		segments = append(segments, types.RawSegment{
			Start: seg.Start,
			End:   seg.End,
			Text:  seg.Text,
		})
	}
	log.GetLogger().Debug("whisper transcription finished",
		zap.String("audio", audioFile),
		zap.Int("segments", len(segments)))
	return segments, nil
}
