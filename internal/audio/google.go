package audio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	googleTTSURL      = "https://translate.google.com/translate_tts"
	defaultTTSTimeout = 10 * time.Second
	maxAudioBytes     = 5 << 20
)

// GoogleTTS uses the public Google Translate speech endpoint. No key is needed.
type GoogleTTS struct {
	BaseURL  string
	Language string
	client   *http.Client
}

func NewGoogleTTS(language string, timeout time.Duration) *GoogleTTS {
	if language == "" {
		language = "en"
	}
	if timeout <= 0 {
		timeout = defaultTTSTimeout
	}
	return &GoogleTTS{
		BaseURL:  googleTTSURL,
		Language: language,
		client:   &http.Client{Timeout: timeout},
	}
}

func (g *GoogleTTS) Synthesize(ctx context.Context, text string) ([]byte, error) {
	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("q", text)
	params.Set("tl", g.Language)
	params.Set("client", "tw-ob")
	params.Set("textlen", strconv.Itoa(len(text)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create tts request: %w", err)
	}
	// The endpoint rejects requests without a browser user agent.
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch tts audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tts: unexpected status code %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAudioBytes))
	if err != nil {
		return nil, fmt.Errorf("read tts audio: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("tts: empty audio response")
	}
	return data, nil
}
