package corpus

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"promptbooth/internal/rules"
)

// textColumn is the header name the remote table must carry.
const textColumn = "text"

// Loader fetches the prompt corpus from a remote comma-separated table.
// Any fetch or parse failure is absorbed: the loader substitutes the
// built-in prompt list and never returns an error. The corpus is fetched
// once per process and cached; Reload forces a new attempt.
type Loader struct {
	client     *resty.Client
	url        string
	normalizer *rules.Normalizer
	log        *logrus.Logger

	mu     sync.Mutex
	cached []string
}

func NewLoader(url string, timeout time.Duration, normalizer *rules.Normalizer, log *logrus.Logger) *Loader {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if normalizer == nil {
		normalizer, _ = rules.NewNormalizer("", 0)
	}
	if log == nil {
		log = logrus.New()
	}
	return &Loader{
		client:     resty.New().SetTimeout(timeout),
		url:        url,
		normalizer: normalizer,
		log:        log,
	}
}

// Load returns the prompt corpus, fetching it on the first call.
func (l *Loader) Load(ctx context.Context) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cached != nil {
		return l.cached
	}

	prompts, err := l.fetch(ctx)
	if err != nil {
		l.log.WithError(err).Warn("corpus fetch failed, using built-in prompts")
		prompts = append([]string(nil), fallbackPrompts...)
	}

	for i, prompt := range prompts {
		prompts[i] = l.normalizer.Apply(prompt)
	}

	l.cached = prompts
	return l.cached
}

// Reload discards the cached corpus and fetches again.
func (l *Loader) Reload(ctx context.Context) []string {
	l.mu.Lock()
	l.cached = nil
	l.mu.Unlock()
	return l.Load(ctx)
}

func (l *Loader) fetch(ctx context.Context) ([]string, error) {
	if strings.TrimSpace(l.url) == "" {
		return nil, errors.New("no corpus URL configured")
	}

	resp, err := l.client.R().SetContext(ctx).Get(l.url)
	if err != nil {
		return nil, fmt.Errorf("corpus request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("corpus request returned status %d", resp.StatusCode())
	}

	return parseTable(resp.String())
}

// parseTable extracts the text column from a comma-separated table. The
// first row is the header; quoted fields may embed commas.
func parseTable(body string) ([]string, error) {
	lines := strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n")
	if len(lines) < 2 {
		return nil, errors.New("corpus table has fewer than 2 lines")
	}

	column := -1
	for i, cell := range splitRow(lines[0]) {
		if strings.EqualFold(unquote(cell), textColumn) {
			column = i
			break
		}
	}
	if column < 0 {
		return nil, fmt.Errorf("corpus table has no %q column", textColumn)
	}

	prompts := make([]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := splitRow(line)
		if column >= len(fields) {
			continue
		}
		if value := unquote(fields[column]); value != "" {
			prompts = append(prompts, value)
		}
	}
	if len(prompts) == 0 {
		return nil, errors.New("corpus table has no usable prompts")
	}
	return prompts, nil
}

// splitRow splits one table row on commas, honoring a comma as a field
// boundary only while an even number of quote characters have been seen.
func splitRow(line string) []string {
	var (
		fields  []string
		builder strings.Builder
		quotes  int
	)
	for i := 0; i < len(line); i++ {
		char := line[i]
		if char == '"' {
			quotes++
		}
		if char == ',' && quotes%2 == 0 {
			fields = append(fields, builder.String())
			builder.Reset()
			continue
		}
		builder.WriteByte(char)
	}
	fields = append(fields, builder.String())
	return fields
}

// unquote trims a field and strips one pair of surrounding double quotes.
func unquote(field string) string {
	value := strings.TrimSpace(field)
	if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
		value = value[1 : len(value)-1]
	}
	return strings.TrimSpace(value)
}

// fallbackPrompts is the fixed in-process corpus used whenever the remote
// table cannot be loaded. Substituting it must never fail.
var fallbackPrompts = []string{
	"The birch canoe slid on the smooth planks.",
	"Glue the sheet to the dark blue background.",
	"It is easy to tell the depth of a well.",
	"These days a chicken leg is a rare dish.",
	"Rice is often served in round bowls.",
	"The juice of lemons makes fine punch.",
	"The box was thrown beside the parked truck.",
	"The hogs were fed chopped corn and garbage.",
	"Four hours of steady work faced us.",
	"A large size in stockings is hard to sell.",
}
