package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/korjavin/fridgechef/pkg/logger"
	"github.com/korjavin/fridgechef/pkg/models"
)

// ErrCatalogLoad wraps every failure to read, decode or validate a catalog
var ErrCatalogLoad = errors.New("catalog load failed")

// Loader reads a catalog document from a file path or an http(s) URL
type Loader struct {
	client       *resty.Client
	suggestLimit int
	logger       *logger.Logger
}

// NewLoader creates a loader. timeout bounds URL fetches.
func NewLoader(timeout time.Duration, suggestLimit int) *Loader {
	return &Loader{
		client:       resty.New().SetTimeout(timeout),
		suggestLimit: suggestLimit,
		logger:       logger.New("catalog"),
	}
}

// Load reads, decodes and validates the catalog at source
func (l *Loader) Load(ctx context.Context, source string) (*Catalog, error) {
	data, err := l.read(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogLoad, err)
	}

	recipes, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCatalogLoad, source, err)
	}

	c := New(recipes, l.suggestLimit)
	l.logger.Info("Loaded %d recipes and %d ingredient names from %s", c.Len(), c.Index.Len(), source)
	return c, nil
}

// LoadOrFallback loads the catalog and substitutes the built-in one on any
// failure. It never returns nil.
func (l *Loader) LoadOrFallback(ctx context.Context, source string) *Catalog {
	c, err := l.Load(ctx, source)
	if err != nil {
		l.logger.Warn("Using built-in catalog: %v", err)
		return Fallback(l.suggestLimit)
	}
	return c
}

// LoadAsync starts the one-time catalog load and returns a channel that
// delivers exactly one catalog, real or fallback, and is then closed.
func (l *Loader) LoadAsync(ctx context.Context, source string) <-chan *Catalog {
	ch := make(chan *Catalog, 1)
	go func() {
		defer close(ch)
		ch <- l.LoadOrFallback(ctx, source)
	}()
	return ch
}

func (l *Loader) read(ctx context.Context, source string) ([]byte, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		resp, err := l.client.R().SetContext(ctx).Get(source)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", source, err)
		}
		if resp.IsError() {
			return nil, fmt.Errorf("fetch %s: unexpected status %d", source, resp.StatusCode())
		}
		return resp.Body(), nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", source, err)
	}
	return data, nil
}

// Decode parses a JSON array of recipes and checks it is usable
func Decode(data []byte) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := json.Unmarshal(data, &recipes); err != nil {
		return nil, fmt.Errorf("decode recipes: %w", err)
	}
	if err := validate(recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

func validate(recipes []models.Recipe) error {
	if len(recipes) == 0 {
		return fmt.Errorf("catalog is empty")
	}

	seen := make(map[int64]struct{}, len(recipes))
	for i, r := range recipes {
		if _, dup := seen[r.ID]; dup {
			return fmt.Errorf("recipe %d: duplicate id %d", i, r.ID)
		}
		seen[r.ID] = struct{}{}

		if r.ID <= 0 {
			return fmt.Errorf("recipe %d: id must be positive, got %d", i, r.ID)
		}

		if r.Time <= 0 {
			return fmt.Errorf("recipe %d: time must be positive, got %d", r.ID, r.Time)
		}
		if !r.Difficulty.Valid() {
			return fmt.Errorf("recipe %d: unknown difficulty %q", r.ID, r.Difficulty)
		}
	}
	return nil
}
