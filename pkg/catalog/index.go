package catalog

import (
	"sort"
	"strings"

	"github.com/dgraph-io/ristretto"
	"github.com/korjavin/fridgechef/pkg/ingredient"
	"github.com/korjavin/fridgechef/pkg/models"
)

// DefaultSuggestLimit is how many suggestions Suggest returns by default
const DefaultSuggestLimit = 6

// BuildVocabulary returns every normalized ingredient name in the catalog,
// deduplicated and sorted ascending.
func BuildVocabulary(recipes []models.Recipe) []string {
	seen := make(map[string]struct{})
	for _, r := range recipes {
		for _, ing := range r.Ingredients {
			if name := ingredient.Normalize(ing); name != "" {
				seen[name] = struct{}{}
			}
		}
	}
	return sortedKeys(seen)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Index answers autocomplete queries over an immutable vocabulary
type Index struct {
	vocabulary []string
	limit      int
	cache      *ristretto.Cache
}

// NewIndex builds an index over vocab. The vocabulary is copied, normalized,
// deduplicated and sorted so the index invariants hold for any input.
// A non-positive limit means DefaultSuggestLimit.
func NewIndex(vocab []string, limit int) *Index {
	if limit <= 0 {
		limit = DefaultSuggestLimit
	}

	seen := make(map[string]struct{}, len(vocab))
	for _, v := range vocab {
		if name := ingredient.Normalize(v); name != "" {
			seen[name] = struct{}{}
		}
	}

	ix := &Index{
		vocabulary: sortedKeys(seen),
		limit:      limit,
	}

	// The cache only memoizes answers; the index works without it.
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10000,
		MaxCost:     1000,
		BufferItems: 64,
	})
	if err == nil {
		ix.cache = cache
	}
	return ix
}

// Vocabulary returns a copy of the sorted vocabulary
func (ix *Index) Vocabulary() []string {
	return append([]string(nil), ix.vocabulary...)
}

// Len returns the vocabulary size
func (ix *Index) Len() int {
	return len(ix.vocabulary)
}

// Suggest returns up to limit vocabulary entries that contain the query
// anywhere, in vocabulary order. The query is trimmed and lowercased only.
// An empty query yields no suggestions.
func (ix *Index) Suggest(query string) []string {
	q := ingredient.Clean(query)
	if q == "" {
		return nil
	}

	if ix.cache != nil {
		if v, ok := ix.cache.Get(q); ok {
			return append([]string(nil), v.([]string)...)
		}
	}

	var out []string
	for _, item := range ix.vocabulary {
		if strings.Contains(item, q) {
			out = append(out, item)
			if len(out) == ix.limit {
				break
			}
		}
	}

	if ix.cache != nil {
		ix.cache.Set(q, out, 1)
	}
	return append([]string(nil), out...)
}

// Close releases the suggestion cache
func (ix *Index) Close() {
	if ix.cache != nil {
		ix.cache.Close()
	}
}
