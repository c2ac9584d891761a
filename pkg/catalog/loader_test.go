package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `[
  {"id": 1, "title": "Omelette", "time": 10, "servings": 1, "difficulty": "easy",
   "ingredients": ["eggs", "milk", "salt"], "steps": ["Whisk.", "Fry."]},
  {"id": 2, "title": "Pancakes", "time": 30, "servings": 4, "difficulty": "medium",
   "ingredients": ["flour", "milk", "eggs", "sugar (2 tbsp)"], "steps": ["Mix.", "Fry."]}
]`

func writeCatalog(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recipes.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	l := NewLoader(time.Second, 0)

	c, err := l.Load(context.Background(), writeCatalog(t, sampleCatalog))
	require.NoError(t, err)
	defer c.Close()

	assert.False(t, c.Fallback)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []string{"eggs", "flour", "milk", "salt", "sugar"}, c.Index.Vocabulary())

	r, ok := c.Recipe(2)
	require.True(t, ok)
	assert.Equal(t, "Pancakes", r.Title)

	_, ok = c.Recipe(99)
	assert.False(t, ok)
}

func TestLoadFromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleCatalog))
	}))
	defer srv.Close()

	c, err := NewLoader(time.Second, 0).Load(context.Background(), srv.URL+"/recipes.json")
	require.NoError(t, err)
	defer c.Close()
	assert.Equal(t, 2, c.Len())
}

func TestLoadFailures(t *testing.T) {
	notFound := httptest.NewServer(http.NotFoundHandler())
	defer notFound.Close()

	tests := []struct {
		name   string
		source string
	}{
		{"missing file", filepath.Join(t.TempDir(), "nope.json")},
		{"bad json", writeCatalog(t, `{"not": "a list"`)},
		{"empty list", writeCatalog(t, `[]`)},
		{"bad difficulty", writeCatalog(t, `[{"id":1,"time":5,"difficulty":"insane","ingredients":["x"]}]`)},
		{"zero time", writeCatalog(t, `[{"id":1,"time":0,"difficulty":"easy","ingredients":["x"]}]`)},
		{"zero id", writeCatalog(t, `[{"id":0,"time":5,"difficulty":"easy","ingredients":["x"]}]`)},
		{"negative id", writeCatalog(t, `[{"id":-3,"time":5,"difficulty":"easy","ingredients":["x"]}]`)},
		{"duplicate id", writeCatalog(t, `[{"id":1,"time":5,"difficulty":"easy"},{"id":1,"time":5,"difficulty":"easy"}]`)},
		{"http 404", notFound.URL + "/recipes.json"},
	}

	l := NewLoader(time.Second, 0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.Load(context.Background(), tt.source)
			assert.ErrorIs(t, err, ErrCatalogLoad)
		})
	}
}

func TestLoadOrFallback(t *testing.T) {
	l := NewLoader(time.Second, 0)

	c := l.LoadOrFallback(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
	require.NotNil(t, c)
	defer c.Close()

	assert.True(t, c.Fallback)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t,
		[]string{"cheese", "eggs", "garlic", "milk", "oil", "onion", "salt", "tomato"},
		c.Index.Vocabulary(),
	)
	assert.Equal(t, []string{"onion"}, c.Index.Suggest("oni"))
}

func TestLoadAsync(t *testing.T) {
	l := NewLoader(time.Second, 0)
	ch := l.LoadAsync(context.Background(), writeCatalog(t, sampleCatalog))

	c, ok := <-ch
	require.True(t, ok)
	require.NotNil(t, c)
	defer c.Close()
	assert.False(t, c.Fallback)

	_, ok = <-ch
	assert.False(t, ok, "channel must be closed after one catalog")
}

func TestLoadAsyncCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := <-NewLoader(time.Second, 0).LoadAsync(ctx, writeCatalog(t, sampleCatalog))
	require.NotNil(t, c)
	defer c.Close()
	assert.True(t, c.Fallback)
}
