package telegram

import (
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/korjavin/fridgechef/pkg/catalog"
	"github.com/korjavin/fridgechef/pkg/favorites"
	"github.com/korjavin/fridgechef/pkg/finder"
	"github.com/korjavin/fridgechef/pkg/logger"
	"github.com/korjavin/fridgechef/pkg/models"
	"github.com/korjavin/fridgechef/pkg/pantry"
	"github.com/korjavin/fridgechef/pkg/state"
	"github.com/korjavin/fridgechef/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent     []tgbotapi.MessageConfig
	answered []tgbotapi.CallbackConfig
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{}, nil
}

func (f *fakeSender) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	if cb, ok := c.(tgbotapi.CallbackConfig); ok {
		f.answered = append(f.answered, cb)
	}
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeSender) last(t *testing.T) tgbotapi.MessageConfig {
	t.Helper()
	require.NotEmpty(t, f.sent)
	return f.sent[len(f.sent)-1]
}

const testChat = int64(100)

func newTestRouter(t *testing.T) (Router, *fakeSender, *finder.Service) {
	t.Helper()
	store, err := storage.NewInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	c := catalog.New([]models.Recipe{
		{ID: 1, Title: "Fried eggs", Time: 15, Servings: 2, Difficulty: models.DifficultyEasy,
			Ingredients: []string{"eggs", "tomato", "oil", "salt"}, Steps: []string{"Fry."}},
		{ID: 2, Title: "Pancakes", Time: 40, Servings: 4, Difficulty: models.DifficultyMedium,
			Ingredients: []string{"flour", "milk", "eggs"}, Steps: []string{"Mix.", "Fry."}},
	}, 0)
	t.Cleanup(c.Close)

	f := finder.New(c, pantry.New(store), favorites.New(store), state.New(time.Hour))
	sender := &fakeSender{}
	h := NewHandlers(sender, f)
	h.logger = logger.Nop()
	return h.Router(), sender, f
}

func command(text string) tgbotapi.Update {
	name := strings.SplitN(text, " ", 2)[0]
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Text: text,
		Chat: &tgbotapi.Chat{ID: testChat},
		Entities: []tgbotapi.MessageEntity{
			{Type: "bot_command", Offset: 0, Length: len(name)},
		},
	}}
}

func plain(text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Text: text,
		Chat: &tgbotapi.Chat{ID: testChat},
	}}
}

func callback(data string) tgbotapi.Update {
	return tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:   "cb",
		Data: data,
		Message: &tgbotapi.Message{
			Chat: &tgbotapi.Chat{ID: testChat},
		},
	}}
}

func TestAddAndList(t *testing.T) {
	r, sender, f := newTestRouter(t)

	require.True(t, r.Dispatch(command("/add Eggs")))
	assert.Contains(t, sender.last(t).Text, "Added: eggs")

	r.Dispatch(command("/add eggs"))
	assert.Contains(t, sender.last(t).Text, "already")

	r.Dispatch(plain("Milk"))
	r.Dispatch(command("/list"))
	assert.Contains(t, sender.last(t).Text, "2. milk")

	st, err := f.Products(scopeOf(testChat))
	require.NoError(t, err)
	assert.Equal(t, []string{"eggs", "milk"}, st.Products)
}

func TestBulkMode(t *testing.T) {
	r, sender, f := newTestRouter(t)

	r.Dispatch(command("/bulk"))
	assert.Equal(t, state.ModeAddingBulk, f.Sessions().Get(scopeOf(testChat)).Mode)

	r.Dispatch(plain("egg, Milk; Flour\nSugar"))
	assert.Contains(t, sender.last(t).Text, "egg, milk, flour, sugar")

	r.Dispatch(callback(cbDoneAdding))
	assert.Equal(t, state.ModeNormal, f.Sessions().Get(scopeOf(testChat)).Mode)
	require.NotEmpty(t, sender.answered)
}

func TestRemove(t *testing.T) {
	r, sender, _ := newTestRouter(t)
	r.Dispatch(command("/bulk egg, milk"))

	r.Dispatch(command("/remove 5"))
	assert.Contains(t, sender.last(t).Text, "no ingredient #5")

	r.Dispatch(command("/remove 1"))
	assert.Contains(t, sender.last(t).Text, "1. milk")

	r.Dispatch(command("/remove x"))
	assert.Contains(t, sender.last(t).Text, "Usage")
}

func TestSearchAndRefine(t *testing.T) {
	r, sender, _ := newTestRouter(t)

	r.Dispatch(command("/add egg"))
	r.Dispatch(command("/search"))
	assert.Contains(t, sender.last(t).Text, "at least 2")

	r.Dispatch(command("/bulk milk, flour, tomato"))
	r.Dispatch(command("/search"))
	msg := sender.last(t)
	assert.Contains(t, msg.Text, "Found 2 recipes")
	assert.Less(t, strings.Index(msg.Text, "Pancakes"), strings.Index(msg.Text, "Fried eggs"))
	_, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	assert.True(t, ok)

	r.Dispatch(command("/time 20"))
	msg = sender.last(t)
	assert.Contains(t, msg.Text, "up to 20 min")
	assert.Contains(t, msg.Text, "Found 1 recipes")
	assert.NotContains(t, msg.Text, "Pancakes")

	r.Dispatch(command("/time any"))
	r.Dispatch(callback(cbDifficulty + "medium"))
	msg = sender.last(t)
	assert.Contains(t, msg.Text, "Pancakes")
	assert.NotContains(t, msg.Text, "Fried eggs")

	r.Dispatch(command("/difficulty impossible"))
	assert.Contains(t, sender.last(t).Text, "Usage")
}

func TestRecipeAndFavorite(t *testing.T) {
	r, sender, _ := newTestRouter(t)
	r.Dispatch(command("/bulk egg, salt"))

	r.Dispatch(command("/fav"))
	assert.Contains(t, sender.last(t).Text, "Open a recipe first")

	r.Dispatch(command("/fav 0"))
	assert.Contains(t, sender.last(t).Text, "no recipe #0")

	r.Dispatch(callback(cbRecipe + "1"))
	assert.Contains(t, sender.last(t).Text, "✅ eggs")

	r.Dispatch(command("/fav"))
	assert.Contains(t, sender.last(t).Text, "Recipe #1: ❤️ In favorites")

	r.Dispatch(command("/favorites"))
	assert.Contains(t, sender.last(t).Text, "Fried eggs")

	r.Dispatch(callback(cbFavorite + "1"))
	require.NotEmpty(t, sender.answered)
	assert.Contains(t, sender.answered[len(sender.answered)-1].Text, "Not in favorites")

	r.Dispatch(command("/recipe 42"))
	assert.Contains(t, sender.last(t).Text, "no recipe #42")
}

func TestSuggestAddsFromButton(t *testing.T) {
	r, sender, f := newTestRouter(t)

	r.Dispatch(command("/suggest LO"))
	msg := sender.last(t)
	assert.Equal(t, "🍴 flour", msg.Text)

	r.Dispatch(callback(cbAdd + "flour"))
	st, err := f.Products(scopeOf(testChat))
	require.NoError(t, err)
	assert.Equal(t, []string{"flour"}, st.Products)

	r.Dispatch(command("/suggest"))
	assert.Equal(t, "No suggestions.", sender.last(t).Text)
}

func TestUnknownCallbackIsIgnored(t *testing.T) {
	r, _, _ := newTestRouter(t)
	assert.False(t, r.Dispatch(callback("bogus")))
}
