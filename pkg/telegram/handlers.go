package telegram

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/korjavin/fridgechef/pkg/finder"
	"github.com/korjavin/fridgechef/pkg/ingredient"
	"github.com/korjavin/fridgechef/pkg/logger"
	"github.com/korjavin/fridgechef/pkg/match"
	"github.com/korjavin/fridgechef/pkg/messages"
	"github.com/korjavin/fridgechef/pkg/models"
	"github.com/korjavin/fridgechef/pkg/pantry"
	"github.com/korjavin/fridgechef/pkg/state"
)

// Callback data prefixes
const (
	cbRecipe     = "recipe:"
	cbFavorite   = "fav:"
	cbDifficulty = "diff:"
	cbAdd        = "add:"
	cbDoneAdding = "done_adding"
)

// Telegram rejects callback data longer than this many bytes
const maxCallbackData = 64

// maxResultButtons caps the recipe buttons under a result list
const maxResultButtons = 10

// Handlers turns Telegram updates into finder actions
type Handlers struct {
	sender Sender
	finder *finder.Service
	logger *logger.Logger
}

// NewHandlers creates the handler set for a bot
func NewHandlers(sender Sender, f *finder.Service) *Handlers {
	return &Handlers{
		sender: sender,
		finder: f,
		logger: logger.New("handlers"),
	}
}

// Router returns the command, callback and default routing for the bot
func (h *Handlers) Router() Router {
	return Router{
		Commands: map[string]CommandHandler{
			"start":      h.start,
			"help":       h.start,
			"add":        h.add,
			"bulk":       h.bulk,
			"remove":     h.remove,
			"list":       h.list,
			"clear":      h.clear,
			"suggest":    h.suggest,
			"search":     h.search,
			"time":       h.timeLimit,
			"difficulty": h.difficulty,
			"recipe":     h.recipe,
			"fav":        h.favorite,
			"favorites":  h.favorites,
		},
		Callbacks: map[string]CallbackHandler{
			cbRecipe:     h.recipeCallback,
			cbFavorite:   h.favoriteCallback,
			cbDifficulty: h.difficultyCallback,
			cbAdd:        h.addCallback,
			cbDoneAdding: h.doneAddingCallback,
		},
		Default: h.text,
		logger:  h.logger,
	}
}

func scopeOf(chatID int64) string {
	return "chat:" + strconv.FormatInt(chatID, 10)
}

func (h *Handlers) reply(chatID int64, text string) {
	h.replyWithKeyboard(chatID, text, nil)
}

func (h *Handlers) replyWithKeyboard(chatID int64, text string, keyboard *tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	if keyboard != nil {
		msg.ReplyMarkup = *keyboard
	}
	if _, err := h.sender.Send(msg); err != nil {
		h.logger.Error("Failed to send message to chat %d: %v", chatID, err)
	}
}

func (h *Handlers) answer(callback *tgbotapi.CallbackQuery, text string) {
	if _, err := h.sender.Request(tgbotapi.NewCallback(callback.ID, text)); err != nil {
		h.logger.Error("Failed to answer callback %s: %v", callback.ID, err)
	}
}

func (h *Handlers) start(message *tgbotapi.Message) {
	h.reply(message.Chat.ID, messages.Welcome())
}

func (h *Handlers) add(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	arg := message.CommandArguments()
	if strings.TrimSpace(arg) == "" {
		h.reply(chatID, "Usage: /add <ingredient>")
		return
	}
	h.addOne(chatID, arg)
}

func (h *Handlers) addOne(chatID int64, raw string) {
	_, changed, err := h.finder.AddProduct(scopeOf(chatID), raw)
	if err != nil {
		h.logger.Error("Failed to add product: %v", err)
		h.reply(chatID, messages.Error("add that ingredient"))
		return
	}
	if !changed {
		h.reply(chatID, "It's already on your list.")
		return
	}
	h.reply(chatID, messages.Added([]string{ingredient.Clean(raw)}))
}

func (h *Handlers) bulk(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	if arg := message.CommandArguments(); strings.TrimSpace(arg) != "" {
		h.addMany(chatID, arg)
		return
	}

	h.finder.Sessions().SetMode(scopeOf(chatID), state.ModeAddingBulk)
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Done adding ingredients", cbDoneAdding),
		),
	)
	h.replyWithKeyboard(chatID, "Send me your ingredients separated by commas, semicolons or new lines.", &keyboard)
}

func (h *Handlers) addMany(chatID int64, text string) {
	_, added, err := h.finder.AddBulk(scopeOf(chatID), text)
	if err != nil {
		h.logger.Error("Failed to add products: %v", err)
		h.reply(chatID, messages.Error("add those ingredients"))
		return
	}
	h.reply(chatID, messages.Added(added))
}

func (h *Handlers) remove(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	n, err := strconv.Atoi(strings.TrimSpace(message.CommandArguments()))
	if err != nil {
		h.reply(chatID, "Usage: /remove <number from /list>")
		return
	}

	st, err := h.finder.RemoveProduct(scopeOf(chatID), n-1)
	if errors.Is(err, pantry.ErrIndexOutOfRange) {
		h.reply(chatID, fmt.Sprintf("There is no ingredient #%d.", n))
		return
	}
	if err != nil {
		h.logger.Error("Failed to remove product: %v", err)
		h.reply(chatID, messages.Error("remove that ingredient"))
		return
	}
	h.reply(chatID, messages.Products(st))
}

func (h *Handlers) list(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	st, err := h.finder.Products(scopeOf(chatID))
	if err != nil {
		h.logger.Error("Failed to list products: %v", err)
		h.reply(chatID, messages.Error("load your ingredients"))
		return
	}
	h.reply(chatID, messages.Products(st))
}

func (h *Handlers) clear(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	if err := h.finder.ClearProducts(scopeOf(chatID)); err != nil {
		h.logger.Error("Failed to clear products: %v", err)
		h.reply(chatID, messages.Error("clear your ingredients"))
		return
	}
	h.reply(chatID, "🧹 Your ingredient list is empty now.")
}

func (h *Handlers) suggest(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	items := h.finder.Suggest(message.CommandArguments())
	if len(items) == 0 {
		h.reply(chatID, "No suggestions.")
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, item := range items {
		if data := cbAdd + item; len(data) <= maxCallbackData {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(item, data)))
		}
	}
	if len(rows) == 0 {
		h.reply(chatID, messages.Suggestions(items))
		return
	}
	keyboard := tgbotapi.NewInlineKeyboardMarkup(rows...)
	h.replyWithKeyboard(chatID, messages.Suggestions(items), &keyboard)
}

func (h *Handlers) search(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	results, err := h.finder.Search(scopeOf(chatID))
	if errors.Is(err, match.ErrTooFewProducts) {
		h.reply(chatID, fmt.Sprintf("Add at least %d ingredients before searching.", match.MinProducts))
		return
	}
	if err != nil {
		h.logger.Error("Failed to search: %v", err)
		h.reply(chatID, messages.Error("search recipes"))
		return
	}
	h.showResults(chatID, results)
}

func (h *Handlers) showResults(chatID int64, results []match.Result) {
	scope := scopeOf(chatID)
	st, err := h.finder.Products(scope)
	if err != nil {
		h.logger.Error("Failed to load products: %v", err)
	}

	text := messages.Filter(h.finder.Sessions().Get(scope).Filter) + "\n\n" + messages.Results(results, st.Len())
	keyboard := resultsKeyboard(results)
	h.replyWithKeyboard(chatID, text, &keyboard)
}

func resultsKeyboard(results []match.Result) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, r := range results {
		if i == maxResultButtons {
			break
		}
		label := fmt.Sprintf("📖 %s (%d%%)", r.Recipe.Title, r.MatchPercent)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, cbRecipe+strconv.FormatInt(r.Recipe.ID, 10)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("easy", cbDifficulty+string(models.DifficultyEasy)),
		tgbotapi.NewInlineKeyboardButtonData("medium", cbDifficulty+string(models.DifficultyMedium)),
		tgbotapi.NewInlineKeyboardButtonData("hard", cbDifficulty+string(models.DifficultyHard)),
		tgbotapi.NewInlineKeyboardButtonData("any", cbDifficulty),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (h *Handlers) timeLimit(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	arg := strings.ToLower(strings.TrimSpace(message.CommandArguments()))

	maxTime := 0
	if arg != "" && arg != "any" {
		n, err := strconv.Atoi(arg)
		if err != nil || n <= 0 {
			h.reply(chatID, "Usage: /time <minutes|any>")
			return
		}
		maxTime = n
	}

	results := h.finder.UpdateFilter(scopeOf(chatID), func(f *match.Filter) { f.MaxTime = maxTime })
	h.showResults(chatID, results)
}

func (h *Handlers) difficulty(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	arg := strings.ToLower(strings.TrimSpace(message.CommandArguments()))
	if arg == "any" {
		arg = ""
	}

	d, ok := models.ParseDifficulty(arg)
	if !ok {
		h.reply(chatID, "Usage: /difficulty <easy|medium|hard|any>")
		return
	}
	h.setDifficulty(chatID, d)
}

func (h *Handlers) setDifficulty(chatID int64, d models.Difficulty) {
	results := h.finder.UpdateFilter(scopeOf(chatID), func(f *match.Filter) { f.Difficulty = d })
	h.showResults(chatID, results)
}

func (h *Handlers) recipe(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	id, err := strconv.ParseInt(strings.TrimSpace(message.CommandArguments()), 10, 64)
	if err != nil {
		h.reply(chatID, "Usage: /recipe <id>")
		return
	}
	h.showRecipe(chatID, id)
}

func (h *Handlers) showRecipe(chatID int64, id int64) {
	view, err := h.finder.Recipe(scopeOf(chatID), id)
	if errors.Is(err, finder.ErrRecipeNotFound) {
		h.reply(chatID, fmt.Sprintf("There is no recipe #%d.", id))
		return
	}
	if err != nil {
		h.logger.Error("Failed to open recipe %d: %v", id, err)
		h.reply(chatID, messages.Error("open that recipe"))
		return
	}

	label := "🤍 Add to favorites"
	if view.Favorite {
		label = "❤️ Remove from favorites"
	}
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, cbFavorite+strconv.FormatInt(id, 10)),
		),
	)
	h.replyWithKeyboard(chatID, messages.Recipe(view), &keyboard)
}

func (h *Handlers) favorite(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	arg := strings.TrimSpace(message.CommandArguments())
	if arg == "" {
		h.reply(chatID, h.favoriteResult(h.finder.ToggleSelected(scopeOf(chatID))))
		return
	}

	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		h.reply(chatID, "Usage: /fav [recipe id]")
		return
	}
	h.reply(chatID, h.toggleFavorite(chatID, id))
}

func (h *Handlers) toggleFavorite(chatID int64, id int64) string {
	return h.favoriteResult(h.finder.ToggleFavorite(scopeOf(chatID), id))
}

func (h *Handlers) favoriteResult(id int64, on bool, err error) string {
	if errors.Is(err, finder.ErrNoRecipeOpen) {
		return "Open a recipe first or give its id: /fav <id>"
	}
	if errors.Is(err, finder.ErrRecipeNotFound) {
		return fmt.Sprintf("There is no recipe #%d.", id)
	}
	if err != nil {
		h.logger.Error("Failed to toggle favorite %d: %v", id, err)
		return messages.Error("update your favorites")
	}
	return fmt.Sprintf("Recipe #%d: %s", id, messages.FavoriteLabel(on))
}

func (h *Handlers) favorites(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	scope := scopeOf(chatID)

	favs, err := h.finder.Favorites(scope)
	if err != nil {
		h.logger.Error("Failed to load favorites: %v", err)
		h.reply(chatID, messages.Error("load your favorites"))
		return
	}
	if len(favs) == 0 {
		h.reply(chatID, "You have no favorite recipes yet.")
		return
	}

	st, err := h.finder.Products(scope)
	if err != nil {
		h.logger.Error("Failed to load products: %v", err)
	}
	keyboard := resultsKeyboard(favs)
	h.replyWithKeyboard(chatID, messages.Results(favs, st.Len()), &keyboard)
}

func (h *Handlers) recipeCallback(callback *tgbotapi.CallbackQuery) {
	id, err := strconv.ParseInt(strings.TrimPrefix(callback.Data, cbRecipe), 10, 64)
	if err != nil {
		h.answer(callback, "Unknown recipe")
		return
	}
	h.answer(callback, "")
	h.showRecipe(callback.Message.Chat.ID, id)
}

func (h *Handlers) favoriteCallback(callback *tgbotapi.CallbackQuery) {
	id, err := strconv.ParseInt(strings.TrimPrefix(callback.Data, cbFavorite), 10, 64)
	if err != nil {
		h.answer(callback, "Unknown recipe")
		return
	}
	h.answer(callback, h.toggleFavorite(callback.Message.Chat.ID, id))
}

func (h *Handlers) difficultyCallback(callback *tgbotapi.CallbackQuery) {
	d, ok := models.ParseDifficulty(strings.TrimPrefix(callback.Data, cbDifficulty))
	if !ok {
		h.answer(callback, "Unknown difficulty")
		return
	}
	h.answer(callback, "")
	h.setDifficulty(callback.Message.Chat.ID, d)
}

func (h *Handlers) addCallback(callback *tgbotapi.CallbackQuery) {
	h.answer(callback, "")
	h.addOne(callback.Message.Chat.ID, strings.TrimPrefix(callback.Data, cbAdd))
}

func (h *Handlers) doneAddingCallback(callback *tgbotapi.CallbackQuery) {
	chatID := callback.Message.Chat.ID
	h.finder.Sessions().SetMode(scopeOf(chatID), state.ModeNormal)
	h.answer(callback, "Thanks! Your list is updated.")
	h.list(callback.Message)
}

// text handles plain messages: one ingredient normally, a list in bulk mode
func (h *Handlers) text(update tgbotapi.Update) {
	if update.Message == nil || update.Message.Text == "" || update.Message.IsCommand() {
		return
	}
	chatID := update.Message.Chat.ID

	if h.finder.Sessions().Get(scopeOf(chatID)).Mode == state.ModeAddingBulk {
		h.addMany(chatID, update.Message.Text)
		return
	}
	h.addOne(chatID, update.Message.Text)
}
