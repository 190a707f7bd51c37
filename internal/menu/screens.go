package menu

import (
	"fmt"
	"strings"

	"github.com/m3rciful/petshop/core/telegram/format"
	"github.com/m3rciful/petshop/internal/model"
	"github.com/m3rciful/petshop/internal/route"
	"github.com/m3rciful/petshop/internal/screen"
)

const (
	labelBack       = "🔙 Назад"
	labelShop       = "🛒 Магазин питомцев"
	labelAbout      = "ℹ О боте"
	labelAdmin      = "👑 Админ-панель"
	labelBuy        = "💰 Купить"
	labelDelete     = "🗑 Удалить"
	labelAdd        = "➕ Добавить питомца"
	labelDeleteMenu = "🗑 Удалить питомца"
	labelList       = "📝 Список питомцев"
	labelYes        = "✅ Да"
	labelNo         = "❌ Нет"
	labelWriteUser  = "✉️ Написать пользователю"
	labelWriteAdmin = "✉️ Написать админу"
	labelFish       = "🐟 Steal a Fish!"
	labelBrainrot   = "🧠 Steal a Brainrot"

	textGreeting      = "Привет, %s! Добро пожаловать в Pet Shop!"
	textShop          = "🛒 Магазин питомцев:"
	textCategory      = "🐾 %s в продаже:"
	textCategoryEmpty = "ℹ В категории '%s' пока нет питомцев"
	textNotFound      = "❌ Питомец не найден"
	textDenied        = "⛔ У вас нет прав доступа!"
	textAdmin         = "👑 <b>Админ-панель</b>\n\nВыберите действие:"
	textDeleteMenu    = "🗑 <b>Выберите питомца для удаления:</b>"
	textDeleteEmpty   = "ℹ Нет доступных питомцев для удаления"
	textListTitle     = "📝 <b>Список питомцев</b>"
	textListEmpty     = "ℹ Каталог пока пуст"
	textDeleted       = "✅ Питомец успешно удален!"
	textDeleteFailed  = "❌ Не удалось удалить питомца"

	textAbout = "🤖 <b>О боте Pet Shop</b>\n\n" +
		"Этот бот позволяет покупать уникальных питомцев:\n" +
		"🐟 Steal a Fish!\n" +
		"🧠 Steal a Brainrot!\n\n" +
		"Для связи используйте кнопку 'Написать админу'"

	textItem = "🐾 <b>%s</b>\n" +
		"🧬 Мутация: %s\n" +
		"💵 Цена: %d₽\n" +
		"📁 Категория: %s\n\n" +
		"🆔 ID: %d"

	textConfirmDelete = "❓ Вы точно хотите удалить питомца?\n\n" +
		"🐾 %s (%s)\n" +
		"💵 %d₽ | 📁 %s\n" +
		"🆔 ID: %d"

	textPurchaseSent = "✅ <b>Запрос отправлен админам!</b>\n\n" +
		"Вы хотите купить: %s (%s) за %d₽\n\n" +
		"Ожидайте подтверждения. Если хотите уточнить детали, нажмите кнопку ниже:"

	textAdminNotice = "🛒 <b>Новый запрос на покупку #%d</b>\n\n" +
		"🐾 Питомец: %s (%s)\n" +
		"💵 Цена: %d₽\n" +
		"🆔 ID питомца: %d\n\n" +
		"👤 Покупатель: %s (@%s)\n" +
		"🆔 ID пользователя: %d\n\n" +
		"✅ Подтвердить: /confirm_%d\n" +
		"❌ Отклонить: /reject_%d"
)

var categoryLabels = map[model.Category]string{
	model.CategoryFish:     labelFish,
	model.CategoryBrainrot: labelBrainrot,
}

func back(r route.Route) []screen.Button {
	return screen.Row(screen.Nav(labelBack, r))
}

func mainMenu(actor Actor, admin bool) screen.Screen {
	rows := [][]screen.Button{
		screen.Row(screen.Nav(labelShop, route.Shop{})),
		screen.Row(screen.Nav(labelAbout, route.About{})),
	}
	if admin {
		rows = append(rows, screen.Row(screen.Nav(labelAdmin, route.Admin{})))
	}
	return screen.New(fmt.Sprintf(textGreeting, format.EscapeHTML(actor.FirstName)), rows...)
}

func shopMenu() screen.Screen {
	var rows [][]screen.Button
	for _, c := range model.Categories() {
		rows = append(rows, screen.Row(screen.Nav(categoryLabels[c], route.Category{Category: c})))
	}
	rows = append(rows, back(route.Main{}))
	return screen.New(textShop, rows...)
}

func about() screen.Screen {
	return screen.New(textAbout, back(route.Main{}))
}

func categoryScreen(c model.Category, items []model.Item) screen.Screen {
	if len(items) == 0 {
		return screen.New(fmt.Sprintf(textCategoryEmpty, c), back(route.Shop{}))
	}
	rows := make([][]screen.Button, 0, len(items)+1)
	for _, it := range items {
		label := fmt.Sprintf("%s (%s) - %d₽", it.Name, it.Mutation, it.Price)
		rows = append(rows, screen.Row(screen.Nav(label, route.Item{ID: it.ID})))
	}
	rows = append(rows, back(route.Shop{}))
	return screen.New(fmt.Sprintf(textCategory, c.Title()), rows...)
}

func itemScreen(it model.Item, admin bool) screen.Screen {
	var rows [][]screen.Button
	if admin {
		rows = append(rows, screen.Row(screen.Nav(labelDelete, route.ConfirmDelete{ID: it.ID})))
	}
	rows = append(rows,
		screen.Row(screen.Nav(labelBuy, route.Buy{ID: it.ID})),
		back(route.Category{Category: it.Category}),
	)
	text := fmt.Sprintf(textItem,
		format.EscapeHTML(it.Name),
		format.EscapeHTML(it.Mutation),
		it.Price,
		it.Category,
		it.ID,
	)
	return screen.New(text, rows...)
}

func notFound() screen.Screen {
	return screen.New(textNotFound, back(route.Shop{}))
}

func accessDenied() screen.Screen {
	return screen.New(textDenied, back(route.Main{}))
}

func adminPanel() screen.Screen {
	return screen.New(textAdmin,
		screen.Row(screen.Nav(labelAdd, route.AdminAdd{})),
		screen.Row(screen.Nav(labelDeleteMenu, route.AdminDeleteMenu{})),
		screen.Row(screen.Nav(labelList, route.AdminList{})),
		back(route.Main{}),
	)
}

func purchaseSent(it model.Item, contact int64) screen.Screen {
	text := fmt.Sprintf(textPurchaseSent, format.EscapeHTML(it.Name), format.EscapeHTML(it.Mutation), it.Price)
	return screen.New(text,
		screen.Row(screen.Link(labelWriteAdmin, format.UserURL(contact))),
		back(route.Item{ID: it.ID}),
	)
}

func adminNotification(purchaseID int64, it model.Item, buyer Actor) screen.Screen {
	username := buyer.Username
	if username == "" {
		username = "нет"
	}
	text := fmt.Sprintf(textAdminNotice,
		purchaseID,
		format.EscapeHTML(it.Name),
		format.EscapeHTML(it.Mutation),
		it.Price,
		it.ID,
		format.EscapeHTML(buyer.FirstName),
		format.EscapeHTML(username),
		buyer.ID,
		purchaseID,
		purchaseID,
	)
	return screen.New(text,
		screen.Row(screen.Link(labelWriteUser, format.UserURL(buyer.ID))),
		screen.Row(screen.Nav(labelDeleteMenu, route.ConfirmDelete{ID: it.ID})),
	)
}

func deleteMenuScreen(items []model.Item) screen.Screen {
	if len(items) == 0 {
		return screen.New(textDeleteEmpty, back(route.Admin{}))
	}
	rows := make([][]screen.Button, 0, len(items)+1)
	for _, it := range items {
		label := fmt.Sprintf("%s (ID: %d) - %d₽", it.Name, it.ID, it.Price)
		rows = append(rows, screen.Row(screen.Nav(label, route.Item{ID: it.ID})))
	}
	rows = append(rows, back(route.Admin{}))
	return screen.New(textDeleteMenu, rows...)
}

func listScreen(items []model.Item) screen.Screen {
	if len(items) == 0 {
		return screen.New(textListEmpty, back(route.Admin{}))
	}
	var b strings.Builder
	b.WriteString(textListTitle)
	var current model.Category
	for _, it := range items {
		if it.Category != current {
			current = it.Category
			fmt.Fprintf(&b, "\n\n📁 <b>%s</b>", current.Title())
		}
		fmt.Fprintf(&b, "\n🆔 %d | %s (%s) - %d₽",
			it.ID, format.EscapeHTML(it.Name), format.EscapeHTML(it.Mutation), it.Price)
	}
	return screen.New(b.String(), back(route.Admin{}))
}

func confirmDeleteScreen(it model.Item) screen.Screen {
	text := fmt.Sprintf(textConfirmDelete,
		format.EscapeHTML(it.Name),
		format.EscapeHTML(it.Mutation),
		it.Price,
		it.Category,
		it.ID,
	)
	return screen.New(text, screen.Row(
		screen.Nav(labelYes, route.Delete{ID: it.ID}),
		screen.Nav(labelNo, route.Item{ID: it.ID}),
	))
}

func deleteResult(ok bool) screen.Screen {
	if ok {
		return screen.New(textDeleted, back(route.AdminDeleteMenu{}))
	}
	return screen.New(textDeleteFailed, back(route.AdminDeleteMenu{}))
}
