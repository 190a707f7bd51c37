package wizard

import (
	"errors"
	"fmt"

	"github.com/m3rciful/petshop/core/telegram/format"
	"github.com/m3rciful/petshop/internal/model"
	"github.com/m3rciful/petshop/internal/route"
	"github.com/m3rciful/petshop/internal/screen"
)

const (
	textAskName     = "✍️ Введите <b>имя питомца</b>:"
	textAskMutation = "✍️ Введите <b>мутацию питомца</b>:"
	textAskPrice    = "✍️ Введите <b>цену в рублях</b> (только число):"
	textAskCategory = "✍️ Введите <b>категорию</b> (fish/brainrot):"

	textBadPrice    = "❌ Цена должна быть числом. Попробуйте еще раз:"
	textBadCategory = "❌ Категория должна быть 'fish' или 'brainrot'. Попробуйте еще раз:"

	textCommitted = "✅ Питомец успешно добавлен!\n\n" +
		"🐾 Имя: %s\n" +
		"🧬 Мутация: %s\n" +
		"💵 Цена: %d₽\n" +
		"📁 Категория: %s\n" +
		"🆔 ID: %d"

	labelCancel = "❌ Отмена"
	labelAdmin  = "👑 Админ-панель"
)

func cancelRow() []screen.Button {
	return screen.Row(screen.Nav(labelCancel, route.AdminCancel{}))
}

func prompt(step Step) screen.Screen {
	var text string
	switch step {
	case StepName:
		text = textAskName
	case StepMutation:
		text = textAskMutation
	case StepPrice:
		text = textAskPrice
	default:
		text = textAskCategory
	}
	return screen.New(text, cancelRow())
}

func retry(step Step, cause error) screen.Screen {
	switch {
	case errors.Is(cause, errBlank):
		return prompt(step)
	case step == StepPrice:
		return screen.New(textBadPrice, cancelRow())
	default:
		return screen.New(textBadCategory, cancelRow())
	}
}

func summary(id int64, item model.NewItem) screen.Screen {
	text := fmt.Sprintf(textCommitted,
		format.EscapeHTML(item.Name),
		format.EscapeHTML(item.Mutation),
		item.Price,
		item.Category,
		id,
	)
	return screen.New(text, screen.Row(screen.Nav(labelAdmin, route.Admin{})))
}
