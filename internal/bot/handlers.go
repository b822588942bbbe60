package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/avolkovs/weather-helper/internal/bot/keyboards"
	"github.com/avolkovs/weather-helper/internal/bot/state"
	apperrors "github.com/avolkovs/weather-helper/internal/errors"
	"github.com/avolkovs/weather-helper/internal/logger"
	"github.com/avolkovs/weather-helper/internal/render"
)

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) error {
	if update.Message == nil || update.Message.From == nil {
		return nil
	}

	message := update.Message
	if message.IsCommand() {
		return b.handleCommand(ctx, message)
	}
	if message.Text != "" {
		return b.handleText(ctx, message)
	}
	return nil
}

func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) error {
	logger.Infof("Handling command %s from user %d", message.Command(), message.From.ID)

	switch message.Command() {
	case "start":
		return b.handleStart(ctx, message)
	case "stats":
		return b.handleStats(ctx, message)
	case "help":
		return b.reply(message.Chat.ID, helpText, nil)
	default:
		return b.reply(message.Chat.ID, "Неизвестная команда. Используйте /help для просмотра доступных команд.", nil)
	}
}

const helpText = `Доступные команды:
/start - Главное меню
/help - Показать это сообщение

Кнопки:
«Погода сейчас» - текущая погода в вашем городе
«Погода на 5 дней» - прогноз на ближайшие дни
«Еженедельный анализ» - тенденции погоды за прошедшую неделю
«Изменить город» - выбрать другой город`

func (b *Bot) handleStart(ctx context.Context, message *tgbotapi.Message) error {
	b.states.ClearUserState(message.From.ID)

	user, err := b.users.GetByTelegramID(ctx, message.From.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			text := fmt.Sprintf("Привет, %s! Добро пожаловать в бота прогноза погоды. "+
				"Для получения информации о погоде зарегистрируйтесь и укажите свой город.",
				message.From.FirstName)
			return b.reply(message.Chat.ID, text, keyboards.Start(false))
		}
		return err
	}

	text := fmt.Sprintf("Привет, %s! Вы уже зарегистрированы. Ваш город: %s.",
		message.From.FirstName, user.City)
	return b.reply(message.Chat.ID, text, keyboards.Start(true))
}

func (b *Bot) handleStats(ctx context.Context, message *tgbotapi.Message) error {
	if !b.adminIDs[message.From.ID] {
		return b.reply(message.Chat.ID, "У вас нет прав для выполнения этой команды.", nil)
	}

	stats, err := b.userRepo.GetStats(ctx)
	if err != nil {
		return err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 Статистика бота:\n\n")
	fmt.Fprintf(&sb, "👥 Всего пользователей: %d\n", stats.TotalUsers)
	fmt.Fprintf(&sb, "✅ Активных пользователей: %d\n\n", stats.ActiveUsers)
	sb.WriteString("🏙️ Топ городов:\n")
	for _, city := range stats.TopCities {
		fmt.Fprintf(&sb, "- %s: %d\n", city.City, city.Count)
	}

	return b.reply(message.Chat.ID, sb.String(), nil)
}

func (b *Bot) handleText(ctx context.Context, message *tgbotapi.Message) error {
	userID := message.From.ID

	if b.states.GetUserState(userID) == state.WaitingForCity {
		return b.processCity(ctx, message)
	}

	switch message.Text {
	case keyboards.ButtonRegister, keyboards.ButtonChangeCity:
		return b.startRegistration(message)
	case keyboards.ButtonWeatherNow:
		return b.handleCurrentWeather(ctx, message)
	case keyboards.ButtonForecast:
		return b.handleForecast(ctx, message)
	case keyboards.ButtonWeekly:
		return b.handleWeeklyAnalysis(ctx, message)
	default:
		return b.reply(message.Chat.ID, "Пожалуйста, используйте меню для выбора действия.", nil)
	}
}

func (b *Bot) startRegistration(message *tgbotapi.Message) error {
	b.states.SetUserState(message.From.ID, state.WaitingForCity)
	return b.reply(message.Chat.ID,
		"Укажите свой город, чтобы я мог присылать вам информацию о погоде.",
		tgbotapi.NewRemoveKeyboard(false))
}

func (b *Bot) processCity(ctx context.Context, message *tgbotapi.Message) error {
	city := strings.TrimSpace(message.Text)

	_, _, err := b.users.Register(ctx, message.From.ID,
		message.From.UserName, message.From.FirstName, message.From.LastName, city)
	if err != nil {
		if errors.Is(err, apperrors.ErrProviderUnavailable) {
			return b.reply(message.Chat.ID,
				"Не удалось найти введенный вами город. Проверьте правильность написания и попробуйте еще раз. "+
					"Примеры: Москва, Тамбов, Санкт-Петербург.", nil)
		}
		return err
	}

	b.states.ClearUserState(message.From.ID)
	text := fmt.Sprintf("Вы успешно зарегистрированы! Теперь вы будете получать информацию о погоде для города %s.", city)
	return b.reply(message.Chat.ID, text, keyboards.Start(true))
}

// requireRegistered prompts the user to register. Returns true when handled.
func (b *Bot) requireRegistered(message *tgbotapi.Message, err error) (bool, error) {
	if errors.Is(err, apperrors.ErrUserNotFound) {
		return true, b.reply(message.Chat.ID,
			"Вы еще не зарегистрированы. Пожалуйста, зарегистрируйтесь, чтобы получать прогноз погоды.",
			keyboards.Start(false))
	}
	return false, nil
}

func (b *Bot) handleCurrentWeather(ctx context.Context, message *tgbotapi.Message) error {
	weather, err := b.weather.CurrentForUser(ctx, message.From.ID)
	if err != nil {
		if handled, replyErr := b.requireRegistered(message, err); handled {
			return replyErr
		}
		logger.Errorf("Current weather failed for user %d: %v", message.From.ID, err)
		return b.reply(message.Chat.ID,
			"Извините, ошибка получения данных о погоде. Попробуйте позже.", keyboards.Weather())
	}

	return b.reply(message.Chat.ID, render.CurrentWeather(weather), keyboards.Weather())
}

func (b *Bot) handleForecast(ctx context.Context, message *tgbotapi.Message) error {
	forecast, user, err := b.weather.ForecastForUser(ctx, message.From.ID)
	if err != nil {
		if handled, replyErr := b.requireRegistered(message, err); handled {
			return replyErr
		}
		logger.Errorf("Forecast failed for user %d: %v", message.From.ID, err)
		return b.reply(message.Chat.ID,
			"Извините, ошибка получения данных о погоде. Попробуйте позже.", keyboards.Weather())
	}

	return b.reply(message.Chat.ID, render.Forecast(user.City, forecast), keyboards.Weather())
}

func (b *Bot) handleWeeklyAnalysis(ctx context.Context, message *tgbotapi.Message) error {
	report, err := b.analytics.WeeklyAnalysis(ctx, message.From.ID)
	if err != nil {
		if handled, replyErr := b.requireRegistered(message, err); handled {
			return replyErr
		}
		if errors.Is(err, apperrors.ErrInsufficientData) {
			return b.reply(message.Chat.ID,
				"Недостаточно данных для анализа погоды за неделю. "+
					"Попробуйте позже, когда будет собрано больше данных.", keyboards.Weather())
		}
		logger.Errorf("Weekly analysis failed for user %d: %v", message.From.ID, err)
		return b.reply(message.Chat.ID,
			"Извините, не удалось получить анализ погоды. Попробуйте позже.", keyboards.Weather())
	}

	return b.reply(message.Chat.ID, render.WeeklyAnalysis(report), keyboards.Weather())
}
