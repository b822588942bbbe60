package keyboards

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// Button labels double as the routing keys in the text handler.
const (
	ButtonRegister   = "Зарегистрироваться"
	ButtonWeatherNow = "Погода сейчас"
	ButtonForecast   = "Погода на 5 дней"
	ButtonWeekly     = "Еженедельный анализ"
	ButtonChangeCity = "Изменить город"
)

// Start returns the main menu keyboard. Unregistered users only see the
// registration button.
func Start(isRegistered bool) tgbotapi.ReplyKeyboardMarkup {
	if !isRegistered {
		return tgbotapi.NewReplyKeyboard(
			tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(ButtonRegister)),
		)
	}
	return Weather()
}

// Weather returns the weather actions keyboard.
func Weather() tgbotapi.ReplyKeyboardMarkup {
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(ButtonWeatherNow)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(ButtonForecast)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(ButtonWeekly)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(ButtonChangeCity)),
	)
	keyboard.ResizeKeyboard = true
	return keyboard
}
