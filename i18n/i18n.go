// Package i18n holds the user-facing labels and messages in Russian (default)
// and English.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

const DefaultLang = "ru"

var supported = []language.Tag{language.Russian, language.English}

var matcher = language.NewMatcher(supported)

var messages = map[string]map[string]string{
	"ru": {
		"required":         "Обязательное поле",
		"too_long":         "Слишком длинное значение",
		"out_of_range":     "Значение вне диапазона",
		"invalid_sph":      "SPH: от -30.00 до +30.00, шаг 0.25",
		"invalid_cyl":      "CYL: от -10.00 до +10.00, шаг 0.25",
		"invalid_ax":       "AX: целое число от 0 до 180",
		"invalid_bc":       "BC: от 8.0 до 9.0, шаг 0.1",
		"invalid_qty":      "Количество: от 1 до 20",
		"storage_error":    "Ошибка базы данных",
		"export_error":     "Не удалось сохранить файл",
		"invalid_bool":     "Ожидается да/нет (true/false)",
		"not_found":        "Запись не найдена",
		"duplicate_number": "Такой номер заказа уже есть",
		"unknown_status":   "Неизвестный статус",
		"unknown_setting":  "Неизвестная настройка",

		"status.not_ordered": "Не заказан",
		"status.ordered":     "Заказан",
		"status.called":      "Прозвонен",
		"status.delivered":   "Вручен",
		"status.all":         "Все",

		"col.client":  "ФИО",
		"col.phone":   "Телефон",
		"col.items":   "Товары",
		"col.status":  "Статус",
		"col.created": "Дата",
		"col.number":  "Номер заказа",
		"col.product": "Товар",
		"col.qty":     "Количество",
		"col.sph":     "SPH",
		"col.cyl":     "CYL",
		"col.ax":      "AX",
		"col.bc":      "BC",
		"col.total":   "Итого",
	},
	"en": {
		"required":         "Required",
		"too_long":         "Value is too long",
		"out_of_range":     "Value out of range",
		"invalid_sph":      "SPH: -30.00 to +30.00 in 0.25 steps",
		"invalid_cyl":      "CYL: -10.00 to +10.00 in 0.25 steps",
		"invalid_ax":       "AX: integer from 0 to 180",
		"invalid_bc":       "BC: 8.0 to 9.0 in 0.1 steps",
		"invalid_qty":      "Quantity: 1 to 20",
		"storage_error":    "Database error",
		"export_error":     "Could not write the file",
		"invalid_bool":     "Expected true or false",
		"not_found":        "Record not found",
		"duplicate_number": "This order number is already in use",
		"unknown_status":   "Unknown status",
		"unknown_setting":  "Unknown setting",

		"status.not_ordered": "Not ordered",
		"status.ordered":     "Ordered",
		"status.called":      "Called",
		"status.delivered":   "Delivered",
		"status.all":         "All",

		"col.client":  "Client",
		"col.phone":   "Phone",
		"col.items":   "Items",
		"col.status":  "Status",
		"col.created": "Date",
		"col.number":  "Order number",
		"col.product": "Product",
		"col.qty":     "Qty",
		"col.sph":     "SPH",
		"col.cyl":     "CYL",
		"col.ax":      "AX",
		"col.bc":      "BC",
		"col.total":   "Total",
	},
}

// DetectLanguage picks a supported language from a locale string such as
// "en-US,en;q=0.9" or "en_GB.UTF-8". Unknown or empty input yields DefaultLang.
func DetectLanguage(locale string) string {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return DefaultLang
	}
	// POSIX locales: en_GB.UTF-8
	if i := strings.IndexByte(locale, '.'); i > 0 {
		locale = locale[:i]
	}
	locale = strings.ReplaceAll(locale, "_", "-")
	tags, _, err := language.ParseAcceptLanguage(locale)
	if err != nil || len(tags) == 0 {
		return DefaultLang
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return DefaultLang
	}
	base, _ := supported[idx].Base()
	return base.String()
}

// T translates a message code. Unknown languages fall back to DefaultLang,
// unknown codes are returned as is.
func T(lang, code string) string {
	if m, ok := messages[lang]; ok {
		if s, ok := m[code]; ok {
			return s
		}
	}
	if s, ok := messages[DefaultLang][code]; ok {
		return s
	}
	return code
}

// Status returns the display label of an order status code.
func Status(lang, status string) string {
	return T(lang, "status."+status)
}
