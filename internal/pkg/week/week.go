package week

import "time"

// Неделя в QUORUM идет с понедельника по воскресенье. Все еженедельные
// вопросы привязаны к дате понедельника своей недели ("week bucket").

// ISOFormat - формат даты начала недели для API и БД.
const ISOFormat = "2006-01-02"

// StartOf возвращает понедельник недели, в которую попадает дата.
// Для воскресенья понедельник на 6 дней раньше, для остальных дней
// смещение равно (1 - деньНедели) при соглашении 0=воскресенье..6=суббота.
// Время обнуляется до полуночи UTC, чтобы одинаковые недели сравнивались как равные.
func StartOf(t time.Time) time.Time {
	t = t.UTC()
	dow := int(t.Weekday()) // 0=Sunday .. 6=Saturday
	var offset int
	if dow == 0 {
		offset = -6
	} else {
		offset = 1 - dow
	}
	monday := t.AddDate(0, 0, offset)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, time.UTC)
}

// StartOfISO возвращает понедельник недели в виде ISO-строки (YYYY-MM-DD).
func StartOfISO(t time.Time) string {
	return StartOf(t).Format(ISOFormat)
}

// ParseISO разбирает ISO-дату и приводит ее к понедельнику своей недели.
// Админ может выбрать любую дату при планировании вопроса - система всегда
// привязывает его к понедельнику соответствующей недели.
func ParseISO(s string) (time.Time, error) {
	t, err := time.Parse(ISOFormat, s)
	if err != nil {
		return time.Time{}, err
	}
	return StartOf(t), nil
}
