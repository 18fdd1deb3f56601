package domain

import "time"

// DateOnly обнуляет время, оставляя календарный день в часовом поясе t
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay проверяет, что две даты относятся к одному календарному дню
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DateRangeContains проверяет, что день попадает в диапазон [start, end] включительно
// Сравниваются календарные даты, часовой пояс аргументов не важен
func DateRangeContains(start, end, day time.Time) bool {
	k := dateKey(day)
	return k >= dateKey(start) && k <= dateKey(end)
}

// InLocation возвращает полночь того же календарного дня в указанном часовом поясе
func InLocation(day time.Time, loc *time.Location) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func dateKey(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}

// DaysInRange перечисляет календарные дни диапазона [start, end] включительно
// Шаг делается через AddDate, чтобы переход на летнее время не сдвигал дни
func DaysInRange(start, end time.Time) []time.Time {
	first := DateOnly(start)
	last := DateOnly(end)
	if last.Before(first) {
		return nil
	}

	days := make([]time.Time, 0, 8)
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// DayCount количество дней в диапазоне включительно (однодневное пребывание = 1)
func DayCount(start, end time.Time) int {
	return len(DaysInRange(start, end))
}
