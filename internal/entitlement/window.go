package entitlement

import "time"

// Продлеваемое временное окно - общая абстракция для премиума и
// журнала/календаря. Правило монотонного продления: новый грант всегда
// отсчитывается от позднего из (now, текущие окна), так что
// последовательные гранты складываются аддитивно, а не перекрываются.

// Extend возвращает новый expiry: max(now, candidates...) + d.
// Нулевые и nil-кандидаты игнорируются.
func Extend(now time.Time, d time.Duration, candidates ...*time.Time) time.Time {
	base := now
	for _, c := range candidates {
		if c != nil && c.After(base) {
			base = *c
		}
	}
	return base.Add(d)
}

// ExtendDays - то же самое в днях (все длительности грантов в движке
// выражены в днях).
func ExtendDays(now time.Time, days int, candidates ...*time.Time) time.Time {
	return Extend(now, time.Duration(days)*24*time.Hour, candidates...)
}

// Active сообщает, открыто ли хотя бы одно из окон в момент now.
func Active(now time.Time, windows ...*time.Time) bool {
	for _, w := range windows {
		if w != nil && now.Before(*w) {
			return true
		}
	}
	return false
}

// DaysRemaining - целые дни до expiry, округление вверх; 0 если окно
// закрыто.
func DaysRemaining(now time.Time, until *time.Time) int {
	if until == nil || !now.Before(*until) {
		return 0
	}
	d := until.Sub(now)
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) > 0 {
		days++
	}
	return days
}

// DayBounds - границы календарного дня момента now в референсной
// таймзоне сервера. Дневные лимиты считаются только по ним, клиентские
// часы в расчете не участвуют.
func DayBounds(now time.Time, loc *time.Location) (time.Time, time.Time) {
	local := now.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}
