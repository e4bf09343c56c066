package alerting

import "time"

// seasonsByMonth mapea meses calendario a temporadas comerciales con
// demanda históricamente atípica.
var seasonsByMonth = map[time.Month]string{
	time.December:  "year-end holidays",
	time.January:   "winter sales",
	time.July:      "summer sales",
	time.September: "back-to-school",
}

// SeasonForMonth devuelve la temporada comercial del mes, si la hay.
func SeasonForMonth(m time.Month) (string, bool) {
	name, ok := seasonsByMonth[m]
	return name, ok
}
