package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const isoLayout = "2006-01-02"

// ConvertDMYDate convierte "DD/MM/YY" o "DD/MM/YYYY" a "YYYY-MM-DD" usando el año actual.
func ConvertDMYDate(s string) string {
	return ConvertDMYDateAt(s, time.Now())
}

// ConvertDMYDateAt igual que ConvertDMYDate con el reloj explícito.
//
// Un año de dos dígitos se expande con el siglo del año actual (siglo + yy), así "99"
// en 2024 da 2099. Cadenas sin exactamente tres segmentos se devuelven sin cambios.
func ConvertDMYDateAt(s string, now time.Time) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return s
	}
	day, month, year := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), strings.TrimSpace(parts[2])
	if len(year) == 2 {
		century := now.Year() / 100 * 100
		yy, err := strconv.Atoi(year)
		if err != nil {
			return s
		}
		year = strconv.Itoa(century + yy)
	}
	return fmt.Sprintf("%s-%s-%s", year, padTwo(month), padTwo(day))
}

func padTwo(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// ParseISODate interpreta "YYYY-MM-DD"; cadena vacía devuelve nil.
func ParseISODate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(isoLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
