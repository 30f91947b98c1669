package importer

import (
	"strconv"
	"time"
)

// Rango (exclusivo) de números que se interpretan como fecha serial de Excel.
const (
	excelSerialMin = 40000
	excelSerialMax = 50000

	// días entre la época de Excel (1899-12-30) y la época Unix
	excelUnixOffsetDays = 25569
	secondsPerDay       = 86400
)

// NormalizeCell convierte el valor crudo de una celda en texto.
//
//   - nil → ""
//   - número en (40000, 50000) → fecha ISO YYYY-MM-DD (serial de Excel)
//   - otro número → representación decimal sin formato regional
//   - string → sin cambios
func NormalizeCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return normalizeNumber(x)
	case float32:
		return normalizeNumber(float64(x))
	case int:
		return normalizeNumber(float64(x))
	case int32:
		return normalizeNumber(float64(x))
	case int64:
		return normalizeNumber(float64(x))
	case uint:
		return normalizeNumber(float64(x))
	case uint32:
		return normalizeNumber(float64(x))
	case uint64:
		return normalizeNumber(float64(x))
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(isoLayout)
	case interface{ String() string }:
		return x.String()
	}
	return ""
}

func normalizeNumber(f float64) string {
	if f > excelSerialMin && f < excelSerialMax {
		return ExcelSerialToISO(f)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ExcelSerialToISO convierte un serial de Excel a fecha ISO: EPOCH + (serial - 25569) * 86400 s.
func ExcelSerialToISO(serial float64) string {
	secs := int64((serial - excelUnixOffsetDays) * secondsPerDay)
	return time.Unix(secs, 0).UTC().Format(isoLayout)
}
