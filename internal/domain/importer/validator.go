package importer

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/comex-crm/internal/domain/entity"
)

// ValidateOrderInput aplica las reglas de esquema a una fila mapeada y devuelve los mensajes
// de error (vacío si la fila es válida). No corta en el primer error.
func ValidateOrderInput(in OrderInput) []string {
	var errs []string

	if in.Pedido == "" {
		errs = append(errs, "Pedido é obrigatório")
	}
	if in.Data == "" {
		errs = append(errs, "Data é obrigatória")
	} else if _, err := ParseISODate(in.Data); err != nil {
		errs = append(errs, fmt.Sprintf("Data inválida: %s", in.Data))
	}
	if in.Exportador == "" {
		errs = append(errs, "Exportador é obrigatório")
	}
	if in.Importador == "" {
		errs = append(errs, "Importador é obrigatório")
	}
	if in.Cliente == "" {
		errs = append(errs, "Cliente é obrigatório")
	}

	if q, err := ParseDecimal(in.Quantidade); err != nil {
		errs = append(errs, fmt.Sprintf("Quantidade deve ser numérica: %s", in.Quantidade))
	} else if !q.Valid || !q.Decimal.IsPositive() {
		errs = append(errs, "Quantidade deve ser maior que zero")
	}
	if _, err := ParseDecimal(in.PrecoGuia); err != nil {
		errs = append(errs, fmt.Sprintf("Preço guia deve ser numérico: %s", in.PrecoGuia))
	}
	if _, err := ParseDecimal(in.TotalGuia); err != nil {
		errs = append(errs, fmt.Sprintf("Total guia deve ser numérico: %s", in.TotalGuia))
	}

	for _, d := range []struct{ label, value string }{
		{"Embarque", in.Embarque},
		{"Previsão", in.Previsao},
		{"Chegada", in.Chegada},
	} {
		if _, err := ParseISODate(d.value); err != nil {
			errs = append(errs, fmt.Sprintf("%s: data inválida: %s", d.label, d.value))
		}
	}

	if in.Moeda != "" && !entity.Contains(entity.Moedas, in.Moeda) {
		errs = append(errs, fmt.Sprintf("Moeda inválida: %s (use %s)", in.Moeda, strings.Join(entity.Moedas, ", ")))
	}
	if in.ViaTransporte != "" && !entity.Contains(entity.ViasTransporte, in.ViaTransporte) {
		errs = append(errs, fmt.Sprintf("Via de transporte inválida: %s (use %s)", in.ViaTransporte, strings.Join(entity.ViasTransporte, ", ")))
	}
	if in.Incoterm != "" && !entity.Contains(entity.Incoterms, in.Incoterm) {
		errs = append(errs, fmt.Sprintf("Incoterm inválido: %s (use %s)", in.Incoterm, strings.Join(entity.Incoterms, ", ")))
	}
	return errs
}

// ParseDecimal interpreta números en formato "1234.5", "1234,5", "1.234,50" o "1,234.50",
// con o sin símbolo de moneda. Un separador repetido ("1.234.567", "1,234,567") es de
// miles; un único punto es siempre decimal ("1.234" = 1,234). Cadena vacía devuelve un
// NullDecimal inválido sin error.
func ParseDecimal(s string) (decimal.NullDecimal, error) {
	s = strings.TrimSpace(s)
	for _, sym := range []string{"R$", "US$", "€", "$"} {
		s = strings.TrimPrefix(s, sym)
	}
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")
	switch {
	case lastComma >= 0 && lastDot >= 0 && lastComma > lastDot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case lastComma >= 0 && lastDot >= 0:
		s = strings.ReplaceAll(s, ",", "")
	case strings.Count(s, ",") > 1:
		s = strings.ReplaceAll(s, ",", "")
	case strings.Count(s, ".") > 1:
		s = strings.ReplaceAll(s, ".", "")
	case lastComma >= 0:
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}
