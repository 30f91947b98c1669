package importer

// OrderInput conjunto canónico de campos de un pedido tal como llega de una planilla
// o de texto pegado. Todos los valores son texto; la conversión ocurre al validar.
type OrderInput struct {
	Pedido               string `json:"pedido"`
	Data                 string `json:"data"`
	Exportador           string `json:"exportador"`
	ReferenciaExportador string `json:"referenciaExportador"`
	Importador           string `json:"importador"`
	ReferenciaImportador string `json:"referenciaImportador"`
	Quantidade           string `json:"quantidade"`
	Itens                string `json:"itens"`
	PrecoGuia            string `json:"precoGuia"`
	TotalGuia            string `json:"totalGuia"`
	Produtor             string `json:"produtor"`
	Cliente              string `json:"cliente"`
	Etiqueta             string `json:"etiqueta"`
	PortoEmbarque        string `json:"portoEmbarque"`
	PortoDestino         string `json:"portoDestino"`
	Condicao             string `json:"condicao"`
	Embarque             string `json:"embarque"`
	Previsao             string `json:"previsao"`
	Chegada              string `json:"chegada"`
	Observacao           string `json:"observacao"`
	Situacao             string `json:"situacao"`
	Semana               string `json:"semana"`
	Moeda                string `json:"moeda"`
	ViaTransporte        string `json:"viaTransporte"`
	Incoterm             string `json:"incoterm"`
}

const (
	defaultQuantidade = "0"
	defaultSituacao   = "pendiente"
)

// applyDefaults completa quantidade y situacao cuando vienen vacíos.
func (in *OrderInput) applyDefaults() {
	if in.Quantidade == "" {
		in.Quantidade = defaultQuantidade
	}
	if in.Situacao == "" {
		in.Situacao = defaultSituacao
	}
}
