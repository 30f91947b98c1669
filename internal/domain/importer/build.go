package importer

import (
	"fmt"

	"github.com/jhoicas/comex-crm/internal/domain/entity"
)

// ResolvedRefs ids de las entidades nombradas ya resueltas para una fila.
type ResolvedRefs struct {
	ClientID   string
	ExporterID string
	ImporterID string
	ProducerID *string
}

// BuildOrder convierte una fila validada en la entidad Order (sin ID ni timestamps).
// Moeda vacía queda en BRL.
func BuildOrder(in OrderInput, refs ResolvedRefs) (*entity.Order, error) {
	data, err := ParseISODate(in.Data)
	if err != nil || data == nil {
		return nil, fmt.Errorf("data inválida: %q", in.Data)
	}
	qty, err := ParseDecimal(in.Quantidade)
	if err != nil {
		return nil, fmt.Errorf("quantidade: %w", err)
	}
	preco, err := ParseDecimal(in.PrecoGuia)
	if err != nil {
		return nil, fmt.Errorf("preço guia: %w", err)
	}
	total, err := ParseDecimal(in.TotalGuia)
	if err != nil {
		return nil, fmt.Errorf("total guia: %w", err)
	}
	embarque, err := ParseISODate(in.Embarque)
	if err != nil {
		return nil, fmt.Errorf("embarque: %w", err)
	}
	previsao, err := ParseISODate(in.Previsao)
	if err != nil {
		return nil, fmt.Errorf("previsão: %w", err)
	}
	chegada, err := ParseISODate(in.Chegada)
	if err != nil {
		return nil, fmt.Errorf("chegada: %w", err)
	}

	moeda := in.Moeda
	if moeda == "" {
		moeda = entity.MoedaBRL
	}
	situacao := in.Situacao
	if situacao == "" {
		situacao = entity.SituacaoPendiente
	}

	return &entity.Order{
		Pedido:               in.Pedido,
		Data:                 *data,
		ExporterID:           refs.ExporterID,
		ImporterID:           refs.ImporterID,
		ClientID:             refs.ClientID,
		ProducerID:           refs.ProducerID,
		ReferenciaExportador: in.ReferenciaExportador,
		ReferenciaImportador: in.ReferenciaImportador,
		Quantidade:           qty.Decimal,
		Itens:                in.Itens,
		PrecoGuia:            preco,
		TotalGuia:            total,
		Etiqueta:             in.Etiqueta,
		PortoEmbarque:        in.PortoEmbarque,
		PortoDestino:         in.PortoDestino,
		Condicao:             in.Condicao,
		Embarque:             embarque,
		Previsao:             previsao,
		Chegada:              chegada,
		Observacao:           in.Observacao,
		Situacao:             situacao,
		Semana:               in.Semana,
		Moeda:                moeda,
		ViaTransporte:        in.ViaTransporte,
		Incoterm:             in.Incoterm,
	}, nil
}
