// Package nfe extrae los datos de una Nota Fiscal Eletrônica (NFe, Brasil) a partir de su XML.
// No valida XSD ni consulta SEFAZ: solo lee el documento ya recibido.
package nfe

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/renanb12/Projeto-Integrador/internal/domain/entity"
)

// InvoiceDocument representación tipada de una NFe.
type InvoiceDocument struct {
	AccessKey string // 44 dígitos, sin el prefijo "NFe"
	Supplier  entity.Party
	Recipient entity.Party
	Invoice   InvoiceInfo
	Items     []LineItem // orden del documento
}

// InvoiceInfo datos del nodo ide.
type InvoiceInfo struct {
	Number   string // nNF
	Series   string // serie
	IssuedAt string // dhEmi (o dEmi en el layout 2.0), tal como viene en el XML
	Type     string // tpNF: 0 entrada, 1 salida
}

// LineItem un det/prod. LineTotal es informativo: no se compara contra Quantity*UnitPrice.
type LineItem struct {
	Code      string // cProd
	Name      string // xProd
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

var issuedAtLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// EmittedAt interpreta IssuedAt. Devuelve false si está vacío o no tiene un formato conocido.
func (i InvoiceInfo) EmittedAt() (time.Time, bool) {
	s := strings.TrimSpace(i.IssuedAt)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range issuedAtLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
