package nfe

import (
	"errors"
	"io"
	"strings"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/renanb12/Projeto-Integrador/internal/domain/entity"
)

// accessKeyPrefix prefijo fijo del atributo infNFe/@Id.
const accessKeyPrefix = "NFe"

var errNegative = errors.New("valor negativo")

// ExtractString atajo de Extract para contenido en string.
func ExtractString(xmlText string) (*InvoiceDocument, error) {
	return Extract([]byte(xmlText))
}

// Extract interpreta el XML de una NFe (con o sin envoltorio nfeProc).
//
// Errores:
//   - ErrMalformedDocument si el XML no es válido o faltan NFe, infNFe, emit, dest, ide o det.
//   - *FieldError (errors.Is(err, ErrFieldExtraction)) si qCom, vUnCom o vProd no es un decimal >= 0.
//
// Las hojas de texto ausentes se devuelven como "".
func Extract(xmlText []byte) (*InvoiceDocument, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charsetReader
	if err := doc.ReadFromBytes(xmlText); err != nil {
		return nil, malformed("xml inválido: %v", err)
	}

	nfe := doc.FindElement("//NFe")
	if nfe == nil {
		return nil, malformed("nodo NFe no encontrado")
	}
	infNFe := nfe.FindElement(".//infNFe")
	if infNFe == nil {
		return nil, malformed("nodo infNFe no encontrado")
	}
	emit := infNFe.FindElement(".//emit")
	if emit == nil {
		return nil, malformed("nodo emit no encontrado")
	}
	dest := infNFe.FindElement(".//dest")
	if dest == nil {
		return nil, malformed("nodo dest no encontrado")
	}
	ide := infNFe.FindElement(".//ide")
	if ide == nil {
		return nil, malformed("nodo ide no encontrado")
	}
	dets := infNFe.FindElements(".//det")
	if len(dets) == 0 {
		return nil, malformed("la NFe no tiene ítems (det)")
	}

	out := &InvoiceDocument{
		AccessKey: strings.TrimPrefix(infNFe.SelectAttrValue("Id", ""), accessKeyPrefix),
		Supplier:  party(emit),
		Recipient: party(dest),
		Invoice: InvoiceInfo{
			Number:   leafText(ide, "nNF"),
			Series:   leafText(ide, "serie"),
			IssuedAt: firstNonEmpty(leafText(ide, "dhEmi"), leafText(ide, "dEmi")),
			Type:     leafText(ide, "tpNF"),
		},
		Items: make([]LineItem, 0, len(dets)),
	}

	for i, det := range dets {
		prod := det.FindElement(".//prod")
		if prod == nil {
			return nil, malformed("det %d sin nodo prod", i+1)
		}
		item, err := lineItem(i+1, prod)
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, item)
	}
	return out, nil
}

func lineItem(pos int, prod *etree.Element) (LineItem, error) {
	qty, err := leafDecimal(pos, prod, "qCom")
	if err != nil {
		return LineItem{}, err
	}
	unit, err := leafDecimal(pos, prod, "vUnCom")
	if err != nil {
		return LineItem{}, err
	}
	total, err := leafDecimal(pos, prod, "vProd")
	if err != nil {
		return LineItem{}, err
	}
	return LineItem{
		Code:      leafText(prod, "cProd"),
		Name:      leafText(prod, "xProd"),
		Quantity:  qty,
		UnitPrice: unit,
		LineTotal: total,
	}, nil
}

// party emisor/destinatario: CNPJ, o CPF cuando es persona natural.
func party(e *etree.Element) entity.Party {
	return entity.Party{
		TaxID: firstNonEmpty(leafText(e, "CNPJ"), leafText(e, "CPF")),
		Name:  leafText(e, "xNome"),
	}
}

func leafText(parent *etree.Element, tag string) string {
	e := parent.FindElement(".//" + tag)
	if e == nil {
		return ""
	}
	return strings.TrimSpace(e.Text())
}

func leafDecimal(pos int, parent *etree.Element, tag string) (decimal.Decimal, error) {
	raw := leafText(parent, tag)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, &FieldError{Item: pos, Field: tag, Value: raw, Err: err}
	}
	if d.IsNegative() {
		return decimal.Zero, &FieldError{Item: pos, Field: tag, Value: raw, Err: errNegative}
	}
	return d, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// charsetReader soporta XML declarados en ISO-8859-1 (frecuente en emisores antiguos).
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToUpper(label) {
	case "ISO-8859-1", "ISO8859-1", "LATIN1":
		return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
	case "WINDOWS-1252", "CP1252":
		return transform.NewReader(input, charmap.Windows1252.NewDecoder()), nil
	}
	return input, nil
}
