package nfe_test

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/renanb12/Projeto-Integrador/internal/domain/nfe"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func det(code, name, qty, unit, total string) string {
	return fmt.Sprintf(`<det><prod><cProd>%s</cProd><xProd>%s</xProd><qCom>%s</qCom><vUnCom>%s</vUnCom><vProd>%s</vProd></prod></det>`,
		code, name, qty, unit, total)
}

func buildNFe(dets ...string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<NFe xmlns="http://www.portalfiscal.inf.br/nfe">
  <infNFe Id="NFe35240512345678000199550010000000011000000017">
    <ide><serie>2</serie><nNF>77</nNF><dhEmi>2024-05-10T14:30:00-03:00</dhEmi><tpNF>1</tpNF></ide>
    <emit><CNPJ>12345678000199</CNPJ><xNome>Acme</xNome></emit>
    <dest><CNPJ>98765432000110</CNPJ><xNome>Loja 3D</xNome></dest>
    ` + strings.Join(dets, "\n    ") + `
  </infNFe>
</NFe>`
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

// ──────────────────────────────────────────────────────────────────────────────
// Extracción correcta
// ──────────────────────────────────────────────────────────────────────────────

func TestExtract_NfeProcCompleto(t *testing.T) {
	raw, err := os.ReadFile("testdata/nfe_proc.xml")
	require.NoError(t, err)

	doc, err := nfe.Extract(raw)
	require.NoError(t, err)

	assert.Equal(t, "35240512345678000199550010000012341000012345", doc.AccessKey, "el prefijo NFe se elimina del Id")
	assert.Equal(t, "12345678000199", doc.Supplier.TaxID)
	assert.Equal(t, "Acme Filamentos LTDA", doc.Supplier.Name)
	assert.Equal(t, "98765432000110", doc.Recipient.TaxID)
	assert.Equal(t, "3D Manager Comercio", doc.Recipient.Name)
	assert.Equal(t, "1234", doc.Invoice.Number)
	assert.Equal(t, "1", doc.Invoice.Series)
	assert.Equal(t, "1", doc.Invoice.Type)
	assert.Equal(t, "2024-05-10T14:30:00-03:00", doc.Invoice.IssuedAt)

	require.Len(t, doc.Items, 2, "un ítem por cada det")
	first, second := doc.Items[0], doc.Items[1]
	assert.Equal(t, "PLA-175-BK", first.Code)
	assert.Equal(t, "Filamento PLA 1.75mm Preto 1kg", first.Name)
	assert.True(t, first.Quantity.Equal(dec(t, "10")), "qCom = %s", first.Quantity)
	assert.True(t, first.UnitPrice.Equal(dec(t, "89.90")), "vUnCom = %s", first.UnitPrice)
	assert.True(t, first.LineTotal.Equal(dec(t, "899")), "vProd = %s", first.LineTotal)
	assert.Equal(t, "RES-500-CL", second.Code)
	assert.True(t, second.Quantity.Equal(dec(t, "2.5")))
	assert.True(t, second.UnitPrice.Equal(dec(t, "120.5")))
}

// N det → N ítems en orden del documento con qCom/vUnCom exactos.
func TestExtract_ConservaOrdenYCantidad(t *testing.T) {
	dets := make([]string, 0, 5)
	for i := 1; i <= 5; i++ {
		dets = append(dets, det(fmt.Sprintf("SKU%d", i), fmt.Sprintf("Item %d", i), fmt.Sprintf("%d.5", i), fmt.Sprintf("%d.25", i*10), "0"))
	}
	doc, err := nfe.ExtractString(buildNFe(dets...))
	require.NoError(t, err)
	require.Len(t, doc.Items, 5)
	for i, item := range doc.Items {
		n := i + 1
		assert.Equal(t, fmt.Sprintf("SKU%d", n), item.Code)
		assert.True(t, item.Quantity.Equal(dec(t, fmt.Sprintf("%d.5", n))))
		assert.True(t, item.UnitPrice.Equal(dec(t, fmt.Sprintf("%d.25", n*10))))
	}
}

func TestExtract_EscenarioAcme(t *testing.T) {
	doc, err := nfe.ExtractString(buildNFe(det("SKU1", "Widget", "10", "5.00", "50.00")))
	require.NoError(t, err)

	assert.Equal(t, "12345678000199", doc.Supplier.TaxID)
	assert.Equal(t, "Acme", doc.Supplier.Name)
	require.Len(t, doc.Items, 1)
	assert.Equal(t, "SKU1", doc.Items[0].Code)
	assert.Equal(t, "Widget", doc.Items[0].Name)
	assert.True(t, doc.Items[0].Quantity.Equal(decimal.NewFromInt(10)))
	assert.True(t, doc.Items[0].UnitPrice.Equal(decimal.NewFromInt(5)))
}

func TestExtract_HojasDeTextoAusentesSonVacias(t *testing.T) {
	xml := `<NFe><infNFe>
		<ide></ide>
		<emit></emit>
		<dest><CPF>12345678909</CPF></dest>
		<det><prod><qCom>1</qCom><vUnCom>2</vUnCom><vProd>2</vProd></prod></det>
	</infNFe></NFe>`
	doc, err := nfe.ExtractString(xml)
	require.NoError(t, err)

	assert.Equal(t, "", doc.AccessKey)
	assert.Equal(t, "", doc.Supplier.TaxID)
	assert.Equal(t, "", doc.Supplier.Name)
	assert.Equal(t, "12345678909", doc.Recipient.TaxID, "sin CNPJ se usa el CPF")
	assert.Equal(t, "", doc.Invoice.Number)
	assert.Equal(t, "", doc.Invoice.IssuedAt)
	assert.Equal(t, "", doc.Items[0].Code)
	assert.Equal(t, "", doc.Items[0].Name)
}

func TestExtract_LayoutAntiguoUsaDEmi(t *testing.T) {
	xml := strings.Replace(buildNFe(det("A", "B", "1", "1", "1")),
		"<dhEmi>2024-05-10T14:30:00-03:00</dhEmi>", "<dEmi>2012-03-01</dEmi>", 1)
	doc, err := nfe.ExtractString(xml)
	require.NoError(t, err)
	assert.Equal(t, "2012-03-01", doc.Invoice.IssuedAt)
}

func TestExtract_ISO88591(t *testing.T) {
	body := strings.Replace(buildNFe(det("AC1", "Açúcar refinado", "1", "4.50", "4.50")),
		`encoding="UTF-8"`, `encoding="ISO-8859-1"`, 1)
	latin1, err := charmap.ISO8859_1.NewEncoder().String(body)
	require.NoError(t, err)

	doc, err := nfe.Extract([]byte(latin1))
	require.NoError(t, err)
	assert.Equal(t, "Açúcar refinado", doc.Items[0].Name)
}

// ──────────────────────────────────────────────────────────────────────────────
// Documentos mal formados
// ──────────────────────────────────────────────────────────────────────────────

func TestExtract_DocumentoMalFormado(t *testing.T) {
	valid := buildNFe(det("A", "B", "1", "1", "1"))
	cases := []struct {
		name string
		xml  string
	}{
		{"sin raíz NFe", `<CTe><infCte/></CTe>`},
		{"sin infNFe", `<NFe><outro/></NFe>`},
		{"sin emit", stripNode(valid, "emit")},
		{"sin dest", stripNode(valid, "dest")},
		{"sin ide", stripNode(valid, "ide")},
		{"sin det", buildNFe()},
		{"det sin prod", buildNFe(`<det><imposto/></det>`)},
		{"xml inválido", `<NFe><infNFe>`},
		{"vacío", ``},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := nfe.ExtractString(tc.xml)
			require.Error(t, err)
			assert.Nil(t, doc, "no se devuelve documento parcial")
			assert.True(t, errors.Is(err, nfe.ErrMalformedDocument), "err = %v", err)
		})
	}
}

// stripNode elimina el nodo <tag>...</tag> del XML de prueba.
func stripNode(xml, tag string) string {
	start := strings.Index(xml, "<"+tag+">")
	end := strings.Index(xml, "</"+tag+">")
	return xml[:start] + xml[end+len(tag)+3:]
}

func TestExtract_CampoNumericoInvalido(t *testing.T) {
	cases := []struct {
		name  string
		det   string
		field string
	}{
		{"qCom no numérico", det("A", "B", "diez", "1", "1"), "qCom"},
		{"vUnCom con coma", det("A", "B", "1", "5,00", "1"), "vUnCom"},
		{"vProd vacío", det("A", "B", "1", "1", ""), "vProd"},
		{"qCom negativo", det("A", "B", "-1", "1", "1"), "qCom"},
		{"vUnCom ausente", `<det><prod><qCom>1</qCom><vProd>1</vProd></prod></det>`, "vUnCom"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := nfe.ExtractString(buildNFe(det("OK", "ok", "1", "1", "1"), tc.det))
			require.Error(t, err)
			assert.Nil(t, doc)
			assert.True(t, errors.Is(err, nfe.ErrFieldExtraction), "err = %v", err)
			assert.False(t, errors.Is(err, nfe.ErrMalformedDocument))

			var fe *nfe.FieldError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tc.field, fe.Field)
			assert.Equal(t, 2, fe.Item, "el error indica la posición del det")
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Fecha de emisión
// ──────────────────────────────────────────────────────────────────────────────

func TestInvoiceInfo_EmittedAt(t *testing.T) {
	cases := []struct {
		raw  string
		ok   bool
		want time.Time
	}{
		{"2024-05-10T14:30:00-03:00", true, time.Date(2024, 5, 10, 17, 30, 0, 0, time.UTC)},
		{"2024-05-10T14:30:00", true, time.Date(2024, 5, 10, 14, 30, 0, 0, time.UTC)},
		{"2012-03-01", true, time.Date(2012, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"", false, time.Time{}},
		{"10/05/2024", false, time.Time{}},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			got, ok := nfe.InvoiceInfo{IssuedAt: tc.raw}.EmittedAt()
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.True(t, tc.want.Equal(got), "got %s", got)
			}
		})
	}
}
