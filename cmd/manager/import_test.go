package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validNFe = `<NFe><infNFe Id="NFe1">
<ide><nNF>77</nNF></ide>
<emit><CNPJ>12345678000199</CNPJ><xNome>Acme</xNome></emit>
<dest><CNPJ>98765432000110</CNPJ><xNome>Loja</xNome></dest>
<det><prod><cProd>SKU1</cProd><xProd>Widget</xProd><qCom>10</qCom><vUnCom>5.00</vUnCom><vProd>50.00</vProd></prod></det>
</infNFe></NFe>`

func runManager(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestImportCheck(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "ok.xml")
	bad := filepath.Join(dir, "bad.xml")
	require.NoError(t, os.WriteFile(good, []byte(validNFe), 0o600))
	require.NoError(t, os.WriteFile(bad, []byte(`<CTe/>`), 0o600))

	out, err := runManager(t, "import", "--check", good)
	require.NoError(t, err)
	assert.Contains(t, out, `OK nota=77 proveedor="Acme" ítems=1`)

	out, err = runManager(t, "import", "--check", good, bad, filepath.Join(dir, "missing.xml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 de 3")
	assert.Contains(t, out, "bad.xml: ERROR")
}

func TestImportSinArchivos(t *testing.T) {
	_, err := runManager(t, "import")
	assert.Error(t, err)
}
