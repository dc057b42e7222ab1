package tlsutil

import (
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDevCertificates(t *testing.T) {
	dir := t.TempDir()
	certs, err := GenerateDevCertificates([]string{"localhost", "127.0.0.1"}, dir, time.Hour)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "ca.pem"), certs.CAFile)
	for _, path := range []string{certs.CAFile, certs.CertFile, certs.KeyFile} {
		_, err := os.Stat(path)
		assert.NoError(t, err, path)
	}
	_, err = os.Stat(filepath.Join(dir, "ca-key.pem"))
	assert.True(t, os.IsNotExist(err))

	raw, err := os.ReadFile(certs.CertFile)
	require.NoError(t, err)
	block, _ := pem.Decode(raw)
	require.NotNil(t, block)
	cert, err := x509.ParseCertificate(block.Bytes)
	require.NoError(t, err)

	assert.Equal(t, "localhost", cert.Subject.CommonName)
	assert.Equal(t, []string{"localhost"}, cert.DNSNames)
	require.Len(t, cert.IPAddresses, 1)
	assert.Equal(t, "127.0.0.1", cert.IPAddresses[0].String())
	assert.WithinDuration(t, time.Now().Add(time.Hour), cert.NotAfter, time.Minute)

	caRaw, err := os.ReadFile(certs.CAFile)
	require.NoError(t, err)
	roots := x509.NewCertPool()
	require.True(t, roots.AppendCertsFromPEM(caRaw))
	_, err = cert.Verify(x509.VerifyOptions{DNSName: "localhost", Roots: roots})
	assert.NoError(t, err)
}

func TestGenerateDevCertificates_NoHosts(t *testing.T) {
	_, err := GenerateDevCertificates(nil, t.TempDir(), time.Hour)
	assert.Error(t, err)
}

func TestLoadCredentials(t *testing.T) {
	certs, err := GenerateDevCertificates([]string{"localhost"}, t.TempDir(), time.Hour)
	require.NoError(t, err)

	cfg, err := LoadServerConfig(certs.CertFile, certs.KeyFile)
	require.NoError(t, err)
	assert.Len(t, cfg.Certificates, 1)

	creds, err := ServerTLSConfig(certs.CertFile, certs.KeyFile)
	require.NoError(t, err)
	assert.Equal(t, "tls", creds.Info().SecurityProtocol)

	client, err := ClientCredentials(certs.CAFile)
	require.NoError(t, err)
	assert.Equal(t, "tls", client.Info().SecurityProtocol)

	system, err := ClientCredentials("")
	require.NoError(t, err)
	assert.NotNil(t, system)
}

func TestLoadCredentials_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := ServerTLSConfig(filepath.Join(dir, "missing.pem"), filepath.Join(dir, "missing-key.pem"))
	assert.Error(t, err)

	bogus := filepath.Join(dir, "bogus.pem")
	require.NoError(t, os.WriteFile(bogus, []byte("not a certificate"), 0o600))
	_, err = ClientCredentials(bogus)
	assert.Error(t, err)
}
