package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/daybook-app/daybook/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransportSelection(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()

	_, ok := NewTransport(cfg).(*OutboxTransport)
	assert.True(t, ok, "no SMTP host falls back to the outbox")

	cfg.SMTP.Host = "smtp.example.com"
	_, ok = NewTransport(cfg).(*SMTPTransport)
	assert.True(t, ok)
}

func TestOutboxTransportWritesFile(t *testing.T) {
	dir := t.TempDir()
	tr := &OutboxTransport{Dir: dir}

	err := tr.Send("2026-03-02 Daily report", "<html>body</html>", []string{"team@example.com"})
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasSuffix(entries[0].Name(), "-2026-03-02-Daily-report.html"))

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Equal(t, "<html>body</html>", string(data))
}

func TestOutboxTransportRequiresRecipients(t *testing.T) {
	tr := &OutboxTransport{Dir: t.TempDir()}
	assert.Error(t, tr.Send("subject", "body", nil))
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "a-b_c-1", sanitizeFilename("a b_c 1"))
	assert.Equal(t, "report", sanitizeFilename("///"))
	assert.Equal(t, "test-Daily", sanitizeFilename("[test] Daily"))
}

func TestSettingsRoundTrip(t *testing.T) {
	dir := t.TempDir()

	s := LoadSettings(dir)
	assert.Equal(t, DefaultSettings(), s, "missing file yields defaults")

	s.Recipients = []string{"boss@example.com"}
	s.CustomTitle = "wrap-up"
	require.NoError(t, SaveSettings(dir, s))

	got := LoadSettings(dir)
	assert.Equal(t, s, got)
}

func TestSettingsCorruptFileYieldsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "email_settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0644))

	assert.Equal(t, DefaultSettings(), LoadSettings(dir))
}
