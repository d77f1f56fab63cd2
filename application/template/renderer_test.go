package template_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/wallet-sdk/application/template"
)

func TestGoTemplateEngine_Render(t *testing.T) {
	now := func() time.Time { return time.UnixMilli(1716840000000) }
	engine := template.NewGoTemplateEngine(template.WithClock(now))

	t.Run("Successful Resolution", func(t *testing.T) {
		raw := []byte("amount: {{ .vars.amount }}\nexpiry: {{ expiresIn \"1h\" }}")

		out, err := engine.Render(raw, map[string]string{"amount": "69420"})
		require.NoError(t, err)
		assert.Equal(t, "amount: 69420\nexpiry: 1716843600000", string(out))
	})

	t.Run("No Placeholders", func(t *testing.T) {
		raw := []byte("expiry: 1716846083638")

		out, err := engine.Render(raw, nil)
		require.NoError(t, err)
		assert.Equal(t, raw, out)
	})

	t.Run("Missing Key Fails", func(t *testing.T) {
		_, err := engine.Render([]byte(`amount: {{ .vars.missing }}`), map[string]string{"amount": "1"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "map has no entry for key")
	})

	t.Run("Missing Key Allowed When Not Strict", func(t *testing.T) {
		lenient := template.NewGoTemplateEngine(template.WithStrict(false))

		out, err := lenient.Render([]byte(`amount: {{ .vars.missing }}`), nil)
		require.NoError(t, err)
		assert.Contains(t, string(out), "amount:")
	})

	t.Run("Invalid Duration", func(t *testing.T) {
		for _, d := range []string{"soon", "-1h"} {
			_, err := engine.Render([]byte(`expiry: {{ expiresIn "`+d+`" }}`), nil)
			assert.Error(t, err, d)
		}
	})

	t.Run("Invalid Template Syntax", func(t *testing.T) {
		_, err := engine.Render([]byte(`amount: {{ .vars.amount`), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse parameters template")
	})
}
