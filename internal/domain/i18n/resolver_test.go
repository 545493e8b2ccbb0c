package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"almacen/internal/core/apperror"
	"almacen/internal/domain/material"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		expect string
	}{
		{"empty defaults", "", "es"},
		{"plain language", "en", "en"},
		{"uppercase", "GL", "gl"},
		{"underscore region", "gl_ES", "gl"},
		{"dash region", "gl-ES", "gl"},
		{"whitespace", "  es  ", "es"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, Normalize(tt.in))
		})
	}
}

func TestResolveName(t *testing.T) {
	translations := []material.Translation{
		{Locale: "es", Name: "madera"},
		{Locale: "en", Name: "wood"},
	}

	t.Run("exact match", func(t *testing.T) {
		name, err := ResolveName(1, "en", translations)
		require.NoError(t, err)
		assert.Equal(t, "wood", name)
	})

	t.Run("region tag resolves to language", func(t *testing.T) {
		name, err := ResolveName(1, "en_US", translations)
		require.NoError(t, err)
		assert.Equal(t, "wood", name)
	})

	t.Run("missing locale falls back to default", func(t *testing.T) {
		name, err := ResolveName(1, "gl", translations)
		require.NoError(t, err)
		assert.Equal(t, "madera", name)
	})

	t.Run("no translation at all", func(t *testing.T) {
		_, err := ResolveName(7, "gl", []material.Translation{{Locale: "en", Name: "wood"}})
		require.Error(t, err)

		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeMissingTranslation, appErr.Code)
		assert.Equal(t, int64(7), appErr.Details["material_id"])
	})
}
