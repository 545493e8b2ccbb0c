// Package i18n resolves localized catalog names.
//
// Lookup order is fixed: the requested locale first, then the default
// locale. A record with no translation in either is a data integrity
// problem and surfaces as an error instead of an empty name.
package i18n

import (
	"strings"

	"almacen/internal/core/apperror"
	"almacen/internal/domain/material"
)

// Normalize canonicalizes a locale tag to its lowercase language part.
// "gl_ES", "gl-ES" and "GL" all resolve to "gl". Empty input resolves
// to the default locale.
func Normalize(locale string) string {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return material.DefaultLocale
	}
	if i := strings.IndexAny(locale, "-_"); i > 0 {
		locale = locale[:i]
	}
	return strings.ToLower(locale)
}

// ResolveName picks the translation for the requested locale, falling
// back to the default locale.
func ResolveName(materialID int64, locale string, translations []material.Translation) (string, error) {
	locale = Normalize(locale)

	var fallback string
	var hasFallback bool
	for _, t := range translations {
		if t.Locale == locale {
			return t.Name, nil
		}
		if t.Locale == material.DefaultLocale {
			fallback = t.Name
			hasFallback = true
		}
	}
	if hasFallback {
		return fallback, nil
	}
	return "", apperror.NewMissingTranslation(materialID, locale)
}
