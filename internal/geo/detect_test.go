package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name        string
		company     string
		wantCountry string
		wantLang    string
	}{
		{name: "french sa suffix", company: "Dassault Systèmes SA", wantCountry: "France", wantLang: "fr"},
		{name: "french sarl suffix", company: "Boulangerie Martin SARL", wantCountry: "France", wantLang: "fr"},
		{name: "societe prefix", company: "Société Générale", wantCountry: "France", wantLang: "fr"},
		{name: "german gmbh", company: "Müller Technik GmbH", wantCountry: "Germany", wantLang: "de"},
		{name: "uk ltd", company: "Acme Widgets Ltd", wantCountry: "United Kingdom", wantLang: "en"},
		{name: "uk plc", company: "Barclays PLC", wantCountry: "United Kingdom", wantLang: "en"},
		{name: "us inc", company: "Acme Inc", wantCountry: "United States", wantLang: "en"},
		{name: "us llc", company: "Widgets LLC", wantCountry: "United States", wantLang: "en"},
		{name: "no marker falls back", company: "Mistral", wantCountry: "International", wantLang: "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := Detect(tt.company)
			assert.Equal(t, tt.wantCountry, ctx.Country)
			assert.Equal(t, tt.wantLang, ctx.DefaultLangCode)
		})
	}
}

func TestDetectOrderPrefersSpecificSuffixes(t *testing.T) {
	// "Limited" contains no French marker, but a name carrying both a
	// French legal suffix and an English word must resolve to France
	// because the French rules run first.
	ctx := Detect("Acme Limited SAS")
	assert.Equal(t, "France", ctx.Country)
}

func TestFallback(t *testing.T) {
	assert.Equal(t, "Global", Fallback().Region)
}
