package i18n

import (
	"net/http/httptest"
	"testing"

	"golang.org/x/text/language"
)

func TestTranslate(t *testing.T) {
	cases := []struct {
		tag       language.Tag
		key, want string
	}{
		{language.English, "usernotfound", "User not found"},
		{language.English, "individual", "Individual"},
		{language.French, "group", "Groupe"},
		{language.English, "no-such-key", "no-such-key"},
	}
	for _, tc := range cases {
		if got := NewPrinter(tc.tag).Translate(tc.key); got != tc.want {
			t.Fatalf("Translate(%v, %q) = %q, want %q", tc.tag, tc.key, got, tc.want)
		}
	}
}

func TestResolveTag(t *testing.T) {
	cases := []struct {
		header string
		want   language.Tag
	}{
		{"", language.English},
		{"fr-CA,fr;q=0.9", language.French},
		{"de-DE", language.English},
		{"en-GB;q=0.8, fr;q=0.9", language.French},
	}
	for _, tc := range cases {
		r := httptest.NewRequest("GET", "/", nil)
		if tc.header != "" {
			r.Header.Set("Accept-Language", tc.header)
		}
		if got := ResolveTag(r); got != tc.want {
			t.Fatalf("ResolveTag(%q) = %v, want %v", tc.header, got, tc.want)
		}
	}
}
