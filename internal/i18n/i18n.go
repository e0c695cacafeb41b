// Package i18n holds the report's string catalog and resolves the request language.
package i18n

import (
	"net/http"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

var supported = []language.Tag{language.English, language.French}

var messages = map[language.Tag]map[string]string{
	language.English: {
		"pluginname":           "Conversations",
		"individual":           "Individual",
		"group":                "Group",
		"self":                 "Self",
		"usernotfound":         "User not found",
		"nomessagesfounderror": "No messages were found for this conversation.",
		"returntoreport":       "Return to report",
		"pagetitle":            "Site Message Report",
		"pageheading":          "Conversation Report",
		"accessdenied":         "Sorry, but you do not currently have permissions to do that.",
		"notfound":             "The requested record could not be found.",
		"error":                "An unexpected error occurred while building the report.",
	},
	language.French: {
		"pluginname":           "Conversations",
		"individual":           "Individuelle",
		"group":                "Groupe",
		"self":                 "Personnelle",
		"usernotfound":         "Utilisateur introuvable",
		"nomessagesfounderror": "Aucun message trouvé pour cette conversation.",
		"returntoreport":       "Retour au rapport",
		"pagetitle":            "Rapport des messages du site",
		"pageheading":          "Rapport des conversations",
		"accessdenied":         "Désolé, vous n'avez pas les droits requis pour faire ceci.",
		"notfound":             "L'enregistrement demandé est introuvable.",
		"error":                "Une erreur inattendue est survenue lors de la création du rapport.",
	},
}

var (
	cat     = build()
	matcher = language.NewMatcher(supported)
)

func build() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, msgs := range messages {
		for key, msg := range msgs {
			if err := b.SetString(tag, key, msg); err != nil {
				panic(err)
			}
		}
	}
	return b
}

// Printer translates catalog keys for one language.
type Printer struct {
	p   *message.Printer
	tag language.Tag
}

func NewPrinter(tag language.Tag) *Printer {
	return &Printer{p: message.NewPrinter(tag, message.Catalog(cat)), tag: tag}
}

// Translate returns the localized string for key, or the key itself when unknown.
func (p *Printer) Translate(key string) string {
	return p.p.Sprintf(message.Key(key, key))
}

func (p *Printer) Lang() string {
	return p.tag.String()
}

// ResolveTag picks a supported language from the Accept-Language header.
func ResolveTag(r *http.Request) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	if err != nil || len(tags) == 0 {
		return language.English
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return language.English
	}
	return supported[idx]
}

func FromRequest(r *http.Request) *Printer {
	return NewPrinter(ResolveTag(r))
}
