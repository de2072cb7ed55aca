package i18n

import (
	"embed"
	"encoding/json"
	"sync"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

var (
	bundle   *goi18n.Bundle
	initOnce sync.Once
)

// Init loads the embedded locale files. Safe to call more than once.
func Init() {
	initOnce.Do(func() {
		b := goi18n.NewBundle(language.English)
		b.RegisterUnmarshalFunc("json", json.Unmarshal)
		for _, f := range []string{"locales/active.en.json", "locales/active.id.json"} {
			if _, err := b.LoadMessageFileFS(localeFS, f); err != nil {
				panic(err)
			}
		}
		bundle = b
	})
}

// T localizes messageID for the given Accept-Language values, falling back to
// English and then to the id itself.
func T(messageID string, langs ...string) string {
	Init()
	loc := goi18n.NewLocalizer(bundle, langs...)
	msg, err := loc.Localize(&goi18n.LocalizeConfig{MessageID: messageID})
	if err != nil || msg == "" {
		return messageID
	}
	return msg
}
