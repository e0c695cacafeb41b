package report

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// layout wraps report content in the page header and footer. body is trusted HTML.
func layout(lang, title, heading, body string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<!doctype html><html lang="`+escape(lang)+`"><head>`+
			`<meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`+
			`<title>`+escape(title)+`</title></head><body class="report">`+
			`<header><h2>`+escape(heading)+`</h2></header>`+
			`<main>`+body+`</main>`+
			`<footer></footer></body></html>`)
		return err
	})
}

func errorBody(message string) string {
	return `<div class="alert alert-danger">` + escape(message) + `</div>`
}
