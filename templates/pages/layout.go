package pages

import (
	"context"
	"io"

	"itrack_admin/templates/components"

	"github.com/a-h/templ"
)

// Layout wraps a screen in the dashboard shell
func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := components.NewHTML(ctx, w)
		h.Raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`).
			Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`).
			Raw(`<title>`).Text(title).Raw(` | I-Track Admin</title>`).
			Raw(`<script src="https://unpkg.com/htmx.org@2.0.4" defer></script>`).
			Raw(`</head><body class="min-h-screen"><header class="app-header"><a href="/regions">I-Track Admin</a></header>`).
			Raw(`<main class="container mx-auto p-6">`).
			Component(body).
			Raw(`</main>`).
			Component(components.ToastContainer()).
			Raw(`</body></html>`)
		return h.Err()
	})
}
