// Package pages holds the server-rendered pages.
package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// AuthRedirect is shown while the OAuth callback finishes. It forwards the
// browser to target through a meta refresh, with a plain link as fallback.
func AuthRedirect(target string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		escaped := templ.EscapeString(target)
		_, err := io.WriteString(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta http-equiv="refresh" content="0; url=`+escaped+`">
<title>Lightningbowl</title>
</head>
<body>
<p>Completing authentication...</p>
<p><a href="`+escaped+`">Continue</a></p>
</body>
</html>
`)
		return err
	})
}
