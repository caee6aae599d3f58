package pages

import (
	"context"
	"fmt"
	"io"
	"lightningbowl-sync/models"
	"time"

	"github.com/a-h/templ"
)

// Settings renders the cloud sync section. openCloudSync marks the section
// as expanded, which is where the OAuth callback lands.
func Settings(settings models.SyncSettings, status models.SyncStatus, openCloudSync bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		connected := "Not connected"
		if settings.ConnectedProvider != "" {
			connected = "Connected to " + settings.ConnectedProvider.DisplayName()
		}

		open := ""
		if openCloudSync {
			open = " open"
		}

		body := `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Settings - Lightningbowl</title>
</head>
<body>
<details id="cloud-sync"` + open + `>
<summary>Cloud Sync</summary>
<dl>
<dt>Connection</dt><dd>` + templ.EscapeString(connected) + `</dd>
<dt>Enabled</dt><dd>` + fmt.Sprint(settings.Enabled) + `</dd>
<dt>Frequency</dt><dd>` + templ.EscapeString(string(settings.Frequency)) + `</dd>
<dt>Folder</dt><dd>` + templ.EscapeString(settings.Folder()) + `</dd>
<dt>Last sync</dt><dd>` + formatTime(status.LastSync) + `</dd>
<dt>Next sync</dt><dd>` + formatTime(status.NextSync) + `</dd>
</dl>
`
		if status.Error != "" {
			body += `<p role="alert">` + templ.EscapeString(status.Error) + "</p>\n"
		}
		body += "</details>\n</body>\n</html>\n"

		_, err := io.WriteString(w, body)
		return err
	})
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "Never"
	}
	return t.Format("Jan 2, 2006 15:04")
}
