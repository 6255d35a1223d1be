package main

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/notedeck/notedeck/pkg/viewport"
)

const datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0/bundles/datastar.js"

// page is a minimal host document: it loads DataStar and opens the toast
// stream, which morphs the empty region into the live one.
func page(toastsPath string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>notedeck</title>
<script type="module" src="%s"></script>
</head>
<body>
<div data-signals="{%s: 0}" data-init="@get('%s')">
<p class="toast-count" data-show="$%s > 0" data-text="$%s"></p>
</div>
`, datastarScript, viewport.CountSignal, templ.EscapeString(toastsPath), viewport.CountSignal, viewport.CountSignal)
		if err != nil {
			return err
		}
		if err := viewport.Region(toastsPath, nil).Render(ctx, w); err != nil {
			return err
		}
		_, err = io.WriteString(w, "\n</body>\n</html>\n")
		return err
	})
}
