package viewport

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"github.com/notedeck/notedeck/pkg/toast"
)

// RegionID is the element id of the toast region; stream patches target it.
const RegionID = "toasts"

// CountSignal is the DataStar signal holding the number of live toasts.
const CountSignal = "toastCount"

// Item is one rendered toast.
type Item struct {
	Toast  toast.Toast
	Status toast.Status
}

// Region renders the toast container in store order. Stacking and animation
// are left to CSS via the data-state and --toast-remaining hooks.
func Region(basePath string, items []Item) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<section id="%s" class="toaster" aria-label="Notifications" tabindex="-1"><ol>`,
			RegionID,
		); err != nil {
			return err
		}
		for _, item := range items {
			if err := ItemView(basePath, item).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</ol></section>`)
		return err
	})
}

// ItemView renders a single toast. Pointer and focus enter pause the
// countdown and leaving resumes it, so a toast never expires under the
// user's hand or keyboard.
func ItemView(basePath string, item Item) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		t := item.Toast
		endpoint := basePath + "/" + url.PathEscape(t.ID)
		post := func(action string) string {
			return templ.EscapeString("@post('" + endpoint + "/" + action + "')")
		}

		_, err := fmt.Fprintf(w,
			`<li id="toast-%s" class="toast toast-%s" role="%s" aria-live="%s" aria-atomic="true" tabindex="0"`+
				` data-state="%s" data-persistent="%t" style="--toast-remaining: %sms"`+
				` data-on:pointerenter="%s" data-on:pointerleave="%s" data-on:focusin="%s" data-on:focusout="%s">`,
			templ.EscapeString(t.ID),
			templ.EscapeString(string(t.Variant)),
			t.Variant.Role(),
			t.Variant.LiveMode(),
			templ.EscapeString(string(item.Status.State)),
			item.Status.Persistent,
			strconv.FormatInt(item.Status.Remaining.Milliseconds(), 10),
			post("pause"), post("resume"), post("pause"), post("resume"),
		)
		if err != nil {
			return err
		}

		if t.Title != "" {
			if _, err := fmt.Fprintf(w, `<div class="toast-title">%s</div>`, templ.EscapeString(t.Title)); err != nil {
				return err
			}
		}
		if t.Description != "" {
			if _, err := fmt.Fprintf(w, `<div class="toast-description">%s</div>`, templ.EscapeString(t.Description)); err != nil {
				return err
			}
		}
		if t.Action != nil {
			if _, err := fmt.Fprintf(w,
				`<button type="button" class="toast-action" data-on:click="%s">%s</button>`,
				post("action"), templ.EscapeString(t.Action.Label),
			); err != nil {
				return err
			}
		}

		_, err = fmt.Fprintf(w,
			`<button type="button" class="toast-close" aria-label="Dismiss" data-on:click="%s">&times;</button></li>`,
			post("dismiss"),
		)
		return err
	})
}
