package components

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// ToastContainer is the target of the showToast HX-Trigger event and of the
// flash_toast cookie left by full-page redirects.
func ToastContainer() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		nonce := ""
		if n := templ.GetNonce(ctx); n != "" {
			nonce = ` nonce="` + templ.EscapeString(n) + `"`
		}
		_, err := io.WriteString(w, `<div id="toast-container" class="fixed top-4 right-4 z-50 space-y-2" aria-live="polite"></div>
<script`+nonce+`>
(function () {
  function show(detail) {
    if (!detail || !detail.message) { return; }
    var el = document.createElement("div");
    el.className = "toast toast-" + (detail.type || "info");
    el.setAttribute("role", detail.type === "error" ? "alert" : "status");
    el.textContent = detail.message;
    document.getElementById("toast-container").appendChild(el);
    setTimeout(function () { el.remove(); }, 4000);
  }
  document.body.addEventListener("showToast", function (evt) { show(evt.detail); });
  var match = document.cookie.match(/(?:^|; )flash_toast=([^;]*)/);
  if (match) {
    document.cookie = "flash_toast=; Max-Age=0; path=/";
    try { show(JSON.parse(decodeURIComponent(match[1].replace(/\+/g, " ")))); } catch (e) {}
  }
})();
</script>`)
		return err
	})
}
