package http

import "github.com/gofiber/fiber/v2"

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Tree Locator</title>
  <style>
    body{font-family:system-ui,sans-serif;max-width:640px;margin:3rem auto;padding:0 1rem;color:#1b3a1b}
    h1{font-size:1.5rem}
    form{display:flex;gap:.5rem;margin:1rem 0}
    input[type=text]{flex:1;padding:.5rem;border:1px solid #9a9;border-radius:4px}
    button{padding:.5rem 1rem;border:0;border-radius:4px;background:#2d7a2d;color:#fff;cursor:pointer}
    pre{background:#f4f7f4;padding:1rem;border-radius:4px;overflow-x:auto;white-space:pre-wrap}
    small{color:#567}
  </style>
</head>
<body>
  <h1>&#127795; Tree Locator</h1>
  <p>How many trees are mapped in OpenStreetMap for a place?</p>
  <form id="f">
    <input type="text" id="q" placeholder="e.g. Darmstadt, Hessen, DE" required minlength="2" maxlength="120">
    <button type="submit">Count</button>
  </form>
  <pre id="out">Enter a place name above.</pre>
  <small>Data &#169; OpenStreetMap contributors (ODbL). See <a href="/docs">API docs</a>.</small>
  <script>
    document.getElementById('f').addEventListener('submit', async (e) => {
      e.preventDefault();
      const out = document.getElementById('out');
      out.textContent = 'Searching…';
      try {
        const q = encodeURIComponent(document.getElementById('q').value);
        const resp = await fetch('/v1/trees?q=' + q);
        const data = await resp.json();
        out.textContent = JSON.stringify(data, null, 2);
      } catch (err) {
        out.textContent = 'request failed: ' + err;
      }
    });
  </script>
</body>
</html>`

// IndexHandler serves a small landing page with a search form.
func IndexHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("Content-Type", "text/html; charset=utf-8")
		return c.SendString(indexHTML)
	}
}
