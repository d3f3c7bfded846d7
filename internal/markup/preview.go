package markup

// PreviewDocument wraps rendered markup in a standalone HTML page that loads
// the utility-class stylesheet from its CDN.
func PreviewDocument(markup string) string {
	return `<!doctype html>
<html lang="es">
  <head>
    <meta charset="UTF-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1.0" />
    <script src="https://cdn.tailwindcss.com"></script>
    <style>
      body { margin: 0; padding: 1rem; background: #f8fafc; font-family: ui-sans-serif, system-ui, sans-serif; }
      * { box-sizing: border-box; }
    </style>
  </head>
  <body>` + markup + `</body>
</html>`
}
