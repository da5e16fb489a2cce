package export

// highlightPage is the html/template shell of highlighted source views.
const highlightPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
  <style>
{{.ChromaCSS}}
body { margin: 0; padding: 24px; background: #1e1f1c; color: #f8f8f2; font-family: Helvetica, Arial, sans-serif; }
pre { padding: 16px; overflow-x: auto; border-radius: 6px; font-size: 13px; line-height: 1.45; }
  </style>
</head>
<body>
  <article class="source">
{{.Content}}
  </article>
</body>
</html>
`
