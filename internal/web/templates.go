package web

import "html/template"

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Corporate Scanner</title>
<style>
body { font-family: sans-serif; max-width: 860px; margin: 2rem auto; padding: 0 1rem; color: #222; }
h1 { font-size: 1.5rem; }
form { margin: 1.5rem 0; padding: 1rem; background: #f5f5f5; border-radius: 6px; }
input[type=text], input[type=password] { padding: 0.4rem; width: 280px; margin-right: 0.5rem; }
button { padding: 0.45rem 1.2rem; cursor: pointer; }
.quota { color: #666; font-size: 0.9rem; }
.error { color: #b00020; margin: 1rem 0; }
.notice { color: #8a6d00; background: #fff8e1; padding: 0.5rem 0.8rem; border-radius: 4px; margin: 1rem 0; }
.item { margin: 1rem 0; padding-bottom: 0.8rem; border-bottom: 1px solid #eee; }
.item .meta { color: #888; font-size: 0.85rem; }
.summary { background: #eef6ee; padding: 0.8rem 1rem; border-radius: 6px; white-space: pre-wrap; }
.history { font-size: 0.9rem; }
.history li { margin: 0.3rem 0; }
.market { font-weight: bold; }
</style>
</head>
<body>
<h1>Corporate Scanner</h1>
<p class="quota">Shared daily quota: {{.Remaining}} scans remaining today.</p>

<form method="post" action="/scan">
<input type="text" name="target" placeholder="Company name" value="{{.Target}}" required>
<input type="password" name="passcode" placeholder="Passcode" required>
<button type="submit">Scan</button>
</form>

{{if .Error}}<p class="error">{{.Error}}</p>{{end}}

{{if .Result}}
<h2>Results for {{.Result.Target}}</h2>
<p class="market">Market status: {{.Result.Market}}</p>
{{if .Result.Generic}}<p class="notice">No company-specific coverage was found. Showing general industry news instead.</p>{{end}}
{{if .Result.Summary}}<div class="summary">{{.Result.Summary}}</div>{{end}}
{{if .Result.Items}}
{{range .Result.Items}}
<div class="item">
<a href="{{.URL}}" rel="noopener noreferrer">{{.Title}}</a>
<div class="meta">{{.Source}} | {{.Date}}</div>
<div>{{.Snippet}}</div>
</div>
{{end}}
{{else}}
<p>No recent coverage found.</p>
{{end}}
{{if .Result.ID}}<p><a href="/export/{{.Result.ID}}">Download DOCX report</a></p>{{end}}
{{end}}

{{if .History}}
<h2>Recent scans</h2>
<ul class="history">
{{range .History}}
<li>{{.CreatedAt.Format "2006-01-02 15:04"}} · {{.Target}} ({{len .Items}} items) <a href="/export/{{.ID}}">export</a></li>
{{end}}
</ul>
{{end}}
</body>
</html>
`))
