package web

const tmplPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>Call Center Dashboard</title>
<style>
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:'Segoe UI',sans-serif;background:#0e1117;color:#fff;line-height:1.5}
main{padding:2rem 3rem;max-width:1400px;margin:0 auto}
h1{text-align:center;color:#f0f0f0;font-size:28px}
.subtitle{text-align:center;color:gray;margin-bottom:1.5rem}
hr{margin:1.5rem 0;border:1px solid #333}
h3{color:#f0f0f0;margin:2rem 0 .75rem}
.cards{display:grid;grid-template-columns:repeat(3,1fr);gap:1.5rem}
.card{background:#1c1f26;padding:1.5rem;border-radius:10px;box-shadow:0 0 10px rgba(0,0,0,.2)}
.metric-title{font-size:1rem;color:#a0a0a0}
.metric-value{font-size:2rem;font-weight:bold}
table{width:100%;border-collapse:collapse;background:#1c1f26;font-size:14px}
th{text-align:left;padding:8px 12px;border-bottom:1px solid #444;color:#a0a0a0;font-weight:600}
td{padding:6px 12px;border-bottom:1px solid #2a2d35}
.notice{padding:.75rem 1rem;border-radius:6px;background:#1c2b3a;color:#8ab4f8}
.warning{padding:.75rem 1rem;border-radius:6px;background:#3a2f1c;color:#f5c16c;margin-bottom:.5rem}
.rec{display:flex;justify-content:space-between;padding:.5rem 0;border-bottom:1px solid #2a2d35;color:#ccc}
.rec a{color:#4ecdc4;text-decoration:none}
.chart{background:#1c1f26;padding:1rem;border-radius:10px}
.bar-row{display:flex;align-items:center;gap:12px;margin:6px 0}
.bar-label{width:120px;color:#a0a0a0}
.bar{height:24px;border-radius:4px;border:1.5px solid rgba(255,255,255,.2)}
.bar-count{color:#fff;font-weight:600}
footer{margin-top:2rem;color:#555;font-size:12px;text-align:center}
</style>
</head>
<body>
<main>
<h1>AI Call Center Dashboard</h1>
<p class="subtitle">Monitor agents, live calls, and recordings</p>
<hr>

{{range .Warnings}}<div class="warning">{{.Message}}</div>{{end}}

<div class="cards">
  <div class="card"><div class="metric-title">Total Calls</div><div class="metric-value">{{.TotalCalls}}</div></div>
  <div class="card"><div class="metric-title">Active Agents</div><div class="metric-value">{{.ActiveAgents}}</div></div>
  <div class="card"><div class="metric-title">Available Agents</div><div class="metric-value">{{.AvailableAgents}}</div></div>
</div>

<h3>Agent Pool</h3>
{{if .Agents}}
<table>
<tr><th>Agent</th><th>Phone</th><th>Status</th></tr>
{{range .Agents}}<tr><td>{{.Name}}</td><td>{{.Phone}}</td><td>{{.Status}}</td></tr>
{{end}}
</table>
{{else}}<div class="warning">No agent data available.</div>{{end}}

<h3>Recent Call Logs</h3>
{{if .Calls}}
<table>
<tr><th>Caller</th><th>Phone</th><th>Date/Time</th><th>Duration</th><th>Status</th></tr>
{{range .Calls}}<tr><td>{{.Caller}}</td><td>{{.Phone}}</td><td>{{.Timestamp}}</td><td>{{.Duration}}</td><td>{{.Status}}</td></tr>
{{end}}
</table>
{{else}}<div class="notice">No recent call logs found.</div>{{end}}

<h3>Call Recordings</h3>
{{if .Recordings}}
{{range .Recordings}}<div class="rec"><div><b>{{.Caller}}</b> &mdash; {{.Date}} &mdash; {{.Duration}}</div><a href="{{.URL}}" target="_blank" rel="noopener">Play</a></div>
{{end}}
{{else}}<div class="notice">No recent recordings found.</div>{{end}}

<h3>Agent Availability</h3>
{{if .Chart}}
<div class="chart">
{{$bars := .Chart}}{{range .Chart}}<div class="bar-row"><span class="bar-label">{{.Label}}</span><div class="bar" style="width:{{barWidth .Count $bars}}%;background:{{barColor .Status}}"></div><span class="bar-count">{{.Count}}</span></div>
{{end}}
</div>
{{else}}<div class="notice">No agent data available to plot.</div>{{end}}

<footer>render {{.RenderID}} at {{fmtTime .}}</footer>
</main>
</body>
</html>
`
