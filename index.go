package main

import "net/http"

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>c2relay</title>
<meta name="description" content="Multiplayer position relay for Construct 2 games">
<style>
*{margin:0;padding:0;box-sizing:border-box}
:root{
--bg:#191919;
--card:#242424;
--border:#333;
--fg:#e5e5e5;
--muted:#737373;
--radius:6px;
}
body{
font-family:system-ui,-apple-system,'Segoe UI',Roboto,Helvetica,Arial,sans-serif;
background:var(--bg);
color:var(--fg);
min-height:100vh;
display:flex;
align-items:center;
justify-content:center;
padding:24px;
}
.card{
background:var(--card);
border:1px solid var(--border);
border-radius:var(--radius);
padding:32px;
max-width:420px;
width:100%;
}
h1{font-size:20px;font-weight:600;margin-bottom:8px}
p{color:var(--muted);font-size:14px;line-height:1.6}
code{
background:var(--bg);
border:1px solid var(--border);
border-radius:4px;
padding:2px 6px;
font-size:13px;
}
.status{
display:inline-block;
width:8px;height:8px;
border-radius:50%;
background:#4ade80;
margin-right:6px;
}
.footer{margin-top:16px;font-size:12px;color:var(--muted)}
</style>
</head>
<body>
<div class="card">
<h1><span class="status"></span>c2relay</h1>
<p>Multiplayer position relay. Connect your game over WebSocket at
<code>/ws</code> (or the bare host URL), join a room, and move.</p>
<p class="footer">Health check at <code>/health</code>.</p>
</div>
</body>
</html>`

func serveIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexHTML))
}
