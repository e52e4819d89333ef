package web

import (
	"html/template"
	"io"
)

var indexTmpl = template.Must(template.New("index").Parse(indexHTML))

const indexHTML = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>TinyML Panel</title>
<style>
body { font-family: sans-serif; max-width: 560px; margin: 20px auto; padding: 8px; }
h2 { margin: 0 0 12px; }
section { border: 1px solid #ddd; border-radius: 10px; padding: 12px; margin: 10px 0; }
button { padding: 10px 14px; margin: 6px 4px; border-radius: 10px; border: 1px solid #ccc; }
.row { display: flex; flex-wrap: wrap; gap: 6px; }
.net { color: #666; font-size: 0.9em; }
</style>
</head>
<body>
<h2>TinyML Panel</h2>
<p class="net">{{.SSID}} &middot; {{.IP}}</p>

<section><h3>LED1</h3>
<div class="row">
<button onclick="fetch('/led1?mode=on')">ON (White)</button>
<button onclick="fetch('/led1?mode=off')">OFF</button>
<button onclick="fetch('/led1?r=255&g=0&b=0')">Red</button>
<button onclick="fetch('/led1?r=0&g=255&b=0')">Green</button>
<button onclick="fetch('/led1?r=0&g=0&b=255')">Blue</button>
</div></section>

<section><h3>LED2</h3>
<div class="row">
<button onclick="fetch('/led2?mode=on')">ON (White)</button>
<button onclick="fetch('/led2?mode=off')">OFF</button>
<button onclick="fetch('/led2?r=255&g=255&b=0')">Yellow</button>
<button onclick="fetch('/led2?r=255&g=0&b=255')">Magenta</button>
<button onclick="fetch('/led2?r=0&g=255&b=255')">Cyan</button>
</div></section>

<section><h3>Both strips</h3>
<div class="row">
<input type="color" id="both" value="#ffffff">
<button onclick="setBoth()">Apply</button>
<button onclick="fetch('/rgb?r=0&g=0&b=0')">OFF</button>
</div></section>

<section><h3>Relay</h3>
<div class="row">
<button onclick="fetch('/relay?state=on')">Relay ON</button>
<button onclick="fetch('/relay?state=off')">Relay OFF</button>
</div></section>

<script>
function setBoth() {
  var v = document.getElementById("both").value;
  var r = parseInt(v.substr(1, 2), 16), g = parseInt(v.substr(3, 2), 16), b = parseInt(v.substr(5, 2), 16);
  fetch("/rgb?r=" + r + "&g=" + g + "&b=" + b);
}
</script>
</body>
</html>
`

func renderHTML(w io.Writer, info Info) error {
	return indexTmpl.Execute(w, info)
}
