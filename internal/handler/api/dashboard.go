package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Dashboard serves a minimal HTML page for poking the API by hand.
func (h *PredictHandler) Dashboard(c echo.Context) error {
	return c.HTML(http.StatusOK, dashboardHTML)
}

const dashboardHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>StockPulse</title>
  <style>
    body { font-family: sans-serif; max-width: 720px; margin: 2rem auto; padding: 0 1rem; }
    textarea, input { width: 100%; box-sizing: border-box; margin: 0.25rem 0 0.75rem; padding: 0.4rem; }
    button { padding: 0.5rem 1rem; margin-right: 0.5rem; }
    pre { background: #f4f4f4; padding: 1rem; overflow-x: auto; }
  </style>
</head>
<body>
  <h1>StockPulse</h1>
  <p>News sentiment and next-day price direction.</p>

  <h2>Predict</h2>
  <label>Symbol <input id="symbol" value="AAPL"></label>
  <label>News text <textarea id="news" rows="3">Company reports record quarterly profits</textarea></label>
  <label>Open <input id="open" type="number" value="100"></label>
  <label>Close <input id="close" type="number" value="102"></label>
  <label>Volume <input id="volume" type="number" value="1000000"></label>
  <button onclick="predict()">Predict</button>
  <button onclick="analyze()">Sentiment only</button>
  <pre id="out">-</pre>

  <script>
    async function post(path, body) {
      const r = await fetch(path, {
        method: 'POST',
        headers: {'Content-Type': 'application/json'},
        body: JSON.stringify(body)
      });
      document.getElementById('out').textContent = JSON.stringify(await r.json(), null, 2);
    }
    function predict() {
      post('/predict', {
        symbol: document.getElementById('symbol').value,
        news_text: document.getElementById('news').value,
        open_price: parseFloat(document.getElementById('open').value),
        close_price: parseFloat(document.getElementById('close').value),
        volume: parseFloat(document.getElementById('volume').value)
      });
    }
    function analyze() {
      post('/sentiment', { text: document.getElementById('news').value });
    }
  </script>
</body>
</html>`
