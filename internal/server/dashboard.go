package server

// Single-page dashboard in the same vein as the JSON endpoints: everything
// is rendered client-side from /api/snapshot and the /ws push feed. All
// display formatting (currency, spread arrows, times) happens here, never in
// stored state.
const dashboardHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8"/>
  <meta name="viewport" content="width=device-width, initial-scale=1"/>
  <title>hydra terminal</title>
  <style>
    body { font-family: ui-sans-serif, system-ui, -apple-system, Segoe UI, Roboto, Arial; background:#0c0c0f; color:#eaeaea; margin:0; }
    header { display:flex; justify-content:space-between; align-items:center; padding:12px 16px; border-bottom:1px solid #1c1f25; background:#0d0d12; gap:12px; flex-wrap:wrap; }
    .pill { padding:6px 10px; border-radius:999px; background:#2a2f3a; font-size:12px; }
    .pill.ok { background:#14532d; }
    .pill.bad { background:#7f1d1d; }
    main { max-width:1100px; margin:16px auto; padding:0 16px; display:grid; grid-template-columns:2fr 1fr; gap:16px; }
    section { background:#111318; border:1px solid #1c1f25; border-radius:8px; padding:12px; }
    h2 { margin:0 0 8px; font-size:13px; color:#9ca3af; text-transform:uppercase; letter-spacing:.08em; }
    table { width:100%; border-collapse:collapse; font-variant-numeric:tabular-nums; font-size:13px; }
    th, td { text-align:right; padding:4px 6px; border-bottom:1px solid #1c1f25; }
    th:first-child, td:first-child { text-align:left; }
    tr.updating { background:#1e2a1e; }
    canvas { width:100%; height:220px; background:#0d0d12; border-radius:6px; }
    #log { height:200px; overflow-y:auto; font-family:ui-monospace, monospace; font-size:12px; }
    .info { color:#9ca3af; } .success { color:#4ade80; } .warn { color:#fbbf24; }
    .executed { color:#4ade80; } .skipped { color:#6b7280; }
    .wide { grid-column:1 / -1; }
  </style>
</head>
<body>
  <header>
    <div><strong>HYDRA TERMINAL</strong></div>
    <div>
      <span id="conn" class="pill bad">disconnected</span>
      <span class="pill">price <span id="price">-</span></span>
      <span class="pill">scanned <span id="scanned">0</span></span>
      <span class="pill">executed <span id="executed">0</span></span>
      <span class="pill">profit <span id="profit">$0.00</span></span>
      <span class="pill">balance <span id="balance">$0.00</span></span>
    </div>
  </header>
  <main>
    <section>
      <h2>Price</h2>
      <canvas id="chart" width="700" height="220"></canvas>
    </section>
    <section>
      <h2>Market Watch</h2>
      <table><thead><tr id="tickerHead"><th>Pair</th><th>Spread</th></tr></thead><tbody id="tickers"></tbody></table>
    </section>
    <section>
      <h2>Opportunities</h2>
      <table><tbody id="opps"></tbody></table>
    </section>
    <section>
      <h2>Log</h2>
      <div id="log"></div>
    </section>
  </main>
  <script>
    const usd = n => '$' + n.toLocaleString(undefined, {minimumFractionDigits:2, maximumFractionDigits:2});

    function drawChart(history) {
      const c = document.getElementById('chart'), ctx = c.getContext('2d');
      ctx.clearRect(0, 0, c.width, c.height);
      if (!history || history.length < 2) return;
      const prices = history.map(p => p.price);
      const min = Math.min(...prices), max = Math.max(...prices), span = (max - min) || 1;
      ctx.beginPath();
      ctx.strokeStyle = '#4ade80';
      ctx.lineWidth = 1.5;
      history.forEach((p, i) => {
        const x = i / (history.length - 1) * c.width;
        const y = c.height - 10 - (p.price - min) / span * (c.height - 20);
        i === 0 ? ctx.moveTo(x, y) : ctx.lineTo(x, y);
      });
      ctx.stroke();
    }

    function render(s) {
      const conn = document.getElementById('conn');
      conn.textContent = s.connected ? 'live' : 'disconnected';
      conn.className = 'pill ' + (s.connected ? 'ok' : 'bad');
      document.getElementById('price').textContent = usd(s.current_price);
      document.getElementById('scanned').textContent = s.stats.total_scanned;
      document.getElementById('executed').textContent = s.stats.total_executed;
      document.getElementById('profit').textContent = usd(s.stats.net_profit);
      document.getElementById('balance').textContent = usd(s.stats.balance);

      drawChart(s.price_history);

      if (s.tickers && s.tickers.length) {
        const venues = Object.keys(s.tickers[0].venue_prices);
        document.getElementById('tickerHead').innerHTML =
          '<th>Pair</th>' + venues.map(v => '<th>' + v + '</th>').join('') + '<th>Spread</th>';
      }
      document.getElementById('tickers').innerHTML = (s.tickers || []).map(t => {
        const venues = Object.entries(t.venue_prices).map(([, p]) => '<td>' + usd(p) + '</td>').join('');
        return '<tr class="' + (t.updating ? 'updating' : '') + '"><td>' + t.pair + '</td>' + venues +
          '<td>' + (t.spread_pct >= 0.1 ? '▲ ' : '') + t.spread_pct.toFixed(4) + '%</td></tr>';
      }).join('');

      document.getElementById('opps').innerHTML = (s.opportunities || []).map(o =>
        '<tr><td>' + o.pair + '</td><td>' + o.spread_pct.toFixed(4) + '%</td><td>' + usd(o.net_profit) +
        '</td><td class="' + o.status.toLowerCase() + '">' + o.status + '</td></tr>').join('');

      const log = document.getElementById('log');
      log.innerHTML = (s.log || []).map(l =>
        '<div class="' + l.level + '">[' + l.time + '] ' + l.message + '</div>').join('');
      log.scrollTop = log.scrollHeight;
    }

    function connect() {
      const ws = new WebSocket((location.protocol === 'https:' ? 'wss://' : 'ws://') + location.host + '/ws');
      ws.onmessage = e => render(JSON.parse(e.data));
      ws.onclose = () => setTimeout(connect, 3000);
    }

    fetch('/api/snapshot').then(r => r.json()).then(render);
    connect();
  </script>
</body>
</html>
`
