package web

// Single-user dashboard: balance card, trade actions, SSE status.
const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Coindash</title>
  <link rel="preconnect" href="https://fonts.googleapis.com">
  <link rel="preconnect" href="https://fonts.gstatic.com" crossorigin>
  <link href="https://fonts.googleapis.com/css2?family=Press+Start+2P&family=Space+Mono:wght@400;700&display=swap" rel="stylesheet">
  <style>
    :root {
      --bg:#ffffff;
      --ink:#111111;
      --ink-mid:#4d4d4d;
      --ink-soft:#9c9c9c;
      --panel:#f6f6f6;
    }
    * { box-sizing:border-box; }
    body {
      margin:0;
      min-height:100vh;
      display:flex;
      align-items:center;
      justify-content:center;
      padding:2rem;
      background:var(--bg);
      color:var(--ink);
      font-family:'Space Mono','JetBrains Mono',monospace;
    }
    #app {
      width:min(760px, 96vw);
      background:var(--panel);
      border:3px solid var(--ink);
      padding:2rem;
      position:relative;
      image-rendering:pixelated;
      box-shadow:12px 12px 0 rgba(0,0,0,.15);
      display:flex;
      flex-direction:column;
      gap:1.5rem;
    }
    header { display:flex; justify-content:space-between; align-items:flex-start; gap:1rem; }
    .eyebrow {
      font-family:'Press Start 2P','Space Mono',monospace;
      font-size:.55rem;
      text-transform:uppercase;
      letter-spacing:.2em;
      margin:0;
    }
    .status {
      font-size:.65rem;
      text-transform:uppercase;
      letter-spacing:.1em;
      border:2px solid var(--ink);
      padding:.4rem .9rem;
      background:#ffffff;
      box-shadow:4px 4px 0 rgba(0,0,0,.15);
    }
    .balance {
      border:3px solid var(--ink);
      padding:1.2rem;
      background:#fff;
      box-shadow:6px 6px 0 rgba(0,0,0,.12);
      display:flex;
      gap:2rem;
    }
    .balance .label {
      font-size:.62rem;
      text-transform:uppercase;
      letter-spacing:.2em;
      color:var(--ink-mid);
    }
    .balance .value {
      margin-top:.8rem;
      font-size:1.6rem;
      font-weight:700;
      letter-spacing:.08em;
    }
    .actions {
      display:grid;
      grid-template-columns:repeat(auto-fit, minmax(160px, 1fr));
      gap:1rem;
    }
    .action {
      border:2px solid var(--ink);
      padding:1rem;
      background:#fff;
      box-shadow:4px 4px 0 rgba(0,0,0,.12);
      display:flex;
      flex-direction:column;
      gap:.6rem;
    }
    .action h3 {
      margin:0;
      font-size:.7rem;
      text-transform:uppercase;
      letter-spacing:.15em;
    }
    .action input {
      font-family:inherit;
      font-size:.8rem;
      padding:.4rem;
      border:2px solid var(--ink);
    }
    .action button {
      font-family:inherit;
      font-size:.7rem;
      text-transform:uppercase;
      letter-spacing:.1em;
      padding:.5rem;
      border:2px solid var(--ink);
      background:var(--ink);
      color:#fff;
      cursor:pointer;
    }
    .action button:disabled { background:var(--ink-soft); border-color:var(--ink-soft); }
    #message {
      min-height:1.4rem;
      font-size:.75rem;
      letter-spacing:.05em;
    }
    #message.err { color:#d7263d; }
    #address {
      font-size:.65rem;
      color:var(--ink-mid);
      word-break:break-all;
    }
  </style>
</head>
<body>
  <div id="app">
    <header>
      <p class="eyebrow">coindash</p>
      <div id="sse-status" class="status">Connecting…</div>
    </header>
    <section class="balance">
      <div>
        <div class="label">Fiat</div>
        <div id="fiat" class="value">—</div>
      </div>
      <div>
        <div class="label">Coin</div>
        <div id="coin" class="value">—</div>
      </div>
    </section>
    <div id="message"></div>
    <section class="actions">
      <form class="action" data-kind="deposit">
        <h3>Deposit</h3>
        <input name="amount" type="number" step="any" min="0" placeholder="fiat amount" />
        <button type="submit">Deposit</button>
      </form>
      <form class="action" data-kind="buy">
        <h3>Buy</h3>
        <input name="amount" type="number" step="any" min="0" placeholder="fiat to spend" />
        <button type="submit">Buy</button>
      </form>
      <form class="action" data-kind="sell">
        <h3>Sell</h3>
        <input name="amount" type="number" step="any" min="0" placeholder="fiat to receive" />
        <button type="submit">Sell</button>
      </form>
      <form class="action" data-kind="withdraw">
        <h3>Withdraw</h3>
        <button type="submit">Withdraw all</button>
      </form>
    </section>
    <div id="address"></div>
  </div>
<script>
const statusEl = document.getElementById('sse-status');
const fiatEl = document.getElementById('fiat');
const coinEl = document.getElementById('coin');
const messageEl = document.getElementById('message');
const addressEl = document.getElementById('address');
const buttons = Array.from(document.querySelectorAll('.action button'));

function render(snapshot){
  fiatEl.textContent = snapshot.fiat;
  coinEl.textContent = snapshot.coin;
}

function setBusy(busy){
  buttons.forEach((b) => { b.disabled = busy; });
}

function connectSSE(){
  const source = new EventSource('/balance/stream');
  source.addEventListener('open', () => {
    statusEl.textContent = 'Live';
  });
  source.addEventListener('balance', (event) => {
    try{
      render(JSON.parse(event.data));
    }catch(err){
      console.error('payload parse', err);
    }
  });
  source.addEventListener('error', () => {
    statusEl.textContent = 'Reconnecting…';
    source.close();
    setTimeout(connectSSE, 2000);
  });
}

document.querySelectorAll('form.action').forEach((form) => {
  form.addEventListener('submit', async (event) => {
    event.preventDefault();
    const kind = form.dataset.kind;
    const input = form.querySelector('input[name=amount]');
    const amount = input ? input.value : '';
    setBusy(true);
    messageEl.textContent = 'Working…';
    messageEl.className = '';
    try{
      const res = await fetch('/trade', {
        method: 'POST',
        headers: { 'Content-Type': 'application/json' },
        body: JSON.stringify({ kind: kind, amount: amount })
      });
      const payload = await res.json();
      messageEl.textContent = payload.message;
      messageEl.className = payload.success ? '' : 'err';
      if(payload.balance){ render(payload.balance); }
      if(input){ input.value = ''; }
    }catch(err){
      messageEl.textContent = 'Request failed.';
      messageEl.className = 'err';
    }finally{
      setBusy(false);
    }
  });
});

fetch('/wallet/address')
  .then((res) => res.json())
  .then((payload) => {
    addressEl.textContent = 'Deposit address (placeholder, not a real key): ' + payload.address;
  })
  .catch(() => {});

connectSSE();
</script>
</body>
</html>`
