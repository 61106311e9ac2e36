package webui

const indexHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>Word Document Generator</title>
  <style>
    body { font-family: "Segoe UI", sans-serif; margin: 0; background: linear-gradient(145deg,#f7fafc,#e9eef7); color: #1f2937; }
    .wrap { max-width: 760px; margin: 0 auto; padding: 20px; }
    .panel { background: #fff; border-radius: 12px; box-shadow: 0 8px 30px rgba(15,23,42,.08); padding: 20px; margin-bottom: 16px; }
    label { display: block; margin-top: 12px; font-weight: 600; font-size: 14px; }
    input, textarea { width: 100%; box-sizing: border-box; padding: 10px; margin-top: 4px; border: 1px solid #cbd5e1; border-radius: 8px; font: inherit; }
    textarea { min-height: 90px; }
    button { margin-top: 16px; padding: 10px 18px; border: 0; border-radius: 8px; background: #0f766e; color: #fff; cursor: pointer; font-size: 15px; }
    button:hover { background: #0d9488; }
    button:disabled { background: #94a3b8; cursor: default; }
    #log { min-height: 120px; max-height: 40vh; overflow: auto; white-space: pre-wrap; border: 1px solid #d1d5db; border-radius: 8px; padding: 12px; background: #f9fafb; font-size: 13px; }
    .warn { color: #b45309; }
    .hint { font-weight: 400; color: #64748b; font-size: 12px; }
  </style>
</head>
<body>
  <div class="wrap">
    <div class="panel">
      <h2>Word Document Generator</h2>
      <form id="form">
        <label>Project Title<input name="title" required /></label>
        <label>Author<input name="author" /></label>
        <label>Project Description<textarea name="description" required></textarea></label>
        <label>Target Pages <span class="hint">(5&ndash;50)</span><input name="pages" type="number" value="10" min="5" max="50" /></label>
        <label>Custom Outline <span class="hint">(comma-separated, blank for default)</span><input name="outline" /></label>
        <label>Additional Notes<textarea name="notes"></textarea></label>
        <label>Reference PDFs<input name="references" type="file" accept=".pdf" multiple /></label>
        <button id="go">Generate Document</button>
      </form>
    </div>
    <div class="panel">
      <div id="log">Idle.</div>
      <button id="download" style="display:none">Download Document</button>
    </div>
  </div>
  <script>
    const form = document.getElementById('form');
    const log = document.getElementById('log');
    const go = document.getElementById('go');
    const dl = document.getElementById('download');
    const append = (text, cls) => {
      const line = document.createElement('div');
      if (cls) line.className = cls;
      line.textContent = text;
      log.appendChild(line);
      log.scrollTop = log.scrollHeight;
    };
    form.addEventListener('submit', async (e) => {
      e.preventDefault();
      go.disabled = true;
      dl.style.display = 'none';
      log.textContent = '';
      const resp = await fetch('/api/generate', { method: 'POST', body: new FormData(form) });
      const data = await resp.json();
      if (!resp.ok) { append('Error: ' + data.error); go.disabled = false; return; }
      const jobId = data.job_id;
      append('Job ' + jobId + ' started.');
      const proto = location.protocol === 'https:' ? 'wss' : 'ws';
      const ws = new WebSocket(proto + '://' + location.host + '/api/jobs/' + jobId + '/ws');
      ws.onmessage = (ev) => {
        const p = JSON.parse(ev.data);
        append('[' + p.stage + '] ' + p.message);
      };
      ws.onclose = async () => {
        const st = await (await fetch('/api/jobs/' + jobId)).json();
        if (st.status === 'failed') { append('Failed: ' + st.error); go.disabled = false; return; }
        append('Done: ' + st.sections + ' sections, ' + st.images + ' images, ' + st.words + ' words.');
        (st.warnings || []).forEach(w => append('warning [' + w.capability + '/' + w.kind + '] ' + w.message, 'warn'));
        dl.style.display = '';
        dl.onclick = () => { location.href = '/api/jobs/' + jobId + '/artifact'; };
        go.disabled = false;
      };
    });
  </script>
</body>
</html>`
