package api

import "net/http"

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(indexHTML))
}

// indexHTML is the whole front end: a form posting to the JSON API.
// Option values must stay in sync with the prompt package enums.
const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>polishd — workplace writing assistant</title>
<style>
  body { background: #ffffff; color: #000000; font-family: sans-serif; max-width: 720px; margin: 2rem auto; padding: 0 1rem; }
  h1 { font-size: 1.4rem; }
  textarea { width: 100%; height: 12rem; color: #000000; }
  select, button { margin: 0.25rem 0.5rem 0.25rem 0; }
  button { background: #111111; color: #ffffff; border: none; padding: 0.5rem 1rem; cursor: pointer; }
  pre { background: #f4f4f4; padding: 1rem; white-space: pre-wrap; }
  .error { color: #a00000; }
  #result, #noteswrap { display: none; }
</style>
</head>
<body>
<h1>polishd — workplace writing assistant</h1>
<p>Polish your professional emails, chat messages, and slides. Choose tone and context, then hit Polish.</p>

<textarea id="text" placeholder="Enter text to polish"></textarea>
<div>
  <label>Tone
    <select id="tone">
      <option value="more-formal">More formal</option>
      <option value="more-concise">More concise</option>
      <option value="more-polite">More polite</option>
      <option value="more-persuasive">More persuasive</option>
      <option value="more-casual">More casual</option>
    </select>
  </label>
  <label>Context
    <select id="context">
      <option value="email-to-manager">Email to manager</option>
      <option value="message-to-manager">Message to manager</option>
      <option value="message-to-teammate">Message to teammate</option>
      <option value="email-to-external-party">Email to an external party</option>
      <option value="slide-text">Slide text</option>
      <option value="chat-message">Chat message</option>
    </select>
  </label>
  <label><input type="checkbox" id="notes" checked> Show edit notes</label>
</div>
<button id="polish">Polish</button>
<p id="status"></p>

<div id="result">
  <h2>Polished result</h2>
  <h3 id="subject"></h3>
  <pre id="body"></pre>
  <div id="noteswrap">
    <h2>Edit notes</h2>
    <ul id="notelist"></ul>
    <pre id="rawfallback"></pre>
  </div>
  <button id="download">Download result (.txt)</button>
</div>

<script>
const el = id => document.getElementById(id);

el("polish").addEventListener("click", async () => {
  const text = el("text").value;
  if (!text.trim()) {
    el("status").textContent = "Please enter some text to polish.";
    return;
  }
  el("status").textContent = "Polishing…";
  el("result").style.display = "none";
  try {
    const resp = await fetch("/api/v1/polish", {
      method: "POST",
      headers: { "Content-Type": "application/json" },
      body: JSON.stringify({
        text: text,
        tone: el("tone").value,
        context: el("context").value,
        show_notes: el("notes").checked,
      }),
    });
    const data = await resp.json();
    if (!resp.ok) {
      el("status").textContent = "Error: " + (data.error || resp.status);
      el("status").className = "error";
      return;
    }
    el("status").textContent = "";
    el("status").className = "";
    el("subject").textContent = data.subject ? "Subject: " + data.subject : "";
    el("body").textContent = data.body;
    const list = el("notelist");
    list.innerHTML = "";
    el("rawfallback").textContent = "";
    if (el("notes").checked) {
      el("noteswrap").style.display = "block";
      if (data.notes && data.notes.length) {
        for (const n of data.notes) {
          const li = document.createElement("li");
          li.textContent = n;
          list.appendChild(li);
        }
      } else {
        el("rawfallback").textContent = "No structured notes parsed. Raw output:\n" + (data.raw_response || "");
      }
    } else {
      el("noteswrap").style.display = "none";
    }
    el("result").style.display = "block";
  } catch (err) {
    el("status").textContent = "Request failed: " + err;
    el("status").className = "error";
  }
});

el("download").addEventListener("click", async () => {
  const resp = await fetch("/api/v1/polish/download", {
    method: "POST",
    headers: { "Content-Type": "application/json" },
    body: JSON.stringify({ text: el("body").textContent }),
  });
  const blob = await resp.blob();
  const a = document.createElement("a");
  a.href = URL.createObjectURL(blob);
  a.download = "polished_text.txt";
  a.click();
  URL.revokeObjectURL(a.href);
});
</script>
</body>
</html>
`
