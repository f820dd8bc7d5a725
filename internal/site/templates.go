package site

import (
	"html/template"
	"io"
)

// SearchSettings configures the search box script.
type SearchSettings struct {
	MinQuery   int
	MaxResults int
	DebounceMS int
}

// ShellData holds the data passed to the page template.
type ShellData struct {
	Title           string
	MetaDescription string
	SiteTitle       string
	// BasePath prefixes asset URLs ("" for the static site, "/" for the
	// server).
	BasePath string
	Nav      template.HTML
	Content  template.HTML

	// Exactly one of SearchIndex (static JSON index) and SearchAPI (server
	// endpoint) is set.
	SearchIndex string
	SearchAPI   string
	Search      SearchSettings
}

var shellTemplate = template.Must(template.New("page").Parse(pageTemplate))

// RenderShell writes a complete HTML page around rendered content.
func RenderShell(w io.Writer, data ShellData) error {
	return shellTemplate.Execute(w, data)
}

// pageTemplate is the Go html/template for every glossary page.
const pageTemplate = `<!DOCTYPE html>
<html lang="es">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
  <meta name="description" content="{{.MetaDescription}}">
  <link rel="stylesheet" href="{{.BasePath}}style.css">
</head>
<body data-search-index="{{.SearchIndex}}" data-search-api="{{.SearchAPI}}" data-min-query="{{.Search.MinQuery}}" data-max-results="{{.Search.MaxResults}}" data-debounce="{{.Search.DebounceMS}}">
  <nav class="sidebar" id="sidebar">
    <div class="sidebar-header">
      <h2 class="site-title">{{.SiteTitle}}</h2>
      <div class="search">
        <input type="search" id="search-input" role="combobox" aria-expanded="false" aria-controls="search-results" aria-autocomplete="list" placeholder="Buscar / Search..." autocomplete="off">
        <ul id="search-results" class="autocomplete" role="listbox" hidden></ul>
      </div>
    </div>
    {{.Nav}}
  </nav>
  {{.Content}}
  <div class="modal-backdrop" id="modal" hidden>
    <div class="modal" role="dialog" aria-modal="true" aria-labelledby="modal-title">
      <h2 id="modal-title"></h2>
      <img id="modal-image" class="card-image" src="" alt="" width="240" height="160">
      <dl class="modal-definitions">
        <dt lang="es" id="modal-es"></dt><dd lang="es" id="modal-def-es"></dd>
        <dt lang="en" id="modal-en"></dt><dd lang="en" id="modal-def-en"></dd>
      </dl>
      <div class="modal-controls">
        <button type="button" class="control copy" data-action="copy">Copy</button>
        <button type="button" class="control close" data-action="close">Close</button>
      </div>
    </div>
  </div>
  <div class="toast" id="toast" role="status" aria-live="polite" hidden></div>
  <script src="{{.BasePath}}script.js"></script>
</body>
</html>`

// PlaceholderSVG is shown for cards without an image.
const PlaceholderSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="240" height="160" viewBox="0 0 240 160">
  <rect width="240" height="160" fill="#f1f3f5"/>
  <path d="M90 100l20-26 16 20 10-12 14 18z" fill="#ced4da"/>
  <circle cx="146" cy="62" r="8" fill="#ced4da"/>
</svg>
`

// StyleSheet is the full CSS for the glossary site.
const StyleSheet = `/* ============ CSS Variables ============ */
:root {
  --bg: #ffffff;
  --bg-secondary: #f8f9fa;
  --bg-sidebar: #f1f3f5;
  --text: #212529;
  --text-muted: #868e96;
  --border: #dee2e6;
  --accent: #228be6;
  --accent-light: #e7f5ff;
  --sidebar-width: 280px;
  --card-width: 260px;
  --image-width: 240px;
  --image-height: 160px;
  --shadow: 0 1px 3px rgba(0,0,0,0.08);
  --shadow-lg: 0 4px 12px rgba(0,0,0,0.1);
}

* { box-sizing: border-box; }
body { margin: 0; font-family: system-ui, sans-serif; color: var(--text); background: var(--bg); display: flex; }
[hidden] { display: none !important; }

/* ============ Sidebar ============ */
.sidebar { width: var(--sidebar-width); min-height: 100vh; background: var(--bg-sidebar); border-right: 1px solid var(--border); padding: 1rem; position: sticky; top: 0; align-self: flex-start; }
.site-title { margin: 0 0 .75rem; font-size: 1.2rem; }
.search { position: relative; }
#search-input { width: 100%; padding: .5rem .6rem; border: 1px solid var(--border); border-radius: 6px; }
.autocomplete { position: absolute; left: 0; right: 0; z-index: 10; list-style: none; margin: 2px 0 0; padding: 0; background: var(--bg); border: 1px solid var(--border); border-radius: 6px; box-shadow: var(--shadow-lg); }
.autocomplete .result { padding: .4rem .6rem; cursor: pointer; display: flex; justify-content: space-between; gap: .5rem; }
.autocomplete .result.active, .autocomplete .result:hover { background: var(--accent-light); }
.result-detail { color: var(--text-muted); font-size: .85em; }
.result-kind { color: var(--accent); font-size: .75em; text-transform: uppercase; }
.subject-nav { list-style: none; padding: 0; margin: 1rem 0 0; }
.subject-nav a { display: block; padding: .35rem .5rem; border-radius: 4px; color: inherit; text-decoration: none; }
.subject-nav a.active, .subject-nav a:hover { background: var(--accent-light); }
.nav-code { color: var(--text-muted); font-variant-numeric: tabular-nums; }

/* ============ Content ============ */
.content { flex: 1; padding: 1.5rem 2rem; }
.subject-code { color: var(--text-muted); }
.subject-title { margin: .25rem 0 .5rem; }
.tabs { display: flex; gap: .25rem; border-bottom: 1px solid var(--border); margin: 1rem 0; }
.tab { border: none; background: none; padding: .5rem 1rem; cursor: pointer; border-bottom: 2px solid transparent; }
.tab.active { border-bottom-color: var(--accent); color: var(--accent); }
.group { margin: 1.5rem 0; }
.members { display: flex; gap: .5rem; list-style: none; padding: 0; color: var(--text-muted); font-size: .9em; }
.cards { display: grid; grid-template-columns: repeat(auto-fill, minmax(var(--card-width), 1fr)); gap: 1rem; }

/* ============ Cards ============ */
.card { position: relative; perspective: 1000px; min-height: 280px; cursor: pointer; }
.card-inner { position: relative; width: 100%; height: 100%; min-height: 280px; transition: transform .5s; transform-style: preserve-3d; }
.card.flipped .card-inner { transform: rotateY(180deg); }
.face { position: absolute; inset: 0; backface-visibility: hidden; padding: .75rem; border: 1px solid var(--border); border-radius: 8px; background: var(--bg); box-shadow: var(--shadow); }
.face.back { transform: rotateY(180deg); background: var(--bg-secondary); overflow: auto; }
.card-image { display: block; width: var(--image-width); height: var(--image-height); object-fit: cover; border-radius: 4px; background: var(--bg-sidebar); }
.card-controls { position: absolute; right: .5rem; bottom: .5rem; display: flex; gap: .25rem; z-index: 2; }
.control { border: 1px solid var(--border); background: var(--bg); border-radius: 4px; cursor: pointer; }
.definition { font-size: .9em; }

/* ============ Modal ============ */
.modal-backdrop { position: fixed; inset: 0; background: rgba(0,0,0,.45); display: flex; align-items: center; justify-content: center; z-index: 20; }
.modal { background: var(--bg); border-radius: 10px; padding: 1.5rem; max-width: 520px; width: 90%; box-shadow: var(--shadow-lg); }
.modal-controls { display: flex; justify-content: flex-end; gap: .5rem; margin-top: 1rem; }
.toast { position: fixed; bottom: 1rem; right: 1rem; background: var(--text); color: var(--bg); padding: .5rem 1rem; border-radius: 6px; z-index: 30; }

/* ============ Placeholders ============ */
.placeholder { padding: 3rem; text-align: center; color: var(--text-muted); border: 1px dashed var(--border); border-radius: 8px; }
.placeholder-error { flex: 1; color: #c92a2a; }
`

// Script drives the page: card flips, the detail modal, tabs, copy and
// the debounced search box.
const Script = `(function() {
  "use strict";

  var body = document.body;
  var cfg = {
    index: body.getAttribute("data-search-index"),
    api: body.getAttribute("data-search-api"),
    minQuery: parseInt(body.getAttribute("data-min-query"), 10) || 2,
    maxResults: parseInt(body.getAttribute("data-max-results"), 10) || 10,
    debounce: parseInt(body.getAttribute("data-debounce"), 10) || 300
  };

  // ============ Toast ============
  var toastEl = document.getElementById("toast");
  var toastTimer = null;
  function toast(message) {
    toastEl.textContent = message;
    toastEl.hidden = false;
    clearTimeout(toastTimer);
    toastTimer = setTimeout(function() { toastEl.hidden = true; }, 2000);
  }

  // ============ Images ============
  function useFallback(img) {
    var placeholder = img.getAttribute("data-placeholder");
    if (placeholder && img.getAttribute("src") !== placeholder) {
      img.setAttribute("src", placeholder);
    }
  }
  document.querySelectorAll("img.card-image[data-placeholder]").forEach(function(img) {
    img.addEventListener("error", function() {
      if (img.isConnected) useFallback(img);
    });
    if (img.complete && img.naturalWidth === 0) useFallback(img);
  });

  // ============ Cards ============
  function field(card, selector) {
    var el = card.querySelector(selector);
    return el ? el.textContent : "";
  }
  function cardData(card) {
    var img = card.querySelector("img.card-image");
    return {
      es: field(card, ".term-es"),
      en: field(card, ".term-en"),
      defEs: field(card, ".definition-es"),
      defEn: field(card, ".definition-en"),
      img: img ? img.getAttribute("src") : ""
    };
  }
  function toggle(card) {
    var flipped = card.classList.toggle("flipped");
    card.setAttribute("aria-pressed", flipped ? "true" : "false");
  }
  function copyText(d) {
    var text = d.es + " / " + d.en;
    if (d.defEs) text += "\nES: " + d.defEs;
    if (d.defEn) text += "\nEN: " + d.defEn;
    if (!navigator.clipboard) {
      toast("Copy failed: clipboard unavailable");
      return;
    }
    navigator.clipboard.writeText(text).then(function() {
      toast("Copied to clipboard");
    }, function(err) {
      console.warn("clipboard:", err);
      toast("Copy failed: " + (err && err.message ? err.message : "denied"));
    });
  }

  document.addEventListener("click", function(e) {
    var card = e.target.closest("article.card");
    if (!card) return;
    var control = e.target.closest(".control");
    if (!control) {
      toggle(card);
      return;
    }
    switch (control.getAttribute("data-action")) {
      case "flip": toggle(card); break;
      case "expand": openModal(card, control); break;
      case "copy": copyText(cardData(card)); break;
    }
  });
  document.addEventListener("keydown", function(e) {
    var card = e.target.closest && e.target.closest("article.card");
    if (card && e.target === card && (e.key === "Enter" || e.key === " ")) {
      e.preventDefault();
      toggle(card);
    }
  });

  // ============ Modal ============
  var modal = document.getElementById("modal");
  var modalCard = null;
  var returnFocus = null;
  function focusables() {
    return Array.prototype.slice.call(modal.querySelectorAll("button, [href], input, [tabindex]:not([tabindex='-1'])"));
  }
  function openModal(card, opener) {
    var d = cardData(card);
    modalCard = d;
    returnFocus = opener || document.activeElement;
    document.getElementById("modal-title").textContent = d.es + " / " + d.en;
    document.getElementById("modal-es").textContent = d.es;
    document.getElementById("modal-en").textContent = d.en;
    document.getElementById("modal-def-es").textContent = d.defEs;
    document.getElementById("modal-def-en").textContent = d.defEn;
    var img = document.getElementById("modal-image");
    img.setAttribute("src", d.img);
    img.setAttribute("alt", d.es);
    modal.hidden = false;
    var f = focusables();
    if (f.length) f[0].focus();
  }
  function closeModal() {
    if (modal.hidden) return;
    modal.hidden = true;
    modalCard = null;
    if (returnFocus && returnFocus.isConnected) returnFocus.focus();
    returnFocus = null;
  }
  modal.addEventListener("click", function(e) {
    if (e.target === modal) {
      closeModal();
      return;
    }
    var control = e.target.closest(".control");
    if (!control) return;
    if (control.getAttribute("data-action") === "close") closeModal();
    else if (control.getAttribute("data-action") === "copy" && modalCard) copyText(modalCard);
  });
  document.addEventListener("keydown", function(e) {
    if (modal.hidden) return;
    if (e.key === "Escape") {
      e.preventDefault();
      closeModal();
      return;
    }
    if (e.key === "Tab") {
      var f = focusables();
      if (!f.length) return;
      e.preventDefault();
      var i = f.indexOf(document.activeElement);
      var next = e.shiftKey ? (i <= 0 ? f.length - 1 : i - 1) : (i + 1) % f.length;
      f[next].focus();
    }
  });

  // ============ Tabs ============
  function selectTab(bar, tab) {
    bar.querySelectorAll("button.tab").forEach(function(t) {
      var on = t === tab;
      t.classList.toggle("active", on);
      t.setAttribute("aria-selected", on ? "true" : "false");
      t.tabIndex = on ? 0 : -1;
      var panel = document.getElementById(t.getAttribute("aria-controls"));
      if (panel) panel.hidden = !on;
    });
  }
  document.querySelectorAll("nav.tabs").forEach(function(bar) {
    bar.addEventListener("click", function(e) {
      var tab = e.target.closest("button.tab");
      if (tab) selectTab(bar, tab);
    });
  });

  // ============ Search ============
  var input = document.getElementById("search-input");
  var list = document.getElementById("search-results");
  var entries = null;
  var scheduled = null;
  var seq = 0;
  var chain = Promise.resolve();
  var shown = [];
  var active = -1;

  function loadIndex() {
    if (entries) return Promise.resolve(entries);
    return fetch(cfg.index).then(function(r) {
      if (!r.ok) throw new Error("search index: " + r.status);
      return r.json();
    }).then(function(data) {
      entries = data || [];
      return entries;
    });
  }
  function filterIndex(query) {
    var needle = query.toLowerCase();
    var out = [];
    var seen = {};
    for (var i = 0; i < entries.length && out.length < cfg.maxResults; i++) {
      var e = entries[i];
      var text = null;
      if (e.text && e.text.toLowerCase().indexOf(needle) !== -1) text = e.text;
      else if (e.alt && e.alt.toLowerCase().indexOf(needle) !== -1) text = e.alt;
      if (text === null) continue;
      var key = e.kind + "\u0000" + e.subject_id + "\u0000" + text.toLowerCase();
      if (seen[key]) continue;
      seen[key] = true;
      out.push({
        kind: e.kind,
        text: text,
        detail: e.detail || (text === e.text ? e.alt : e.text) || "",
        href: e.href
      });
    }
    return out;
  }
  function fetchResults(query) {
    if (cfg.api) {
      return fetch(cfg.api + "?q=" + encodeURIComponent(query)).then(function(r) {
        if (!r.ok) throw new Error("search: " + r.status);
        return r.json();
      }).then(function(data) { return data.results || []; });
    }
    return loadIndex().then(function() { return filterIndex(query); });
  }

  function render(results) {
    shown = results;
    active = -1;
    list.innerHTML = "";
    results.forEach(function(m, i) {
      var li = document.createElement("li");
      li.className = "result result-" + m.kind;
      li.setAttribute("role", "option");
      li.setAttribute("aria-selected", "false");
      li.setAttribute("data-index", String(i));
      var text = document.createElement("span");
      text.className = "result-text";
      text.textContent = m.text;
      li.appendChild(text);
      if (m.detail) {
        var detail = document.createElement("span");
        detail.className = "result-detail";
        detail.textContent = m.detail;
        li.appendChild(detail);
      }
      list.appendChild(li);
    });
    list.hidden = results.length === 0;
    input.setAttribute("aria-expanded", results.length ? "true" : "false");
  }
  function hideList() {
    list.hidden = true;
    active = -1;
    input.setAttribute("aria-expanded", "false");
  }
  function setActive(i) {
    active = i;
    Array.prototype.forEach.call(list.children, function(li, j) {
      var on = j === i;
      li.classList.toggle("active", on);
      li.setAttribute("aria-selected", on ? "true" : "false");
    });
  }
  function activate(i) {
    var m = shown[i];
    hideList();
    if (m && m.href) window.location.href = m.href;
  }

  // Each input cancels the previously scheduled run. Runs are chained so
  // they never overlap, and only the latest query's results are shown.
  function schedule(query) {
    clearTimeout(scheduled);
    var id = ++seq;
    if (Array.from(query).length < cfg.minQuery) {
      render([]);
      return;
    }
    scheduled = setTimeout(function() {
      scheduled = null;
      chain = chain.then(function() {
        if (id !== seq) return;
        return fetchResults(query).then(function(results) {
          if (id === seq) render(results);
        }, function(err) {
          console.warn(err);
          if (id === seq) render([]);
        });
      });
    }, cfg.debounce);
  }

  if (input) {
    input.addEventListener("input", function() { schedule(input.value.trim()); });
    input.addEventListener("keydown", function(e) {
      if (list.hidden || !shown.length) return;
      switch (e.key) {
        case "ArrowDown":
          e.preventDefault();
          setActive((active + 1) % shown.length);
          break;
        case "ArrowUp":
          e.preventDefault();
          setActive(active <= 0 ? shown.length - 1 : active - 1);
          break;
        case "Enter":
          if (active >= 0) {
            e.preventDefault();
            activate(active);
          }
          break;
        case "Escape":
          hideList();
          break;
      }
    });
    list.addEventListener("click", function(e) {
      var li = e.target.closest("li.result");
      if (li) activate(parseInt(li.getAttribute("data-index"), 10));
    });
    document.addEventListener("pointerdown", function(e) {
      if (e.target !== input && !list.contains(e.target)) hideList();
    });
  }
})();
`
