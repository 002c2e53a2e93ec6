package templates

// Stylesheet is served at StylePath.
const Stylesheet = `
body{margin:0;background:#0a0a0a;color:#f2f2f2;font-family:system-ui,sans-serif}
.header{position:sticky;top:0;display:flex;justify-content:space-between;padding:1rem 2rem;background:rgba(10,10,10,.8)}
.header a{color:#f2f2f2}
.contact{max-width:40rem;margin:4rem auto;padding:0 1rem}
.form-group{display:flex;flex-direction:column;margin-bottom:1rem}
.form-input{padding:.6rem;border:1px solid #333;border-radius:6px;background:#141414;color:inherit}
.form-input.error{border-color:#e5484d}
.error-message{min-height:1.2em;color:#e5484d;font-size:.85rem}
.submit-btn{padding:.7rem 1.4rem;border:0;border-radius:6px;background:#6e56cf;color:#fff;cursor:pointer}
.submit-btn[disabled]{opacity:.6;cursor:wait}
.submit-btn.htmx-request .btn-text{display:none!important}
.submit-btn.htmx-request .btn-loading{display:inline!important}
.form-status{margin-top:1rem;padding:.8rem;border-radius:6px}
.form-status.success{background:#12391f;color:#8ee6a8}
.form-status.error{background:#3b1219;color:#ff9592}
`
