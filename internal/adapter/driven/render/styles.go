package render

// documentStyle is embedded in the head of every generated document.
const documentStyle = "<style>" + documentCSS + "</style>"

// documentCSS styles the overview markdown, the info box and the diff tables.
const documentCSS = `
body { font-family: -apple-system, "Segoe UI", Helvetica, Arial, "Noto Sans KR", sans-serif; font-size: 13px; color: #24292e; }
h1 { margin-bottom: 4px; }
.pr-link { margin-top: 0; color: #586069; }
.info-box { background-color: #f6f8fa; padding: 15px; border: 1px solid #ddd; border-radius: 6px; margin-bottom: 20px; }
.section-rule { border: 1px solid #ddd; margin: 10px 0; }
.pr-divider { border: 2px solid black; margin: 40px 0; page-break-after: always; }
.markdown-body { background-color: #fff; padding: 15px; border: 1px solid #ddd; border-radius: 6px; margin-bottom: 20px; }
.markdown-body h1, .markdown-body h2, .markdown-body h3, .markdown-body h4, .markdown-body h5, .markdown-body h6 { border-bottom: 1px solid #eaecef; padding-bottom: .3em; }
.markdown-body ul { list-style-type: disc; list-style-position: inside; }
.markdown-body ol { list-style-type: decimal; list-style-position: inside; }
.markdown-body ul, .markdown-body ol { padding-left: 2em; }
.markdown-body blockquote { border-left: .25em solid #dfe2e5; color: #6a737d; padding: 0 1em; margin-left: 0; }
.markdown-body pre { background-color: #f6f8fa; border-radius: 3px; font-size: 85%; line-height: 1.45; overflow: auto; padding: 16px; }
.markdown-body code { background-color: rgba(27,31,35,.05); border-radius: 3px; font-size: 85%; margin: 0; padding: .2em .4em; }
.markdown-body pre > code { background-color: transparent; font-size: 100%; margin: 0; padding: 0; border: 0; }
.commit-body { margin-left: 2em; }
.file h3 { margin-bottom: 2px; }
table.diff { width: 100%; border-collapse: collapse; background-color: #f4f4f4; border: 1px solid #ddd; font-family: Menlo, Consolas, "DejaVu Sans Mono", monospace; font-size: 11px; }
table.diff tr { page-break-inside: avoid; }
table.diff td { padding: 0 6px; vertical-align: top; }
table.diff td.ln { width: 1%; color: #959da5; text-align: right; white-space: nowrap; border-right: 1px solid #ddd; }
table.diff td.code { white-space: pre-wrap; word-break: break-all; }
tr.diff-add td.code { color: green; }
tr.diff-del td.code { color: red; }
tr.diff-header td.code { color: blue; font-weight: bold; }
tr.diff-nonewline td.code { color: #6a737d; font-style: italic; }
`
