package clientdist

import _ "embed"

// LoadboardJS is the live client. It applies patch frames, forwards
// data-on-* events and mounts ECharts on [data-chart] elements.
//
// It is served at "/static/client.js".
//
//go:embed loadboard.js
var LoadboardJS []byte

// LoadboardCSS is the dashboard stylesheet, inlined into every page.
//
//go:embed loadboard.css
var LoadboardCSS string
