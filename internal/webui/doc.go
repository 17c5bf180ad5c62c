// Package webui is the rendering host for the demo scripts.
//
// # Execution Model
//
// Every browser interaction is one event. For each event the host:
//
//  1. Resolves the session from the widgetdash_session cookie, creating one
//     if needed
//  2. Stores any submitted widget values and uploaded files (POST)
//  3. Loads the session's widget state
//  4. Reruns the script from the top with that state
//  5. Renders the resulting elements as HTML
//
// Submissions use post/redirect/get: POST /app/{script} only updates state
// and redirects, and the rerun happens on the following GET.
//
// # Routes
//
//	GET  /                                   script index
//	GET  /app/{script}                       rerun and render
//	POST /app/{script}                       apply widget values and uploads
//	POST /app/{script}/upload/{key}/clear    drop an uploaded file
//	GET  /app/{script}/table/{n}.xlsx        n-th table of a rerun as xlsx
//
// # Rendering
//
// Templates are embedded with go:embed. Text elements go through goldmark,
// line charts are drawn as inline SVG with one polyline per column, and a
// script error is shown as an error block after the elements produced
// before it.
package webui
