// Package posts produces posts.json: every scanned record grouped by area,
// the docs navigation tree, and the docs in reading order with next/previous
// links.
package posts
