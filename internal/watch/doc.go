// Package watch rebuilds when content changes. A recursive fsnotify watcher
// feeds a debouncer that coalesces bursts of file events into single
// rebuilds, run one at a time.
package watch
