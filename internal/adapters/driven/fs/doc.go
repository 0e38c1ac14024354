// Package fs provides filesystem implementations of the folder scanner
// and folder watcher ports.
//
// The scanner enumerates one folder non-recursively; bulk ingestion
// depends on a stable, sorted file order. The watcher wraps fsnotify
// and debounces raw notifications so a file is reported once, after
// writes to it have settled.
package fs
