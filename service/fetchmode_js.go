//go:build js && wasm

package service

// browserTransport is true when net/http is backed by the browser's fetch.
const browserTransport = true
