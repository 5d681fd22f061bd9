//go:build !(js && wasm)

package service

const browserTransport = false
