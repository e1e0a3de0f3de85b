// Package metrics records bookgen build metrics.
//
// Components receive a Recorder through their options and default to
// NoopRecorder, so call sites never check for nil. PrometheusRecorder backs
// the interface with client_golang collectors; a one-shot build dumps them
// with WriteTextfile while watch mode serves them over HTTP with Handler.
package metrics
