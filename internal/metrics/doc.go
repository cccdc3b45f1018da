// Package metrics records build, stage and lint metrics.
//
// Components receive a Recorder and default to NoopRecorder, so metrics cost
// nothing unless a PrometheusRecorder is injected. Short-lived CLI runs
// export the registry as a node-exporter textfile with WriteTextfile.
package metrics
