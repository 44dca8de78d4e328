// Package command provides driven adapters backed by external scripts.
//
// Each call starts the configured command, writes one JSON request to its
// stdin and reads one JSON object from its stdout. A non-zero exit status or
// a non-empty "error" field fails the call.
//
// Adapters:
//   - Generator: produces an image or video file for a prompt
//   - Scorer: grades an artifact against a brand's core partitions
//   - Ingestor: writes approved artifacts into campaign partitions
package command
