// Package services implements the driving port interfaces.
// Services contain the core business logic: the rejection taxonomy,
// prompt mutation, the quality gate, per-campaign memory, the
// orchestration loop and DNA promotion. They call out to driven ports
// (stores, generators, scorers, ingestors) and never to adapters directly.
package services
