//go:generate gomarkdoc -e -f github -o README.md . --repository.url https://github.com/agentstation/assetmap --repository.default-branch master --repository.path /pkg/reconcile

// Package reconcile classifies master inventory rows against the merged
// discovery sources, appends newly discovered assets and backfills agent
// coverage columns.
package reconcile
