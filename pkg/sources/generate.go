//go:generate gomarkdoc -e -f github -o README.md . --repository.url https://github.com/agentstation/assetmap --repository.default-branch master --repository.path /pkg/sources

// Package sources defines the discovery source categories an inventory is
// reconciled against and the contract every source normalizer implements.
package sources
