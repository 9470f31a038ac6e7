//go:generate gomarkdoc -e -f github -o README.md . --repository.url https://github.com/agentstation/assetmap --repository.default-branch master --repository.path /

// Package assetmap reconciles a master asset inventory against VMware and
// Proxmox discovery exports and an agent coverage report.
package assetmap
