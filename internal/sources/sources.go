package sources

// This file centralizes all source imports for self-registration.
// To add a new source, just add one import line here.

import (
	_ "github.com/agentstation/assetmap/internal/sources/coverage"
	_ "github.com/agentstation/assetmap/internal/sources/proxmox"
	_ "github.com/agentstation/assetmap/internal/sources/vmware"
)
